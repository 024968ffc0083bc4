package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	SharedToken      string
	HTTPPort         int
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string

	ForwardURL        string
	ForwardHMACSecret string

	OpenAIAPIKey string
	OpenAIModel  string

	DedupeTTLSecs int

	SSHPort        int
	SSHHostKeyPath string

	MCPTransport          string
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int
	MCPRateLimitPerMin    int
}

func Load() *Config {
	cfg := &Config{
		SharedToken:       os.Getenv("SHARED_TOKEN"),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		ForwardURL:        strings.TrimSpace(os.Getenv("FORWARD_URL")),
		ForwardHMACSecret: os.Getenv("FORWARD_HMAC_SECRET"),
		MCPAuthToken:      os.Getenv("MCP_AUTH_TOKEN"),
	}

	if cfg.SharedToken == "" {
		log.Println("Warning: SHARED_TOKEN not set, webhook will reject every request")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, decision review will be disabled")
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.DedupeTTLSecs = 60
	if v := strings.TrimSpace(os.Getenv("DEDUPE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DedupeTTLSecs = n
		}
	}

	cfg.SSHPort = 0
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/tradegate_ed25519"
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}

	cfg.MCPHTTPPort = 8090
	if v := strings.TrimSpace(os.Getenv("MCP_HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPHTTPPort = n
		}
	}

	cfg.MCPRequestTimeoutSecs = 5
	if v := strings.TrimSpace(os.Getenv("MCP_REQUEST_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPRequestTimeoutSecs = n
		}
	}

	cfg.MCPRateLimitPerMin = 60
	if v := strings.TrimSpace(os.Getenv("MCP_RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPRateLimitPerMin = n
		}
	}

	return cfg
}
