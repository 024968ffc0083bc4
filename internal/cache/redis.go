package cache

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// InitRedis connects the package-level client used by the alert deduper.
// REDIS_URL accepts a plain host:port or a redis:// URL with credentials.
func InitRedis(ctx context.Context) {
	client, err := newRedisClient(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	Client = client
	log.Println("Connected to Redis")
}

func newRedisClient(addr string) (*redis.Client, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}
