package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"time"

	"tradegate/internal/advisor"
	"tradegate/internal/bot"
	"tradegate/internal/cache"
	"tradegate/internal/config"
	"tradegate/internal/db"
	"tradegate/internal/forward"
	"tradegate/internal/handler"
	"tradegate/internal/repository"
	"tradegate/internal/service"
	signalengine "tradegate/internal/signal"
	"tradegate/internal/tui"
	"tradegate/pkg/tracing"

	"github.com/charmbracelet/ssh"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "tradegate/docs"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initPostgresFunc     = db.InitPostgres
	initRedisFunc        = cache.InitRedis
	initTracerFunc       = tracing.InitTracer
	newDecisionRepoFunc  = repository.NewDecisionRepository
	newEngineFunc        = signalengine.NewEngine
	newDeduperFunc       = cache.NewDeduper
	newAdvisorFunc       = advisor.New
	newForwarderFunc     = forward.New
	newAlertServiceFunc  = service.NewAlertService
	startTelegramBotFunc = bot.StartTelegramBot
	newHandlerFunc       = handler.New
	newRouterFunc        = gin.Default
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }

	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Tradegate API
// @version         1.0
// @description     Normalizes charting-platform alerts into accept/reject trade decisions.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Create the decision store and run migrations
	var store service.DecisionStore
	if db.Pool != nil {
		decisionRepo := newDecisionRepoFunc(db.Pool, tracer)
		if err := decisionRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		store = decisionRepo
	}

	// Engine and collaborators
	engine := newEngineFunc(nil)
	deduper := newDeduperFunc(cache.Client, time.Duration(cfg.DedupeTTLSecs)*time.Second)
	reviewer := newAdvisorFunc(tracer, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	forwarder := newForwarderFunc(tracer, cfg.ForwardURL, cfg.ForwardHMACSecret)
	hub := handler.NewDecisionHub()

	alertService := newAlertServiceFunc(tracer, engine, store, deduper, reviewer, forwarder, hub)

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	if dispatcher := startTelegramBotFunc(alertService, reviewer); dispatcher != nil {
		alertService.AddNotifier(dispatcher)
	}

	// Create handlers and routes
	h := newHandlerFunc(tracer, alertService, cfg.SharedToken, hub)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("tradegate"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Optional SSH dashboard
	var sshSrv *ssh.Server
	if cfg.SSHPort > 0 {
		sshSrv, err = tui.NewSSHServer(tui.SSHConfig{
			Host:        "0.0.0.0",
			Port:        strconv.Itoa(cfg.SSHPort),
			HostKeyPath: cfg.SSHHostKeyPath,
		}, alertService)
		if err != nil {
			log.Fatalf("failed to create SSH server: %v", err)
		}
		go func() {
			log.Printf("SSH dashboard listening on :%d", cfg.SSHPort)
			if err := sshSrv.ListenAndServe(); err != nil {
				log.Printf("ssh server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if sshSrv != nil {
		if err := sshSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("ssh shutdown: %v", err)
		}
	}

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
