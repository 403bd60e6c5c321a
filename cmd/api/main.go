package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kristi-balla/leakchef/internal/cache"
	"github.com/kristi-balla/leakchef/internal/client"
	"github.com/kristi-balla/leakchef/internal/config"
	"github.com/kristi-balla/leakchef/internal/events"
	"github.com/kristi-balla/leakchef/internal/handler"
	"github.com/kristi-balla/leakchef/internal/natsclient"
	"github.com/kristi-balla/leakchef/internal/repository"
	"github.com/kristi-balla/leakchef/internal/scheduler"
	"github.com/kristi-balla/leakchef/internal/service"
	"github.com/kristi-balla/leakchef/internal/telemetry"
	"github.com/kristi-balla/leakchef/internal/worker"
)

const serviceName = "leakchef"

func main() {
	cfg := config.Load()

	logger := buildLogger(cfg.LogLevel)
	defer logger.Sync()

	// --- OpenTelemetry ---
	if cfg.OTELEndpoint != "" {
		tp, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTELEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
			logger.Info("OTel tracer initialized", zap.String("endpoint", cfg.OTELEndpoint))
		}

		mp, err := telemetry.InitMeterProvider(context.Background(), serviceName, cfg.OTELEndpoint)
		if err != nil {
			logger.Error("failed to init OTel meter provider", zap.Error(err))
		} else {
			defer mp.Shutdown(context.Background())
		}
	}

	// --- Vault Secret Loading ---
	// Optional: without a Vault address the connection strings come
	// straight from the environment.
	if cfg.VaultAddr != "" {
		vaultManager, err := config.NewSecretManager(cfg.VaultAddr, cfg.VaultToken)
		if err != nil {
			logger.Fatal("Vault connection failed", zap.Error(err))
		}
		secrets, err := vaultManager.GetKV2(cfg.VaultSecretPath)
		if err != nil {
			logger.Fatal("failed to load secrets from Vault", zap.Error(err))
		}
		cfg.Overlay(secrets)
		logger.Info("Vault secrets applied", zap.String("path", cfg.VaultSecretPath))
	}

	if cfg.MongoURL == "" {
		logger.Fatal("MONGO_URL is not set")
	}

	// --- Database ---
	store, err := repository.Connect(context.Background(), logger, cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// --- Redis (salt cache) ---
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to parse REDIS_URL", zap.Error(err))
		}
		rdb = redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("Redis unreachable, salts will hit Mongo every time", zap.Error(err))
			rdb = nil
		}
		cancel()
	}

	// --- NATS JetStream ---
	var natsClient *natsclient.Client
	var publisher service.EventPublisher
	if cfg.NATSURL != "" {
		natsClient, err = natsclient.NewClient(cfg.NATSURL, logger)
		if err != nil {
			logger.Fatal("NATS initialization failed", zap.Error(err))
		}
		defer natsClient.Close()
		if err := natsClient.ProvisionStreams(); err != nil {
			logger.Fatal("NATS stream provisioning failed", zap.Error(err))
		}
		publisher = events.NewPublisher(natsClient, logger)
	}

	// --- Services ---
	cursors := cache.New(logger, cfg.CursorCacheSize, cfg.CursorCacheTTL)
	tracker := service.NewProgressTracker(store, logger)
	salts := service.NewSaltCache(rdb, logger)
	authSvc := service.NewAuthService(store, logger)
	deliverySvc := service.NewDeliveryService(store, cursors, tracker, salts, publisher, logger)
	jokes := client.NewJokesClient(cfg.JokesAPIURL)

	// --- Background workers ---
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if cfg.MemoryWatcherFile != "" {
		recorder := worker.NewMemoryRecorder(cfg.MemoryWatcherFile, time.Second, logger)
		go recorder.Run(workerCtx)
	}

	stats := scheduler.NewStatsReporter(store, cursors, natsClient, logger)
	if err := stats.Start(); err != nil {
		logger.Fatal("failed to start stats reporter", zap.Error(err))
	}

	// --- HTTP Server ---
	e := echo.New()
	e.HideBanner = true
	e.Use(otelecho.Middleware(serviceName))
	e.Use(handler.TokenAuth(authSvc, logger))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			logger.Info("HTTP request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())

	handler.NewLeakHandler(deliverySvc, logger).Register(e)
	handler.NewHelloHandler(jokes, logger).Register(e)

	go func() {
		logger.Info("leakchef HTTP server listening", zap.String("addr", cfg.Addr()))
		if err := e.Start(cfg.Addr()); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failure", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	workerCancel() // stop background loops before HTTP shutdown
	stats.Stop()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Echo shutdown error", zap.Error(err))
	}

	cursors.Close()
	if err := store.Disconnect(shutdownCtx); err != nil {
		logger.Error("Mongo disconnect error", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}
	logger.Info("leakchef shut down cleanly")
}

// buildLogger maps the configured level onto zap. TRACE collapses to
// debug, which is the finest level zap knows.
func buildLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()

	switch strings.ToUpper(level) {
	case "TRACE", "DEBUG":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	default:
		if lvl, err := zapcore.ParseLevel(strings.ToLower(level)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}
