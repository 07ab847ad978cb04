package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/universe-backend/api/routes"
	"github.com/angelmondragon/universe-backend/internal/auth"
	"github.com/angelmondragon/universe-backend/internal/content"
	"github.com/angelmondragon/universe-backend/internal/users"
	"github.com/angelmondragon/universe-backend/pkg/auth/session"
	"github.com/angelmondragon/universe-backend/pkg/config"
	"github.com/angelmondragon/universe-backend/pkg/docstore"
	"github.com/angelmondragon/universe-backend/pkg/docstore/drivers"
	"github.com/angelmondragon/universe-backend/pkg/logger"
	"github.com/angelmondragon/universe-backend/pkg/metrics"
	"github.com/angelmondragon/universe-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// The API still serves /, /test and /health without a database; data
	// routes then answer "database not configured".
	var store docstore.Client
	if cfg.Store.Configured() {
		client, err := drivers.Open(ctx, cfg.Store, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap document store", err)
			os.Exit(1)
		}
		store = docstore.Instrument(client, metrics.NewStoreMetrics(reg))
	} else {
		logg.Warn(logg.WithField(ctx, "driver", cfg.Store.DriverName()), "document store not configured")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
	}

	var plain docstore.Store
	if store != nil {
		plain = store
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:           users.NewRepository(plain),
		SessionManager:     session.NewManager(plain, cfg.Auth.SessionTTL),
		PasswordConfig:     cfg.Password,
		ExposePasswordHash: cfg.Auth.ExposePasswordHash,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	contentService := content.NewService(content.ServiceParams{
		Store:   plain,
		Metrics: metrics.NewContentMetrics(reg),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"driver": cfg.Store.DriverName(),
		"redis":  redisClient != nil,
	})
	logg.Info(logCtx, "starting api server")

	handler := routes.NewRouter(cfg, logg, routes.Deps{
		Store:          store,
		Redis:          redisClient,
		AuthService:    authService,
		ContentService: contentService,
		Registry:       reg,
		HTTPMetrics:    metrics.NewHTTPMetrics(reg),
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	exitCode := 0
	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	if store != nil {
		closeErr = multierr.Append(closeErr, store.Close(shutdownCtx))
	}
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(logCtx, "error during shutdown", closeErr)
		exitCode = 1
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
