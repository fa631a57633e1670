// Package main is the entry point for the recurring transactions API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/infra/db"
	"github.com/finance-tracker/recurring/internal/infra/dependency"
	"github.com/finance-tracker/recurring/internal/integration/adapters"
	"github.com/finance-tracker/recurring/internal/integration/cache"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting recurring transactions API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Chat entry needs Redis; the rest of the API runs without it
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.NewClient(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Warn("Redis connection failed, running without conversation sessions", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	injector, err := dependency.NewInjector(cfg, database.DB(), redisClient, registry, adapters.NewSystemClock())
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	go injector.RateLimiter.StartCleanup(ctx, 5*time.Minute)

	if cfg.Scheduler.Enabled {
		go injector.Worker.Start(ctx)
	} else {
		slog.Info("Recurring scheduler disabled, runs must be triggered over HTTP")
	}

	engine := injector.Router.Setup(cfg.Server)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
