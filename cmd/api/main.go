package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/bookmark-service/internal/adapter/postgres"
	redis_adapter "github.com/user/bookmark-service/internal/adapter/redis"
	"github.com/user/bookmark-service/internal/delivery/http/handler"
	"github.com/user/bookmark-service/internal/delivery/http/router"
	"github.com/user/bookmark-service/internal/migrations"
	"github.com/user/bookmark-service/internal/usecase"
	"github.com/user/bookmark-service/pkg/config"
	"github.com/user/bookmark-service/pkg/logger"
	"github.com/user/bookmark-service/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Database Connections ---
	ctx := context.Background()

	// PostgreSQL
	if err := migrations.Run(cfg.PostgresURL()); err != nil {
		slog.Error("Unable to apply migrations", "error", err)
		os.Exit(1)
	}
	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL())
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis connection established")

	// --- Repositories ---
	bookmarkRepo := postgres.NewBookmarkRepo(dbpool)
	dashboardRepo := postgres.NewDashboardRepo(dbpool)
	sessionRepo := postgres.NewSessionRepo(dbpool)
	queueRepo := redis_adapter.NewQueueRepo(rdb)
	submittedRepo := redis_adapter.NewSubmittedRepo(rdb)

	// --- Use Cases ---
	history := usecase.NewIngestHistory(bookmarkRepo)
	dashboard := usecase.NewDashboard(dashboardRepo)
	submitter := usecase.NewBookmarkManager(bookmarkRepo, queueRepo, submittedRepo)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(history, dashboard, submitter)
	httpRouter := router.New(apiHandler, sessionRepo, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exited")
}
