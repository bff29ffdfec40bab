package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/bookmark-service/internal/adapter/chromedp_fetcher"
	"github.com/user/bookmark-service/internal/adapter/postgres"
	redis_adapter "github.com/user/bookmark-service/internal/adapter/redis"
	"github.com/user/bookmark-service/internal/migrations"
	"github.com/user/bookmark-service/internal/usecase"
	"github.com/user/bookmark-service/pkg/config"
	"github.com/user/bookmark-service/pkg/logger"
	"github.com/user/bookmark-service/pkg/metrics"
)

func main() {
	cfg := config.Load()

	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}

	bookmarkRepo := postgres.NewBookmarkRepo(dbpool)
	queueRepo := redis_adapter.NewQueueRepo(rdb)

	fetcher, err := chromedp_fetcher.NewChromedpFetcher(cfg.MaxConcurrency, cfg.PageLoadTimeout)
	if err != nil {
		slog.Error("Unable to initialize page fetcher", "error", err)
		os.Exit(1)
	}

	worker := usecase.NewIngestWorker(queueRepo, bookmarkRepo, fetcher)

	var wg sync.WaitGroup
	for i := 0; i < cfg.MaxConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if err := worker.ProcessNext(ctx); err != nil {
					slog.Error("Worker iteration failed", "error", err)
				}
				// RPop is non-blocking; pace the loop so an idle worker
				// doesn't spin against Redis.
				select {
				case <-ctx.Done():
					return
				case <-time.After(cfg.WorkerPollInterval):
				}
			}
		}()
	}

	// Queue depth gauge, refreshed on the same cadence as the workers.
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(cfg.WorkerPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if size, err := queueRepo.Size(ctx); err == nil {
					metrics.BookmarksInQueue.Set(float64(size))
				}
			}
		}
	}()

	slog.Info("Ingest worker started", "concurrency", cfg.MaxConcurrency)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down worker")
	cancel()
	wg.Wait()
	slog.Info("Worker exited")
}
