package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/repository"
	"github.com/user/bookmark-service/pkg/metrics"
)

// IngestWorker defines the interface for the background ingestion loop.
type IngestWorker interface {
	// ProcessNext handles a single queued bookmark, if any.
	ProcessNext(ctx context.Context) error
}

type ingestWorkerUseCase struct {
	queue     repository.QueueRepository
	bookmarks repository.BookmarkRepository
	fetcher   repository.PageFetcher
}

// NewIngestWorker creates a new IngestWorker use case.
func NewIngestWorker(
	queue repository.QueueRepository,
	bookmarks repository.BookmarkRepository,
	fetcher repository.PageFetcher,
) IngestWorker {
	return &ingestWorkerUseCase{
		queue:     queue,
		bookmarks: bookmarks,
		fetcher:   fetcher,
	}
}

// ProcessNext pops one bookmark ID from the queue and runs its ingestion
// attempt: pending → processing → completed|failed. A row the staleness
// sweep already failed is skipped rather than resurrected; the conditional
// transitions in the repository make the sweep's write win.
func (uc *ingestWorkerUseCase) ProcessNext(ctx context.Context) error {
	id, err := uc.queue.Pop(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrQueueEmpty) {
			return nil
		}
		return fmt.Errorf("failed to pop bookmark from queue: %w", err)
	}

	b, err := uc.bookmarks.MarkProcessing(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted, already taken by another worker, or swept to failed.
			slog.Warn("Skipping queued bookmark not in pending state", "id", id)
			return nil
		}
		return fmt.Errorf("failed to mark bookmark %s processing: %w", id, err)
	}

	slog.Info("Processing bookmark from queue", "id", b.ID, "url", b.URL)

	domain := "unknown"
	if parsed, err := url.Parse(b.URL); err == nil && parsed.Hostname() != "" {
		domain = parsed.Hostname()
	}

	startTime := time.Now()
	page, fetchErr := uc.fetcher.Fetch(ctx, b.URL)
	duration := time.Since(startTime)
	metrics.IngestDuration.WithLabelValues(domain).Observe(duration.Seconds())

	if fetchErr != nil {
		slog.Error("Ingest failed for bookmark", "id", b.ID, "url", b.URL, "error", fetchErr)
		return uc.handleFetchFailure(ctx, b.ID, fetchErr)
	}

	slog.Info("Ingest successful for bookmark", "id", b.ID, "url", b.URL, "duration_ms", duration.Milliseconds())

	metrics.IngestsTotal.WithLabelValues("success", "").Inc()
	if err := uc.bookmarks.Complete(ctx, b.ID, pickTitle(page.Title, b.Title), page.Platform); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Bookmark left processing before completion could be recorded", "id", b.ID)
			return nil
		}
		return fmt.Errorf("failed to complete bookmark %s: %w", b.ID, err)
	}
	return nil
}

func (uc *ingestWorkerUseCase) handleFetchFailure(ctx context.Context, id uuid.UUID, fetchErr error) error {
	errorType := "unknown"
	switch {
	case errors.Is(fetchErr, repository.ErrFetchTimeout):
		errorType = "timeout"
	case errors.Is(fetchErr, repository.ErrNavigationFailed):
		errorType = "navigation"
	case errors.Is(fetchErr, repository.ErrContentRestricted):
		errorType = "restricted"
	}
	metrics.IngestsTotal.WithLabelValues("failure", errorType).Inc()

	if err := uc.bookmarks.Fail(ctx, id, fetchErr.Error()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Already failed by the sweep; its sentinel message stands.
			return nil
		}
		return fmt.Errorf("failed to record ingest failure for %s: %w", id, err)
	}
	return nil
}

// pickTitle prefers the extracted page title; a client-supplied title is
// kept when extraction yields nothing.
func pickTitle(extracted, submitted string) string {
	if extracted != "" {
		return extracted
	}
	return submitted
}
