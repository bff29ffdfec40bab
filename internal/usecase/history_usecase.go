package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/entity"
	"github.com/user/bookmark-service/internal/repository"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// IngestHistory defines the interface for reading a caller's ingestion
// history.
type IngestHistory interface {
	// History sweeps the caller's stale ingests, then lists their rows
	// newest-first. The raw query-string values are passed through so that
	// sanitization lives in one place.
	History(ctx context.Context, userID uuid.UUID, status, limit, offset string) ([]*entity.Bookmark, error)
}

type ingestHistoryUseCase struct {
	bookmarks repository.BookmarkRepository
}

// NewIngestHistory creates a new IngestHistory use case.
func NewIngestHistory(bookmarks repository.BookmarkRepository) IngestHistory {
	return &ingestHistoryUseCase{bookmarks: bookmarks}
}

// History first forces the caller's abandoned pending/processing rows to
// failed, then reads. The two store operations are deliberately issued
// back-to-back without a transaction: a worker write landing between them is
// an accepted race, and re-failing an already-failed row is a no-op, so
// concurrent sweeps need no coordination.
func (uc *ingestHistoryUseCase) History(ctx context.Context, userID uuid.UUID, status, limit, offset string) ([]*entity.Bookmark, error) {
	threshold := time.Now().Add(-entity.StaleTimeout)
	if err := uc.bookmarks.FailStale(ctx, userID, threshold); err != nil {
		return nil, fmt.Errorf("failed to sweep stale ingests: %w", err)
	}

	return uc.bookmarks.ListHistory(ctx, userID, historyFilter(status, limit, offset))
}

// historyFilter sanitizes the raw query parameters. Malformed values fall
// back to defaults rather than erroring: an unknown status is ignored, not
// rejected, so clients can probe new statuses without breaking old servers.
func historyFilter(status, limit, offset string) repository.HistoryFilter {
	f := repository.HistoryFilter{Limit: defaultHistoryLimit}

	if s := entity.IngestStatus(status); s.IsValid() {
		f.Status = s
	}

	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		f.Limit = n
		if f.Limit > maxHistoryLimit {
			f.Limit = maxHistoryLimit
		}
	}

	if n, err := strconv.Atoi(offset); err == nil && n > 0 {
		f.Offset = n
	}

	return f
}
