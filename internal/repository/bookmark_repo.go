package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/entity"
)

// ErrNotFound is returned when a bookmark lookup matches no row owned by the
// caller.
var ErrNotFound = errors.New("bookmark not found")

// HistoryFilter narrows a history read. Status is applied only when set;
// Limit and Offset are assumed already sanitized by the caller.
type HistoryFilter struct {
	Status entity.IngestStatus
	Limit  int
	Offset int
}

// BookmarkRepository defines the interface for bookmark rows. Every method
// is scoped by owner; implementations must never return or mutate another
// user's rows.
type BookmarkRepository interface {
	// Create inserts a new bookmark row.
	Create(ctx context.Context, b *entity.Bookmark) error
	// FindByID retrieves a single bookmark owned by userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Bookmark, error)
	// ListHistory returns the owner's rows ordered by created_at descending.
	ListHistory(ctx context.Context, userID uuid.UUID, filter HistoryFilter) ([]*entity.Bookmark, error)
	// FailStale forces pending/processing rows created before threshold to
	// failed with the stale sentinel error. Side effect only.
	FailStale(ctx context.Context, userID uuid.UUID, threshold time.Time) error
	// MarkProcessing moves a pending row to processing, clears its error and
	// returns the updated row. Returns ErrNotFound if the row is absent or
	// not pending.
	MarkProcessing(ctx context.Context, id uuid.UUID) (*entity.Bookmark, error)
	// Complete moves a processing row to completed, storing the extracted
	// title. Returns ErrNotFound if the row is absent or not processing.
	Complete(ctx context.Context, id uuid.UUID, title, platform string) error
	// Fail moves a processing row to failed with the given reason.
	// Returns ErrNotFound if the row is absent or not processing.
	Fail(ctx context.Context, id uuid.UUID, reason string) error
}
