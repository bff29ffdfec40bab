package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/entity"
	"github.com/user/bookmark-service/internal/repository"
)

var (
	ErrURLRecentlySubmitted = errors.New("URL has been submitted recently and force is false")
)

const (
	deduplicationExpiry = 48 * time.Hour // 2 days
)

// SubmitInput carries the client-supplied fields of a new bookmark.
type SubmitInput struct {
	URL          string
	Title        string
	Type         string
	SourceType   string
	ClientSource string
	Platform     string
	Force        bool
}

// BookmarkManager defines the interface for submitting bookmarks into the
// ingestion pipeline and looking them up afterwards.
type BookmarkManager interface {
	Submit(ctx context.Context, userID uuid.UUID, in SubmitInput) (*entity.Bookmark, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entity.Bookmark, error)
}

type bookmarkManagerUseCase struct {
	bookmarks repository.BookmarkRepository
	queue     repository.QueueRepository
	submitted repository.SubmittedRepository
}

// NewBookmarkManager creates a new BookmarkManager use case.
func NewBookmarkManager(
	bookmarks repository.BookmarkRepository,
	queue repository.QueueRepository,
	submitted repository.SubmittedRepository,
) BookmarkManager {
	return &bookmarkManagerUseCase{
		bookmarks: bookmarks,
		queue:     queue,
		submitted: submitted,
	}
}

// Submit inserts a pending bookmark row for the caller and enqueues its ID
// for the ingest worker. Resubmitting the same URL within the dedup window
// is rejected unless forced.
func (uc *bookmarkManagerUseCase) Submit(ctx context.Context, userID uuid.UUID, in SubmitInput) (*entity.Bookmark, error) {
	if in.Force {
		if err := uc.submitted.ClearSubmitted(ctx, userID, in.URL); err != nil {
			// Not critical; worst case the dedup mark lingers until expiry.
			slog.Warn("Failed to clear dedup mark for forced submit", "url", in.URL, "error", err)
		}
	} else {
		seen, err := uc.submitted.WasSubmitted(ctx, userID, in.URL)
		if err != nil {
			return nil, err
		}
		if seen {
			return nil, ErrURLRecentlySubmitted
		}
	}

	bookmarkType := in.Type
	if bookmarkType == "" {
		bookmarkType = "link"
	}

	b := &entity.Bookmark{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        in.Title,
		Type:         bookmarkType,
		SourceType:   in.SourceType,
		ClientSource: in.ClientSource,
		URL:          in.URL,
		Platform:     in.Platform,
		IngestStatus: entity.IngestPending,
		CreatedAt:    time.Now(),
	}
	if err := uc.bookmarks.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	if err := uc.queue.Push(ctx, b.ID); err != nil {
		return nil, fmt.Errorf("failed to enqueue bookmark %s: %w", b.ID, err)
	}

	if err := uc.submitted.MarkSubmitted(ctx, userID, in.URL, deduplicationExpiry); err != nil {
		// The bookmark is queued; the URL might just be queued again if the
		// client retries before the worker gets to it. Log it.
		slog.Error("Failed to mark URL as submitted after queueing", "url", in.URL, "error", err)
	}

	return b, nil
}

// Get retrieves one of the caller's bookmarks, typically polled by clients
// watching an ingestion attempt progress.
func (uc *bookmarkManagerUseCase) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Bookmark, error) {
	return uc.bookmarks.FindByID(ctx, userID, id)
}
