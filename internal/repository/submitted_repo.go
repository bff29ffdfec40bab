package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubmittedRepository defines the interface for short-lived deduplication of
// submitted URLs, keyed per owner.
type SubmittedRepository interface {
	// MarkSubmitted records that userID submitted url, expiring after expiry.
	MarkSubmitted(ctx context.Context, userID uuid.UUID, url string, expiry time.Duration) error
	// WasSubmitted checks whether userID submitted url recently.
	WasSubmitted(ctx context.Context, userID uuid.UUID, url string) (bool, error)
	// ClearSubmitted removes the dedup mark, used for force resubmits.
	ClearSubmitted(ctx context.Context, userID uuid.UUID, url string) error
}
