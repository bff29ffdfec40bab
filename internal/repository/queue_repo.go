package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrQueueEmpty is returned by Pop when no ID is waiting. An empty queue is
// a normal state, not a failure.
var ErrQueueEmpty = errors.New("ingest queue is empty")

// QueueRepository defines the interface for the FIFO queue of bookmark IDs
// awaiting ingestion.
type QueueRepository interface {
	// Push adds a bookmark ID to the end of the queue.
	Push(ctx context.Context, id uuid.UUID) error
	// Pop removes and returns a bookmark ID from the front of the queue.
	Pop(ctx context.Context) (uuid.UUID, error)
	// Size returns the current number of queued IDs.
	Size(ctx context.Context) (int64, error)
}
