package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/user/bookmark-service/internal/repository"
)

const ingestQueueKey = "ingest:queue"

// QueueRepoImpl provides a concrete implementation for the QueueRepository
// interface using Redis Lists.
type QueueRepoImpl struct {
	client *redis.Client
}

var _ repository.QueueRepository = (*QueueRepoImpl)(nil)

// NewQueueRepo creates a new instance of QueueRepoImpl.
func NewQueueRepo(client *redis.Client) *QueueRepoImpl {
	return &QueueRepoImpl{client: client}
}

// Push adds a bookmark ID to the left side of the Redis list (acting as a queue).
func (r *QueueRepoImpl) Push(ctx context.Context, id uuid.UUID) error {
	return r.client.LPush(ctx, ingestQueueKey, id.String()).Err()
}

// Pop removes and returns a bookmark ID from the right side of the Redis
// list. Returns repository.ErrQueueEmpty when nothing is waiting.
func (r *QueueRepoImpl) Pop(ctx context.Context) (uuid.UUID, error) {
	raw, err := r.client.RPop(ctx, ingestQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, repository.ErrQueueEmpty
		}
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed bookmark ID in queue: %w", err)
	}
	return id, nil
}

// Size returns the current number of items in the queue.
func (r *QueueRepoImpl) Size(ctx context.Context) (int64, error) {
	return r.client.LLen(ctx, ingestQueueKey).Result()
}
