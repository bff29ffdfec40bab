package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/user/bookmark-service/internal/repository"
	"github.com/user/bookmark-service/pkg/utils"
)

const submittedURLPrefix = "submitted:"

// SubmittedRepoImpl provides a concrete implementation for the
// SubmittedRepository interface using Redis.
type SubmittedRepoImpl struct {
	client *redis.Client
}

var _ repository.SubmittedRepository = (*SubmittedRepoImpl)(nil)

// NewSubmittedRepo creates a new instance of SubmittedRepoImpl.
func NewSubmittedRepo(client *redis.Client) *SubmittedRepoImpl {
	return &SubmittedRepoImpl{client: client}
}

// generateKey creates a consistent Redis key for an owner/URL pair. The URL
// is hashed so arbitrary characters cannot leak into the key space, and the
// owner ID keeps dedup marks from crossing tenants.
func (r *SubmittedRepoImpl) generateKey(userID uuid.UUID, url string) string {
	return fmt.Sprintf("%s%s:%s", submittedURLPrefix, userID, utils.HashURL(url))
}

// MarkSubmitted records a submission by setting a key with an expiry.
func (r *SubmittedRepoImpl) MarkSubmitted(ctx context.Context, userID uuid.UUID, url string, expiry time.Duration) error {
	// SETEX is atomic and sets the key with an expiry.
	return r.client.SetEx(ctx, r.generateKey(userID, url), "1", expiry).Err()
}

// WasSubmitted checks whether the owner submitted the URL recently.
func (r *SubmittedRepoImpl) WasSubmitted(ctx context.Context, userID uuid.UUID, url string) (bool, error) {
	val, err := r.client.Exists(ctx, r.generateKey(userID, url)).Result()
	if err != nil {
		return false, err
	}
	return val == 1, nil
}

// ClearSubmitted removes the dedup mark, used for forced resubmits.
func (r *SubmittedRepoImpl) ClearSubmitted(ctx context.Context, userID uuid.UUID, url string) error {
	return r.client.Del(ctx, r.generateKey(userID, url)).Err()
}
