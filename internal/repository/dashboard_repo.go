package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/entity"
)

// DashboardRepository defines the read-only aggregation queries behind the
// board screen. All queries are scoped by owner.
type DashboardRepository interface {
	// Stats computes the aggregate payload over the last `days` days.
	Stats(ctx context.Context, userID uuid.UUID, days int) (*entity.DashboardStats, error)
}
