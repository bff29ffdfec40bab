package usecase

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/entity"
	"github.com/user/bookmark-service/internal/repository"
)

const (
	defaultDashboardDays = 30
	maxDashboardDays     = 365
)

// Dashboard defines the interface for the board screen's aggregate fetch.
type Dashboard interface {
	Stats(ctx context.Context, userID uuid.UUID, days string) (*entity.DashboardStats, error)
}

type dashboardUseCase struct {
	stats repository.DashboardRepository
}

// NewDashboard creates a new Dashboard use case.
func NewDashboard(stats repository.DashboardRepository) Dashboard {
	return &dashboardUseCase{stats: stats}
}

// Stats resolves the day window and delegates to the store. Like the history
// parameters, a malformed window falls back to the default instead of
// erroring.
func (uc *dashboardUseCase) Stats(ctx context.Context, userID uuid.UUID, days string) (*entity.DashboardStats, error) {
	window := defaultDashboardDays
	if n, err := strconv.Atoi(days); err == nil && n > 0 {
		window = n
		if window > maxDashboardDays {
			window = maxDashboardDays
		}
	}
	return uc.stats.Stats(ctx, userID, window)
}
