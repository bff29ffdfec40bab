package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/entity"
)

type stubDashboardRepo struct {
	lastDays int
	stats    *entity.DashboardStats
}

func (s *stubDashboardRepo) Stats(_ context.Context, _ uuid.UUID, days int) (*entity.DashboardStats, error) {
	s.lastDays = days
	return s.stats, nil
}

func TestDashboard_DayWindowSanitization(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 30},
		{"abc", 30},
		{"-1", 30},
		{"0", 30},
		{"7", 7},
		{"400", 365},
	}
	repo := &stubDashboardRepo{stats: &entity.DashboardStats{}}
	uc := NewDashboard(repo)

	for _, tt := range tests {
		if _, err := uc.Stats(context.Background(), uuid.New(), tt.in); err != nil {
			t.Fatalf("Stats(%q): %v", tt.in, err)
		}
		if repo.lastDays != tt.want {
			t.Fatalf("days for %q: got %d, want %d", tt.in, repo.lastDays, tt.want)
		}
	}
}
