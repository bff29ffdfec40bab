package postgres

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/bookmark-service/internal/entity"
)

// DashboardRepoImpl provides a concrete implementation for the
// DashboardRepository interface using PostgreSQL.
type DashboardRepoImpl struct {
	db *pgxpool.Pool
}

// NewDashboardRepo creates a new instance of DashboardRepoImpl.
func NewDashboardRepo(db *pgxpool.Pool) *DashboardRepoImpl {
	return &DashboardRepoImpl{db: db}
}

const folderRankingSize = 5

// Stats runs the aggregation queries for one owner. The queries are
// independent reads; they share no transaction, consistent with the store's
// own isolation being good enough for a reporting screen.
func (r *DashboardRepoImpl) Stats(ctx context.Context, userID uuid.UUID, days int) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{
		TypeDistribution: []entity.TypeCount{},
		FolderRanking:    []entity.FolderCount{},
	}

	var embeddedCount int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE embedded)
		FROM bookmarks
		WHERE user_id = $1;
	`, userID).Scan(&stats.TotalBookmarks, &stats.WeekBookmarks, &embeddedCount)
	if err != nil {
		return nil, err
	}
	if stats.TotalBookmarks > 0 {
		stats.EmbeddingRate = int(math.Round(float64(embeddedCount) / float64(stats.TotalBookmarks) * 100))
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_sessions WHERE user_id = $1;`, userID,
	).Scan(&stats.TotalChats)
	if err != nil {
		return nil, err
	}

	stats.GrowthTrend, err = r.growthTrend(ctx, userID, days)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT type, COUNT(*) AS count
		FROM bookmarks
		WHERE user_id = $1
		GROUP BY type
		ORDER BY count DESC;
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tc entity.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, err
		}
		stats.TypeDistribution = append(stats.TypeDistribution, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT f.name, f.emoji, COUNT(b.id) AS count
		FROM folders f
		JOIN bookmarks b ON b.folder_id = f.id
		WHERE f.user_id = $1
		GROUP BY f.id, f.name, f.emoji
		ORDER BY count DESC
		LIMIT $2;
	`, userID, folderRankingSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var fc entity.FolderCount
		if err := rows.Scan(&fc.Name, &fc.Emoji, &fc.Count); err != nil {
			return nil, err
		}
		stats.FolderRanking = append(stats.FolderRanking, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// growthTrend returns one point per day of the window, zero-filled so the
// client's bar chart never has gaps.
func (r *DashboardRepoImpl) growthTrend(ctx context.Context, userID uuid.UUID, days int) ([]entity.GrowthPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	rows, err := r.db.Query(ctx, `
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC')::date AS day, COUNT(*)
		FROM bookmarks
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY day
		ORDER BY day;
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int, days)
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts[day.Format("2006-01-02")] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trend := make([]entity.GrowthPoint, 0, days)
	for i := 0; i < days; i++ {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		trend = append(trend, entity.GrowthPoint{Date: date, Count: counts[date]})
	}
	return trend, nil
}
