package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the admin panel.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalPlayers, totalSessions, totalItems, totalTemplates int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM players),
			(SELECT COUNT(*) FROM game_sessions WHERE is_completed),
			(SELECT COUNT(*) FROM game_items),
			(SELECT COUNT(*) FROM templates)`,
	).Scan(&totalPlayers, &totalSessions, &totalItems, &totalTemplates)
	return
}

// GetSessionsToday counts sessions completed since UTC midnight, per mode.
func (r *DashboardRepository) GetSessionsToday(ctx context.Context) (map[model.GameMode]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT game_mode, COUNT(*)
		 FROM game_sessions
		 WHERE is_completed AND completed_at >= date_trunc('day', NOW() AT TIME ZONE 'UTC')
		 GROUP BY game_mode`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.GameMode]int)
	for rows.Next() {
		var mode model.GameMode
		var count int
		if err := rows.Scan(&mode, &count); err != nil {
			return nil, err
		}
		counts[mode] = count
	}
	return counts, rows.Err()
}

// GetActivePlayerCount counts players who completed a session within
// the trailing week.
func (r *DashboardRepository) GetActivePlayerCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT player_id)
		 FROM game_sessions
		 WHERE is_completed AND completed_at >= NOW() - INTERVAL '7 days'`,
	).Scan(&count)
	return count, err
}
