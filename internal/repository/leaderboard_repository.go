package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

// LeaderboardRepository computes the leaderboard projection straight
// from player aggregates. The worker caches its output in Redis; these
// queries are the source of truth.
type LeaderboardRepository struct {
	pool *pgxpool.Pool
}

// NewLeaderboardRepository creates a new LeaderboardRepository.
func NewLeaderboardRepository(pool *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{pool: pool}
}

// Top retrieves the first N entries ordered by total points, with
// positional ranks assigned in query order.
func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.username, p.class_code, p.total_points, p.level, p.current_streak,
		        p.games_completed,
		        (SELECT COUNT(*) FROM player_badges pb WHERE pb.player_id = p.id)
		 FROM players p
		 ORDER BY p.total_points DESC, p.created_at ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.Username, &e.ClassCode, &e.TotalPoints, &e.Level,
			&e.CurrentStreak, &e.GamesCompleted, &e.BadgesCount); err != nil {
			return nil, err
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Rank retrieves one player's positional rank, or 0 when the player
// does not exist.
func (r *LeaderboardRepository) Rank(ctx context.Context, playerID uuid.UUID) (int, error) {
	var rank int
	err := r.pool.QueryRow(ctx,
		`SELECT rank FROM (
		     SELECT id, ROW_NUMBER() OVER (ORDER BY total_points DESC, created_at ASC) AS rank
		     FROM players
		 ) ranked
		 WHERE id = $1`, playerID,
	).Scan(&rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return rank, err
}
