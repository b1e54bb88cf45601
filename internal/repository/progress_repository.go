package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

// ProgressRepository handles per-skill mastery rows.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// ListByPlayer retrieves all skill rows for a player.
func (r *ProgressRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Progress, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, player_id, skill_type, experience_points, practice_count,
		        mastery_percentage, last_practiced_at, updated_at
		 FROM player_progress
		 WHERE player_id = $1
		 ORDER BY skill_type`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progress []model.Progress
	for rows.Next() {
		var p model.Progress
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.SkillType, &p.ExperiencePoints,
			&p.PracticeCount, &p.MasteryPercent, &p.LastPracticedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

// Upsert writes one skill row, inserting it on first practice.
func (r *ProgressRepository) Upsert(ctx context.Context, p *model.Progress) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO player_progress
		     (player_id, skill_type, experience_points, practice_count, mastery_percentage, last_practiced_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (player_id, skill_type) DO UPDATE
		 SET experience_points = EXCLUDED.experience_points,
		     practice_count = EXCLUDED.practice_count,
		     mastery_percentage = EXCLUDED.mastery_percentage,
		     last_practiced_at = EXCLUDED.last_practiced_at,
		     updated_at = CURRENT_TIMESTAMP
		 RETURNING id, updated_at`,
		p.PlayerID, p.SkillType, p.ExperiencePoints, p.PracticeCount,
		p.MasteryPercent, p.LastPracticedAt,
	).Scan(&p.ID, &p.UpdatedAt)
}
