package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

var ErrDuplicateChallengeDate = errors.New("a challenge already exists for this date")

// ChallengeRepository handles daily challenges and player completions.
type ChallengeRepository struct {
	pool *pgxpool.Pool
}

// NewChallengeRepository creates a new ChallengeRepository.
func NewChallengeRepository(pool *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{pool: pool}
}

// GetByDate retrieves the challenge scheduled for a YYYY-MM-DD date.
func (r *ChallengeRepository) GetByDate(ctx context.Context, date string) (*model.DailyChallenge, error) {
	c := &model.DailyChallenge{}
	var challengeDate time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT id, challenge_date, challenge_type, challenge_description, challenge_data,
		        points_reward, bonus_points, difficulty, created_at
		 FROM daily_challenges WHERE challenge_date = $1`, date,
	).Scan(&c.ID, &challengeDate, &c.ChallengeType, &c.Description, &c.ChallengeData,
		&c.PointsReward, &c.BonusPoints, &c.Difficulty, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ChallengeDate = challengeDate.Format("2006-01-02")
	return c, nil
}

// Create schedules a challenge.
func (r *ChallengeRepository) Create(ctx context.Context, c *model.DailyChallenge) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO daily_challenges
		     (challenge_date, challenge_type, challenge_description, challenge_data,
		      points_reward, bonus_points, difficulty)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		c.ChallengeDate, c.ChallengeType, c.Description, c.ChallengeData,
		c.PointsReward, c.BonusPoints, c.Difficulty,
	).Scan(&c.ID, &c.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateChallengeDate
		}
		return err
	}
	return nil
}

// GetPlayerChallenge retrieves a player's row for one challenge, or nil
// when the player has not touched it yet.
func (r *ChallengeRepository) GetPlayerChallenge(ctx context.Context, playerID, challengeID uuid.UUID) (*model.PlayerChallenge, error) {
	pc := &model.PlayerChallenge{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, player_id, challenge_id, is_completed, completed_at, score, points_earned, attempts
		 FROM player_challenges
		 WHERE player_id = $1 AND challenge_id = $2`, playerID, challengeID,
	).Scan(&pc.ID, &pc.PlayerID, &pc.ChallengeID, &pc.IsCompleted, &pc.CompletedAt,
		&pc.Score, &pc.PointsEarned, &pc.Attempts)
	if err != nil {
		return nil, err
	}
	return pc, nil
}

// RecordAttempt bumps the attempt counter, creating the row on first try.
func (r *ChallengeRepository) RecordAttempt(ctx context.Context, playerID, challengeID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO player_challenges (player_id, challenge_id, attempts)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (player_id, challenge_id) DO UPDATE
		 SET attempts = player_challenges.attempts + 1`,
		playerID, challengeID)
	return err
}

// Complete marks a player's challenge done. The is_completed guard
// keeps the first completion's score; returns false when already done.
func (r *ChallengeRepository) Complete(ctx context.Context, playerID, challengeID uuid.UUID, score, pointsEarned int, at time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE player_challenges
		 SET is_completed = TRUE, completed_at = $1, score = $2, points_earned = $3
		 WHERE player_id = $4 AND challenge_id = $5 AND is_completed = FALSE`,
		at, score, pointsEarned, playerID, challengeID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
