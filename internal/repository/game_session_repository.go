package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

// GameSessionRepository handles game session rows. Completion uses an
// is_completed guard so replayed queue payloads cannot double-count.
type GameSessionRepository struct {
	pool *pgxpool.Pool
}

// NewGameSessionRepository creates a new GameSessionRepository.
func NewGameSessionRepository(pool *pgxpool.Pool) *GameSessionRepository {
	return &GameSessionRepository{pool: pool}
}

// Create inserts a new open session row.
func (r *GameSessionRepository) Create(ctx context.Context, s *model.GameSession) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO game_sessions (id, player_id, game_mode, max_score, level_at_start)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING started_at`,
		s.ID, s.PlayerID, s.GameMode, s.MaxScore, s.LevelAtStart,
	).Scan(&s.StartedAt)
}

// GetByID retrieves a session row.
func (r *GameSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.GameSession, error) {
	s := &model.GameSession{}
	var mistakes []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, player_id, game_mode, max_score, level_at_start, score, points_earned,
		        accuracy_percentage, mistakes, session_data, is_completed, started_at, completed_at
		 FROM game_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.PlayerID, &s.GameMode, &s.MaxScore, &s.LevelAtStart, &s.Score, &s.PointsEarned,
		&s.AccuracyPercentage, &mistakes, &s.SessionData, &s.IsCompleted, &s.StartedAt, &s.CompletedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mistakes, &s.Mistakes); err != nil {
		return nil, err
	}
	return s, nil
}

// Complete writes the finalized values of one session. It returns false
// when the row was already completed (or missing), in which case the
// caller must not fold the session into player aggregates again.
func (r *GameSessionRepository) Complete(ctx context.Context, c model.SessionCompletion) (bool, error) {
	mistakes, err := json.Marshal(c.Mistakes)
	if err != nil {
		return false, err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE game_sessions
		 SET score = $1, points_earned = $2, accuracy_percentage = $3, mistakes = $4,
		     session_data = $5, is_completed = TRUE, completed_at = $6
		 WHERE id = $7 AND is_completed = FALSE`,
		c.Score, c.PointsEarned, c.AccuracyPercentage, mistakes,
		c.SessionData, c.CompletedAt, c.SessionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CompleteBatch applies many completions in one UNNEST update. It
// returns the IDs of sessions actually transitioned to completed;
// already-completed rows are filtered by the guard and absent from the
// result.
func (r *GameSessionRepository) CompleteBatch(ctx context.Context, batch []model.SessionCompletion) ([]uuid.UUID, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(batch))
	scores := make([]int, len(batch))
	points := make([]int, len(batch))
	accuracies := make([]float64, len(batch))
	mistakes := make([][]byte, len(batch))
	sessionData := make([]string, len(batch))
	completedAts := make([]any, len(batch))
	for i, c := range batch {
		ids[i] = c.SessionID
		scores[i] = c.Score
		points[i] = c.PointsEarned
		accuracies[i] = c.AccuracyPercentage
		blob, err := json.Marshal(c.Mistakes)
		if err != nil {
			return nil, err
		}
		mistakes[i] = blob
		sessionData[i] = string(c.SessionData)
		completedAts[i] = c.CompletedAt
	}

	rows, err := r.pool.Query(ctx,
		`UPDATE game_sessions AS gs
		 SET score = u.score, points_earned = u.points_earned,
		     accuracy_percentage = u.accuracy, mistakes = u.mistakes::jsonb,
		     session_data = NULLIF(u.session_data, '')::jsonb,
		     is_completed = TRUE, completed_at = u.completed_at
		 FROM (
		     SELECT UNNEST($1::uuid[]) AS id,
		            UNNEST($2::int[]) AS score,
		            UNNEST($3::int[]) AS points_earned,
		            UNNEST($4::float8[]) AS accuracy,
		            UNNEST($5::text[]) AS mistakes,
		            UNNEST($6::text[]) AS session_data,
		            UNNEST($7::timestamptz[]) AS completed_at
		 ) AS u
		 WHERE gs.id = u.id AND gs.is_completed = FALSE
		 RETURNING gs.id`,
		ids, scores, points, accuracies, mistakesAsText(mistakes), sessionData, completedAts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applied []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		applied = append(applied, id)
	}
	return applied, rows.Err()
}

func mistakesAsText(blobs [][]byte) []string {
	out := make([]string, len(blobs))
	for i, b := range blobs {
		out[i] = string(b)
	}
	return out
}

// ListByPlayer retrieves a player's recent completed sessions.
func (r *GameSessionRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]model.GameSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, player_id, game_mode, max_score, level_at_start, score, points_earned,
		        accuracy_percentage, mistakes, session_data, is_completed, started_at, completed_at
		 FROM game_sessions
		 WHERE player_id = $1 AND is_completed = TRUE
		 ORDER BY completed_at DESC
		 LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.GameSession
	for rows.Next() {
		var s model.GameSession
		var mistakes []byte
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.GameMode, &s.MaxScore, &s.LevelAtStart, &s.Score,
			&s.PointsEarned, &s.AccuracyPercentage, &mistakes, &s.SessionData, &s.IsCompleted,
			&s.StartedAt, &s.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(mistakes, &s.Mistakes); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CountCompletedByMode aggregates completed sessions per mode for the
// dashboard skill cards.
func (r *GameSessionRepository) CountCompletedByMode(ctx context.Context, playerID uuid.UUID) (map[model.GameMode]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT game_mode, COUNT(*)
		 FROM game_sessions
		 WHERE player_id = $1 AND is_completed = TRUE
		 GROUP BY game_mode`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.GameMode]int)
	for rows.Next() {
		var mode model.GameMode
		var n int
		if err := rows.Scan(&mode, &n); err != nil {
			return nil, err
		}
		counts[mode] = n
	}
	return counts, rows.Err()
}
