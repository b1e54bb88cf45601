package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

var (
	ErrEmailTaken    = errors.New("player with this email already exists")
	ErrUsernameTaken = errors.New("player with this username already exists")
)

const playerColumns = `id, email, username, full_name, password_hash, class_code,
	 level, total_points, current_streak, longest_streak, games_completed,
	 last_played_at, created_at, updated_at`

// PlayerRepository handles player account data access.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

func scanPlayer(row interface{ Scan(...any) error }) (*model.Player, error) {
	p := &model.Player{}
	err := row.Scan(&p.ID, &p.Email, &p.Username, &p.FullName, &p.PasswordHash, &p.ClassCode,
		&p.Level, &p.TotalPoints, &p.CurrentStreak, &p.LongestStreak, &p.GamesCompleted,
		&p.LastPlayedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a player by ID.
func (r *PlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Player, error) {
	return scanPlayer(r.pool.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
}

// GetByEmail retrieves a player by email (lowercased).
func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (*model.Player, error) {
	return scanPlayer(r.pool.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE email = $1`, strings.ToLower(email)))
}

// Create inserts a new player account.
func (r *PlayerRepository) Create(ctx context.Context, p *model.Player) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO players (email, username, full_name, password_hash, class_code)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, level, total_points, current_streak, longest_streak, games_completed, created_at, updated_at`,
		strings.ToLower(p.Email), p.Username, p.FullName, p.PasswordHash, p.ClassCode,
	).Scan(&p.ID, &p.Level, &p.TotalPoints, &p.CurrentStreak, &p.LongestStreak, &p.GamesCompleted, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return ErrUsernameTaken
			}
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// UpdateAggregates writes the progression aggregates computed at
// session finalization.
func (r *PlayerRepository) UpdateAggregates(ctx context.Context, p *model.Player) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE players
		 SET level = $1, total_points = $2, current_streak = $3, longest_streak = $4,
		     games_completed = $5, last_played_at = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		p.Level, p.TotalPoints, p.CurrentStreak, p.LongestStreak,
		p.GamesCompleted, p.LastPlayedAt, p.ID)
	return err
}

// ListPaginated retrieves players for the admin panel, newest first,
// with an optional class filter.
func (r *PlayerRepository) ListPaginated(ctx context.Context, classCode *string, limit, offset int) ([]model.Player, int, error) {
	countQuery := `SELECT COUNT(*) FROM players`
	var countArgs []interface{}
	if classCode != nil {
		countQuery += ` WHERE class_code = $1`
		countArgs = append(countArgs, *classCode)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + playerColumns + ` FROM players`
	var args []interface{}
	if classCode != nil {
		query += ` WHERE class_code = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, *classCode, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, 0, err
		}
		players = append(players, *p)
	}
	return players, total, rows.Err()
}
