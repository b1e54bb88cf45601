package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

var ErrDuplicateBadgeName = errors.New("badge with this name already exists")

const badgeColumns = `id, badge_name, badge_description, badge_icon, badge_category,
	 rarity, unlock_rule, unlock_threshold, unlock_skill, points_reward, order_index, created_at`

// BadgeRepository handles the badge catalog and player awards.
type BadgeRepository struct {
	pool *pgxpool.Pool
}

// NewBadgeRepository creates a new BadgeRepository.
func NewBadgeRepository(pool *pgxpool.Pool) *BadgeRepository {
	return &BadgeRepository{pool: pool}
}

// ListCatalog retrieves all badges in display order.
func (r *BadgeRepository) ListCatalog(ctx context.Context) ([]model.Badge, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+badgeColumns+` FROM badges ORDER BY order_index, badge_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []model.Badge
	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.Category,
			&b.Rarity, &b.UnlockRule, &b.Threshold, &b.Skill,
			&b.PointsReward, &b.OrderIndex, &b.CreatedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// Create adds a badge to the catalog.
func (r *BadgeRepository) Create(ctx context.Context, b *model.Badge) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO badges (badge_name, badge_description, badge_icon, badge_category,
		                     rarity, unlock_rule, unlock_threshold, unlock_skill, points_reward, order_index)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		b.Name, b.Description, b.Icon, b.Category, b.Rarity,
		b.UnlockRule, b.Threshold, b.Skill, b.PointsReward, b.OrderIndex,
	).Scan(&b.ID, &b.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateBadgeName
		}
		return err
	}
	return nil
}

// Delete removes a badge from the catalog.
func (r *BadgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM badges WHERE id = $1`, id)
	return err
}

// Award links a badge to a player. Safe to replay: the conflict clause
// makes double awards a no-op.
func (r *BadgeRepository) Award(ctx context.Context, playerID, badgeID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO player_badges (player_id, badge_id)
		 VALUES ($1, $2)
		 ON CONFLICT (player_id, badge_id) DO NOTHING`,
		playerID, badgeID)
	return err
}

// ListByPlayer retrieves a player's earned badges with catalog details.
func (r *BadgeRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.PlayerBadge, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT pb.id, pb.player_id, pb.badge_id, pb.earned_at,
		        b.id, b.badge_name, b.badge_description, b.badge_icon, b.badge_category,
		        b.rarity, b.unlock_rule, b.unlock_threshold, b.unlock_skill,
		        b.points_reward, b.order_index, b.created_at
		 FROM player_badges pb
		 JOIN badges b ON pb.badge_id = b.id
		 WHERE pb.player_id = $1
		 ORDER BY pb.earned_at DESC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earned []model.PlayerBadge
	for rows.Next() {
		var pb model.PlayerBadge
		var b model.Badge
		if err := rows.Scan(&pb.ID, &pb.PlayerID, &pb.BadgeID, &pb.EarnedAt,
			&b.ID, &b.Name, &b.Description, &b.Icon, &b.Category,
			&b.Rarity, &b.UnlockRule, &b.Threshold, &b.Skill,
			&b.PointsReward, &b.OrderIndex, &b.CreatedAt); err != nil {
			return nil, err
		}
		pb.Badge = &b
		earned = append(earned, pb)
	}
	return earned, rows.Err()
}

// EarnedIDs retrieves the set of badge IDs a player already holds.
func (r *BadgeRepository) EarnedIDs(ctx context.Context, playerID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT badge_id FROM player_badges WHERE player_id = $1`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	earned := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		earned[id] = true
	}
	return earned, rows.Err()
}
