package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

var ErrDuplicateTemplate = errors.New("template with this type and number already exists")

// ContentRepository handles the template catalog and the game item bank.
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// ─── Templates ──────────────────────────────────────────────────────

// ListTemplates retrieves templates, optionally filtered by type.
func (r *ContentRepository) ListTemplates(ctx context.Context, tt *model.TemplateType) ([]model.Template, error) {
	query := `SELECT id, template_type, template_number, template_name, color_code,
	                 template_text, template_text_indonesian, keywords, example_questions, created_at
	          FROM templates`
	var args []interface{}
	if tt != nil {
		query += ` WHERE template_type = $1`
		args = append(args, *tt)
	}
	query += ` ORDER BY template_type, template_number`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []model.Template
	for rows.Next() {
		var t model.Template
		if err := rows.Scan(&t.ID, &t.TemplateType, &t.TemplateNumber, &t.TemplateName, &t.ColorCode,
			&t.TemplateText, &t.TemplateTextID, &t.Keywords, &t.ExampleQuestions, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// GetTemplate retrieves one template.
func (r *ContentRepository) GetTemplate(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	t := &model.Template{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, template_type, template_number, template_name, color_code,
		        template_text, template_text_indonesian, keywords, example_questions, created_at
		 FROM templates WHERE id = $1`, id,
	).Scan(&t.ID, &t.TemplateType, &t.TemplateNumber, &t.TemplateName, &t.ColorCode,
		&t.TemplateText, &t.TemplateTextID, &t.Keywords, &t.ExampleQuestions, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTemplate inserts a template.
func (r *ContentRepository) CreateTemplate(ctx context.Context, t *model.Template) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO templates (template_type, template_number, template_name, color_code,
		                        template_text, template_text_indonesian, keywords, example_questions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		t.TemplateType, t.TemplateNumber, t.TemplateName, t.ColorCode,
		t.TemplateText, t.TemplateTextID, t.Keywords, t.ExampleQuestions,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTemplate
		}
		return err
	}
	return nil
}

// DeleteTemplate removes a template.
func (r *ContentRepository) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	return err
}

// ─── Game items ─────────────────────────────────────────────────────

// ListItems retrieves the item bank for one mode, optionally scoped to
// a round, ordered by position.
func (r *ContentRepository) ListItems(ctx context.Context, mode model.GameMode, round *model.RoundKind) ([]model.GameItem, error) {
	query := `SELECT id, mode, round, position, payload, created_at, updated_at
	          FROM game_items WHERE mode = $1`
	args := []interface{}{mode}
	if round != nil {
		query += ` AND round = $2`
		args = append(args, *round)
	}
	query += ` ORDER BY round, position`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.GameItem
	for rows.Next() {
		var it model.GameItem
		if err := rows.Scan(&it.ID, &it.Mode, &it.Round, &it.Position,
			&it.Payload, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateItem inserts a bank item.
func (r *ContentRepository) CreateItem(ctx context.Context, it *model.GameItem) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO game_items (mode, round, position, payload)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		it.Mode, it.Round, it.Position, it.Payload,
	).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
}

// UpdateItem replaces a bank item's round, position and payload.
func (r *ContentRepository) UpdateItem(ctx context.Context, it *model.GameItem) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE game_items
		 SET round = $1, position = $2, payload = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		it.Round, it.Position, it.Payload, it.ID)
	return err
}

// DeleteItem removes a bank item.
func (r *ContentRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM game_items WHERE id = $1`, id)
	return err
}
