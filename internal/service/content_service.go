package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/config"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/lokalingo/toeflplay-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrNoContent means the bank has no items for the requested mode, so a
// session cannot start.
var ErrNoContent = errors.New("no content available for this mode")

const (
	contentCacheTTL           = 10 * time.Minute
	defaultReadingTimeSeconds = 180
)

// ContentService handles the template catalog and the per-mode item
// bank, with a Redis read-through cache in front of the bank.
type ContentService struct {
	contentRepo *repository.ContentRepository
	rdb         *redis.Client
}

// NewContentService creates a new ContentService.
func NewContentService(contentRepo *repository.ContentRepository, rdb *redis.Client) *ContentService {
	return &ContentService{contentRepo: contentRepo, rdb: rdb}
}

// ListTemplates retrieves templates, optionally filtered by type.
func (s *ContentService) ListTemplates(ctx context.Context, tt *model.TemplateType) ([]model.Template, error) {
	templates, err := s.contentRepo.ListTemplates(ctx, tt)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []model.Template{}
	}
	return templates, nil
}

// CreateTemplate adds a template from an admin request.
func (s *ContentService) CreateTemplate(ctx context.Context, req model.CreateTemplateRequest) (*model.Template, error) {
	t := &model.Template{
		TemplateType:     model.TemplateType(req.TemplateType),
		TemplateNumber:   req.TemplateNumber,
		TemplateName:     req.TemplateName,
		ColorCode:        req.ColorCode,
		TemplateText:     req.TemplateText,
		TemplateTextID:   req.TemplateTextID,
		Keywords:         req.Keywords,
		ExampleQuestions: req.ExampleQuestions,
	}
	if t.ExampleQuestions == nil {
		t.ExampleQuestions = []string{}
	}
	if err := s.contentRepo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTemplate removes a template.
func (s *ContentService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return s.contentRepo.DeleteTemplate(ctx, id)
}

// ListItems retrieves a mode's item bank through the Redis cache. The
// cache is best-effort: any Redis failure falls through to Postgres.
func (s *ContentService) ListItems(ctx context.Context, mode model.GameMode) ([]model.GameItem, error) {
	cacheKey := config.CacheKey.ContentBankKey(string(mode))

	cached, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var items []model.GameItem
		if err := json.Unmarshal(cached, &items); err == nil {
			return items, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("component", "content").Msg("bank cache read failed")
	}

	items, err := s.contentRepo.ListItems(ctx, mode, nil)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.GameItem{}
	}

	if blob, err := json.Marshal(items); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, blob, contentCacheTTL).Err(); err != nil {
			log.Warn().Err(err).Str("component", "content").Msg("bank cache write failed")
		}
	}
	return items, nil
}

// CreateItem inserts a bank item and drops the mode's cache entry.
func (s *ContentService) CreateItem(ctx context.Context, mode model.GameMode, req model.UpsertGameItemRequest) (*model.GameItem, error) {
	it := &model.GameItem{
		Mode:     mode,
		Round:    model.RoundKind(req.Round),
		Position: req.Position,
		Payload:  req.Payload,
	}
	if err := s.contentRepo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	s.invalidateBank(ctx, mode)
	return it, nil
}

// UpdateItem replaces a bank item and drops the mode's cache entry.
func (s *ContentService) UpdateItem(ctx context.Context, mode model.GameMode, id uuid.UUID, req model.UpsertGameItemRequest) (*model.GameItem, error) {
	it := &model.GameItem{
		ID:       id,
		Mode:     mode,
		Round:    model.RoundKind(req.Round),
		Position: req.Position,
		Payload:  req.Payload,
	}
	if err := s.contentRepo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	s.invalidateBank(ctx, mode)
	return it, nil
}

// DeleteItem removes a bank item and drops the mode's cache entry.
func (s *ContentService) DeleteItem(ctx context.Context, mode model.GameMode, id uuid.UUID) error {
	if err := s.contentRepo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.invalidateBank(ctx, mode)
	return nil
}

func (s *ContentService) invalidateBank(ctx context.Context, mode model.GameMode) {
	if err := s.rdb.Del(ctx, config.CacheKey.ContentBankKey(string(mode))).Err(); err != nil {
		log.Warn().Err(err).Str("component", "content").Msg("bank cache invalidate failed")
	}
}

// BuildSessionItems converts a mode's bank into scoring items ready for
// the session engine. Template-backed payloads are resolved so mistake
// feedback can show the expected template text.
func (s *ContentService) BuildSessionItems(ctx context.Context, mode model.GameMode) ([]scoring.Item, error) {
	bank, err := s.ListItems(ctx, mode)
	if err != nil {
		return nil, err
	}
	if len(bank) == 0 {
		return nil, ErrNoContent
	}

	items := make([]scoring.Item, 0, len(bank))
	for _, entry := range bank {
		item, err := s.toScoringItem(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("bank item %s: %w", entry.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *ContentService) toScoringItem(ctx context.Context, entry model.GameItem) (scoring.Item, error) {
	item := scoring.Item{
		ID:    entry.ID.String(),
		Round: entry.Round,
	}

	switch entry.Mode {
	case model.ModeListening:
		var p model.ListeningItemPayload
		if err := json.Unmarshal(entry.Payload, &p); err != nil {
			return item, err
		}
		item.ExpectedAnswer = p.Text

	case model.ModeSpeaking:
		var p model.SpeakingPromptPayload
		if err := json.Unmarshal(entry.Payload, &p); err != nil {
			return item, err
		}
		item.ExpectedKeywords = p.KeywordsToDetect
		item.TimeLimitSeconds = p.TimeLimitSeconds
		if tpl, err := s.contentRepo.GetTemplate(ctx, p.TemplateID); err == nil {
			item.ExpectedAnswer = tpl.TemplateText
		}

	case model.ModeReading:
		var p model.ReadingQuestionPayload
		if err := json.Unmarshal(entry.Payload, &p); err != nil {
			return item, err
		}
		for _, opt := range p.Options {
			if opt.IsCorrect {
				item.CorrectOptionID = opt.ID
				item.ExpectedAnswer = opt.Text
				break
			}
		}
		item.TimeLimitSeconds = p.TimeLimitSeconds
		if item.TimeLimitSeconds == 0 {
			item.TimeLimitSeconds = defaultReadingTimeSeconds
		}

	case model.ModeWriting:
		var p model.WritingTaskPayload
		if err := json.Unmarshal(entry.Payload, &p); err != nil {
			return item, err
		}
		item.MinWords = p.MinWords
		item.MaxWords = p.MaxWords
		item.TargetSeconds = p.TargetSeconds
		if tpl, err := s.contentRepo.GetTemplate(ctx, p.TemplateID); err == nil {
			item.TemplateText = tpl.TemplateText
			item.ExpectedAnswer = tpl.TemplateText
		}

	default:
		return item, fmt.Errorf("unknown mode %q", entry.Mode)
	}
	return item, nil
}
