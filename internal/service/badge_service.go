package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
)

// BadgeService handles badge catalog business logic.
type BadgeService struct {
	badgeRepo *repository.BadgeRepository
}

// NewBadgeService creates a new BadgeService.
func NewBadgeService(badgeRepo *repository.BadgeRepository) *BadgeService {
	return &BadgeService{badgeRepo: badgeRepo}
}

// ListCatalog retrieves the full badge catalog.
func (s *BadgeService) ListCatalog(ctx context.Context) ([]model.Badge, error) {
	badges, err := s.badgeRepo.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []model.Badge{}
	}
	return badges, nil
}

// ListByPlayer retrieves a player's earned badges.
func (s *BadgeService) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.PlayerBadge, error) {
	badges, err := s.badgeRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []model.PlayerBadge{}
	}
	return badges, nil
}

// Create adds a badge from an admin request.
func (s *BadgeService) Create(ctx context.Context, req model.CreateBadgeRequest) (*model.Badge, error) {
	b := &model.Badge{
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		Category:     model.BadgeCategory(req.Category),
		Rarity:       model.BadgeRarity(req.Rarity),
		UnlockRule:   model.UnlockRule(req.UnlockRule),
		Threshold:    req.Threshold,
		PointsReward: req.PointsReward,
		OrderIndex:   req.OrderIndex,
	}
	if req.Skill != "" {
		skill := model.SkillType(req.Skill)
		b.Skill = &skill
	}
	if err := s.badgeRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a badge from the catalog.
func (s *BadgeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.badgeRepo.Delete(ctx, id)
}
