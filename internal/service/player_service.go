package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/lokalingo/toeflplay-backend/internal/response"
)

// PlayerService handles player account business logic.
type PlayerService struct {
	playerRepo *repository.PlayerRepository
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(playerRepo *repository.PlayerRepository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// Register creates a player account from a registration request. The
// password hash must already be computed by the caller.
func (s *PlayerService) Register(ctx context.Context, req model.PlayerRegisterRequest, passwordHash string) (*model.Player, error) {
	p := &model.Player{
		Email:        req.Email,
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: passwordHash,
	}
	if req.ClassCode != "" {
		p.ClassCode = &req.ClassCode
	}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a player by ID.
func (s *PlayerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Player, error) {
	return s.playerRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a player by email.
func (s *PlayerService) GetByEmail(ctx context.Context, email string) (*model.Player, error) {
	return s.playerRepo.GetByEmail(ctx, email)
}

// ListPlayers retrieves players with pagination and an optional class filter.
func (s *PlayerService) ListPlayers(ctx context.Context, classCode *string, page, perPage int) ([]model.Player, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	players, total, err := s.playerRepo.ListPaginated(ctx, classCode, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if players == nil {
		players = []model.Player{}
	}

	totalPages := (total + perPage - 1) / perPage
	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
	return players, pagination, nil
}
