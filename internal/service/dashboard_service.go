package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/progression"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
)

const recentSessionLimit = 10

// PlayerDashboard is the aggregate view behind the home screen.
type PlayerDashboard struct {
	Player         *model.Player            `json:"player"`
	LevelProgress  int                      `json:"level_progress"`
	Rank           int                      `json:"rank"`
	Skills         []model.Progress         `json:"skills"`
	Badges         []model.PlayerBadge      `json:"badges"`
	RecentSessions []model.GameSession      `json:"recent_sessions"`
	ModeCounts     map[model.GameMode]int   `json:"mode_counts"`
}

// AdminDashboard is the aggregate view for the admin panel.
type AdminDashboard struct {
	TotalPlayers   int                    `json:"total_players"`
	ActivePlayers  int                    `json:"active_players_7d"`
	TotalSessions  int                    `json:"total_sessions"`
	TotalItems     int                    `json:"total_items"`
	TotalTemplates int                    `json:"total_templates"`
	SessionsToday  map[model.GameMode]int `json:"sessions_today"`
}

// DashboardService assembles dashboard projections.
type DashboardService struct {
	playerRepo     *repository.PlayerRepository
	sessionRepo    *repository.GameSessionRepository
	progressRepo   *repository.ProgressRepository
	badgeRepo      *repository.BadgeRepository
	dashboardRepo  *repository.DashboardRepository
	leaderboardSvc *LeaderboardService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	playerRepo *repository.PlayerRepository,
	sessionRepo *repository.GameSessionRepository,
	progressRepo *repository.ProgressRepository,
	badgeRepo *repository.BadgeRepository,
	dashboardRepo *repository.DashboardRepository,
	leaderboardSvc *LeaderboardService,
) *DashboardService {
	return &DashboardService{
		playerRepo:     playerRepo,
		sessionRepo:    sessionRepo,
		progressRepo:   progressRepo,
		badgeRepo:      badgeRepo,
		dashboardRepo:  dashboardRepo,
		leaderboardSvc: leaderboardSvc,
	}
}

// ForPlayer assembles a player's dashboard.
func (s *DashboardService) ForPlayer(ctx context.Context, playerID uuid.UUID) (*PlayerDashboard, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	skills, err := s.progressRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []model.Progress{}
	}

	badges, err := s.badgeRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []model.PlayerBadge{}
	}

	recent, err := s.sessionRepo.ListByPlayer(ctx, playerID, recentSessionLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []model.GameSession{}
	}

	counts, err := s.sessionRepo.CountCompletedByMode(ctx, playerID)
	if err != nil {
		return nil, err
	}

	rank, err := s.leaderboardSvc.MyRank(ctx, playerID)
	if err != nil {
		// Rank is decorative here; the dashboard survives without it.
		rank = 0
	}

	return &PlayerDashboard{
		Player:         player,
		LevelProgress:  progression.LevelProgress(player.TotalPoints),
		Rank:           rank,
		Skills:         skills,
		Badges:         badges,
		RecentSessions: recent,
		ModeCounts:     counts,
	}, nil
}

// ForAdmin assembles the admin panel dashboard.
func (s *DashboardService) ForAdmin(ctx context.Context) (*AdminDashboard, error) {
	totalPlayers, totalSessions, totalItems, totalTemplates, err := s.dashboardRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	sessionsToday, err := s.dashboardRepo.GetSessionsToday(ctx)
	if err != nil {
		return nil, err
	}

	activePlayers, err := s.dashboardRepo.GetActivePlayerCount(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalPlayers:   totalPlayers,
		ActivePlayers:  activePlayers,
		TotalSessions:  totalSessions,
		TotalItems:     totalItems,
		TotalTemplates: totalTemplates,
		SessionsToday:  sessionsToday,
	}, nil
}
