package service

import (
	"context"
	"fmt"

	"github.com/lokalingo/toeflplay-backend/internal/game"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/progression"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// FinalizeOutcome reports what a session completion changed. Applied is
// false when the session row was already completed, in which case
// nothing else was touched.
type FinalizeOutcome struct {
	Applied       bool           `json:"applied"`
	PointsEarned  int            `json:"points_earned"`
	Accuracy      float64        `json:"accuracy"`
	Level         int            `json:"level"`
	LevelProgress int            `json:"level_progress"`
	LeveledUp     bool           `json:"leveled_up"`
	CurrentStreak int            `json:"current_streak"`
	NewBadges     []model.Badge `json:"new_badges"`
	Player        *model.Player `json:"-"`
}

// ProgressionService folds finished sessions into player aggregates,
// skill rows and badge awards. The pure math lives in the progression
// package; this service loads state, runs the reducer and persists.
type ProgressionService struct {
	playerRepo   *repository.PlayerRepository
	sessionRepo  *repository.GameSessionRepository
	progressRepo *repository.ProgressRepository
	badgeRepo    *repository.BadgeRepository
}

// NewProgressionService creates a new ProgressionService.
func NewProgressionService(
	playerRepo *repository.PlayerRepository,
	sessionRepo *repository.GameSessionRepository,
	progressRepo *repository.ProgressRepository,
	badgeRepo *repository.BadgeRepository,
) *ProgressionService {
	return &ProgressionService{
		playerRepo:   playerRepo,
		sessionRepo:  sessionRepo,
		progressRepo: progressRepo,
		badgeRepo:    badgeRepo,
	}
}

// Apply completes the session row and, when the row actually
// transitioned, folds the completion into the player's aggregates.
// Replays are safe: a completed row short-circuits to Applied=false.
func (s *ProgressionService) Apply(ctx context.Context, c model.SessionCompletion) (*FinalizeOutcome, error) {
	applied, err := s.sessionRepo.Complete(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	if !applied {
		return &FinalizeOutcome{Applied: false}, nil
	}
	return s.Fold(ctx, c)
}

// Fold applies one already-guarded completion to the player profile.
// Callers must ensure the session row transitioned exactly once (Apply
// does; the persist worker checks its batch result).
func (s *ProgressionService) Fold(ctx context.Context, c model.SessionCompletion) (*FinalizeOutcome, error) {
	player, err := s.playerRepo.GetByID(ctx, c.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}

	rows, err := s.progressRepo.ListByPlayer(ctx, c.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	skills := make(map[model.SkillType]model.Progress, len(rows))
	for _, row := range rows {
		skills[row.SkillType] = row
	}

	earned, err := s.badgeRepo.EarnedIDs(ctx, c.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("load earned badges: %w", err)
	}
	catalog, err := s.badgeRepo.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load badge catalog: %w", err)
	}

	profile := progression.Profile{
		Level:          player.Level,
		TotalPoints:    player.TotalPoints,
		CurrentStreak:  player.CurrentStreak,
		LongestStreak:  player.LongestStreak,
		GamesCompleted: player.GamesCompleted,
		LastPlayedAt:   player.LastPlayedAt,
		Skills:         skills,
		EarnedBadgeIDs: earned,
	}
	summary := game.Summary{Mode: c.GameMode, Score: c.Score, Accuracy: c.AccuracyPercentage}

	result := progression.Finalize(profile, summary, catalog, c.CompletedAt)

	player.Level = result.Profile.Level
	player.TotalPoints = result.Profile.TotalPoints
	player.CurrentStreak = result.Profile.CurrentStreak
	player.LongestStreak = result.Profile.LongestStreak
	player.GamesCompleted = result.Profile.GamesCompleted
	player.LastPlayedAt = result.Profile.LastPlayedAt
	if err := s.playerRepo.UpdateAggregates(ctx, player); err != nil {
		return nil, fmt.Errorf("update player: %w", err)
	}

	skill := model.SkillType(c.GameMode)
	row := result.Profile.Skills[skill]
	row.PlayerID = c.PlayerID
	if err := s.progressRepo.Upsert(ctx, &row); err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}

	for _, b := range result.NewBadges {
		if err := s.badgeRepo.Award(ctx, c.PlayerID, b.ID); err != nil {
			log.Error().Err(err).
				Str("component", "progression").
				Str("player_id", c.PlayerID.String()).
				Str("badge", b.Name).
				Msg("badge award failed")
		}
	}

	newBadges := result.NewBadges
	if newBadges == nil {
		newBadges = []model.Badge{}
	}
	return &FinalizeOutcome{
		Applied:       true,
		PointsEarned:  result.PointsEarned,
		Accuracy:      result.Accuracy,
		Level:         player.Level,
		LevelProgress: result.LevelProgress,
		LeveledUp:     result.LeveledUp,
		CurrentStreak: player.CurrentStreak,
		NewBadges:     newBadges,
		Player:        player,
	}, nil
}
