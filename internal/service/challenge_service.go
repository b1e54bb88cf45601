package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lokalingo/toeflplay-backend/internal/config"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/progression"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Challenge errors.
var (
	ErrNoChallengeToday       = errors.New("no challenge scheduled for today")
	ErrChallengeAlreadyPlayed = errors.New("challenge already completed today")
)

const challengeCacheTTL = 5 * time.Minute

// ChallengeService handles daily challenges.
type ChallengeService struct {
	challengeRepo *repository.ChallengeRepository
	playerRepo    *repository.PlayerRepository
	rdb           *redis.Client
}

// NewChallengeService creates a new ChallengeService.
func NewChallengeService(challengeRepo *repository.ChallengeRepository, playerRepo *repository.PlayerRepository, rdb *redis.Client) *ChallengeService {
	return &ChallengeService{challengeRepo: challengeRepo, playerRepo: playerRepo, rdb: rdb}
}

// Today retrieves the challenge for the current UTC date, cached in
// Redis until the admin schedules a replacement for the next day.
func (s *ChallengeService) Today(ctx context.Context) (*model.DailyChallenge, error) {
	date := time.Now().UTC().Format("2006-01-02")
	cacheKey := config.CacheKey.DailyChallengeKey(date)

	cached, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err == nil {
		c := &model.DailyChallenge{}
		if err := json.Unmarshal(cached, c); err == nil {
			return c, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("component", "challenge").Msg("cache read failed")
	}

	c, err := s.challengeRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoChallengeToday
		}
		return nil, err
	}

	if blob, err := json.Marshal(c); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, blob, challengeCacheTTL).Err(); err != nil {
			log.Warn().Err(err).Str("component", "challenge").Msg("cache write failed")
		}
	}
	return c, nil
}

// Create schedules a challenge from an admin request and drops the
// cache entry for its date.
func (s *ChallengeService) Create(ctx context.Context, req model.CreateChallengeRequest) (*model.DailyChallenge, error) {
	c := &model.DailyChallenge{
		ChallengeDate: req.ChallengeDate,
		ChallengeType: model.GameMode(req.ChallengeType),
		Description:   req.Description,
		ChallengeData: req.ChallengeData,
		PointsReward:  req.PointsReward,
		BonusPoints:   req.BonusPoints,
		Difficulty:    model.ChallengeDifficulty(req.Difficulty),
	}
	if err := s.challengeRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	if err := s.rdb.Del(ctx, config.CacheKey.DailyChallengeKey(c.ChallengeDate)).Err(); err != nil {
		log.Warn().Err(err).Str("component", "challenge").Msg("cache invalidate failed")
	}
	return c, nil
}

// Status retrieves a player's row for today's challenge; nil when the
// player has not attempted it.
func (s *ChallengeService) Status(ctx context.Context, playerID, challengeID uuid.UUID) (*model.PlayerChallenge, error) {
	pc, err := s.challengeRepo.GetPlayerChallenge(ctx, playerID, challengeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return pc, nil
}

// RecordAttempt bumps the player's attempt counter for a challenge.
func (s *ChallengeService) RecordAttempt(ctx context.Context, playerID, challengeID uuid.UUID) error {
	return s.challengeRepo.RecordAttempt(ctx, playerID, challengeID)
}

// Complete closes today's challenge for a player and credits the
// reward on top of their total. Only the first completion counts.
func (s *ChallengeService) Complete(ctx context.Context, player *model.Player, challenge *model.DailyChallenge, score int) (int, error) {
	reward := challenge.PointsReward
	if score >= 80 {
		reward += challenge.BonusPoints
	}

	applied, err := s.challengeRepo.Complete(ctx, player.ID, challenge.ID, score, reward, time.Now())
	if err != nil {
		return 0, err
	}
	if !applied {
		return 0, ErrChallengeAlreadyPlayed
	}

	player.TotalPoints += reward
	player.Level = progression.Level(player.TotalPoints)
	if err := s.playerRepo.UpdateAggregates(ctx, player); err != nil {
		return 0, err
	}
	return reward, nil
}
