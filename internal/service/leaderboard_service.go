package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/config"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// LeaderboardService serves the leaderboard from the worker-maintained
// Redis cache, falling back to Postgres when the cache is cold or
// Redis is down. Fallback reads also repopulate the cache.
type LeaderboardService struct {
	cfg             *config.Config
	rdb             *redis.Client
	leaderboardRepo *repository.LeaderboardRepository
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(cfg *config.Config, rdb *redis.Client, leaderboardRepo *repository.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{cfg: cfg, rdb: rdb, leaderboardRepo: leaderboardRepo}
}

// Top retrieves the leaderboard.
func (s *LeaderboardService) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	cached, err := s.rdb.Get(ctx, config.CacheKey.LeaderboardKey()).Bytes()
	if err == nil {
		var entries []model.LeaderboardEntry
		if err := json.Unmarshal(cached, &entries); err == nil {
			return entries, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("component", "leaderboard").Msg("cache read failed")
	}

	entries, err := s.leaderboardRepo.Top(ctx, s.cfg.LeaderboardSize)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	s.Materialize(ctx, entries)
	return entries, nil
}

// MyRank retrieves one player's rank, preferring the worker's sorted
// set and falling back to a window query.
func (s *LeaderboardService) MyRank(ctx context.Context, playerID uuid.UUID) (int, error) {
	rank, err := s.rdb.ZScore(ctx, config.CacheKey.LeaderboardRankKey(), playerID.String()).Result()
	if err == nil {
		return int(rank), nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("component", "leaderboard").Msg("rank cache read failed")
	}
	return s.leaderboardRepo.Rank(ctx, playerID)
}

// Materialize writes the computed leaderboard and the per-player rank
// set into Redis. Used by the rank worker and by cache-miss self-heal.
func (s *LeaderboardService) Materialize(ctx context.Context, entries []model.LeaderboardEntry) {
	blob, err := json.Marshal(entries)
	if err != nil {
		log.Error().Err(err).Str("component", "leaderboard").Msg("marshal failed")
		return
	}
	if err := s.rdb.Set(ctx, config.CacheKey.LeaderboardKey(), blob, 0).Err(); err != nil {
		log.Warn().Err(err).Str("component", "leaderboard").Msg("cache write failed")
		return
	}

	members := make([]redis.Z, 0, len(entries))
	for _, e := range entries {
		members = append(members, redis.Z{Score: float64(e.Rank), Member: e.PlayerID.String()})
	}
	rankKey := config.CacheKey.LeaderboardRankKey()
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, rankKey)
	if len(members) > 0 {
		pipe.ZAdd(ctx, rankKey, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Str("component", "leaderboard").Msg("rank set write failed")
	}
}

// Recompute pulls fresh standings from Postgres and materializes them.
func (s *LeaderboardService) Recompute(ctx context.Context) (int, error) {
	entries, err := s.leaderboardRepo.Top(ctx, s.cfg.LeaderboardSize)
	if err != nil {
		return 0, err
	}
	s.Materialize(ctx, entries)
	return len(entries), nil
}
