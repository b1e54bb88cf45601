package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/lokalingo/toeflplay-backend/internal/logger"
	"github.com/lokalingo/toeflplay-backend/internal/service"
)

// LeaderboardWorker keeps the cached leaderboard and the rank sorted
// set fresh on a fixed cadence. Reads never hit PostgreSQL while this
// worker is healthy.
type LeaderboardWorker struct {
	leaderboardSvc *service.LeaderboardService
	interval       time.Duration
	log            zerolog.Logger
}

// NewLeaderboardWorker creates a new LeaderboardWorker.
func NewLeaderboardWorker(leaderboardSvc *service.LeaderboardService, interval time.Duration, log zerolog.Logger) *LeaderboardWorker {
	return &LeaderboardWorker{
		leaderboardSvc: leaderboardSvc,
		interval:       interval,
		log:            logger.Component(log, "leaderboard_worker"),
	}
}

func (w *LeaderboardWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("LeaderboardWorker started")

	// Warm the cache immediately so the first request after boot does
	// not fall back to the database.
	w.recompute(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("LeaderboardWorker stopped")
			return
		case <-ticker.C:
			w.recompute(ctx)
		}
	}
}

func (w *LeaderboardWorker) recompute(ctx context.Context) {
	n, err := w.leaderboardSvc.Recompute(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Leaderboard recompute failed")
		return
	}
	w.log.Debug().Int("entries", n).Msg("Leaderboard materialized")
}
