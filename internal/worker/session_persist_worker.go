package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/lokalingo/toeflplay-backend/internal/config"
	"github.com/lokalingo/toeflplay-backend/internal/logger"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/lokalingo/toeflplay-backend/internal/service"
)

const (
	SessionBatchSize    = 50
	SessionBatchTimeout = 2 * time.Second
	SessionPollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
)

// SessionPersistWorker drains persist_sessions_queue, the degraded-mode
// spillover for game completions the request path could not write. It
// closes the session rows in bulk and then folds progression for each
// row that actually transitioned, so a completion replayed twice never
// double-credits points.
type SessionPersistWorker struct {
	sessionRepo    *repository.GameSessionRepository
	progressionSvc *service.ProgressionService
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewSessionPersistWorker creates a new SessionPersistWorker.
func NewSessionPersistWorker(
	sessionRepo *repository.GameSessionRepository,
	progressionSvc *service.ProgressionService,
	rdb *redis.Client,
	log zerolog.Logger,
) *SessionPersistWorker {
	return &SessionPersistWorker{
		sessionRepo:    sessionRepo,
		progressionSvc: progressionSvc,
		rdb:            rdb,
		log:            logger.Component(log, "session_persist_worker"),
	}
}

func (w *SessionPersistWorker) Start(ctx context.Context) {
	w.log.Info().Msg("SessionPersistWorker started")

	batch := make([]model.SessionCompletion, 0, SessionBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= SessionBatchSize || time.Since(lastFlush) >= SessionBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, SessionPollTimeout, config.WorkerKey.PersistSessionsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var c model.SessionCompletion
			if err := json.Unmarshal([]byte(item[1]), &c); err != nil {
				w.log.Error().Err(err).Msg("Discarding malformed JSON")
				continue
			}

			batch = append(batch, c)
		}
	}
}

// flushSafe attempts the bulk path, then row-by-row recovery with requeue.
func (w *SessionPersistWorker) flushSafe(ctx context.Context, batch []model.SessionCompletion) {
	if len(batch) == 0 {
		return
	}

	transitioned, err := w.sessionRepo.CompleteBatch(ctx, batch)
	if err != nil {
		w.log.Warn().Err(err).Int("count", len(batch)).Msg("Bulk complete failed, attempting row-by-row recovery")
		w.fallbackPersist(ctx, batch)
		return
	}

	w.foldTransitioned(ctx, batch, transitioned)
}

// selectFolds picks the completions eligible for a progression fold:
// only rows the batch update actually flipped to completed, and each
// flipped ID at most once. Already-closed rows were credited by an
// earlier delivery; a duplicate payload inside one batch still flips
// the row only once, so it must fold only once.
func selectFolds(batch []model.SessionCompletion, transitioned []uuid.UUID) []model.SessionCompletion {
	flipped := make(map[uuid.UUID]bool, len(transitioned))
	for _, id := range transitioned {
		flipped[id] = true
	}

	folds := make([]model.SessionCompletion, 0, len(transitioned))
	for _, c := range batch {
		if !flipped[c.SessionID] {
			continue
		}
		delete(flipped, c.SessionID)
		folds = append(folds, c)
	}
	return folds
}

// foldTransitioned applies progression for the completions selectFolds
// kept, requeueing any row whose fold failed.
func (w *SessionPersistWorker) foldTransitioned(ctx context.Context, batch []model.SessionCompletion, transitioned []uuid.UUID) {
	folds := selectFolds(batch, transitioned)
	if skipped := len(batch) - len(folds); skipped > 0 {
		w.log.Debug().Int("skipped", skipped).Msg("Skipping already completed sessions")
	}

	for _, c := range folds {
		if _, err := w.progressionSvc.Fold(ctx, c); err != nil {
			w.log.Error().Err(err).
				Str("session_id", c.SessionID.String()).
				Msg("Progression fold failed, requeueing")
			w.requeue(ctx, []model.SessionCompletion{c})
		}
	}
}

func (w *SessionPersistWorker) fallbackPersist(ctx context.Context, batch []model.SessionCompletion) {
	requeueList := make([]model.SessionCompletion, 0)

	for _, c := range batch {
		outcome, err := w.progressionSvc.Apply(ctx, c)
		if err != nil {
			w.log.Error().Err(err).
				Str("session_id", c.SessionID.String()).
				Msg("Single persist failed, requeueing")
			requeueList = append(requeueList, c)
			continue
		}
		if outcome != nil && !outcome.Applied {
			w.log.Debug().
				Str("session_id", c.SessionID.String()).
				Msg("Session already completed, skipping")
		}
	}

	if len(requeueList) > 0 {
		w.requeue(ctx, requeueList)
	}
}

func (w *SessionPersistWorker) requeue(ctx context.Context, items []model.SessionCompletion) {
	pipe := w.rdb.Pipeline()
	for _, c := range items {
		data, _ := json.Marshal(c)
		pipe.RPush(ctx, config.WorkerKey.PersistSessionsQueue, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		w.log.Error().Err(err).Msg("CRITICAL: Failed to requeue completions to Redis. Data loss occurred.")
		return
	}
	w.log.Info().Int("count", len(items)).Msg("Requeued failed completions back to Redis")
	// Back off so a hard-down database does not spin the loop.
	time.Sleep(2 * time.Second)
}
