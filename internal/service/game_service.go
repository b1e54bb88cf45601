package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/config"
	"github.com/lokalingo/toeflplay-backend/internal/game"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/lokalingo/toeflplay-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Game session errors.
var (
	ErrSessionNotFound = errors.New("game session not found")
	ErrSessionFinished = errors.New("game session already finished")
)

// activeSession pairs an engine with its owner. Engine calls are
// serialized through mu; the registry lock only guards the map.
// lastTouched is atomic because the janitor reads it without taking mu.
type activeSession struct {
	mu           sync.Mutex
	engine       *game.Engine
	sessionID    uuid.UUID
	playerID     uuid.UUID
	mode         model.GameMode
	levelAtStart int
	persisted    bool
	lastTouched  atomic.Int64
}

func (a *activeSession) touch() { a.lastTouched.Store(time.Now().UnixNano()) }

// StartResult is returned when a session is opened.
type StartResult struct {
	SessionID uuid.UUID        `json:"session_id"`
	Mode      model.GameMode   `json:"mode"`
	MaxScore  int              `json:"max_score"`
	Persisted bool             `json:"persisted"`
	State     game.State       `json:"state"`
	Items     []model.GameItem `json:"items"`
}

// AttemptResult is returned for submit and retry-submit calls.
type AttemptResult struct {
	Outcome   scoring.Outcome `json:"outcome"`
	State     game.State      `json:"state"`
	Persisted bool            `json:"persisted"`
}

// AdvanceResult is returned by Advance; Finalize is non-nil when the
// advance closed the session.
type AdvanceResult struct {
	State     game.State       `json:"state"`
	Persisted bool             `json:"persisted"`
	Summary   *game.Summary    `json:"summary,omitempty"`
	Finalize  *FinalizeOutcome `json:"finalize,omitempty"`
}

// GameService runs live sessions in memory and persists them at the
// edges. A database outage never blocks play: unsaved completions go to
// the Redis persist queue and responses carry persisted=false.
type GameService struct {
	cfg            *config.Config
	rdb            *redis.Client
	contentSvc     *ContentService
	progressionSvc *ProgressionService
	sessionRepo    *repository.GameSessionRepository
	recognizer     scoring.Recognizer

	mu       sync.RWMutex
	sessions map[uuid.UUID]*activeSession
}

// NewGameService creates a new GameService.
func NewGameService(
	cfg *config.Config,
	rdb *redis.Client,
	contentSvc *ContentService,
	progressionSvc *ProgressionService,
	sessionRepo *repository.GameSessionRepository,
	recognizer scoring.Recognizer,
) *GameService {
	return &GameService{
		cfg:            cfg,
		rdb:            rdb,
		contentSvc:     contentSvc,
		progressionSvc: progressionSvc,
		sessionRepo:    sessionRepo,
		recognizer:     recognizer,
		sessions:       make(map[uuid.UUID]*activeSession),
	}
}

// Start opens a session for a player: loads the mode's bank, builds the
// engine, and best-effort persists the open row.
func (s *GameService) Start(ctx context.Context, player *model.Player, mode model.GameMode) (*StartResult, error) {
	policy, ok := scoring.ForMode(mode)
	if !ok {
		return nil, fmt.Errorf("no policy for mode %q", mode)
	}

	items, err := s.contentSvc.BuildSessionItems(ctx, mode)
	if err != nil {
		return nil, err
	}
	bank, err := s.contentSvc.ListItems(ctx, mode)
	if err != nil {
		return nil, err
	}

	engine := game.New(mode, items, policy, game.Options{})
	sess := &activeSession{
		engine:       engine,
		sessionID:    uuid.New(),
		playerID:     player.ID,
		mode:         mode,
		levelAtStart: player.Level,
	}
	sess.touch()

	row := &model.GameSession{
		ID:           sess.sessionID,
		PlayerID:     player.ID,
		GameMode:     mode,
		MaxScore:     engine.MaxScore(),
		LevelAtStart: player.Level,
	}
	if err := s.sessionRepo.Create(ctx, row); err != nil {
		log.Warn().Err(err).
			Str("component", "game").
			Str("session_id", sess.sessionID.String()).
			Msg("session row not persisted, continuing degraded")
	} else {
		sess.persisted = true
	}

	s.mu.Lock()
	s.sessions[sess.sessionID] = sess
	s.mu.Unlock()

	activeKey := config.CacheKey.PlayerActiveGameKey(player.ID.String())
	if err := s.rdb.Set(ctx, activeKey, sess.sessionID.String(), s.cfg.SessionIdleTimeout).Err(); err != nil {
		log.Warn().Err(err).Str("component", "game").Msg("active game key not set")
	}

	return &StartResult{
		SessionID: sess.sessionID,
		Mode:      mode,
		MaxScore:  engine.MaxScore(),
		Persisted: sess.persisted,
		State:     engine.State(),
		Items:     bank,
	}, nil
}

// Submit scores an attempt for the current item.
func (s *GameService) Submit(ctx context.Context, sessionID, playerID uuid.UUID, req model.GameAttemptRequest) (*AttemptResult, error) {
	sess, err := s.lookup(sessionID, playerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	sig := s.buildSignal(sess, req)
	outcome, err := sess.engine.Submit(sig)
	if err != nil {
		return nil, err
	}
	return &AttemptResult{Outcome: outcome, State: sess.engine.State(), Persisted: sess.persisted}, nil
}

// buildSignal maps the request onto scoring signals, running the
// recognizer for the speech modes.
func (s *GameService) buildSignal(sess *activeSession, req model.GameAttemptRequest) scoring.Signal {
	sig := scoring.Signal{Answered: true}
	switch sess.mode {
	case model.ModeListening:
		sig.Confidence = float64(s.recognizer.RecognizeConfidence(req.Transcript))
	case model.ModeSpeaking:
		if item, ok := sess.engine.CurrentItem(); ok {
			sig.DetectedKeywords = s.recognizer.DetectKeywords(item.ExpectedKeywords)
		}
		sig.RecordingSeconds = req.RecordingSeconds
	case model.ModeReading:
		sig.OptionID = req.OptionID
		sig.Answered = req.OptionID != ""
	case model.ModeWriting:
		sig.Text = req.Text
		sig.ElapsedSeconds = req.ElapsedSeconds
	}
	return sig
}

// Advance moves the session forward. In the tutorial it starts the
// first item; from the last feedback it closes the session and folds it
// into the player's progression.
func (s *GameService) Advance(ctx context.Context, sessionID, playerID uuid.UUID) (*AdvanceResult, error) {
	sess, err := s.lookup(sessionID, playerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	if sess.engine.State().Phase == game.PhaseTutorial {
		if err := sess.engine.Begin(); err != nil {
			return nil, err
		}
		return &AdvanceResult{State: sess.engine.State(), Persisted: sess.persisted}, nil
	}

	if err := sess.engine.Advance(); err != nil {
		return nil, err
	}

	res := &AdvanceResult{State: sess.engine.State(), Persisted: sess.persisted}
	if sess.engine.Done() {
		summary := sess.engine.Summary()
		res.Summary = &summary
		res.Finalize, res.Persisted = s.finalize(ctx, sess, summary)
		s.evict(sess)
	}
	return res, nil
}

// Retry re-arms the current item (listening and speaking only).
func (s *GameService) Retry(ctx context.Context, sessionID, playerID uuid.UUID) (*AdvanceResult, error) {
	sess, err := s.lookup(sessionID, playerID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	if err := sess.engine.Retry(); err != nil {
		return nil, err
	}
	return &AdvanceResult{State: sess.engine.State(), Persisted: sess.persisted}, nil
}

// State snapshots a running session.
func (s *GameService) State(sessionID, playerID uuid.UUID) (*game.State, error) {
	sess, err := s.lookup(sessionID, playerID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	st := sess.engine.State()
	return &st, nil
}

// finalize persists the completion. On any failure the payload goes to
// the Redis persist queue so the worker retries it; local play has
// already concluded either way.
func (s *GameService) finalize(ctx context.Context, sess *activeSession, summary game.Summary) (*FinalizeOutcome, bool) {
	completion := model.SessionCompletion{
		SessionID:          sess.sessionID,
		PlayerID:           sess.playerID,
		GameMode:           sess.mode,
		Score:              summary.Score,
		PointsEarned:       summary.Score,
		AccuracyPercentage: summary.Accuracy,
		Mistakes:           summary.Mistakes,
		CompletedAt:        summary.EndedAt,
	}

	if !sess.persisted {
		// The open row never made it to the database; create it now so
		// the completion update has something to hit.
		row := &model.GameSession{
			ID:           sess.sessionID,
			PlayerID:     sess.playerID,
			GameMode:     sess.mode,
			MaxScore:     summary.MaxScore,
			LevelAtStart: sess.levelAtStart,
		}
		if err := s.sessionRepo.Create(ctx, row); err != nil {
			log.Warn().Err(err).
				Str("component", "game").
				Str("session_id", sess.sessionID.String()).
				Msg("late session insert failed, queueing completion")
			s.enqueueCompletion(ctx, completion)
			return nil, false
		}
		sess.persisted = true
	}

	outcome, err := s.progressionSvc.Apply(ctx, completion)
	if err != nil {
		log.Error().Err(err).
			Str("component", "game").
			Str("session_id", sess.sessionID.String()).
			Msg("finalize failed, queueing completion")
		s.enqueueCompletion(ctx, completion)
		return nil, false
	}
	return outcome, true
}

func (s *GameService) enqueueCompletion(ctx context.Context, c model.SessionCompletion) {
	blob, err := json.Marshal(c)
	if err != nil {
		log.Error().Err(err).Str("component", "game").Msg("completion marshal failed")
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistSessionsQueue, blob).Err(); err != nil {
		log.Error().Err(err).
			Str("component", "game").
			Str("session_id", c.SessionID.String()).
			Msg("completion enqueue failed, progress for this session is lost")
	}
}

func (s *GameService) lookup(sessionID, playerID uuid.UUID) (*activeSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || sess.playerID != playerID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *GameService) evict(sess *activeSession) {
	s.mu.Lock()
	delete(s.sessions, sess.sessionID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	activeKey := config.CacheKey.PlayerActiveGameKey(sess.playerID.String())
	if err := s.rdb.Del(ctx, activeKey).Err(); err != nil {
		log.Warn().Err(err).Str("component", "game").Msg("active game key not cleared")
	}
}

// RunJanitor discards sessions idle beyond the configured timeout.
// Abandoned sessions are never finalized; their rows stay open.
func (s *GameService) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *GameService) sweep() {
	cutoff := time.Now().Add(-s.cfg.SessionIdleTimeout)

	s.mu.Lock()
	var stale []*activeSession
	for id, sess := range s.sessions {
		if sess.lastTouched.Load() < cutoff.UnixNano() {
			delete(s.sessions, id)
			stale = append(stale, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		log.Info().
			Str("component", "game").
			Str("session_id", sess.sessionID.String()).
			Str("mode", string(sess.mode)).
			Msg("idle session discarded")
	}
}
