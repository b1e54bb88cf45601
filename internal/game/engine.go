// Package game implements the per-session state machine shared by all
// four game modes. The engine is synchronous and single-goroutine; the
// service layer serializes access to it. All persistence and transport
// concerns live outside this package.
package game

import (
	"time"

	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/scoring"
)

// Phase is the engine's lifecycle state.
type Phase string

const (
	PhaseTutorial Phase = "tutorial"
	PhaseActive   Phase = "active"
	PhaseFeedback Phase = "feedback"
	PhaseResults  Phase = "results"
)

const readingLives = 3

// Clock supplies the current time; injectable for deadline tests.
type Clock func() time.Time

// Options tune a new engine.
type Options struct {
	// Clock defaults to time.Now.
	Clock Clock
}

// Attempt is one scored submission, kept in submission order. A retried
// item produces multiple attempts.
type Attempt struct {
	ItemIndex int             `json:"item_index"`
	Signal    scoring.Signal  `json:"signal"`
	Outcome   scoring.Outcome `json:"outcome"`
	At        time.Time       `json:"at"`
}

// Summary is the finished-session report consumed by the progression
// reducer and the results screen.
type Summary struct {
	Mode      model.GameMode  `json:"mode"`
	Score     int             `json:"score"`
	MaxScore  int             `json:"max_score"`
	Attempted int             `json:"attempted"`
	Correct   int             `json:"correct"`
	Accuracy  float64         `json:"accuracy"`
	Mistakes  []model.Mistake `json:"mistakes"`
	Attempts  []Attempt       `json:"attempts"`
	StartedAt time.Time       `json:"started_at"`
	EndedAt   time.Time       `json:"ended_at"`
}

// State is a snapshot safe to serialize to clients mid-session.
type State struct {
	Phase     Phase  `json:"phase"`
	ItemIndex int    `json:"item_index"`
	ItemCount int    `json:"item_count"`
	Score     int    `json:"score"`
	Streak    int    `json:"streak"`
	Lives     *int   `json:"lives,omitempty"`
	CanRetry  bool   `json:"can_retry"`
	Deadline  *int64 `json:"deadline_unix,omitempty"`
}

// Engine drives one game session through
// tutorial → active(i) ⇄ feedback(i) → results.
type Engine struct {
	mode   model.GameMode
	items  []scoring.Item
	policy scoring.Policy
	clock  Clock

	phase    Phase
	index    int
	score    int
	streak   int
	lives    int
	hasLives bool

	attempted int
	correct   int
	mistakes  []model.Mistake
	attempts  []Attempt

	startedAt time.Time
	endedAt   time.Time
	deadline  time.Time
}

// New builds an engine in the tutorial phase. Items must be non-empty
// and ordered; reading sessions start with three lives.
func New(mode model.GameMode, items []scoring.Item, policy scoring.Policy, opts Options) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	e := &Engine{
		mode:      mode,
		items:     items,
		policy:    policy,
		clock:     clock,
		phase:     PhaseTutorial,
		startedAt: clock(),
	}
	if mode == model.ModeReading {
		e.hasLives = true
		e.lives = readingLives
	}
	return e
}

// Begin leaves the tutorial and arms the first item.
func (e *Engine) Begin() error {
	if e.phase != PhaseTutorial {
		return &InvalidTransitionError{Phase: e.phase, Op: "begin"}
	}
	e.phase = PhaseActive
	e.armDeadline()
	return nil
}

// Submit scores the current item and moves to feedback. A submission
// past the item deadline is treated as a timeout: zero points, counted
// as incorrect, and in reading it costs a life.
func (e *Engine) Submit(sig scoring.Signal) (scoring.Outcome, error) {
	if e.phase != PhaseActive {
		return scoring.Outcome{}, &InvalidTransitionError{Phase: e.phase, Op: "submit"}
	}
	now := e.clock()
	if !e.deadline.IsZero() && now.After(e.deadline) {
		sig = scoring.Signal{Answered: false}
	}

	item := e.items[e.index]
	var out scoring.Outcome
	if sig.Answered {
		out = e.policy.Score(sig, item, scoring.Context{Streak: e.streak})
	} else {
		out = scoring.Outcome{
			Band: "timeout",
			Mistake: &model.Mistake{
				ExpectedAnswer: item.ExpectedAnswer,
				UserAnswer:     "",
				MistakeType:    "timeout",
			},
		}
	}

	e.attempted++
	e.score += out.Points
	if out.Correct {
		e.correct++
		e.streak++
	} else {
		e.streak = 0
		if e.hasLives && e.lives > 0 {
			e.lives--
		}
	}
	if out.Mistake != nil {
		out.Mistake.QuestionNumber = e.index + 1
		e.mistakes = append(e.mistakes, *out.Mistake)
	}
	e.attempts = append(e.attempts, Attempt{
		ItemIndex: e.index,
		Signal:    sig,
		Outcome:   out,
		At:        now,
	})

	e.phase = PhaseFeedback
	return out, nil
}

// Advance moves from feedback to the next item, or to results when the
// items are exhausted or a reading session runs out of lives.
func (e *Engine) Advance() error {
	if e.phase != PhaseFeedback {
		return &InvalidTransitionError{Phase: e.phase, Op: "advance"}
	}
	if (e.hasLives && e.lives == 0) || e.index+1 >= len(e.items) {
		e.phase = PhaseResults
		e.endedAt = e.clock()
		return nil
	}
	e.index++
	e.phase = PhaseActive
	e.armDeadline()
	return nil
}

// Retry re-arms the current item from feedback. Points and mistakes
// already recorded are kept; the re-attempt adds on top.
func (e *Engine) Retry() error {
	if e.phase != PhaseFeedback {
		return &InvalidTransitionError{Phase: e.phase, Op: "retry"}
	}
	if !e.policy.AllowRetry() {
		return &RetryNotAllowedError{Mode: string(e.mode)}
	}
	e.phase = PhaseActive
	e.armDeadline()
	return nil
}

// Done reports whether the session reached results.
func (e *Engine) Done() bool { return e.phase == PhaseResults }

// MaxScore is the sum of per-item ceilings.
func (e *Engine) MaxScore() int {
	total := 0
	for _, item := range e.items {
		total += e.policy.MaxPoints(item)
	}
	return total
}

// CurrentItem returns the armed item while the session is running.
func (e *Engine) CurrentItem() (scoring.Item, bool) {
	if e.phase == PhaseActive || e.phase == PhaseFeedback {
		return e.items[e.index], true
	}
	return scoring.Item{}, false
}

// State snapshots the engine for clients.
func (e *Engine) State() State {
	s := State{
		Phase:     e.phase,
		ItemIndex: e.index,
		ItemCount: len(e.items),
		Score:     e.score,
		Streak:    e.streak,
		CanRetry:  e.phase == PhaseFeedback && e.policy.AllowRetry(),
	}
	if e.hasLives {
		lives := e.lives
		s.Lives = &lives
	}
	if e.phase == PhaseActive && !e.deadline.IsZero() {
		unix := e.deadline.Unix()
		s.Deadline = &unix
	}
	return s
}

// Summary reports the session totals. Valid in any phase; EndedAt is
// zero until results.
func (e *Engine) Summary() Summary {
	accuracy := 0.0
	if e.attempted > 0 {
		accuracy = float64(e.correct) / float64(e.attempted) * 100
	}
	return Summary{
		Mode:      e.mode,
		Score:     e.score,
		MaxScore:  e.MaxScore(),
		Attempted: e.attempted,
		Correct:   e.correct,
		Accuracy:  accuracy,
		Mistakes:  e.mistakes,
		Attempts:  e.attempts,
		StartedAt: e.startedAt,
		EndedAt:   e.endedAt,
	}
}

func (e *Engine) armDeadline() {
	item := e.items[e.index]
	if item.TimeLimitSeconds > 0 {
		e.deadline = e.clock().Add(time.Duration(item.TimeLimitSeconds) * time.Second)
	} else {
		e.deadline = time.Time{}
	}
}
