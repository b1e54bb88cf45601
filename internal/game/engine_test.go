package game

import (
	"errors"
	"testing"
	"time"

	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/scoring"
)

// fakeClock steps time manually so deadline behavior is deterministic.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func readingItems(n int) []scoring.Item {
	items := make([]scoring.Item, n)
	for i := range items {
		items[i] = scoring.Item{
			ID:               string(rune('a' + i)),
			Round:            model.RoundPractice,
			CorrectOptionID:  "x",
			ExpectedAnswer:   "x",
			TimeLimitSeconds: 180,
		}
	}
	return items
}

func newReadingEngine(t *testing.T, n int, clock *fakeClock) *Engine {
	t.Helper()
	policy, ok := scoring.ForMode(model.ModeReading)
	if !ok {
		t.Fatal("no reading policy")
	}
	return New(model.ModeReading, readingItems(n), policy, Options{Clock: clock.Now})
}

func mustBegin(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
}

func mustAdvance(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
}

func TestEngineHappyPath(t *testing.T) {
	clock := newFakeClock()
	e := newReadingEngine(t, 3, clock)

	if got := e.State().Phase; got != PhaseTutorial {
		t.Fatalf("initial phase = %s", got)
	}
	mustBegin(t, e)

	for i := 0; i < 3; i++ {
		out, err := e.Submit(scoring.Signal{Answered: true, OptionID: "x"})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if !out.Correct {
			t.Fatalf("submit %d not correct", i)
		}
		mustAdvance(t, e)
	}

	if !e.Done() {
		t.Fatal("session should have reached results")
	}
	sum := e.Summary()
	// 20 + 20 + 30 (streak bonus from the third correct answer).
	if sum.Score != 70 {
		t.Errorf("score = %d, want 70", sum.Score)
	}
	if sum.Attempted != 3 || sum.Correct != 3 {
		t.Errorf("attempted/correct = %d/%d, want 3/3", sum.Attempted, sum.Correct)
	}
	if sum.Accuracy != 100 {
		t.Errorf("accuracy = %v, want 100", sum.Accuracy)
	}
	if sum.EndedAt.IsZero() {
		t.Error("ended_at not set at results")
	}
}

func TestEngineInvalidTransitions(t *testing.T) {
	clock := newFakeClock()
	e := newReadingEngine(t, 2, clock)

	var tErr *InvalidTransitionError

	if _, err := e.Submit(scoring.Signal{Answered: true}); !errors.As(err, &tErr) {
		t.Errorf("submit in tutorial: got %v", err)
	}
	if err := e.Advance(); !errors.As(err, &tErr) {
		t.Errorf("advance in tutorial: got %v", err)
	}
	mustBegin(t, e)
	if err := e.Begin(); !errors.As(err, &tErr) {
		t.Errorf("double begin: got %v", err)
	}
	if err := e.Advance(); !errors.As(err, &tErr) {
		t.Errorf("advance in active: got %v", err)
	}
	if err := e.Retry(); !errors.As(err, &tErr) {
		t.Errorf("retry in active: got %v", err)
	}
	if _, err := e.Submit(scoring.Signal{Answered: true, OptionID: "x"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := e.Submit(scoring.Signal{Answered: true, OptionID: "x"}); !errors.As(err, &tErr) {
		t.Errorf("double submit: got %v", err)
	}
}

func TestEngineLivesExhaustion(t *testing.T) {
	clock := newFakeClock()
	e := newReadingEngine(t, 5, clock)
	mustBegin(t, e)

	// Three wrong answers end a five-item reading session early.
	for i := 0; i < 3; i++ {
		if _, err := e.Submit(scoring.Signal{Answered: true, OptionID: "wrong"}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		mustAdvance(t, e)
	}

	if !e.Done() {
		t.Fatal("session should end after three wrong answers")
	}
	st := e.State()
	if st.Lives == nil || *st.Lives != 0 {
		t.Errorf("lives = %v, want 0", st.Lives)
	}
	sum := e.Summary()
	if sum.Attempted != 3 {
		t.Errorf("attempted = %d, want 3", sum.Attempted)
	}
	if len(sum.Mistakes) != 3 {
		t.Errorf("mistakes = %d, want 3", len(sum.Mistakes))
	}
}

func TestEngineLivesNeverNegative(t *testing.T) {
	clock := newFakeClock()
	policy, _ := scoring.ForMode(model.ModeListening)
	// Listening has no lives; wrong answers must not underflow anything.
	e := New(model.ModeListening, []scoring.Item{{ID: "p1", ExpectedAnswer: "x"}}, policy, Options{Clock: clock.Now})
	mustBegin(t, e)
	if _, err := e.Submit(scoring.Signal{Answered: true, Confidence: 40}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if st := e.State(); st.Lives != nil {
		t.Errorf("listening state carries lives: %v", *st.Lives)
	}
}

func TestEngineTimeoutSubmit(t *testing.T) {
	clock := newFakeClock()
	e := newReadingEngine(t, 2, clock)
	mustBegin(t, e)

	clock.advance(181 * time.Second)
	out, err := e.Submit(scoring.Signal{Answered: true, OptionID: "x"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Points != 0 || out.Correct {
		t.Errorf("late submit scored %+v, want timeout zero", out)
	}
	if out.Band != "timeout" {
		t.Errorf("band = %q, want timeout", out.Band)
	}
	if out.Mistake == nil || out.Mistake.MistakeType != "timeout" {
		t.Errorf("mistake = %+v, want timeout", out.Mistake)
	}
	if st := e.State(); st.Lives == nil || *st.Lives != 2 {
		t.Errorf("lives = %v, want 2 after timeout", st.Lives)
	}
}

func TestEngineRetryKeepsPoints(t *testing.T) {
	clock := newFakeClock()
	policy, _ := scoring.ForMode(model.ModeListening)
	e := New(model.ModeListening, []scoring.Item{{ID: "p1", ExpectedAnswer: "x"}}, policy, Options{Clock: clock.Now})
	mustBegin(t, e)

	// Weak first attempt, strong retry. Points accumulate across both.
	if _, err := e.Submit(scoring.Signal{Answered: true, Confidence: 50}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := e.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if _, err := e.Submit(scoring.Signal{Answered: true, Confidence: 95}); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	mustAdvance(t, e)

	sum := e.Summary()
	if sum.Score != 15 {
		t.Errorf("score = %d, want 15 (5 kept + 10 retried)", sum.Score)
	}
	if sum.Attempted != 2 || sum.Correct != 1 {
		t.Errorf("attempted/correct = %d/%d, want 2/1", sum.Attempted, sum.Correct)
	}
	if len(sum.Mistakes) != 1 {
		t.Errorf("mistakes = %d, want the first attempt kept", len(sum.Mistakes))
	}
}

func TestEngineRetryForbiddenForReading(t *testing.T) {
	clock := newFakeClock()
	e := newReadingEngine(t, 1, clock)
	mustBegin(t, e)
	if _, err := e.Submit(scoring.Signal{Answered: true, OptionID: "x"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var rErr *RetryNotAllowedError
	if err := e.Retry(); !errors.As(err, &rErr) {
		t.Errorf("retry in reading: got %v, want RetryNotAllowedError", err)
	}
}

func TestEngineMaxScore(t *testing.T) {
	clock := newFakeClock()
	items := []scoring.Item{
		{ID: "q1", Round: model.RoundPractice, CorrectOptionID: "x"},
		{ID: "q2", Round: model.RoundChallenge, CorrectOptionID: "x"},
	}
	policy, _ := scoring.ForMode(model.ModeReading)
	e := New(model.ModeReading, items, policy, Options{Clock: clock.Now})
	// (20+10) + (30+10) with the streak bonus ceiling included.
	if got := e.MaxScore(); got != 70 {
		t.Errorf("max score = %d, want 70", got)
	}
}

func TestEngineMistakeQuestionNumbers(t *testing.T) {
	clock := newFakeClock()
	e := newReadingEngine(t, 3, clock)
	mustBegin(t, e)

	answers := []string{"x", "wrong", "x"}
	for _, a := range answers {
		if _, err := e.Submit(scoring.Signal{Answered: true, OptionID: a}); err != nil {
			t.Fatalf("submit: %v", err)
		}
		mustAdvance(t, e)
	}

	sum := e.Summary()
	if len(sum.Mistakes) != 1 {
		t.Fatalf("mistakes = %d, want 1", len(sum.Mistakes))
	}
	if sum.Mistakes[0].QuestionNumber != 2 {
		t.Errorf("question number = %d, want 2", sum.Mistakes[0].QuestionNumber)
	}
}
