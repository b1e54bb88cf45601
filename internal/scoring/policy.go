// Package scoring holds the per-game-mode scoring policies.
//
// Every policy is a pure function of (signal, item, session context):
// recognition randomness lives behind the Recognizer interface, so the
// policies themselves are deterministic and table-testable. Policies are
// total: malformed signals score zero, they never fail.
package scoring

import (
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

// Signal is the raw result of a single attempt, mode-specific fields
// populated by the caller. Answered=false marks a timeout auto-submit.
type Signal struct {
	Answered bool `json:"answered"`

	// Reading: chosen option id.
	OptionID string `json:"option_id,omitempty"`

	// Writing: submitted text and elapsed writing time.
	Text           string `json:"text,omitempty"`
	ElapsedSeconds int    `json:"elapsed_seconds,omitempty"`

	// Listening: speech-match confidence in [0,100] from the recognizer.
	Confidence float64 `json:"confidence,omitempty"`

	// Speaking: recognizer keyword hits and recording length.
	DetectedKeywords []string `json:"detected_keywords,omitempty"`
	RecordingSeconds int      `json:"recording_seconds,omitempty"`
}

// Item is the mode-specific spec of one question or task.
type Item struct {
	ID    string          `json:"id"`
	Round model.RoundKind `json:"round"`

	// ExpectedAnswer is the literal text recorded in mistakes.
	ExpectedAnswer string `json:"expected_answer"`

	// TimeLimitSeconds caps the active phase for this item; 0 means untimed.
	TimeLimitSeconds int `json:"time_limit_seconds,omitempty"`

	// Speaking.
	ExpectedKeywords []string `json:"expected_keywords,omitempty"`

	// Reading.
	CorrectOptionID string `json:"correct_option_id,omitempty"`

	// Writing.
	TemplateText  string `json:"template_text,omitempty"`
	MinWords      int    `json:"min_words,omitempty"`
	MaxWords      int    `json:"max_words,omitempty"`
	TargetSeconds int    `json:"target_seconds,omitempty"`
}

// Context is the slice of session state a policy may read. Streak is the
// current run of correct answers before this attempt (reading bonus).
type Context struct {
	Streak int
}

// Outcome is the scored result of one attempt.
type Outcome struct {
	Points  int            `json:"points"`
	Correct bool           `json:"correct"`
	Band    string         `json:"band"`
	Detail  map[string]int `json:"detail,omitempty"`

	// Mistake is non-nil when the attempt falls below the mode threshold.
	// QuestionNumber is filled in by the session engine.
	Mistake *model.Mistake `json:"mistake,omitempty"`
}

// Policy scores attempts for one game mode.
type Policy interface {
	Mode() model.GameMode

	// MaxPoints is the per-item ceiling; a session's max score is the sum
	// over its items. Score never returns more than this.
	MaxPoints(item Item) int

	// Score computes the outcome for one attempt. Pure and total.
	Score(sig Signal, item Item, ctx Context) Outcome

	// AllowRetry reports whether the mode permits re-attempting the same
	// item from the feedback phase (listening, speaking).
	AllowRetry() bool
}

// ForMode returns the policy for a game mode.
func ForMode(mode model.GameMode) (Policy, bool) {
	switch mode {
	case model.ModeListening:
		return ListeningPolicy{}, true
	case model.ModeSpeaking:
		return SpeakingPolicy{}, true
	case model.ModeReading:
		return ReadingPolicy{}, true
	case model.ModeWriting:
		return WritingPolicy{}, true
	}
	return nil, false
}
