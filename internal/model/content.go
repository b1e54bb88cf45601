package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TemplateType distinguishes the two template catalogs.
type TemplateType string

const (
	TemplateSpeaking TemplateType = "speaking"
	TemplateWriting  TemplateType = "writing"
)

// Template is a memorizable answer template with bracket slots
// ([NAME], [TOPIC], ...) the player is drilled to reuse verbatim.
type Template struct {
	ID               uuid.UUID    `json:"id"`
	TemplateType     TemplateType `json:"template_type"`
	TemplateNumber   int          `json:"template_number"`
	TemplateName     string       `json:"template_name"`
	ColorCode        string       `json:"color_code"`
	TemplateText     string       `json:"template_text"`
	TemplateTextID   string       `json:"template_text_indonesian"`
	Keywords         []string     `json:"keywords"`
	ExampleQuestions []string     `json:"example_questions"`
	CreatedAt        time.Time    `json:"created_at"`
}

// RoundKind separates warm-up items from the harder scored set.
type RoundKind string

const (
	RoundPractice  RoundKind = "practice"
	RoundChallenge RoundKind = "challenge"
)

// GameItem is one bank entry for one game mode. The payload shape is
// mode-specific (see the *Payload types below); position orders items
// within a round.
type GameItem struct {
	ID        uuid.UUID       `json:"id"`
	Mode      GameMode        `json:"mode"`
	Round     RoundKind       `json:"round"`
	Position  int             `json:"position"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ─── Mode-specific payloads ─────────────────────────────────────────

// ListeningItemPayload is the payload for listening items: the player
// hears the sentence and echoes it into the microphone.
type ListeningItemPayload struct {
	Text            string   `json:"text"`
	AudioURL        string   `json:"audio_url,omitempty"`
	ExpectedWords   []string `json:"expected_words"`
	DurationSeconds int      `json:"duration_seconds"`
	Difficulty      string   `json:"difficulty"`
}

// SpeakingPromptPayload is the payload for speaking prompts answered
// with a template within a timed recording window.
type SpeakingPromptPayload struct {
	QuestionText     string    `json:"question_text"`
	TemplateID       uuid.UUID `json:"template_id"`
	TimeLimitSeconds int       `json:"time_limit_seconds"`
	KeywordsToDetect []string  `json:"keywords_to_detect"`
}

// ReadingOption is one multiple-choice answer.
type ReadingOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// ReadingQuestionPayload is the payload for reading questions: a short
// passage, scan keywords, and four options.
type ReadingQuestionPayload struct {
	QuestionText     string          `json:"question_text"`
	Passage          string          `json:"passage"`
	Keywords         []string        `json:"keywords"`
	Options          []ReadingOption `json:"options"`
	Explanation      string          `json:"explanation,omitempty"`
	TimeLimitSeconds int             `json:"time_limit_seconds"`
}

// WritingTaskPayload is the payload for writing tasks (email or
// discussion) scored on word count, template retention and timing.
type WritingTaskPayload struct {
	PromptType    string    `json:"prompt_type"` // email | discussion
	PromptText    string    `json:"prompt_text"`
	TemplateID    uuid.UUID `json:"template_id"`
	Keywords      []string  `json:"keywords"`
	MinWords      int       `json:"min_words"`
	MaxWords      int       `json:"max_words"`
	TargetSeconds int       `json:"target_seconds"`
}

// ─── Admin CRUD payloads ────────────────────────────────────────────

// CreateTemplateRequest is the payload for adding a template.
type CreateTemplateRequest struct {
	TemplateType     string   `json:"template_type" binding:"required,oneof=speaking writing"`
	TemplateNumber   int      `json:"template_number" binding:"required,min=1"`
	TemplateName     string   `json:"template_name" binding:"required,min=2,max=100"`
	ColorCode        string   `json:"color_code" binding:"required,oneof=blue green yellow red purple orange"`
	TemplateText     string   `json:"template_text" binding:"required,min=10"`
	TemplateTextID   string   `json:"template_text_indonesian" binding:"omitempty"`
	Keywords         []string `json:"keywords" binding:"required,min=1"`
	ExampleQuestions []string `json:"example_questions"`
}

// UpsertGameItemRequest is the payload for creating or replacing a bank item.
type UpsertGameItemRequest struct {
	Round    string          `json:"round" binding:"required,oneof=practice challenge"`
	Position int             `json:"position" binding:"min=0"`
	Payload  json.RawMessage `json:"payload" binding:"required"`
}
