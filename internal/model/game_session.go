package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Mistake is a single recorded error within a session. Append-only:
// never mutated after creation.
type Mistake struct {
	QuestionNumber int    `json:"question_number"`
	ExpectedAnswer string `json:"expected_answer"`
	UserAnswer     string `json:"user_answer"`
	MistakeType    string `json:"mistake_type"`
}

// GameSession represents one play-through of one game mode.
type GameSession struct {
	ID                 uuid.UUID       `json:"id"`
	PlayerID           uuid.UUID       `json:"player_id"`
	GameMode           GameMode        `json:"game_mode"`
	MaxScore           int             `json:"max_score"`
	LevelAtStart       int             `json:"level_at_start"`
	Score              int             `json:"score"`
	PointsEarned       int             `json:"points_earned"`
	AccuracyPercentage *float64        `json:"accuracy_percentage,omitempty"`
	Mistakes           []Mistake       `json:"mistakes,omitempty"`
	SessionData        json.RawMessage `json:"session_data,omitempty"`
	IsCompleted        bool            `json:"is_completed"`
	StartedAt          time.Time       `json:"started_at"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
}

// SessionCompletion carries the finalized values of a session to the
// persistence layer. Computed by the progression reducer; the repository
// applies it without recomputing anything.
type SessionCompletion struct {
	SessionID          uuid.UUID       `json:"session_id"`
	PlayerID           uuid.UUID       `json:"player_id"`
	GameMode           GameMode        `json:"game_mode"`
	Score              int             `json:"score"`
	PointsEarned       int             `json:"points_earned"`
	AccuracyPercentage float64         `json:"accuracy_percentage"`
	Mistakes           []Mistake       `json:"mistakes"`
	SessionData        json.RawMessage `json:"session_data,omitempty"`
	CompletedAt        time.Time       `json:"completed_at"`
}
