package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ChallengeDifficulty tiers daily challenges.
type ChallengeDifficulty string

const (
	DifficultyEasy   ChallengeDifficulty = "easy"
	DifficultyMedium ChallengeDifficulty = "medium"
	DifficultyHard   ChallengeDifficulty = "hard"
)

// DailyChallenge is one per calendar date. ChallengeData is a free-form
// bag interpreted by the client (target mode, item filters, etc).
type DailyChallenge struct {
	ID            uuid.UUID           `json:"id"`
	ChallengeDate string              `json:"challenge_date"` // YYYY-MM-DD, UTC
	ChallengeType GameMode            `json:"challenge_type"`
	Description   string              `json:"challenge_description"`
	ChallengeData json.RawMessage     `json:"challenge_data,omitempty"`
	PointsReward  int                 `json:"points_reward"`
	BonusPoints   int                 `json:"bonus_points"`
	Difficulty    ChallengeDifficulty `json:"difficulty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// PlayerChallenge tracks a player's completion of a daily challenge.
type PlayerChallenge struct {
	ID           uuid.UUID  `json:"id"`
	PlayerID     uuid.UUID  `json:"player_id"`
	ChallengeID  uuid.UUID  `json:"challenge_id"`
	IsCompleted  bool       `json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Score        *int       `json:"score,omitempty"`
	PointsEarned int        `json:"points_earned"`
	Attempts     int        `json:"attempts"`
}

// CompleteChallengeRequest reports the score of a finished challenge run.
type CompleteChallengeRequest struct {
	Score int `json:"score" binding:"min=0,max=100"`
}

// CreateChallengeRequest is the payload for scheduling a daily challenge.
type CreateChallengeRequest struct {
	ChallengeDate string          `json:"challenge_date" binding:"required,datetime=2006-01-02"`
	ChallengeType string          `json:"challenge_type" binding:"required,gamemode"`
	Description   string          `json:"challenge_description" binding:"required,max=400"`
	ChallengeData json.RawMessage `json:"challenge_data"`
	PointsReward  int             `json:"points_reward" binding:"required,min=1"`
	BonusPoints   int             `json:"bonus_points" binding:"min=0"`
	Difficulty    string          `json:"difficulty" binding:"required,oneof=easy medium hard"`
}
