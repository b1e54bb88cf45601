package model

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a player account with its progression aggregates.
// Total points are monotonic: they only grow at session finalization.
type Player struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	FullName       string     `json:"full_name"`
	PasswordHash   string     `json:"-"`
	ClassCode      *string    `json:"class_code,omitempty"`
	Level          int        `json:"level"`
	TotalPoints    int        `json:"total_points"`
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	GamesCompleted int        `json:"games_completed"`
	LastPlayedAt   *time.Time `json:"last_played_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PlayerRegisterRequest is the payload for creating a player account.
type PlayerRegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=120"`
	Username  string `json:"username" binding:"required,min=3,max=30,alphanum"`
	FullName  string `json:"full_name" binding:"required,min=2,max=100"`
	Password  string `json:"password" binding:"required,min=6,max=128"`
	ClassCode string `json:"class_code" binding:"omitempty,max=20"`
}

// PlayerLoginRequest is the payload for player authentication.
type PlayerLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}
