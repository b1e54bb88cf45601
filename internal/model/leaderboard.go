package model

import "github.com/google/uuid"

// LeaderboardEntry is a read-mostly projection of player aggregates,
// ordered by total points descending. Rank is positional and recomputed
// by the leaderboard worker, never by request handlers.
type LeaderboardEntry struct {
	PlayerID       uuid.UUID `json:"player_id"`
	Username       string    `json:"username"`
	ClassCode      *string   `json:"class_code,omitempty"`
	TotalPoints    int       `json:"total_points"`
	Level          int       `json:"level"`
	CurrentStreak  int       `json:"current_streak"`
	BadgesCount    int       `json:"badges_count"`
	GamesCompleted int       `json:"games_completed"`
	Rank           int       `json:"rank"`
}
