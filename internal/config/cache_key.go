package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// PlayerSessionKey returns the cache key for a player's login session (JTI).
func (r *CacheKeyStruct) PlayerSessionKey(playerID string) string {
	return fmt.Sprintf("login:player:%s", playerID)
}

// PlayerActiveGameKey returns the cache key for a player's active game session.
func (r *CacheKeyStruct) PlayerActiveGameKey(playerID string) string {
	return fmt.Sprintf("player:%s:active_game", playerID)
}

// LeaderboardKey returns the cache key for the materialized leaderboard JSON.
func (r *CacheKeyStruct) LeaderboardKey() string {
	return "leaderboard:top"
}

// LeaderboardRankKey returns the sorted-set key used for per-player ranks.
func (r *CacheKeyStruct) LeaderboardRankKey() string {
	return "leaderboard:ranks"
}

// DailyChallengeKey returns the cache key for a given date's challenge payload.
func (r *CacheKeyStruct) DailyChallengeKey(date string) string {
	return fmt.Sprintf("challenge:%s", date)
}

// ContentBankKey returns the cache key for a game mode's item bank payload.
func (r *CacheKeyStruct) ContentBankKey(mode string) string {
	return fmt.Sprintf("content:%s:bank", mode)
}

var CacheKey = NewCacheKeyStruct()
