package model

import (
	"time"

	"github.com/google/uuid"
)

// BadgeCategory groups badges on the dashboard.
type BadgeCategory string

const (
	BadgeCategoryMilestone BadgeCategory = "milestone"
	BadgeCategoryStreak    BadgeCategory = "streak"
	BadgeCategoryMastery   BadgeCategory = "mastery"
	BadgeCategorySpecial   BadgeCategory = "special"
)

// BadgeRarity controls badge display tiering.
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// UnlockRule enumerates the supported badge unlock conditions.
type UnlockRule string

const (
	UnlockTotalPoints    UnlockRule = "total_points"
	UnlockStreakDays     UnlockRule = "streak_days"
	UnlockGamesCompleted UnlockRule = "games_completed"
	UnlockSkillPractice  UnlockRule = "skill_practice_count"
)

// Badge is a catalog entry. Unlock evaluation happens in the progression
// reducer against UnlockRule + Threshold (and Skill for skill-bound rules).
type Badge struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"badge_name"`
	Description  string        `json:"badge_description"`
	Icon         string        `json:"badge_icon"`
	Category     BadgeCategory `json:"badge_category"`
	Rarity       BadgeRarity   `json:"rarity"`
	UnlockRule   UnlockRule    `json:"unlock_rule"`
	Threshold    int           `json:"unlock_threshold"`
	Skill        *SkillType    `json:"unlock_skill,omitempty"`
	PointsReward int           `json:"points_reward"`
	OrderIndex   int           `json:"order_index"`
	CreatedAt    time.Time     `json:"created_at"`
}

// PlayerBadge links a player to an earned badge.
type PlayerBadge struct {
	ID       uuid.UUID `json:"id"`
	PlayerID uuid.UUID `json:"player_id"`
	BadgeID  uuid.UUID `json:"badge_id"`
	Badge    *Badge    `json:"badge,omitempty"`
	EarnedAt time.Time `json:"earned_at"`
}

// CreateBadgeRequest is the payload for adding a badge to the catalog.
type CreateBadgeRequest struct {
	Name         string `json:"badge_name" binding:"required,min=2,max=80"`
	Description  string `json:"badge_description" binding:"required,max=400"`
	Icon         string `json:"badge_icon" binding:"required,max=16"`
	Category     string `json:"badge_category" binding:"required,oneof=milestone streak mastery special"`
	Rarity       string `json:"rarity" binding:"required,oneof=common rare epic legendary"`
	UnlockRule   string `json:"unlock_rule" binding:"required,oneof=total_points streak_days games_completed skill_practice_count"`
	Threshold    int    `json:"unlock_threshold" binding:"required,min=1"`
	Skill        string `json:"unlock_skill" binding:"omitempty,oneof=listening speaking reading writing vocabulary"`
	PointsReward int    `json:"points_reward" binding:"min=0"`
	OrderIndex   int    `json:"order_index" binding:"min=0"`
}
