package model

import (
	"time"

	"github.com/google/uuid"
)

// Progress is a per-player, per-skill mastery row. Mutated only at
// session finalization.
type Progress struct {
	ID               uuid.UUID  `json:"id"`
	PlayerID         uuid.UUID  `json:"player_id"`
	SkillType        SkillType  `json:"skill_type"`
	ExperiencePoints int        `json:"experience_points"`
	PracticeCount    int        `json:"practice_count"`
	MasteryPercent   float64    `json:"mastery_percentage"`
	LastPracticedAt  *time.Time `json:"last_practiced_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
