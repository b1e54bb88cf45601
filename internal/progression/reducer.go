// Package progression folds finished game sessions into player
// aggregates. The reducer is pure: it takes the current profile state
// and a session summary and returns the next state plus newly earned
// badges. Persistence of the result is the service layer's job.
package progression

import (
	"time"

	"github.com/google/uuid"

	"github.com/lokalingo/toeflplay-backend/internal/game"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

const pointsPerLevel = 100

// Profile is the mutable slice of player state the reducer operates on.
type Profile struct {
	Level          int
	TotalPoints    int
	CurrentStreak  int
	LongestStreak  int
	GamesCompleted int
	LastPlayedAt   *time.Time

	// Skills maps skill type to its mastery row; missing skills are
	// created at zero.
	Skills map[model.SkillType]model.Progress

	// EarnedBadgeIDs is the set of badges already held.
	EarnedBadgeIDs map[uuid.UUID]bool
}

// Result is the post-finalization state.
type Result struct {
	Profile       Profile
	PointsEarned  int
	Accuracy      float64
	LeveledUp     bool
	LevelProgress int
	NewBadges     []model.Badge
}

// Level derives a level from a points total. Levels start at 1 and step
// every hundred points.
func Level(totalPoints int) int {
	return totalPoints/pointsPerLevel + 1
}

// LevelProgress is the points accumulated toward the next level.
func LevelProgress(totalPoints int) int {
	return totalPoints % pointsPerLevel
}

// Finalize applies one finished session to a profile. The badge catalog
// is evaluated against the updated state; badges already in
// EarnedBadgeIDs are never returned again. Callers must not finalize
// the same session twice (the session store enforces this with a
// completion guard).
func Finalize(p Profile, sum game.Summary, catalog []model.Badge, now time.Time) Result {
	next := cloneProfile(p)

	next.TotalPoints += sum.Score
	prevLevel := Level(p.TotalPoints)
	next.Level = Level(next.TotalPoints)
	next.GamesCompleted++

	next.CurrentStreak = nextStreak(p.CurrentStreak, p.LastPlayedAt, now)
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	playedAt := now
	next.LastPlayedAt = &playedAt

	skill := model.SkillType(sum.Mode)
	row := next.Skills[skill]
	row.SkillType = skill
	row.PracticeCount++
	row.ExperiencePoints += sum.Score
	row.MasteryPercent = masteryPercent(row.MasteryPercent, sum.Accuracy)
	row.LastPracticedAt = &playedAt
	next.Skills[skill] = row

	var earned []model.Badge
	for _, b := range catalog {
		if next.EarnedBadgeIDs[b.ID] {
			continue
		}
		if badgeUnlocked(b, next) {
			next.EarnedBadgeIDs[b.ID] = true
			next.TotalPoints += b.PointsReward
			earned = append(earned, b)
		}
	}
	// Reward points can tip another level.
	next.Level = Level(next.TotalPoints)

	return Result{
		Profile:       next,
		PointsEarned:  sum.Score,
		Accuracy:      sum.Accuracy,
		LeveledUp:     next.Level > prevLevel,
		LevelProgress: LevelProgress(next.TotalPoints),
		NewBadges:     earned,
	}
}

// nextStreak applies the daily-streak rule on UTC calendar days:
// unchanged when today already counted, +1 when the last play was
// yesterday, otherwise reset to 1.
func nextStreak(current int, lastPlayed *time.Time, now time.Time) int {
	if lastPlayed == nil || current == 0 {
		return 1
	}
	today := utcDay(now)
	last := utcDay(*lastPlayed)
	switch today.Sub(last) / (24 * time.Hour) {
	case 0:
		return current
	case 1:
		return current + 1
	default:
		return 1
	}
}

func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// masteryPercent tracks a running blend of session accuracies, weighted
// toward history so one outlier session does not swing it.
func masteryPercent(prev, accuracy float64) float64 {
	if prev == 0 {
		return accuracy
	}
	return prev*0.7 + accuracy*0.3
}

func badgeUnlocked(b model.Badge, p Profile) bool {
	switch b.UnlockRule {
	case model.UnlockTotalPoints:
		return p.TotalPoints >= b.Threshold
	case model.UnlockStreakDays:
		return p.CurrentStreak >= b.Threshold
	case model.UnlockGamesCompleted:
		return p.GamesCompleted >= b.Threshold
	case model.UnlockSkillPractice:
		if b.Skill == nil {
			return false
		}
		return p.Skills[*b.Skill].PracticeCount >= b.Threshold
	}
	return false
}

func cloneProfile(p Profile) Profile {
	next := p
	next.Skills = make(map[model.SkillType]model.Progress, len(p.Skills)+1)
	for k, v := range p.Skills {
		next.Skills[k] = v
	}
	next.EarnedBadgeIDs = make(map[uuid.UUID]bool, len(p.EarnedBadgeIDs)+1)
	for k := range p.EarnedBadgeIDs {
		next.EarnedBadgeIDs[k] = true
	}
	return next
}
