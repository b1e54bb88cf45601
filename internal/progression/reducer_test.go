package progression

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lokalingo/toeflplay-backend/internal/game"
	"github.com/lokalingo/toeflplay-backend/internal/model"
)

var testNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func freshProfile() Profile {
	return Profile{
		Level:          1,
		Skills:         map[model.SkillType]model.Progress{},
		EarnedBadgeIDs: map[uuid.UUID]bool{},
	}
}

func summary(mode model.GameMode, score int, accuracy float64) game.Summary {
	return game.Summary{Mode: mode, Score: score, Accuracy: accuracy}
}

func TestLevelCurve(t *testing.T) {
	tests := []struct {
		points   int
		level    int
		progress int
	}{
		{0, 1, 0},
		{99, 1, 99},
		{100, 2, 0},
		{250, 3, 50},
		{1000, 11, 0},
	}
	for _, tt := range tests {
		if got := Level(tt.points); got != tt.level {
			t.Errorf("Level(%d) = %d, want %d", tt.points, got, tt.level)
		}
		if got := LevelProgress(tt.points); got != tt.progress {
			t.Errorf("LevelProgress(%d) = %d, want %d", tt.points, got, tt.progress)
		}
	}
}

func TestFinalizeAccumulatesPoints(t *testing.T) {
	p := freshProfile()
	res := Finalize(p, summary(model.ModeListening, 32, 20), nil, testNow)

	if res.Profile.TotalPoints != 32 {
		t.Errorf("total points = %d, want 32", res.Profile.TotalPoints)
	}
	if res.PointsEarned != 32 {
		t.Errorf("points earned = %d, want 32", res.PointsEarned)
	}
	if res.Profile.Level != 1 || res.LeveledUp {
		t.Errorf("level = %d leveledUp = %v, want 1/false", res.Profile.Level, res.LeveledUp)
	}

	res2 := Finalize(res.Profile, summary(model.ModeReading, 70, 100), nil, testNow)
	if res2.Profile.TotalPoints != 102 {
		t.Errorf("total points = %d, want 102", res2.Profile.TotalPoints)
	}
	if res2.Profile.Level != 2 || !res2.LeveledUp {
		t.Errorf("level = %d leveledUp = %v, want 2/true", res2.Profile.Level, res2.LeveledUp)
	}
	if res2.LevelProgress != 2 {
		t.Errorf("level progress = %d, want 2", res2.LevelProgress)
	}
}

func TestFinalizeDoesNotMutateInput(t *testing.T) {
	p := freshProfile()
	p.TotalPoints = 50
	p.Skills[model.SkillListening] = model.Progress{SkillType: model.SkillListening, PracticeCount: 3}

	Finalize(p, summary(model.ModeListening, 10, 50), nil, testNow)

	if p.TotalPoints != 50 {
		t.Errorf("input total points mutated to %d", p.TotalPoints)
	}
	if p.Skills[model.SkillListening].PracticeCount != 3 {
		t.Errorf("input skill row mutated: %+v", p.Skills[model.SkillListening])
	}
	if p.LastPlayedAt != nil {
		t.Error("input last played mutated")
	}
}

func TestStreakRules(t *testing.T) {
	yesterday := testNow.Add(-24 * time.Hour)
	earlierToday := testNow.Add(-3 * time.Hour)
	threeDaysAgo := testNow.Add(-72 * time.Hour)
	// 01:00 UTC today vs 23:00 UTC yesterday is one calendar day apart.
	lateLastNight := time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		current int
		last    *time.Time
		want    int
	}{
		{"first ever play", 0, nil, 1},
		{"played yesterday", 4, &yesterday, 5},
		{"already played today", 4, &earlierToday, 4},
		{"gap of three days resets", 9, &threeDaysAgo, 1},
		{"calendar day not 24h window", 2, &lateLastNight, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := freshProfile()
			p.CurrentStreak = tt.current
			p.LastPlayedAt = tt.last
			res := Finalize(p, summary(model.ModeSpeaking, 35, 100), nil, testNow)
			if res.Profile.CurrentStreak != tt.want {
				t.Errorf("streak = %d, want %d", res.Profile.CurrentStreak, tt.want)
			}
		})
	}
}

func TestLongestStreakHighWater(t *testing.T) {
	yesterday := testNow.Add(-24 * time.Hour)
	p := freshProfile()
	p.CurrentStreak = 6
	p.LongestStreak = 6
	p.LastPlayedAt = &yesterday

	res := Finalize(p, summary(model.ModeWriting, 84, 100), nil, testNow)
	if res.Profile.CurrentStreak != 7 || res.Profile.LongestStreak != 7 {
		t.Errorf("streaks = %d/%d, want 7/7", res.Profile.CurrentStreak, res.Profile.LongestStreak)
	}

	// A reset never shrinks the high-water mark.
	old := testNow.Add(-96 * time.Hour)
	p.LastPlayedAt = &old
	res = Finalize(p, summary(model.ModeWriting, 10, 50), nil, testNow)
	if res.Profile.CurrentStreak != 1 || res.Profile.LongestStreak != 6 {
		t.Errorf("streaks = %d/%d, want 1/6", res.Profile.CurrentStreak, res.Profile.LongestStreak)
	}
}

func TestSkillMasteryCounters(t *testing.T) {
	p := freshProfile()
	res := Finalize(p, summary(model.ModeReading, 70, 100), nil, testNow)

	row := res.Profile.Skills[model.SkillReading]
	if row.PracticeCount != 1 {
		t.Errorf("practice count = %d, want 1", row.PracticeCount)
	}
	if row.ExperiencePoints != 70 {
		t.Errorf("experience = %d, want 70", row.ExperiencePoints)
	}
	if row.MasteryPercent != 100 {
		t.Errorf("mastery = %v, want 100", row.MasteryPercent)
	}
	if row.LastPracticedAt == nil {
		t.Error("last practiced not set")
	}

	res2 := Finalize(res.Profile, summary(model.ModeReading, 20, 50), nil, testNow)
	row2 := res2.Profile.Skills[model.SkillReading]
	if row2.PracticeCount != 2 || row2.ExperiencePoints != 90 {
		t.Errorf("counters = %d/%d, want 2/90", row2.PracticeCount, row2.ExperiencePoints)
	}
	if row2.MasteryPercent != 85 {
		t.Errorf("mastery = %v, want 85 (70%% history, 30%% session)", row2.MasteryPercent)
	}
}

func TestBadgeUnlocks(t *testing.T) {
	reading := model.SkillReading
	catalog := []model.Badge{
		{ID: uuid.New(), Name: "First Steps", UnlockRule: model.UnlockGamesCompleted, Threshold: 1},
		{ID: uuid.New(), Name: "Century", UnlockRule: model.UnlockTotalPoints, Threshold: 100},
		{ID: uuid.New(), Name: "Bookworm", UnlockRule: model.UnlockSkillPractice, Threshold: 2, Skill: &reading},
		{ID: uuid.New(), Name: "Week Streak", UnlockRule: model.UnlockStreakDays, Threshold: 7},
	}

	p := freshProfile()
	res := Finalize(p, summary(model.ModeReading, 70, 100), catalog, testNow)
	if len(res.NewBadges) != 1 || res.NewBadges[0].Name != "First Steps" {
		t.Fatalf("new badges = %v", badgeNames(res.NewBadges))
	}

	res2 := Finalize(res.Profile, summary(model.ModeReading, 40, 80), catalog, testNow)
	got := badgeNames(res2.NewBadges)
	if len(got) != 2 || got[0] != "Century" || got[1] != "Bookworm" {
		t.Fatalf("new badges = %v, want [Century Bookworm]", got)
	}

	// Nothing re-unlocks.
	res3 := Finalize(res2.Profile, summary(model.ModeReading, 40, 80), catalog, testNow)
	if len(res3.NewBadges) != 0 {
		t.Errorf("badges unlocked twice: %v", badgeNames(res3.NewBadges))
	}
}

func TestBadgeRewardPointsCount(t *testing.T) {
	catalog := []model.Badge{
		{ID: uuid.New(), Name: "First Steps", UnlockRule: model.UnlockGamesCompleted, Threshold: 1, PointsReward: 50},
	}
	p := freshProfile()
	p.TotalPoints = 60

	res := Finalize(p, summary(model.ModeListening, 10, 100), catalog, testNow)
	if res.Profile.TotalPoints != 120 {
		t.Errorf("total points = %d, want 120 (60 + 10 + 50 reward)", res.Profile.TotalPoints)
	}
	if res.Profile.Level != 2 || !res.LeveledUp {
		t.Errorf("reward points should level up: level=%d leveledUp=%v", res.Profile.Level, res.LeveledUp)
	}
}

func badgeNames(badges []model.Badge) []string {
	names := make([]string, 0, len(badges))
	for _, b := range badges {
		names = append(names, b.Name)
	}
	return names
}
