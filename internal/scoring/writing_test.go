package scoring

import (
	"strings"
	"testing"
)

func TestWordCountScore(t *testing.T) {
	tests := []struct {
		name  string
		count int
		min   int
		max   int
		want  int
	}{
		{"in range low edge", 80, 80, 120, 30},
		{"in range high edge", 120, 80, 120, 30},
		{"half of minimum", 40, 80, 120, 15},
		{"just under minimum", 79, 80, 120, 30},
		{"empty", 0, 80, 120, 0},
		{"ten words over", 130, 80, 120, 20},
		{"thirty words over", 150, 80, 120, 0},
		{"far over floor at zero", 300, 80, 120, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordCountScore(tt.count, tt.min, tt.max)
			if got != tt.want {
				t.Errorf("wordCountScore(%d, %d, %d) = %d, want %d", tt.count, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestTemplateScore(t *testing.T) {
	// Ten content words, none shorter than three letters.
	template := "online learning helps students because flexible schedules reduce commuting costs"

	if got := templateScore(template, template); got != 40 {
		t.Errorf("identical text = %d, want 40", got)
	}
	if got := templateScore("something entirely unrelated written down today", template); got != 0 {
		t.Errorf("unrelated text = %d, want 0", got)
	}

	// Five of the ten content words retained earns half points.
	half := "online learning helps students because they prefer their own pace"
	if got := templateScore(half, template); got != 20 {
		t.Errorf("half retention = %d, want 20", got)
	}
}

func TestTemplateScoreIgnoresShortWords(t *testing.T) {
	// Only "cat" and "sat" survive the length filter.
	if got := templateScore("a cat sat", "is a cat on it sat"); got != 40 {
		t.Errorf("got %d, want 40", got)
	}
}

func TestTimeScore(t *testing.T) {
	tests := []struct {
		name    string
		elapsed int
		target  int
		want    int
	}{
		{"under target", 400, 600, 30},
		{"exactly on target", 600, 600, 30},
		{"under a minute over", 659, 600, 30},
		{"one minute over", 660, 600, 25},
		{"three minutes over", 780, 600, 15},
		{"six minutes over floors at zero", 960, 600, 0},
		{"untimed task", 9999, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timeScore(tt.elapsed, tt.target)
			if got != tt.want {
				t.Errorf("timeScore(%d, %d) = %d, want %d", tt.elapsed, tt.target, got, tt.want)
			}
		})
	}
}

// A 100-word essay reusing six of ten template content words, finished
// on time, scores 30 + 24 + 30 = 84.
func TestWritingScoreComposite(t *testing.T) {
	template := "online learning helps students because flexible schedules reduce commuting costs"
	item := Item{
		ID:            "task-1",
		TemplateText:  template,
		MinWords:      80,
		MaxWords:      120,
		TargetSeconds: 540,
	}

	// Six content words from the template plus filler up to about 100 words.
	essay := "I think online learning truly helps many students because flexible timing suits everyone " +
		strings.Repeat("and additionally some more ideas follow right now ", 11)
	if n := countWords(essay); n < 80 || n > 120 {
		t.Fatalf("essay word count %d outside range", n)
	}

	out := WritingPolicy{}.Score(Signal{Answered: true, Text: essay, ElapsedSeconds: 400}, item, Context{})
	if out.Detail["word_count"] != 30 {
		t.Errorf("word_count = %d, want 30", out.Detail["word_count"])
	}
	if out.Detail["template"] != 24 {
		t.Errorf("template = %d, want 24", out.Detail["template"])
	}
	if out.Detail["time"] != 30 {
		t.Errorf("time = %d, want 30", out.Detail["time"])
	}
	if out.Points != 84 {
		t.Errorf("points = %d, want 84", out.Points)
	}
	if !out.Correct {
		t.Error("84 points should count as correct")
	}
	if out.Band != "good" {
		t.Errorf("band = %q, want good", out.Band)
	}
}

func TestWritingMistakeBelowThreshold(t *testing.T) {
	item := Item{ID: "task-2", TemplateText: "Dear Professor, I am writing to request an extension because of illness.", MinWords: 80, MaxWords: 120, TargetSeconds: 600}

	out := WritingPolicy{}.Score(Signal{Answered: true, Text: "too short", ElapsedSeconds: 100}, item, Context{})
	if out.Correct {
		t.Error("short unrelated answer must not be correct")
	}
	if out.Mistake == nil || out.Mistake.MistakeType != "structure" {
		t.Errorf("mistake = %+v, want structure", out.Mistake)
	}
}
