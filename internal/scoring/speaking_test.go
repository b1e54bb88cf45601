package scoring

import "testing"

func TestSpeakingScoreBands(t *testing.T) {
	item := Item{
		ID:               "prompt-1",
		ExpectedAnswer:   "I think online learning is effective because it is flexible.",
		ExpectedKeywords: []string{"think", "because", "effective", "flexible", "learning"},
	}

	tests := []struct {
		name     string
		detected []string
		seconds  int
		points   int
		correct  bool
		band     string
	}{
		{
			name:     "full coverage in window",
			detected: []string{"think", "because", "effective", "flexible", "learning"},
			seconds:  40,
			points:   50, correct: true, band: "perfect",
		},
		{
			name:     "four of five in window",
			detected: []string{"think", "because", "effective", "flexible"},
			seconds:  35,
			points:   50, correct: true, band: "perfect",
		},
		{
			name:     "full coverage but too short",
			detected: []string{"think", "because", "effective", "flexible", "learning"},
			seconds:  20,
			points:   35, correct: true, band: "good",
		},
		{
			name:     "three of five",
			detected: []string{"think", "because", "effective"},
			seconds:  40,
			points:   35, correct: true, band: "good",
		},
		{
			name:     "two of five",
			detected: []string{"think", "because"},
			seconds:  40,
			points:   20, correct: false, band: "basic",
		},
		{
			name:     "nothing detected",
			detected: nil,
			seconds:  45,
			points:   20, correct: false, band: "basic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Signal{Answered: true, DetectedKeywords: tt.detected, RecordingSeconds: tt.seconds}
			out := SpeakingPolicy{}.Score(sig, item, Context{})
			if out.Points != tt.points {
				t.Errorf("points = %d, want %d", out.Points, tt.points)
			}
			if out.Correct != tt.correct {
				t.Errorf("correct = %v, want %v", out.Correct, tt.correct)
			}
			if out.Band != tt.band {
				t.Errorf("band = %q, want %q", out.Band, tt.band)
			}
		})
	}
}

func TestSpeakingKeywordMatchCaseInsensitive(t *testing.T) {
	got := keywordMatchRatio([]string{"Think", "BECAUSE"}, []string{"think", "because", "flexible", "learning"})
	if got != 0.5 {
		t.Errorf("ratio = %v, want 0.5", got)
	}
}

func TestSpeakingMistakeBelowGood(t *testing.T) {
	item := Item{
		ExpectedAnswer:   "In my opinion, studying abroad is worthwhile.",
		ExpectedKeywords: []string{"opinion", "studying", "abroad", "worthwhile"},
	}
	out := SpeakingPolicy{}.Score(Signal{Answered: true, DetectedKeywords: []string{"opinion"}, RecordingSeconds: 40}, item, Context{})
	if out.Mistake == nil {
		t.Fatal("expected a mistake at the basic band")
	}
	if out.Mistake.MistakeType != "template_mismatch" {
		t.Errorf("mistake type = %q, want template_mismatch", out.Mistake.MistakeType)
	}
	if out.Mistake.ExpectedAnswer != item.ExpectedAnswer {
		t.Errorf("expected answer = %q, want %q", out.Mistake.ExpectedAnswer, item.ExpectedAnswer)
	}

	out = SpeakingPolicy{}.Score(Signal{Answered: true, DetectedKeywords: item.ExpectedKeywords[:3], RecordingSeconds: 10}, item, Context{})
	if out.Mistake != nil {
		t.Error("no mistake expected at the good band")
	}
}
