package scoring

import "testing"

func TestListeningScoreBands(t *testing.T) {
	item := Item{ID: "p1", ExpectedAnswer: "Could you repeat that, please?"}

	tests := []struct {
		name       string
		confidence float64
		points     int
		correct    bool
		band       string
	}{
		{"top band at threshold", 80, 10, true, "excellent"},
		{"top band high", 97, 10, true, "excellent"},
		{"good band at threshold", 60, 7, false, "good"},
		{"good band mid", 72, 7, false, "good"},
		{"basic band below", 59, 5, false, "basic"},
		{"basic band zero", 0, 5, false, "basic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ListeningPolicy{}.Score(Signal{Answered: true, Confidence: tt.confidence}, item, Context{})
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

func TestListeningMistakeRecording(t *testing.T) {
	item := Item{ID: "p2", ExpectedAnswer: "Where is the library?"}

	out := ListeningPolicy{}.Score(Signal{Answered: true, Confidence: 65}, item, Context{})
	if out.Mistake == nil {
		t.Fatal("expected a mistake below the correct threshold")
	}
	if out.Mistake.MistakeType != "pronunciation" {
		t.Errorf("mistake type = %q, want pronunciation", out.Mistake.MistakeType)
	}
	if out.Mistake.ExpectedAnswer != item.ExpectedAnswer {
		t.Errorf("expected answer = %q, want %q", out.Mistake.ExpectedAnswer, item.ExpectedAnswer)
	}

	out = ListeningPolicy{}.Score(Signal{Answered: true, Confidence: 90}, item, Context{})
	if out.Mistake != nil {
		t.Error("no mistake expected at the top band")
	}
}

// A full five-phrase run at confidences 85/70/55/40/30 totals 32 points
// with one correct answer.
func TestListeningSessionTotals(t *testing.T) {
	confidences := []float64{85, 70, 55, 40, 30}

	total, correct := 0, 0
	for i, c := range confidences {
		out := ListeningPolicy{}.Score(Signal{Answered: true, Confidence: c}, Item{ID: "p", ExpectedAnswer: "x"}, Context{})
		if out.Points == 0 {
			t.Errorf("phrase %d scored zero", i+1)
		}
		total += out.Points
		if out.Correct {
			correct++
		}
	}
	if total != 32 {
		t.Errorf("total = %d, want 32", total)
	}
	if correct != 1 {
		t.Errorf("correct = %d, want 1", correct)
	}
}
