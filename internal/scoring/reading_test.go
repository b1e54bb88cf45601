package scoring

import (
	"testing"

	"github.com/lokalingo/toeflplay-backend/internal/model"
)

func TestReadingScore(t *testing.T) {
	practice := Item{ID: "q1", Round: model.RoundPractice, CorrectOptionID: "b", ExpectedAnswer: "b"}
	challenge := Item{ID: "q2", Round: model.RoundChallenge, CorrectOptionID: "c", ExpectedAnswer: "c"}

	tests := []struct {
		name    string
		item    Item
		sig     Signal
		ctx     Context
		points  int
		correct bool
		band    string
	}{
		{"practice correct", practice, Signal{Answered: true, OptionID: "b"}, Context{}, 20, true, "correct"},
		{"challenge correct", challenge, Signal{Answered: true, OptionID: "c"}, Context{}, 30, true, "correct"},
		{"practice with streak bonus", practice, Signal{Answered: true, OptionID: "b"}, Context{Streak: 2}, 30, true, "streak"},
		{"challenge with streak bonus", challenge, Signal{Answered: true, OptionID: "c"}, Context{Streak: 4}, 40, true, "streak"},
		{"streak one no bonus", practice, Signal{Answered: true, OptionID: "b"}, Context{Streak: 1}, 20, true, "correct"},
		{"wrong option", practice, Signal{Answered: true, OptionID: "a"}, Context{Streak: 3}, 0, false, "wrong"},
		{"timeout", practice, Signal{Answered: false}, Context{}, 0, false, "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ReadingPolicy{}.Score(tt.sig, tt.item, tt.ctx)
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

func TestReadingMistake(t *testing.T) {
	item := Item{ID: "q3", Round: model.RoundPractice, CorrectOptionID: "d", ExpectedAnswer: "d"}

	out := ReadingPolicy{}.Score(Signal{Answered: true, OptionID: "a"}, item, Context{})
	if out.Mistake == nil {
		t.Fatal("expected a mistake for a wrong option")
	}
	if out.Mistake.UserAnswer != "a" || out.Mistake.ExpectedAnswer != "d" {
		t.Errorf("mistake = %+v", out.Mistake)
	}
	if out.Mistake.MistakeType != "wrong_option" {
		t.Errorf("mistake type = %q, want wrong_option", out.Mistake.MistakeType)
	}
}

func TestReadingNoRetry(t *testing.T) {
	if (ReadingPolicy{}).AllowRetry() {
		t.Error("reading must not allow retries")
	}
}
