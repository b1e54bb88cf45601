package scoring

import "github.com/lokalingo/toeflplay-backend/internal/model"

const (
	readingPracticePoints  = 20
	readingChallengePoints = 30
	readingStreakBonus     = 10

	// Bonus kicks in from the second consecutive correct answer.
	readingStreakThreshold = 2
)

// ReadingPolicy scores multiple-choice structure questions. Round kind
// decides the base points and a running correct streak adds a bonus.
type ReadingPolicy struct{}

func (ReadingPolicy) Mode() model.GameMode { return model.ModeReading }

func (ReadingPolicy) MaxPoints(item Item) int {
	if item.Round == model.RoundChallenge {
		return readingChallengePoints + readingStreakBonus
	}
	return readingPracticePoints + readingStreakBonus
}

func (ReadingPolicy) AllowRetry() bool { return false }

func (ReadingPolicy) Score(sig Signal, item Item, ctx Context) Outcome {
	correct := sig.Answered && sig.OptionID != "" && sig.OptionID == item.CorrectOptionID
	if !correct {
		return Outcome{
			Band: "wrong",
			Mistake: &model.Mistake{
				ExpectedAnswer: item.CorrectOptionID,
				UserAnswer:     sig.OptionID,
				MistakeType:    "wrong_option",
			},
		}
	}

	points := readingPracticePoints
	if item.Round == model.RoundChallenge {
		points = readingChallengePoints
	}
	band := "correct"
	if ctx.Streak >= readingStreakThreshold {
		points += readingStreakBonus
		band = "streak"
	}
	return Outcome{Points: points, Correct: true, Band: band}
}
