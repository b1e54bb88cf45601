package scoring

import "github.com/lokalingo/toeflplay-backend/internal/model"

// Listening point bands by speech-match confidence.
const (
	listeningMaxPoints   = 10
	listeningGoodPoints  = 7
	listeningBasicPoints = 5

	listeningCorrectThreshold = 80.0
	listeningGoodThreshold    = 60.0
)

// ListeningPolicy scores echo attempts: the recognizer supplies a
// confidence in [0,100], banded into 10/7/5 points. An attempt counts as
// correct only at the top band; anything lower records a pronunciation
// mistake but still earns points.
type ListeningPolicy struct{}

func (ListeningPolicy) Mode() model.GameMode { return model.ModeListening }

func (ListeningPolicy) MaxPoints(Item) int { return listeningMaxPoints }

func (ListeningPolicy) AllowRetry() bool { return true }

func (ListeningPolicy) Score(sig Signal, item Item, _ Context) Outcome {
	switch {
	case sig.Confidence >= listeningCorrectThreshold:
		return Outcome{
			Points:  listeningMaxPoints,
			Correct: true,
			Band:    "excellent",
		}
	case sig.Confidence >= listeningGoodThreshold:
		return Outcome{
			Points: listeningGoodPoints,
			Band:   "good",
			Mistake: &model.Mistake{
				ExpectedAnswer: item.ExpectedAnswer,
				UserAnswer:     "Recording",
				MistakeType:    "pronunciation",
			},
		}
	default:
		return Outcome{
			Points: listeningBasicPoints,
			Band:   "basic",
			Mistake: &model.Mistake{
				ExpectedAnswer: item.ExpectedAnswer,
				UserAnswer:     "Recording",
				MistakeType:    "pronunciation",
			},
		}
	}
}
