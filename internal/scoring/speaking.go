package scoring

import (
	"strings"

	"github.com/lokalingo/toeflplay-backend/internal/model"
)

// Speaking bands: keyword coverage combined with a recording-length fit
// around the 45s target.
const (
	speakingPerfectPoints = 50
	speakingGoodPoints    = 35
	speakingBasicPoints   = 20

	speakingPerfectRatio = 0.8
	speakingGoodRatio    = 0.6

	speakingMinDuration = 30
	speakingMaxDuration = 50
)

// SpeakingPolicy scores template-based answers from the recognizer's
// detected keyword set and the recording duration.
type SpeakingPolicy struct{}

func (SpeakingPolicy) Mode() model.GameMode { return model.ModeSpeaking }

func (SpeakingPolicy) MaxPoints(Item) int { return speakingPerfectPoints }

func (SpeakingPolicy) AllowRetry() bool { return true }

func (SpeakingPolicy) Score(sig Signal, item Item, _ Context) Outcome {
	ratio := keywordMatchRatio(sig.DetectedKeywords, item.ExpectedKeywords)
	timingFit := sig.RecordingSeconds >= speakingMinDuration && sig.RecordingSeconds <= speakingMaxDuration

	var points int
	var band string
	switch {
	case ratio >= speakingPerfectRatio && timingFit:
		points, band = speakingPerfectPoints, "perfect"
	case ratio >= speakingGoodRatio:
		points, band = speakingGoodPoints, "good"
	default:
		points, band = speakingBasicPoints, "basic"
	}

	out := Outcome{
		Points:  points,
		Correct: points >= speakingGoodPoints,
		Band:    band,
		Detail: map[string]int{
			"keywords_detected": matchedKeywordCount(sig.DetectedKeywords, item.ExpectedKeywords),
			"keywords_expected": len(item.ExpectedKeywords),
		},
	}

	if points < speakingGoodPoints {
		out.Mistake = &model.Mistake{
			ExpectedAnswer: item.ExpectedAnswer,
			UserAnswer:     "Recording",
			MistakeType:    "template_mismatch",
		}
	}
	return out
}

// keywordMatchRatio is |detected ∩ expected| / |expected|, case-insensitive.
// An item without expected keywords matches fully.
func keywordMatchRatio(detected, expected []string) float64 {
	if len(expected) == 0 {
		return 1
	}
	return float64(matchedKeywordCount(detected, expected)) / float64(len(expected))
}

func matchedKeywordCount(detected, expected []string) int {
	seen := make(map[string]bool, len(detected))
	for _, kw := range detected {
		seen[strings.ToLower(kw)] = true
	}
	matched := 0
	for _, kw := range expected {
		if seen[strings.ToLower(kw)] {
			matched++
		}
	}
	return matched
}
