package scoring

import (
	"math"
	"strings"

	"github.com/lokalingo/toeflplay-backend/internal/model"
)

const (
	writingWordCountPoints = 30
	writingTemplatePoints  = 40
	writingTimePoints      = 30

	// Each full minute over the target costs five time points.
	writingOvertimePenalty = 5
)

// WritingPolicy grades an essay on three axes: word count against the
// task's range, retention of the template's content words, and time
// spent relative to the task target.
type WritingPolicy struct{}

func (WritingPolicy) Mode() model.GameMode { return model.ModeWriting }

func (WritingPolicy) MaxPoints(Item) int {
	return writingWordCountPoints + writingTemplatePoints + writingTimePoints
}

func (WritingPolicy) AllowRetry() bool { return false }

func (WritingPolicy) Score(sig Signal, item Item, _ Context) Outcome {
	wordScore := wordCountScore(countWords(sig.Text), item.MinWords, item.MaxWords)
	templateScore := templateScore(sig.Text, item.TemplateText)
	timeScore := timeScore(sig.ElapsedSeconds, item.TargetSeconds)

	total := wordScore + templateScore + timeScore
	out := Outcome{
		Points:  total,
		Correct: total >= 60,
		Band:    writingBand(total),
		Detail: map[string]int{
			"word_count": wordScore,
			"template":   templateScore,
			"time":       timeScore,
		},
	}
	if !out.Correct {
		out.Mistake = &model.Mistake{
			ExpectedAnswer: item.TemplateText,
			UserAnswer:     sig.Text,
			MistakeType:    "structure",
		}
	}
	return out
}

func writingBand(total int) string {
	switch {
	case total >= 85:
		return "excellent"
	case total >= 60:
		return "good"
	default:
		return "basic"
	}
}

func wordCountScore(count, minWords, maxWords int) int {
	switch {
	case count < minWords:
		if minWords == 0 {
			return writingWordCountPoints
		}
		return int(math.Round(float64(count) / float64(minWords) * writingWordCountPoints))
	case maxWords > 0 && count > maxWords:
		score := writingWordCountPoints - (count - maxWords)
		if score < 0 {
			return 0
		}
		return score
	default:
		return writingWordCountPoints
	}
}

// templateScore rewards reuse of the template's content words. Words
// shorter than three letters are ignored so articles and fillers do not
// count.
func templateScore(answer, template string) int {
	wanted := contentWords(template)
	if len(wanted) == 0 {
		return writingTemplatePoints
	}
	have := make(map[string]bool)
	for _, w := range contentWords(answer) {
		have[w] = true
	}
	found := 0
	for _, w := range wanted {
		if have[w] {
			found++
		}
	}
	ratio := float64(found) / float64(len(wanted))
	return int(math.Round(ratio * writingTemplatePoints))
}

func timeScore(elapsed, target int) int {
	if target <= 0 || elapsed <= target {
		return writingTimePoints
	}
	penalty := writingOvertimePenalty * ((elapsed - target) / 60)
	if penalty >= writingTimePoints {
		return 0
	}
	return writingTimePoints - penalty
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

func contentWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,!?;:\"'()[]{}")
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}
