package scoring

import "math/rand/v2"

// Recognizer turns a raw recording reference into scoring signals. The
// production build does not ship a speech backend, so RandomRecognizer
// stands in until one is wired.
type Recognizer interface {
	// RecognizeConfidence estimates pronunciation confidence (0-100)
	// for a spoken phrase.
	RecognizeConfidence(phrase string) int
	// DetectKeywords reports which of the expected keywords were heard
	// in the recording.
	DetectKeywords(expected []string) []string
}

// RandomRecognizer emulates a speech backend with plausible random
// output. Confidence lands between 60 and 100 and roughly three
// quarters of the expected keywords are detected.
type RandomRecognizer struct{}

func (RandomRecognizer) RecognizeConfidence(string) int {
	return 60 + rand.IntN(41)
}

func (RandomRecognizer) DetectKeywords(expected []string) []string {
	var detected []string
	for _, kw := range expected {
		if rand.Float64() < 0.75 {
			detected = append(detected, kw)
		}
	}
	return detected
}

// StaticRecognizer returns fixed values, for deterministic tests.
type StaticRecognizer struct {
	Confidence int
	Keywords   []string
}

func (s StaticRecognizer) RecognizeConfidence(string) int { return s.Confidence }

func (s StaticRecognizer) DetectKeywords([]string) []string { return s.Keywords }
