package scoring

import "testing"

func TestRandomRecognizerConfidenceRange(t *testing.T) {
	r := RandomRecognizer{}
	for i := 0; i < 1000; i++ {
		c := r.RecognizeConfidence("the sky is blue")
		if c < 60 || c > 100 {
			t.Fatalf("confidence %d outside [60,100]", c)
		}
	}
}

func TestRandomRecognizerKeywordsAreSubset(t *testing.T) {
	expected := []string{"opinion", "because", "example", "conclusion"}
	allowed := make(map[string]bool, len(expected))
	for _, kw := range expected {
		allowed[kw] = true
	}

	r := RandomRecognizer{}
	for i := 0; i < 100; i++ {
		for _, kw := range r.DetectKeywords(expected) {
			if !allowed[kw] {
				t.Fatalf("detected keyword %q not among expected", kw)
			}
		}
	}
}
