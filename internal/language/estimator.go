// Package language estimates the language mixture of code-mixed
// Indonesian/English text by dictionary lookup over fixed wordlists.
// The estimate is deterministic: identical input always produces an
// identical breakdown.
package language

import "strings"

const (
	KeyIndonesian = "indonesian"
	KeyEnglish    = "english"
	KeyMixed      = "mixed"
)

// Estimator produces a three-way language breakdown. It satisfies the
// orchestrator's LanguageMixEstimator dependency and can be swapped for
// a real detector without touching the analysis flow.
type Estimator struct{}

func NewEstimator() *Estimator {
	return &Estimator{}
}

// EstimateMix classifies each whitespace token against the two
// wordlists. Tokens recognized by exactly one list count toward that
// language; everything else (unknown tokens, or tokens in both lists)
// falls into the mixed bucket. The fractions are token counts over the
// total, so they are non-negative and sum to 1. Text with no tokens is
// reported as fully mixed.
func (e *Estimator) EstimateMix(text string) map[string]float64 {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return map[string]float64{
			KeyIndonesian: 0,
			KeyEnglish:    0,
			KeyMixed:      1,
		}
	}

	var indonesian, english, mixed int
	for _, token := range tokens {
		_, id := indonesianWords[token]
		_, en := englishWords[token]

		switch {
		case id && !en:
			indonesian++
		case en && !id:
			english++
		default:
			mixed++
		}
	}

	total := float64(len(tokens))
	return map[string]float64{
		KeyIndonesian: float64(indonesian) / total,
		KeyEnglish:    float64(english) / total,
		KeyMixed:      float64(mixed) / total,
	}
}
