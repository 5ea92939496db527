// Package sentiment implements the rule-based fallback scorer used when
// the remote classifier is unreachable.
package sentiment

import (
	"strings"

	"github.com/sentimenhq/sentimen/internal/models"
)

const (
	baseConfidence = 0.5
	perHitBoost    = 0.1
	maxConfidence  = 0.9
)

type Result struct {
	Label      models.Sentiment
	Confidence float64
	Scores     map[models.Sentiment]float64
}

// Score counts lexicon hits in the lowercased text and derives a label,
// a confidence, and a per-class score triple. The triple always sums to
// 1: the winning label takes the confidence and the remainder is split
// evenly between the other two labels. Ties, including no hits at all,
// are neutral at exactly 0.5.
func Score(text string) Result {
	lower := strings.ToLower(text)

	var positiveCount, negativeCount int
	for _, word := range positiveWords {
		positiveCount += strings.Count(lower, word)
	}
	for _, word := range negativeWords {
		negativeCount += strings.Count(lower, word)
	}

	var label models.Sentiment
	var confidence float64

	switch {
	case positiveCount > negativeCount:
		label = models.SentimentPositive
		confidence = boosted(positiveCount)
	case negativeCount > positiveCount:
		label = models.SentimentNegative
		confidence = boosted(negativeCount)
	default:
		label = models.SentimentNeutral
		confidence = baseConfidence
	}

	rest := (1 - confidence) / 2
	scores := map[models.Sentiment]float64{
		models.SentimentPositive: rest,
		models.SentimentNegative: rest,
		models.SentimentNeutral:  rest,
	}
	scores[label] = confidence

	return Result{
		Label:      label,
		Confidence: confidence,
		Scores:     scores,
	}
}

func boosted(hits int) float64 {
	confidence := baseConfidence + perHitBoost*float64(hits)
	if confidence > maxConfidence {
		return maxConfidence
	}
	return confidence
}
