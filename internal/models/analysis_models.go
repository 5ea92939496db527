package models

import (
	"math"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// ScoreSumTolerance is the allowed drift when a score or language
// breakdown is checked against a total of 1.0.
const ScoreSumTolerance = 1e-6

// SentimentAnalysis is one completed analysis of a TextSample. A sample
// has at most one live analysis; re-analysis replaces the record rather
// than merging into it.
type SentimentAnalysis struct {
	ID                string                `json:"id"`
	TextSampleID      string                `json:"text_sample_id"`
	OriginalText      string                `json:"original_text"`
	ProcessedText     string                `json:"processed_text"`
	Sentiment         Sentiment             `json:"sentiment"`
	ConfidenceScore   float64               `json:"confidence_score"`
	SentimentScores   map[Sentiment]float64 `json:"sentiment_scores"`
	LanguageBreakdown map[string]float64    `json:"language_breakdown"`
	SourceType        SourceType            `json:"source_type"`
	AnalysisDate      time.Time             `json:"analysis_date"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// AnalysisWithSample joins an analysis with its originating sample for
// the recent-activity feed.
type AnalysisWithSample struct {
	SentimentAnalysis
	Sample TextSample `json:"text_sample"`
}

// ScoresConsistent reports whether the stored score triple sums to 1
// and the confidence matches the winning label's entry. A false return
// is a data-integrity problem, not something to silently repair.
func (a *SentimentAnalysis) ScoresConsistent() bool {
	var sum float64
	for _, v := range a.SentimentScores {
		if v < 0 {
			return false
		}
		sum += v
	}
	if math.Abs(sum-1.0) > ScoreSumTolerance {
		return false
	}
	// confidence is stored at 4-decimal precision, so compare loosely
	return math.Abs(a.SentimentScores[a.Sentiment]-a.ConfidenceScore) < 1e-4+ScoreSumTolerance
}

// Round4 rounds a confidence value to the 4-decimal precision used in
// storage.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
