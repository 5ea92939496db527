// Package aggregation computes the chart-ready read-side views over
// stored analyses. Every function is a pure fold over the record slice
// and returns empty groupings for an empty collection.
package aggregation

import (
	"math"
	"sort"
	"time"

	"github.com/sentimenhq/sentimen/internal/models"
)

// DateSentimentCount is one (day, sentiment) bucket of the rolling
// time-series view.
type DateSentimentCount struct {
	Date      string           `json:"analysis_date"`
	Sentiment models.Sentiment `json:"sentiment"`
	Count     int              `json:"count"`
}

// MonthSentimentCount is one (year-month, sentiment) bucket.
type MonthSentimentCount struct {
	Month     string           `json:"month"`
	Sentiment models.Sentiment `json:"sentiment"`
	Count     int              `json:"count"`
}

// ConfidenceBucket groups analyses by confidence rounded to one
// decimal.
type ConfidenceBucket struct {
	Confidence float64 `json:"confidence_range"`
	Count      int     `json:"count"`
}

// SentimentDistribution counts analyses per sentiment label.
func SentimentDistribution(analyses []models.SentimentAnalysis) map[models.Sentiment]int {
	dist := make(map[models.Sentiment]int)
	for i := range analyses {
		dist[analyses[i].Sentiment]++
	}
	return dist
}

// SentimentOverTime counts (analysis_date, sentiment) pairs for the
// trailing window, oldest date first. Records older than windowDays
// before today are excluded.
func SentimentOverTime(analyses []models.SentimentAnalysis, windowDays int, today time.Time) []DateSentimentCount {
	cutoff := today.AddDate(0, 0, -windowDays)
	cutoff = time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)

	type key struct {
		date      string
		sentiment models.Sentiment
	}
	counts := make(map[key]int)
	for i := range analyses {
		if analyses[i].AnalysisDate.Before(cutoff) {
			continue
		}
		counts[key{analyses[i].AnalysisDate.Format("2006-01-02"), analyses[i].Sentiment}]++
	}

	out := make([]DateSentimentCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, DateSentimentCount{Date: k.date, Sentiment: k.sentiment, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Sentiment < out[j].Sentiment
	})
	return out
}

// SourceDistribution counts analyses per source type.
func SourceDistribution(analyses []models.SentimentAnalysis) map[models.SourceType]int {
	dist := make(map[models.SourceType]int)
	for i := range analyses {
		dist[analyses[i].SourceType]++
	}
	return dist
}

// AverageConfidenceBySentiment computes the mean confidence per label.
func AverageConfidenceBySentiment(analyses []models.SentimentAnalysis) map[models.Sentiment]float64 {
	sums := make(map[models.Sentiment]float64)
	counts := make(map[models.Sentiment]int)
	for i := range analyses {
		sums[analyses[i].Sentiment] += analyses[i].ConfidenceScore
		counts[analyses[i].Sentiment]++
	}

	avg := make(map[models.Sentiment]float64, len(sums))
	for label, sum := range sums {
		avg[label] = sum / float64(counts[label])
	}
	return avg
}

// MonthlySentiment counts (calendar month, sentiment) pairs over the
// whole collection, oldest month first.
func MonthlySentiment(analyses []models.SentimentAnalysis) []MonthSentimentCount {
	type key struct {
		month     string
		sentiment models.Sentiment
	}
	counts := make(map[key]int)
	for i := range analyses {
		counts[key{analyses[i].AnalysisDate.Format("2006-01"), analyses[i].Sentiment}]++
	}

	out := make([]MonthSentimentCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, MonthSentimentCount{Month: k.month, Sentiment: k.sentiment, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Sentiment < out[j].Sentiment
	})
	return out
}

// SourceSentimentCrosstab counts analyses per (source type, sentiment).
func SourceSentimentCrosstab(analyses []models.SentimentAnalysis) map[models.SourceType]map[models.Sentiment]int {
	crosstab := make(map[models.SourceType]map[models.Sentiment]int)
	for i := range analyses {
		row := crosstab[analyses[i].SourceType]
		if row == nil {
			row = make(map[models.Sentiment]int)
			crosstab[analyses[i].SourceType] = row
		}
		row[analyses[i].Sentiment]++
	}
	return crosstab
}

// ConfidenceHistogram buckets analyses by confidence rounded to one
// decimal, ascending.
func ConfidenceHistogram(analyses []models.SentimentAnalysis) []ConfidenceBucket {
	counts := make(map[float64]int)
	for i := range analyses {
		bucket := math.Round(analyses[i].ConfidenceScore*10) / 10
		counts[bucket]++
	}

	out := make([]ConfidenceBucket, 0, len(counts))
	for bucket, c := range counts {
		out = append(out, ConfidenceBucket{Confidence: bucket, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Confidence < out[j].Confidence })
	return out
}

// Malformed returns the IDs of analyses whose stored score triple is
// inconsistent. Callers report these to the operator log; the values
// are never coerced back into shape.
func Malformed(analyses []models.SentimentAnalysis) []string {
	var ids []string
	for i := range analyses {
		if !analyses[i].ScoresConsistent() {
			ids = append(ids, analyses[i].ID)
		}
	}
	return ids
}
