// Package analyzer orchestrates a single sentiment analysis: try the
// remote classifier once, fall back to the local rule-based path on any
// failure, and persist the assembled result.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sentimenhq/sentimen/internal/language"
	"github.com/sentimenhq/sentimen/internal/models"
	"github.com/sentimenhq/sentimen/internal/sentiment"
	"github.com/sentimenhq/sentimen/internal/textproc"
)

// ErrInFlight is returned when another worker currently holds the
// analysis claim for the sample.
var ErrInFlight = errors.New("analysis already in flight for sample")

// ClaimTTL bounds how long a crashed worker can keep a sample claimed.
const ClaimTTL = 2 * time.Minute

// Store is the persistence boundary the orchestrator writes through.
type Store interface {
	// CreateSample persists the sample. Re-inserting an existing ID is
	// not an error: the stored row wins and its processed state is
	// reflected on sample.IsProcessed, so redelivered messages can be
	// recognized.
	CreateSample(ctx context.Context, sample *models.TextSample) error
	UnprocessedSamples(ctx context.Context) ([]models.TextSample, error)
	// StoreAnalysis persists the analysis and flips the originating
	// sample's processed flag as one atomic unit.
	StoreAnalysis(ctx context.Context, analysis *models.SentimentAnalysis) error
}

// Classifier is the remote classification collaborator. A single
// attempt with a hard timeout; retries belong to the caller, not here.
type Classifier interface {
	Classify(ctx context.Context, text string, sourceType models.SourceType) (*models.ClassifyResponse, error)
}

// LanguageMixEstimator produces the language breakdown on the fallback
// path. Must be deterministic and normalized; see internal/language.
type LanguageMixEstimator interface {
	EstimateMix(text string) map[string]float64
}

// ClaimStore serializes analysis per sample so concurrent bulk runs
// cannot create duplicate results.
type ClaimStore interface {
	AcquireClaim(ctx context.Context, sampleID string, ttl time.Duration) (bool, error)
	ReleaseClaim(ctx context.Context, sampleID string) error
}

type Analyzer struct {
	store      Store
	classifier Classifier
	estimator  LanguageMixEstimator
	claims     ClaimStore
	now        func() time.Time
}

// Outcome pairs the stored analysis with whether the local fallback had
// to be used.
type Outcome struct {
	Analysis *models.SentimentAnalysis
	Degraded bool
}

// New builds an Analyzer. classifier, estimator and claims may be nil:
// without a classifier every analysis takes the fallback path, a nil
// estimator defaults to the wordlist-based one, and without claims no
// per-sample serialization is enforced.
func New(store Store, classifier Classifier, estimator LanguageMixEstimator, claims ClaimStore) *Analyzer {
	if estimator == nil {
		estimator = language.NewEstimator()
	}
	return &Analyzer{
		store:      store,
		classifier: classifier,
		estimator:  estimator,
		claims:     claims,
		now:        time.Now,
	}
}

// Analyze produces and persists exactly one SentimentAnalysis for the
// sample. It never fails because of classifier trouble; the only error
// sources are the claim being held elsewhere and the store itself.
func (a *Analyzer) Analyze(ctx context.Context, sample *models.TextSample) (*Outcome, error) {
	if a.claims != nil {
		acquired, err := a.claims.AcquireClaim(ctx, sample.ID, ClaimTTL)
		if err != nil {
			slog.Warn("[Analyzer] Claim store unavailable, proceeding unclaimed",
				slog.String("sample_id", sample.ID),
				slog.String("error", err.Error()))
		} else if !acquired {
			return nil, ErrInFlight
		} else {
			defer func() {
				if err := a.claims.ReleaseClaim(ctx, sample.ID); err != nil {
					slog.Warn("[Analyzer] Failed to release claim",
						slog.String("sample_id", sample.ID),
						slog.String("error", err.Error()))
				}
			}()
		}
	}

	fields, degraded := a.classify(ctx, sample)

	now := a.now()
	analysis := &models.SentimentAnalysis{
		ID:                uuid.NewString(),
		TextSampleID:      sample.ID,
		OriginalText:      sample.Content,
		ProcessedText:     fields.ProcessedText,
		Sentiment:         fields.Sentiment,
		ConfidenceScore:   models.Round4(fields.ConfidenceScore),
		SentimentScores:   fields.SentimentScores,
		LanguageBreakdown: fields.LanguageBreakdown,
		SourceType:        sample.SourceType,
		AnalysisDate:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := a.store.StoreAnalysis(ctx, analysis); err != nil {
		return nil, err
	}
	sample.IsProcessed = true

	return &Outcome{Analysis: analysis, Degraded: degraded}, nil
}

// classify runs the remote attempt and falls back locally on any
// failure: transport error, timeout, bad status, or a payload without a
// usable sentiment label.
func (a *Analyzer) classify(ctx context.Context, sample *models.TextSample) (models.ClassifyResponse, bool) {
	if a.classifier != nil {
		resp, err := a.classifier.Classify(ctx, sample.Content, sample.SourceType)
		if err == nil && resp != nil && resp.Sentiment.Valid() {
			return *resp, false
		}

		reason := "missing or invalid sentiment label"
		if err != nil {
			reason = err.Error()
		}
		slog.Warn("[Analyzer] Remote classification failed, using fallback",
			slog.String("sample_id", sample.ID),
			slog.String("reason", reason))
	}

	return a.fallback(sample.Content), true
}

// fallback is the deterministic local path: normalize, score against
// the lexicons, estimate the language mixture. Total by construction.
func (a *Analyzer) fallback(text string) models.ClassifyResponse {
	processed := textproc.Normalize(text)
	scored := sentiment.Score(processed)

	return models.ClassifyResponse{
		ProcessedText:     processed,
		Sentiment:         scored.Label,
		ConfidenceScore:   scored.Confidence,
		SentimentScores:   scored.Scores,
		LanguageBreakdown: a.estimator.EstimateMix(processed),
	}
}
