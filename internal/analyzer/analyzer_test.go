package analyzer

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/sentimenhq/sentimen/internal/language"
	"github.com/sentimenhq/sentimen/internal/models"
	"github.com/sentimenhq/sentimen/internal/sentiment"
	"github.com/sentimenhq/sentimen/internal/textproc"
)

type memStore struct {
	samples  map[string]*models.TextSample
	analyses []*models.SentimentAnalysis
	storeErr error
}

func newMemStore() *memStore {
	return &memStore{samples: map[string]*models.TextSample{}}
}

func (m *memStore) CreateSample(_ context.Context, sample *models.TextSample) error {
	if existing, ok := m.samples[sample.ID]; ok {
		sample.IsProcessed = existing.IsProcessed
		return nil
	}
	m.samples[sample.ID] = sample
	return nil
}

func (m *memStore) UnprocessedSamples(_ context.Context) ([]models.TextSample, error) {
	var out []models.TextSample
	for _, s := range m.samples {
		if !s.IsProcessed {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memStore) StoreAnalysis(_ context.Context, analysis *models.SentimentAnalysis) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.analyses = append(m.analyses, analysis)
	if s, ok := m.samples[analysis.TextSampleID]; ok {
		s.IsProcessed = true
	}
	return nil
}

type fakeClassifier struct {
	resp *models.ClassifyResponse
	err  error
}

func (f *fakeClassifier) Classify(context.Context, string, models.SourceType) (*models.ClassifyResponse, error) {
	return f.resp, f.err
}

type fakeClaims struct {
	held map[string]bool
}

func (f *fakeClaims) AcquireClaim(_ context.Context, id string, _ time.Duration) (bool, error) {
	if f.held[id] {
		return false, nil
	}
	return true, nil
}

func (f *fakeClaims) ReleaseClaim(context.Context, string) error { return nil }

func sampleWith(content string) *models.TextSample {
	return &models.TextSample{
		ID:         "sample-1",
		Content:    content,
		SourceType: models.SourceSocialMedia,
	}
}

func TestAnalyzeFallbackMatchesLocalScoring(t *testing.T) {
	store := newMemStore()
	a := New(store, &fakeClassifier{err: errors.New("connection refused")}, nil, nil)

	text := "Kinerja mereka bagus, very good progress!"
	sample := sampleWith(text)
	store.samples[sample.ID] = sample

	outcome, err := a.Analyze(context.Background(), sample)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if !outcome.Degraded {
		t.Fatal("expected degraded outcome when classifier is unreachable")
	}

	normalized := textproc.Normalize(text)
	wantScore := sentiment.Score(normalized)
	wantMix := language.NewEstimator().EstimateMix(normalized)

	got := outcome.Analysis
	if got.Sentiment != wantScore.Label {
		t.Errorf("sentiment = %q, want %q", got.Sentiment, wantScore.Label)
	}
	if math.Abs(got.ConfidenceScore-wantScore.Confidence) > 1e-9 {
		t.Errorf("confidence = %v, want %v", got.ConfidenceScore, wantScore.Confidence)
	}
	if !reflect.DeepEqual(got.SentimentScores, wantScore.Scores) {
		t.Errorf("scores = %v, want %v", got.SentimentScores, wantScore.Scores)
	}
	if !reflect.DeepEqual(got.LanguageBreakdown, wantMix) {
		t.Errorf("language breakdown = %v, want %v", got.LanguageBreakdown, wantMix)
	}
	if got.ProcessedText != normalized {
		t.Errorf("processed text = %q, want %q", got.ProcessedText, normalized)
	}
	if got.OriginalText != text {
		t.Errorf("original text = %q, want %q", got.OriginalText, text)
	}
	if !sample.IsProcessed {
		t.Error("sample not marked processed")
	}
}

func TestAnalyzeAdoptsRemoteResult(t *testing.T) {
	store := newMemStore()
	remote := &models.ClassifyResponse{
		ProcessedText:     "remote processed",
		Sentiment:         models.SentimentNegative,
		ConfidenceScore:   0.8123,
		SentimentScores:   map[models.Sentiment]float64{"positive": 0.1, "negative": 0.8123, "neutral": 0.0877},
		LanguageBreakdown: map[string]float64{"indonesian": 0.6, "english": 0.3, "mixed": 0.1},
	}
	a := New(store, &fakeClassifier{resp: remote}, nil, nil)

	sample := sampleWith("whatever the remote says wins")
	store.samples[sample.ID] = sample

	outcome, err := a.Analyze(context.Background(), sample)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if outcome.Degraded {
		t.Fatal("remote success should not be degraded")
	}

	got := outcome.Analysis
	if got.Sentiment != remote.Sentiment ||
		got.ProcessedText != remote.ProcessedText ||
		got.ConfidenceScore != remote.ConfidenceScore {
		t.Errorf("remote fields not adopted verbatim: %+v", got)
	}
	if got.SourceType != sample.SourceType {
		t.Errorf("source type = %q, want %q", got.SourceType, sample.SourceType)
	}
}

func TestAnalyzeRejectsMalformedRemotePayload(t *testing.T) {
	store := newMemStore()
	// payload decoded fine but carries no usable label
	remote := &models.ClassifyResponse{Sentiment: "ecstatic", ConfidenceScore: 0.99}
	a := New(store, &fakeClassifier{resp: remote}, nil, nil)

	sample := sampleWith("bagus bagus bagus")
	store.samples[sample.ID] = sample

	outcome, err := a.Analyze(context.Background(), sample)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if !outcome.Degraded {
		t.Fatal("invalid remote label should fall back")
	}
	if outcome.Analysis.Sentiment != models.SentimentPositive {
		t.Errorf("fallback sentiment = %q, want positive", outcome.Analysis.Sentiment)
	}
	if outcome.Analysis.ConfidenceScore != 0.8 {
		t.Errorf("fallback confidence = %v, want 0.8", outcome.Analysis.ConfidenceScore)
	}
}

func TestAnalyzeRespectsClaims(t *testing.T) {
	store := newMemStore()
	claims := &fakeClaims{held: map[string]bool{"sample-1": true}}
	a := New(store, nil, nil, claims)

	sample := sampleWith("claimed elsewhere")
	store.samples[sample.ID] = sample

	_, err := a.Analyze(context.Background(), sample)
	if !errors.Is(err, ErrInFlight) {
		t.Fatalf("err = %v, want ErrInFlight", err)
	}
	if len(store.analyses) != 0 {
		t.Error("claimed sample must not produce an analysis")
	}
}

type fakeEstimator struct {
	mix map[string]float64
}

func (f *fakeEstimator) EstimateMix(string) map[string]float64 { return f.mix }

func TestAnalyzeUsesProvidedEstimator(t *testing.T) {
	store := newMemStore()
	mix := map[string]float64{"indonesian": 0.25, "english": 0.25, "mixed": 0.5}
	a := New(store, nil, &fakeEstimator{mix: mix}, nil)

	sample := sampleWith("bagus sekali")
	store.samples[sample.ID] = sample

	outcome, err := a.Analyze(context.Background(), sample)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if !reflect.DeepEqual(outcome.Analysis.LanguageBreakdown, mix) {
		t.Errorf("language breakdown = %v, want the injected estimator's %v",
			outcome.Analysis.LanguageBreakdown, mix)
	}
}

func TestAnalyzeStampsAnalysisDate(t *testing.T) {
	store := newMemStore()
	a := New(store, nil, nil, nil)
	a.now = func() time.Time {
		return time.Date(2025, 10, 20, 15, 4, 5, 0, time.UTC)
	}

	sample := sampleWith("netral saja")
	store.samples[sample.ID] = sample

	outcome, err := a.Analyze(context.Background(), sample)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	want := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	if !outcome.Analysis.AnalysisDate.Equal(want) {
		t.Errorf("analysis date = %v, want %v", outcome.Analysis.AnalysisDate, want)
	}
}

func TestBulkAnalyze(t *testing.T) {
	store := newMemStore()
	for _, s := range []*models.TextSample{
		{ID: "s1", Content: "bagus sekali", SourceType: models.SourceNews},
		{ID: "s2", Content: "terrible awful", SourceType: models.SourceSurvey},
		{ID: "s3", Content: "biasa saja", SourceType: models.SourceOther},
		{ID: "s4", Content: "already done", SourceType: models.SourceNews, IsProcessed: true},
	} {
		store.samples[s.ID] = s
	}

	a := New(store, &fakeClassifier{err: errors.New("service down")}, nil, nil)

	report, err := a.BulkAnalyze(context.Background())
	if err != nil {
		t.Fatalf("BulkAnalyze returned error: %v", err)
	}

	if report.Processed != 3 {
		t.Errorf("processed = %d, want 3", report.Processed)
	}
	if report.Degraded != 3 {
		t.Errorf("degraded = %d, want 3", report.Degraded)
	}
	if len(store.analyses) != 3 {
		t.Errorf("stored analyses = %d, want 3", len(store.analyses))
	}
	for id, s := range store.samples {
		if !s.IsProcessed {
			t.Errorf("sample %s still unprocessed after bulk sweep", id)
		}
	}

	// a second sweep finds nothing to do
	report, err = a.BulkAnalyze(context.Background())
	if err != nil {
		t.Fatalf("second BulkAnalyze returned error: %v", err)
	}
	if report.Processed != 0 || len(store.analyses) != 3 {
		t.Errorf("second sweep created work: report=%+v analyses=%d", report, len(store.analyses))
	}
}
