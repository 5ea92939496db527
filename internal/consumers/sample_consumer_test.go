package consumers

import (
	"context"
	"testing"
	"time"

	"github.com/sentimenhq/sentimen/internal/models"
)

type memStore struct {
	samples map[string]*models.TextSample
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
	if s, ok := m.samples[analysis.TextSampleID]; ok {
		s.IsProcessed = true
	}
	return nil
}

func TestIngestSampleIdempotent(t *testing.T) {
	store := newMemStore()
	published := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	envelope := models.SampleEnvelope{
		Content:        "Kinerja mereka bagus, very good progress!",
		SourceType:     models.SourceSocialMedia,
		SourcePlatform: "twitter",
		PublishedAt:    &published,
	}

	first, err := ingestSample(context.Background(), store, envelope)
	if err != nil {
		t.Fatalf("first ingest returned error: %v", err)
	}
	second, err := ingestSample(context.Background(), store, envelope)
	if err != nil {
		t.Fatalf("second ingest returned error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("redelivered envelope minted a new ID: %s vs %s", first.ID, second.ID)
	}
	if len(store.samples) != 1 {
		t.Errorf("stored samples = %d, want 1", len(store.samples))
	}
}

func TestIngestSampleReplayReportsProcessed(t *testing.T) {
	store := newMemStore()
	envelope := models.SampleEnvelope{
		Content:    "Setahun sudah tapi masih belum ada perubahan",
		SourceType: models.SourceNews,
	}

	first, err := ingestSample(context.Background(), store, envelope)
	if err != nil {
		t.Fatalf("first ingest returned error: %v", err)
	}
	// analysis stored, but the offset commit never happened
	store.samples[first.ID].IsProcessed = true

	replayed, err := ingestSample(context.Background(), store, envelope)
	if err != nil {
		t.Fatalf("replayed ingest returned error: %v", err)
	}
	if !replayed.IsProcessed {
		t.Error("replayed sample must report the stored processed state")
	}
}

func TestSampleIDDistinguishesEnvelopes(t *testing.T) {
	published := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	later := published.Add(time.Hour)

	base := models.SampleEnvelope{
		Content:        "sama persis",
		SourcePlatform: "twitter",
		PublishedAt:    &published,
	}

	variants := []models.SampleEnvelope{
		{Content: "beda isi", SourcePlatform: "twitter", PublishedAt: &published},
		{Content: "sama persis", SourcePlatform: "facebook", PublishedAt: &published},
		{Content: "sama persis", SourcePlatform: "twitter", PublishedAt: &later},
		{Content: "sama persis", SourcePlatform: "twitter"},
	}

	baseID := sampleID(base)
	if baseID != sampleID(base) {
		t.Fatal("sampleID is not deterministic")
	}
	for i, v := range variants {
		if sampleID(v) == baseID {
			t.Errorf("variant %d collides with the base envelope", i)
		}
	}
}

func TestIngestSampleCoercesUnknownSourceType(t *testing.T) {
	store := newMemStore()
	sample, err := ingestSample(context.Background(), store, models.SampleEnvelope{
		Content:    "dari sumber tak dikenal",
		SourceType: "blog",
	})
	if err != nil {
		t.Fatalf("ingest returned error: %v", err)
	}
	if sample.SourceType != models.SourceOther {
		t.Errorf("source type = %q, want %q", sample.SourceType, models.SourceOther)
	}
}
