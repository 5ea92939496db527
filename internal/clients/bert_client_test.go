package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sentimenhq/sentimen/internal/models"
)

func testClient(url string) *BertClient {
	return &BertClient{
		Client:  &http.Client{Timeout: 2 * time.Second},
		BaseURL: url,
	}
}

func TestClassifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"processed_text": "bagus sekali",
			"sentiment": "positive",
			"confidence_score": 0.91,
			"sentiment_scores": {"positive": 0.91, "negative": 0.04, "neutral": 0.05},
			"language_breakdown": {"indonesian": 0.8, "english": 0.1, "mixed": 0.1}
		}`))
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).Classify(context.Background(), "Bagus sekali!", models.SourceSocialMedia)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if resp.Sentiment != models.SentimentPositive {
		t.Errorf("sentiment = %q, want positive", resp.Sentiment)
	}
	if resp.ConfidenceScore != 0.91 {
		t.Errorf("confidence = %v, want 0.91", resp.ConfidenceScore)
	}
}

func TestClassifyBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Classify(context.Background(), "text", models.SourceNews); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestClassifyMissingSentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"processed_text": "text", "confidence_score": 0.5}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Classify(context.Background(), "text", models.SourceNews); err == nil {
		t.Fatal("expected error for payload without sentiment")
	}
}

func TestClassifyMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sentiment": `))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Classify(context.Background(), "text", models.SourceNews); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestClassifyUnreachable(t *testing.T) {
	if _, err := testClient("http://127.0.0.1:1").Classify(context.Background(), "text", models.SourceNews); err == nil {
		t.Fatal("expected error when service is unreachable")
	}
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Write([]byte(`{"status": "healthy"}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if !testClient(srv.URL).HealthCheck() {
		t.Error("expected healthy")
	}
	if testClient("http://127.0.0.1:1").HealthCheck() {
		t.Error("expected unhealthy for unreachable service")
	}
}
