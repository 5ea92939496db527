package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/sentimenhq/sentimen/internal/models"
)

var (
	bertInstance *BertClient
	bertOnce     sync.Once
)

// BertClient talks to the remote BERT classification service. One
// request per analysis, bounded by CLASSIFIER_TIMEOUT; any failure is
// the caller's cue to fall back.
type BertClient struct {
	Client  *http.Client
	BaseURL string
}

func GetBertClient() *BertClient {
	bertOnce.Do(func() {
		baseURL := os.Getenv("BERT_SERVICE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8001"
		}

		slog.Info("[BertClient] Initializing client",
			slog.String("base_url", baseURL),
			slog.Duration("timeout", CLASSIFIER_TIMEOUT))

		bertInstance = &BertClient{
			Client:  &http.Client{Timeout: CLASSIFIER_TIMEOUT},
			BaseURL: baseURL,
		}
	})
	return bertInstance
}

// Classify sends the text for remote analysis. A non-2xx status, a
// transport error, or a payload without a sentiment field all come back
// as errors.
func (b *BertClient) Classify(ctx context.Context, text string, sourceType models.SourceType) (*models.ClassifyResponse, error) {
	body, err := json.Marshal(models.ClassifyRequest{
		Text:       text,
		SourceType: string(sourceType),
	})
	if err != nil {
		return nil, fmt.Errorf("[BertClient] failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, CLASSIFIER_TIMEOUT)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("[BertClient] failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[BertClient] request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("[BertClient] unexpected status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[BertClient] failed to read response: %w", err)
	}

	var result models.ClassifyResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("[BertClient] failed to unmarshal response: %w", err)
	}
	if result.Sentiment == "" {
		return nil, fmt.Errorf("[BertClient] response missing sentiment field")
	}

	return &result, nil
}

// HealthCheck reports whether the classifier answers its health probe.
func (b *BertClient) HealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), HEALTHCHECK_TIMEOUT)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := b.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
