package models

type ClassifyRequest struct {
	Text       string `json:"text"`
	SourceType string `json:"source_type"`
}

// ClassifyResponse is the payload the remote classifier service returns.
// Sentiment is the only required field; a response without it is treated
// as malformed.
type ClassifyResponse struct {
	ProcessedText     string                `json:"processed_text"`
	Sentiment         Sentiment             `json:"sentiment"`
	ConfidenceScore   float64               `json:"confidence_score"`
	SentimentScores   map[Sentiment]float64 `json:"sentiment_scores"`
	LanguageBreakdown map[string]float64    `json:"language_breakdown"`
}

type ClassifierHealthResponse struct {
	Status    string `json:"status"`
	ModelName string `json:"model_name,omitempty"`
}
