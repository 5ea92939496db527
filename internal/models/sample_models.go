package models

import "time"

type SourceType string

const (
	SourceSocialMedia SourceType = "social_media"
	SourceNews        SourceType = "news"
	SourceSurvey      SourceType = "survey"
	SourceOther       SourceType = "other"
)

func (s SourceType) Valid() bool {
	switch s {
	case SourceSocialMedia, SourceNews, SourceSurvey, SourceOther:
		return true
	}
	return false
}

// TextSample is a single piece of raw text pulled in from one of the
// monitored outlets. Content is stored verbatim; normalization happens
// at analysis time.
type TextSample struct {
	ID             string         `json:"id"`
	Content        string         `json:"content"`
	SourceType     SourceType     `json:"source_type"`
	SourcePlatform string         `json:"source_platform,omitempty"`
	AuthorID       string         `json:"author_id,omitempty"`
	AuthorName     string         `json:"author_name,omitempty"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
	Location       string         `json:"location,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	IsProcessed    bool           `json:"is_processed"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// SampleEnvelope is the wire format carried on the sample-ingest topic.
// Format tells the consumer whether Content needs markdown conversion
// before it becomes a TextSample.
type SampleEnvelope struct {
	Content        string         `json:"content"`
	SourceType     SourceType     `json:"source_type"`
	SourcePlatform string         `json:"source_platform,omitempty"`
	AuthorID       string         `json:"author_id,omitempty"`
	AuthorName     string         `json:"author_name,omitempty"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
	Location       string         `json:"location,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	Format         string         `json:"format,omitempty"`
}
