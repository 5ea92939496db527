// Package db is the relational storage boundary: text samples,
// sentiment analyses, and the queries the API serves them through.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup by ID matches nothing.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS text_samples (
    id              UUID PRIMARY KEY,
    content         TEXT NOT NULL,
    source_type     TEXT NOT NULL,
    source_platform TEXT NOT NULL DEFAULT '',
    author_id       TEXT NOT NULL DEFAULT '',
    author_name     TEXT NOT NULL DEFAULT '',
    published_at    TIMESTAMPTZ,
    location        TEXT NOT NULL DEFAULT '',
    metadata        JSONB,
    is_processed    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS sentiment_analyses (
    id                 UUID PRIMARY KEY,
    text_sample_id     UUID NOT NULL REFERENCES text_samples(id) ON DELETE CASCADE,
    original_text      TEXT NOT NULL,
    processed_text     TEXT NOT NULL,
    sentiment          TEXT NOT NULL,
    confidence_score   NUMERIC(5,4) NOT NULL,
    sentiment_scores   JSONB NOT NULL,
    language_breakdown JSONB NOT NULL,
    source_type        TEXT NOT NULL,
    analysis_date      DATE NOT NULL,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_text_samples_is_processed
    ON text_samples (is_processed);
CREATE INDEX IF NOT EXISTS idx_sentiment_analyses_analysis_date
    ON sentiment_analyses (analysis_date);
CREATE INDEX IF NOT EXISTS idx_sentiment_analyses_sentiment
    ON sentiment_analyses (sentiment);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("[DB] failed to ensure schema: %w", err)
	}
	return nil
}
