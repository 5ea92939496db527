package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sentimenhq/sentimen/internal/models"
)

const sampleColumns = `id, content, source_type, source_platform, author_id,
	author_name, published_at, location, metadata, is_processed, created_at, updated_at`

func (r *Repository) CreateSample(ctx context.Context, sample *models.TextSample) error {
	now := time.Now()
	if sample.CreatedAt.IsZero() {
		sample.CreatedAt = now
	}
	sample.UpdatedAt = now

	tag, err := r.pool.Exec(ctx, `
        INSERT INTO text_samples
            (id, content, source_type, source_platform, author_id, author_name,
             published_at, location, metadata, is_processed, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        ON CONFLICT (id) DO NOTHING`,
		sample.ID, sample.Content, sample.SourceType, sample.SourcePlatform,
		sample.AuthorID, sample.AuthorName, sample.PublishedAt, sample.Location,
		sample.Metadata, sample.IsProcessed, sample.CreatedAt, sample.UpdatedAt)
	if err != nil {
		return fmt.Errorf("[DB] failed to insert text sample: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// redelivered sample: reflect the stored row's processed state
		err := r.pool.QueryRow(ctx,
			`SELECT is_processed FROM text_samples WHERE id = $1`, sample.ID).
			Scan(&sample.IsProcessed)
		if err != nil {
			return fmt.Errorf("[DB] failed to check existing text sample: %w", err)
		}
	}
	return nil
}

func (r *Repository) SampleByID(ctx context.Context, id string) (*models.TextSample, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+sampleColumns+` FROM text_samples WHERE id = $1`, id)

	sample, err := scanSample(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[DB] failed to fetch text sample: %w", err)
	}
	return sample, nil
}

func (r *Repository) UnprocessedSamples(ctx context.Context) ([]models.TextSample, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sampleColumns+` FROM text_samples
         WHERE is_processed = FALSE ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("[DB] failed to list unprocessed samples: %w", err)
	}
	defer rows.Close()

	var samples []models.TextSample
	for rows.Next() {
		sample, err := scanSample(rows)
		if err != nil {
			return nil, fmt.Errorf("[DB] failed to scan text sample: %w", err)
		}
		samples = append(samples, *sample)
	}
	return samples, rows.Err()
}

func (r *Repository) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM text_samples`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("[DB] failed to count samples: %w", err)
	}
	return count, nil
}

func (r *Repository) CountProcessedSamples(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM text_samples WHERE is_processed = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("[DB] failed to count processed samples: %w", err)
	}
	return count, nil
}

// DeleteSample removes a sample; its analysis goes with it via the FK
// cascade.
func (r *Repository) DeleteSample(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM text_samples WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("[DB] failed to delete text sample: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSample(row pgx.Row) (*models.TextSample, error) {
	var s models.TextSample
	err := row.Scan(&s.ID, &s.Content, &s.SourceType, &s.SourcePlatform,
		&s.AuthorID, &s.AuthorName, &s.PublishedAt, &s.Location,
		&s.Metadata, &s.IsProcessed, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
