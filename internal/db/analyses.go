package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sentimenhq/sentimen/internal/models"
)

const analysisColumns = `id, text_sample_id, original_text, processed_text, sentiment,
	confidence_score, sentiment_scores, language_breakdown, source_type,
	analysis_date, created_at, updated_at`

// AnalysisFilter narrows ListAnalyses. Zero values mean "no filter";
// pagination defaults to the first page of 20.
type AnalysisFilter struct {
	Sentiment  models.Sentiment
	SourceType models.SourceType
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PerPage    int
}

// StoreAnalysis inserts the analysis and marks its sample processed in
// a single transaction, so a crash never leaves one without the other.
func (r *Repository) StoreAnalysis(ctx context.Context, analysis *models.SentimentAnalysis) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("[DB] failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
        INSERT INTO sentiment_analyses
            (id, text_sample_id, original_text, processed_text, sentiment,
             confidence_score, sentiment_scores, language_breakdown,
             source_type, analysis_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		analysis.ID, analysis.TextSampleID, analysis.OriginalText,
		analysis.ProcessedText, analysis.Sentiment, analysis.ConfidenceScore,
		analysis.SentimentScores, analysis.LanguageBreakdown,
		analysis.SourceType, analysis.AnalysisDate,
		analysis.CreatedAt, analysis.UpdatedAt)
	if err != nil {
		return fmt.Errorf("[DB] failed to insert analysis: %w", err)
	}

	_, err = tx.Exec(ctx, `
        UPDATE text_samples SET is_processed = TRUE, updated_at = NOW()
        WHERE id = $1`, analysis.TextSampleID)
	if err != nil {
		return fmt.Errorf("[DB] failed to mark sample processed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("[DB] failed to commit analysis: %w", err)
	}
	return nil
}

func (r *Repository) AnalysisByID(ctx context.Context, id string) (*models.SentimentAnalysis, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM sentiment_analyses WHERE id = $1`, id)

	analysis, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[DB] failed to fetch analysis: %w", err)
	}
	return analysis, nil
}

// ListAnalyses returns a filtered page of analyses, newest first.
func (r *Repository) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]models.SentimentAnalysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM sentiment_analyses`

	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Sentiment != "" {
		addCondition("sentiment = $%d", filter.Sentiment)
	}
	if filter.SourceType != "" {
		addCondition("source_type = $%d", filter.SourceType)
	}
	if filter.DateFrom != nil {
		addCondition("analysis_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("analysis_date <= $%d", *filter.DateTo)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, perPage, (page-1)*perPage)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("[DB] failed to list analyses: %w", err)
	}
	defer rows.Close()

	return collectAnalyses(rows)
}

// AllAnalyses streams the whole collection for the aggregation engine.
func (r *Repository) AllAnalyses(ctx context.Context) ([]models.SentimentAnalysis, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM sentiment_analyses ORDER BY analysis_date`)
	if err != nil {
		return nil, fmt.Errorf("[DB] failed to load analyses: %w", err)
	}
	defer rows.Close()

	return collectAnalyses(rows)
}

// RecentAnalyses returns the newest analyses joined with their samples.
func (r *Repository) RecentAnalyses(ctx context.Context, limit int) ([]models.AnalysisWithSample, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, `
        SELECT a.id, a.text_sample_id, a.original_text, a.processed_text,
               a.sentiment, a.confidence_score, a.sentiment_scores,
               a.language_breakdown, a.source_type, a.analysis_date,
               a.created_at, a.updated_at,
               s.id, s.content, s.source_type, s.source_platform, s.author_id,
               s.author_name, s.published_at, s.location, s.metadata,
               s.is_processed, s.created_at, s.updated_at
        FROM sentiment_analyses a
        JOIN text_samples s ON s.id = a.text_sample_id
        ORDER BY a.created_at DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("[DB] failed to load recent analyses: %w", err)
	}
	defer rows.Close()

	var out []models.AnalysisWithSample
	for rows.Next() {
		var item models.AnalysisWithSample
		a := &item.SentimentAnalysis
		s := &item.Sample
		err := rows.Scan(&a.ID, &a.TextSampleID, &a.OriginalText, &a.ProcessedText,
			&a.Sentiment, &a.ConfidenceScore, &a.SentimentScores,
			&a.LanguageBreakdown, &a.SourceType, &a.AnalysisDate,
			&a.CreatedAt, &a.UpdatedAt,
			&s.ID, &s.Content, &s.SourceType, &s.SourcePlatform, &s.AuthorID,
			&s.AuthorName, &s.PublishedAt, &s.Location, &s.Metadata,
			&s.IsProcessed, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("[DB] failed to scan recent analysis: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// UpdateAnalysis applies a manual correction to the sentiment label and
// confidence score.
func (r *Repository) UpdateAnalysis(ctx context.Context, id string, sentiment models.Sentiment, confidence float64) (*models.SentimentAnalysis, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE sentiment_analyses
        SET sentiment = $2, confidence_score = $3, updated_at = NOW()
        WHERE id = $1`, id, sentiment, confidence)
	if err != nil {
		return nil, fmt.Errorf("[DB] failed to update analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.AnalysisByID(ctx, id)
}

func (r *Repository) DeleteAnalysis(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sentiment_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("[DB] failed to delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CountAnalyses(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sentiment_analyses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("[DB] failed to count analyses: %w", err)
	}
	return count, nil
}

func scanAnalysis(row pgx.Row) (*models.SentimentAnalysis, error) {
	var a models.SentimentAnalysis
	err := row.Scan(&a.ID, &a.TextSampleID, &a.OriginalText, &a.ProcessedText,
		&a.Sentiment, &a.ConfidenceScore, &a.SentimentScores,
		&a.LanguageBreakdown, &a.SourceType, &a.AnalysisDate,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAnalyses(rows pgx.Rows) ([]models.SentimentAnalysis, error) {
	var analyses []models.SentimentAnalysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("[DB] failed to scan analysis: %w", err)
		}
		analyses = append(analyses, *analysis)
	}
	return analyses, rows.Err()
}
