package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sentimenhq/sentimen/internal/clients/kafka_client"
	"github.com/sentimenhq/sentimen/internal/db"
	"github.com/sentimenhq/sentimen/internal/models"
)

const (
	maxTextLength     = 5000
	maxPlatformLength = 100
)

type createAnalysisRequest struct {
	Text           string            `json:"text"`
	SourceType     models.SourceType `json:"source_type"`
	SourcePlatform string            `json:"source_platform"`
}

type updateAnalysisRequest struct {
	Sentiment       models.Sentiment `json:"sentiment"`
	ConfidenceScore *float64         `json:"confidence_score"`
}

// handleListAnalyses serves the filtered index view, newest first.
func (s *Server) handleListAnalyses(c *gin.Context) {
	filter := db.AnalysisFilter{
		Sentiment:  models.Sentiment(c.Query("sentiment")),
		SourceType: models.SourceType(c.Query("source_type")),
	}

	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be YYYY-MM-DD"})
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be YYYY-MM-DD"})
			return
		}
		filter.DateTo = &t
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	analyses, err := s.repo.ListAnalyses(c.Request.Context(), filter)
	if err != nil {
		slog.Error("[API] Failed to list analyses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list analyses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analyses": analyses,
		"page":     filter.Page,
		"per_page": filter.PerPage,
	})
}

// handleCreateAnalysis ingests one sample and analyzes it inline: the
// dashboard's "try a text" form.
func (s *Server) handleCreateAnalysis(c *gin.Context) {
	var req createAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Text == "" || len(req.Text) > maxTextLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required and must be at most 5000 characters"})
		return
	}
	if !req.SourceType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_type must be one of social_media, news, survey, other"})
		return
	}
	if len(req.SourcePlatform) > maxPlatformLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_platform must be at most 100 characters"})
		return
	}

	now := time.Now()
	sample := &models.TextSample{
		ID:             uuid.NewString(),
		Content:        req.Text,
		SourceType:     req.SourceType,
		SourcePlatform: req.SourcePlatform,
		PublishedAt:    &now,
	}

	ctx := c.Request.Context()
	if err := s.repo.CreateSample(ctx, sample); err != nil {
		slog.Error("[API] Failed to create sample", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sample"})
		return
	}

	outcome, err := s.analyzer.Analyze(ctx, sample)
	if err != nil {
		slog.Error("[API] Failed to analyze sample",
			slog.String("sample_id", sample.ID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze sample"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"analysis": outcome.Analysis,
		"degraded": outcome.Degraded,
	})
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	analysis, err := s.repo.AnalysisByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
			return
		}
		slog.Error("[API] Failed to fetch analysis", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch analysis"})
		return
	}

	sample, err := s.repo.SampleByID(c.Request.Context(), analysis.TextSampleID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		slog.Error("[API] Failed to fetch sample", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sample"})
		return
	}

	resp := gin.H{"analysis": analysis}
	if sample != nil {
		resp["text_sample"] = sample
	}
	c.JSON(http.StatusOK, resp)
}

// handleUpdateAnalysis applies a manual review correction.
func (s *Server) handleUpdateAnalysis(c *gin.Context) {
	var req updateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !req.Sentiment.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sentiment must be one of positive, negative, neutral"})
		return
	}
	if req.ConfidenceScore == nil || *req.ConfidenceScore < 0 || *req.ConfidenceScore > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confidence_score must be between 0 and 1"})
		return
	}

	analysis, err := s.repo.UpdateAnalysis(c.Request.Context(), c.Param("id"),
		req.Sentiment, models.Round4(*req.ConfidenceScore))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
			return
		}
		slog.Error("[API] Failed to update analysis", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

func (s *Server) handleDeleteAnalysis(c *gin.Context) {
	err := s.repo.DeleteAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
			return
		}
		slog.Error("[API] Failed to delete analysis", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete analysis"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// handleIngestSample queues a sample for asynchronous analysis by the
// worker.
func (s *Server) handleIngestSample(c *gin.Context) {
	var envelope models.SampleEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if envelope.Content == "" || len(envelope.Content) > maxTextLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required and must be at most 5000 characters"})
		return
	}
	if !envelope.SourceType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_type must be one of social_media, news, survey, other"})
		return
	}

	if err := s.publish(kafka_client.KAFKA_TOPIC_SAMPLE_INGEST, envelope.SourcePlatform, envelope); err != nil {
		slog.Error("[API] Failed to queue sample", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to queue sample"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}

// handleBulkAnalyze sweeps every unprocessed sample synchronously and
// reports how the sweep went, including how many analyses degraded to
// the local fallback.
func (s *Server) handleBulkAnalyze(c *gin.Context) {
	report, err := s.analyzer.BulkAnalyze(c.Request.Context())
	if err != nil {
		slog.Error("[API] Bulk analysis failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bulk analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
