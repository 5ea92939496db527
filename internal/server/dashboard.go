package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sentimenhq/sentimen/internal/aggregation"
	"github.com/sentimenhq/sentimen/internal/models"
)

const dashboardCacheTTL = 60 * time.Second

type dashboardResponse struct {
	TotalSamples          int                                 `json:"total_samples"`
	ProcessedSamples      int                                 `json:"processed_samples"`
	TotalAnalyses         int                                 `json:"total_analyses"`
	SentimentDistribution map[models.Sentiment]int            `json:"sentiment_distribution"`
	SentimentOverTime     []aggregation.DateSentimentCount    `json:"sentiment_over_time"`
	SourceDistribution    map[models.SourceType]int           `json:"source_distribution"`
	ConfidenceBySentiment map[models.Sentiment]float64        `json:"confidence_by_sentiment"`
	RecentAnalyses        []models.AnalysisWithSample         `json:"recent_analyses"`
}

type analyticsResponse struct {
	MonthlySentiment       []aggregation.MonthSentimentCount                 `json:"monthly_sentiment"`
	SourceSentiment        map[models.SourceType]map[models.Sentiment]int    `json:"source_sentiment"`
	ConfidenceDistribution []aggregation.ConfidenceBucket                    `json:"confidence_distribution"`
}

// handleDashboard serves the overview counters and chart feeds, cached
// briefly in valkey so refresh-happy dashboards do not rescan the
// collection.
func (s *Server) handleDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	if s.cache != nil {
		if cached, err := s.cache.CachedDashboard(ctx); err == nil && cached != nil {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	analyses, err := s.repo.AllAnalyses(ctx)
	if err != nil {
		slog.Error("[API] Failed to load analyses for dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	s.reportMalformed(analyses)

	totalSamples, err := s.repo.CountSamples(ctx)
	if err != nil {
		slog.Error("[API] Failed to count samples", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	processedSamples, err := s.repo.CountProcessedSamples(ctx)
	if err != nil {
		slog.Error("[API] Failed to count processed samples", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	recent, err := s.repo.RecentAnalyses(ctx, 10)
	if err != nil {
		slog.Error("[API] Failed to load recent analyses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	resp := dashboardResponse{
		TotalSamples:          totalSamples,
		ProcessedSamples:      processedSamples,
		TotalAnalyses:         len(analyses),
		SentimentDistribution: aggregation.SentimentDistribution(analyses),
		SentimentOverTime:     aggregation.SentimentOverTime(analyses, 30, time.Now().UTC()),
		SourceDistribution:    aggregation.SourceDistribution(analyses),
		ConfidenceBySentiment: aggregation.AverageConfidenceBySentiment(analyses),
		RecentAnalyses:        recent,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.CacheDashboard(ctx, payload, dashboardCacheTTL); err != nil {
				slog.Warn("[API] Failed to cache dashboard", slog.String("error", err.Error()))
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleAnalytics serves the detailed chart feeds.
func (s *Server) handleAnalytics(c *gin.Context) {
	analyses, err := s.repo.AllAnalyses(c.Request.Context())
	if err != nil {
		slog.Error("[API] Failed to load analyses for analytics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}
	s.reportMalformed(analyses)

	c.JSON(http.StatusOK, analyticsResponse{
		MonthlySentiment:       aggregation.MonthlySentiment(analyses),
		SourceSentiment:        aggregation.SourceSentimentCrosstab(analyses),
		ConfidenceDistribution: aggregation.ConfidenceHistogram(analyses),
	})
}

// reportMalformed surfaces stored records whose score triples are
// inconsistent. They stay in the aggregates as-is; fixing the data is
// an operator decision.
func (s *Server) reportMalformed(analyses []models.SentimentAnalysis) {
	if ids := aggregation.Malformed(analyses); len(ids) > 0 {
		slog.Error("[API] Data integrity: analyses with inconsistent score triples",
			slog.Int("count", len(ids)),
			slog.String("ids", strings.Join(ids, ",")))
	}
}
