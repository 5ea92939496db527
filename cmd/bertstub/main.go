// bertstub is a development stand-in for the remote BERT classifier.
// It implements the same HTTP contract (/analyze, /health) on top of
// VADER so the remote path can be exercised without the real model
// server.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jonreiter/govader"

	"github.com/sentimenhq/sentimen/config"
	"github.com/sentimenhq/sentimen/internal/language"
	"github.com/sentimenhq/sentimen/internal/logging"
	"github.com/sentimenhq/sentimen/internal/models"
	"github.com/sentimenhq/sentimen/internal/textproc"
)

var (
	analyzer  = govader.NewSentimentIntensityAnalyzer()
	estimator = language.NewEstimator()
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	r := gin.Default()
	r.POST("/analyze", handleAnalyze)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ClassifierHealthResponse{
			Status:    "healthy",
			ModelName: "govader-stub",
		})
	})

	addr := os.Getenv("BERTSTUB_ADDR")
	if addr == "" {
		addr = ":8001"
	}

	slog.Info("[BertStub] Starting classifier stand-in", slog.String("addr", addr))
	if err := r.Run(addr); err != nil {
		slog.Error("[BertStub] Server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func handleAnalyze(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	processed := textproc.Normalize(textproc.StripLinks(req.Text))
	scores := analyzer.PolarityScores(processed)

	var label models.Sentiment
	switch {
	case scores.Compound >= 0.20:
		label = models.SentimentPositive
	case scores.Compound <= -0.20:
		label = models.SentimentNegative
	default:
		label = models.SentimentNeutral
	}

	triple := map[models.Sentiment]float64{
		models.SentimentPositive: scores.Positive,
		models.SentimentNegative: scores.Negative,
		models.SentimentNeutral:  scores.Neutral,
	}

	c.JSON(http.StatusOK, models.ClassifyResponse{
		ProcessedText:     processed,
		Sentiment:         label,
		ConfidenceScore:   models.Round4(triple[label]),
		SentimentScores:   triple,
		LanguageBreakdown: estimator.EstimateMix(processed),
	})
}
