// Package server exposes the dashboard and CRUD API over gin.
package server

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/sentimenhq/sentimen/internal/analyzer"
	"github.com/sentimenhq/sentimen/internal/clients"
	"github.com/sentimenhq/sentimen/internal/db"
)

type Server struct {
	repo              *db.Repository
	analyzer          *analyzer.Analyzer
	cache             *clients.ValkeyClient
	classifierHealthy *atomic.Bool
	publish           func(topic, key string, payload any) error
}

func New(repo *db.Repository, a *analyzer.Analyzer, cache *clients.ValkeyClient,
	classifierHealthy *atomic.Bool, publish func(topic, key string, payload any) error,
) *Server {
	return &Server{
		repo:              repo,
		analyzer:          a,
		cache:             cache,
		classifierHealthy: classifierHealthy,
		publish:           publish,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/dashboard", s.handleDashboard)
		api.GET("/analytics", s.handleAnalytics)

		api.GET("/analyses", s.handleListAnalyses)
		api.POST("/analyses", s.handleCreateAnalysis)
		api.GET("/analyses/:id", s.handleGetAnalysis)
		api.PUT("/analyses/:id", s.handleUpdateAnalysis)
		api.DELETE("/analyses/:id", s.handleDeleteAnalysis)

		api.POST("/samples", s.handleIngestSample)
		api.POST("/bulk-analyze", s.handleBulkAnalyze)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if s.classifierHealthy != nil {
		status["classifier_healthy"] = s.classifierHealthy.Load()
	}
	c.JSON(http.StatusOK, status)
}
