package handler

import (
	"context"
	"net/http"

	"youtube-sentiment/internal/analyzer"
	"youtube-sentiment/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pipeline is the slice of the analyzer the handler needs.
type Pipeline interface {
	Analyze(ctx context.Context, userID int64, url string, opts analyzer.Options) (*analyzer.Result, error)
}

type AnalyzeHandler interface {
	Analyze(c *gin.Context)
}

type analyzeHandler struct {
	pipeline Pipeline
	logger   *zap.Logger
}

func NewAnalyzeHandler(pipeline Pipeline, logger *zap.Logger) AnalyzeHandler {
	return &analyzeHandler{pipeline: pipeline, logger: logger}
}

type AnalyzeRequest struct {
	URL         string `json:"url" binding:"required"`
	MaxComments int    `json:"max_comments"`
	FetchAll    bool   `json:"fetch_all"`
}

// Analyze handles POST /api/analyze: runs the comment pipeline for the
// authenticated user and returns the persisted aggregate.
func (h *analyzeHandler) Analyze(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.pipeline.Analyze(c.Request.Context(), userID, req.URL, analyzer.Options{
		MaxComments: req.MaxComments,
		FetchAll:    req.FetchAll,
	})
	if err != nil {
		respondPipelineError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                true,
		"analysis_id":            result.Analysis.ID,
		"video_id":               result.Analysis.VideoID,
		"title":                  result.Analysis.Title,
		"total_comments":         result.Analysis.TotalComments,
		"sentiment_distribution": result.Analysis.SentimentDistribution(),
		"toxic_count":            result.Analysis.ToxicCount,
		"language_distribution":  result.Analysis.Languages,
		"sample_comments":        result.SampleComments,
		"comments":               result.Comments,
	})
}

// respondPipelineError maps the two error kinds onto HTTP statuses: bad
// input is the client's fault, upstream rejections are a bad gateway.
func respondPipelineError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsExternal(err):
		logger.Warn("Upstream service error", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error("Analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
	}
}
