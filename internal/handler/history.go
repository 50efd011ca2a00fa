package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"youtube-sentiment/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HistoryHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Delete(c *gin.Context)
	Dashboard(c *gin.Context)
}

type historyHandler struct {
	analysisRepo repository.AnalysisRepository
	logger       *zap.Logger
}

func NewHistoryHandler(analysisRepo repository.AnalysisRepository, logger *zap.Logger) HistoryHandler {
	return &historyHandler{analysisRepo: analysisRepo, logger: logger}
}

// List handles GET /api/history: the user's past analyses, newest first.
func (h *historyHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)

	analyses, err := h.analysisRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list analyses", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

// Get handles GET /api/history/:id: one analysis with its comment results.
func (h *historyHandler) Get(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis ID"})
		return
	}

	analysis, err := h.analysisRepo.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		h.logger.Error("Failed to get analysis", zap.Int64("analysis_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis"})
		return
	}

	comments, err := h.analysisRepo.GetComments(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get comment results", zap.Int64("analysis_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis": analysis,
		"comments": comments,
	})
}

// Delete handles DELETE /api/history/:id. Comment results cascade.
func (h *historyHandler) Delete(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis ID"})
		return
	}

	if err := h.analysisRepo.Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		h.logger.Error("Failed to delete analysis", zap.Int64("analysis_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Analysis deleted"})
}

// Dashboard handles GET /api/analytics/dashboard: aggregate stats across all
// of the user's analyses.
func (h *historyHandler) Dashboard(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)

	stats, err := h.analysisRepo.UserStats(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get user stats", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard data"})
		return
	}

	recent, err := h.analysisRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list analyses for dashboard", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard data"})
		return
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"recent_analyses": recent,
	})
}
