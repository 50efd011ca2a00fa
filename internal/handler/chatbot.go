package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"youtube-sentiment/internal/apperr"
	"youtube-sentiment/internal/chatbot"
	"youtube-sentiment/internal/models"
	"youtube-sentiment/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatClient is the slice of the chatbot adapter the handler needs.
type ChatClient interface {
	Ask(ctx context.Context, question string, summary *chatbot.Summary) (string, error)
}

type ChatbotHandler interface {
	Ask(c *gin.Context)
}

type chatbotHandler struct {
	client       ChatClient
	analysisRepo repository.AnalysisRepository
	logger       *zap.Logger
}

func NewChatbotHandler(client ChatClient, analysisRepo repository.AnalysisRepository, logger *zap.Logger) ChatbotHandler {
	return &chatbotHandler{client: client, analysisRepo: analysisRepo, logger: logger}
}

type ChatRequest struct {
	Question   string `json:"question" binding:"required"`
	AnalysisID int64  `json:"analysis_id" binding:"required"`
}

// Ask handles POST /api/chatbot: loads the persisted aggregate for the
// referenced analysis and forwards it with the question to the generative
// AI API. The upstream answer is returned verbatim.
func (h *chatbotHandler) Ask(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.buildSummary(c.Request.Context(), req.AnalysisID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		h.logger.Error("Failed to build chatbot context", zap.Int64("analysis_id", req.AnalysisID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analysis context"})
		return
	}

	answer, err := h.client.Ask(c.Request.Context(), req.Question, summary)
	if err != nil {
		if apperr.IsExternal(err) {
			h.logger.Warn("Chatbot upstream error", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Chatbot request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chatbot request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": answer})
}

func (h *chatbotHandler) buildSummary(ctx context.Context, analysisID, userID int64) (*chatbot.Summary, error) {
	analysis, err := h.analysisRepo.GetByID(ctx, analysisID, userID)
	if err != nil {
		return nil, err
	}

	samples := map[string][]string{}
	for _, label := range []string{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral} {
		comments, err := h.analysisRepo.SampleComments(ctx, analysisID, label, 5)
		if err != nil {
			return nil, err
		}
		texts := make([]string, 0, len(comments))
		for _, comment := range comments {
			texts = append(texts, comment.Text)
		}
		samples[label] = texts
	}

	summary := &chatbot.Summary{
		TotalComments:  analysis.TotalComments,
		Sentiments:     analysis.SentimentDistribution(),
		Languages:      analysis.Languages,
		SampleComments: samples,
	}
	if analysis.Title != nil {
		summary.VideoTitle = *analysis.Title
	}
	return summary, nil
}
