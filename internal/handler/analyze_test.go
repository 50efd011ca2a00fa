package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"youtube-sentiment/internal/analyzer"
	"youtube-sentiment/internal/apperr"
	"youtube-sentiment/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPipeline struct {
	result    *analyzer.Result
	err       error
	gotUserID int64
	gotURL    string
	gotOpts   analyzer.Options
}

func (p *stubPipeline) Analyze(_ context.Context, userID int64, url string, opts analyzer.Options) (*analyzer.Result, error) {
	p.gotUserID = userID
	p.gotURL = url
	p.gotOpts = opts
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func newAnalyzeRouter(pipeline *stubPipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAnalyzeHandler(pipeline, zap.NewNop())
	router.POST("/api/analyze", func(c *gin.Context) {
		c.Set("user_id", int64(7))
		h.Analyze(c)
	})
	return router
}

func postAnalyze(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeSuccess(t *testing.T) {
	pipeline := &stubPipeline{result: &analyzer.Result{
		Analysis: &models.VideoAnalysis{
			ID:            3,
			VideoID:       "dQw4w9WgXcQ",
			TotalComments: 2,
			PositiveCount: 1,
			NeutralCount:  1,
			Languages:     models.LanguageDistribution{"en": 2},
		},
		Comments:       []models.CommentResult{},
		SampleComments: map[string][]string{},
	}}
	router := newAnalyzeRouter(pipeline)

	w := postAnalyze(router, `{"url":"https://youtu.be/dQw4w9WgXcQ","max_comments":200}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(7), pipeline.gotUserID)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", pipeline.gotURL)
	assert.Equal(t, 200, pipeline.gotOpts.MaxComments)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(3), resp["analysis_id"])
	assert.Equal(t, "dQw4w9WgXcQ", resp["video_id"])
	assert.Equal(t, float64(2), resp["total_comments"])
}

func TestAnalyzeMissingURL(t *testing.T) {
	pipeline := &stubPipeline{}
	router := newAnalyzeRouter(pipeline)

	w := postAnalyze(router, `{"max_comments":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, pipeline.gotURL)
}

func TestAnalyzeValidationError(t *testing.T) {
	pipeline := &stubPipeline{err: apperr.Validation("could not extract a video ID from the URL")}
	router := newAnalyzeRouter(pipeline)

	w := postAnalyze(router, `{"url":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "video ID")
}

func TestAnalyzeUpstreamError(t *testing.T) {
	pipeline := &stubPipeline{err: apperr.External("youtube", "commentsDisabled", errors.New("403"))}
	router := newAnalyzeRouter(pipeline)

	w := postAnalyze(router, `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAnalyzeInternalError(t *testing.T) {
	pipeline := &stubPipeline{err: errors.New("db is down")}
	router := newAnalyzeRouter(pipeline)

	w := postAnalyze(router, `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// internal details stay out of the response body
	assert.NotContains(t, w.Body.String(), "db is down")
}
