package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"youtube-sentiment/internal/apperr"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// Config for the Gemini chatbot client.
type Config struct {
	APIKey            string
	ModelName         string
	MaxRetries        int
	RetryDelay        time.Duration
	RequestsPerMinute int
}

// Client forwards a question plus the persisted analysis summary to the
// Gemini API and returns its answer verbatim.
type Client struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	limiter    *rate.Limiter
	logger     *zap.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a Gemini chatbot client.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	if cfg.ModelName == "" {
		cfg.ModelName = "gemini-2.0-flash"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 8
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.ModelName)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: genai.Ptr[int32](500),
	}

	logger.Info("Gemini chatbot initialized", zap.String("model", cfg.ModelName))

	return &Client{
		client:     client,
		model:      model,
		limiter:    rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1),
		logger:     logger,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Close closes the underlying Gemini client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Ask sends the question with the analysis summary as context and returns
// the model's text response unmodified.
func (c *Client) Ask(ctx context.Context, question string, summary *Summary) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	prompt := BuildPrompt(question, summary)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying Gemini chat request",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", c.maxRetries))
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			continue
		}

		if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("empty response from gemini")
			continue
		}

		textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
		if !ok {
			lastErr = fmt.Errorf("unexpected response type from gemini")
			continue
		}

		return strings.TrimSpace(string(textPart)), nil
	}

	return "", apperr.External("gemini", "chat", fmt.Errorf("failed after %d attempts: %w", c.maxRetries, lastErr))
}
