package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"youtube-sentiment/internal/apperr"
	"youtube-sentiment/internal/language"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

const systemInstruction = "You are a translation engine. Translate the user's text into " +
	"English. Reply with the translation only: no preamble, no quotes, no explanations. " +
	"If the text is already English or untranslatable, reply with the text unchanged."

// Config for the Gemini translator.
type Config struct {
	APIKey            string
	ModelName         string
	MaxRetries        int
	RetryDelay        time.Duration
	RequestsPerMinute int
}

// GeminiTranslator translates comment text to English through the Gemini
// API. Calls are rate limited so a large comment batch stays inside the
// free-tier request quota.
type GeminiTranslator struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	limiter    *rate.Limiter
	logger     *zap.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewGeminiTranslator creates a translator backed by the given Gemini model.
func NewGeminiTranslator(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiTranslator, error) {
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
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: genai.Ptr[int32](1024),
	}

	logger.Info("Gemini translator initialized",
		zap.String("model", cfg.ModelName),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute))

	return &GeminiTranslator{
		client:     client,
		model:      model,
		limiter:    rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1),
		logger:     logger,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Close closes the underlying Gemini client.
func (t *GeminiTranslator) Close() error {
	return t.client.Close()
}

// TranslateToEnglish returns the English rendering of text. Text already in
// English, or whose language could not be detected, is returned unchanged
// without an API call.
func (t *GeminiTranslator) TranslateToEnglish(ctx context.Context, text, srcLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if srcLang == "en" || srcLang == language.Unknown {
		return text, nil
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	prompt := fmt.Sprintf("Translate to English (source language %s):\n%s", srcLang, text)

	var lastErr error
	for attempt := 0; attempt < t.maxRetries; attempt++ {
		if attempt > 0 {
			t.logger.Warn("Retrying Gemini translation",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", t.maxRetries))
			select {
			case <-time.After(t.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		resp, err := t.model.GenerateContent(ctx, genai.Text(prompt))
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

	return "", apperr.External("gemini", "translation", fmt.Errorf("failed after %d attempts: %w", t.maxRetries, lastErr))
}
