package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"youtube-sentiment/internal/analyzer"
	"youtube-sentiment/internal/chatbot"
	"youtube-sentiment/internal/config"
	"youtube-sentiment/internal/language"
	"youtube-sentiment/internal/repository"
	"youtube-sentiment/internal/sentiment"
	"youtube-sentiment/internal/server"
	"youtube-sentiment/internal/service"
	"youtube-sentiment/internal/translate"
	"youtube-sentiment/internal/youtube"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret not configured. Set jwt.secret in configs/config.yml")
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	ctx := context.Background()

	// YouTube Data API client
	ytClient, err := youtube.NewClient(ctx, cfg.YouTube.APIKey, logger)
	if err != nil {
		logger.Fatal("Failed to initialize YouTube client", zap.Error(err))
	}

	// Gemini-backed translator (optional - analysis degrades to scoring
	// original text when disabled)
	var translator analyzer.Translator
	if cfg.Translation.Enabled {
		geminiTranslator, err := translate.NewGeminiTranslator(ctx, translate.Config{
			APIKey:            cfg.Gemini.APIKey,
			ModelName:         cfg.Gemini.ModelName,
			MaxRetries:        cfg.Gemini.MaxRetries,
			RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
		}, logger)
		if err != nil {
			logger.Warn("Failed to initialize translator, continuing without translation", zap.Error(err))
		} else {
			translator = geminiTranslator
			defer geminiTranslator.Close()
		}
	}

	// Gemini chatbot adapter
	chatClient, err := chatbot.NewClient(ctx, chatbot.Config{
		APIKey:            cfg.Gemini.APIKey,
		ModelName:         cfg.Gemini.ModelName,
		MaxRetries:        cfg.Gemini.MaxRetries,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize chatbot client", zap.Error(err))
	}
	defer chatClient.Close()

	// Repositories and services
	authRepo := repository.NewAuthRepository(db, logger)
	analysisRepo := repository.NewAnalysisRepository(db, logger)
	authService := service.NewAuthService(authRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour, logger)

	// Analysis pipeline
	pipeline := analyzer.New(
		ytClient,
		language.NewDetector(),
		translator,
		sentiment.NewScorer(),
		analysisRepo,
		cfg.YouTube.MaxComments,
		logger,
	)

	// Initialize and run the server
	srv := server.NewServer(db, server.Deps{
		AuthService: authService,
		Pipeline:    pipeline,
		ChatClient:  chatClient,
	}, logger)
	srv.Run(cfg.Server.Port)
}
