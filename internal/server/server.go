package server

import (
	"net/http"

	"youtube-sentiment/internal/handler"
	"youtube-sentiment/internal/middleware"
	"youtube-sentiment/internal/repository"
	"youtube-sentiment/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	logger *zap.Logger
}

// Deps are the externally constructed collaborators the routes need.
type Deps struct {
	AuthService service.AuthService
	Pipeline    handler.Pipeline
	ChatClient  handler.ChatClient
}

func NewServer(db *sqlx.DB, deps Deps, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		logger: logger,
	}

	s.setupRoutes(deps)

	return s
}

func (s *Server) setupRoutes(deps Deps) {
	analysisRepo := repository.NewAnalysisRepository(s.db, s.logger)

	authHandler := handler.NewAuthHandler(deps.AuthService, s.logger)
	analyzeHandler := handler.NewAnalyzeHandler(deps.Pipeline, s.logger)
	historyHandler := handler.NewHistoryHandler(analysisRepo, s.logger)
	chatbotHandler := handler.NewChatbotHandler(deps.ChatClient, analysisRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(deps.AuthService.JWTSecret(), s.logger))
	{
		authRequired.POST("/auth/logout", authHandler.Logout)
		authRequired.GET("/auth/profile", authHandler.Profile)

		authRequired.POST("/analyze", analyzeHandler.Analyze)

		authRequired.GET("/history", historyHandler.List)
		authRequired.GET("/history/:id", historyHandler.Get)
		authRequired.DELETE("/history/:id", historyHandler.Delete)
		authRequired.GET("/analytics/dashboard", historyHandler.Dashboard)

		authRequired.POST("/chatbot", chatbotHandler.Ask)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
