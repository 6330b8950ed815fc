package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"error-report-api/internal/classify"
	"error-report-api/internal/client"
	"error-report-api/internal/handler"
	"error-report-api/internal/metrics"
	"error-report-api/internal/middleware"
	"error-report-api/internal/repository"
	"error-report-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	JWTSecret      string
	TokenTTL       time.Duration
	BasePath       string
	AllowedOrigins []string
	Store          client.FileStore
	Suggester      classify.Suggester
	MaxFileSize    int64
	MaxFiles       int

	// Pre-built services; the router constructs them from DB when nil
	ErrorService service.ErrorService
	StatsService service.StatsService
	AuthService  service.AuthService
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "error-report-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "error-report-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "error-report-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "error-report-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "error-report-api"})
	})

	// Initialize services not provided by the caller
	if cfg.ErrorService == nil {
		errorRepo := repository.NewErrorRepository(cfg.DB)
		cfg.ErrorService = service.NewErrorService(errorRepo, cfg.Metrics, cfg.Logger)
	}
	if cfg.StatsService == nil {
		errorRepo := repository.NewErrorRepository(cfg.DB)
		cfg.StatsService = service.NewStatsService(errorRepo, nil, cfg.Logger)
	}
	if cfg.AuthService == nil {
		userRepo := repository.NewUserRepository(cfg.DB)
		cfg.AuthService = service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.Logger)
	}

	// Initialize handlers
	errorHandler := handler.NewErrorHandler(cfg.ErrorService, cfg.Store, cfg.MaxFileSize, cfg.MaxFiles)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)
	classifyHandler := handler.NewClassifyHandler(cfg.Suggester, cfg.Metrics)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	uploadHandler := handler.NewUploadHandler(cfg.Store)

	// API routes group
	api := r.Group(cfg.BasePath)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// ============================================================
	// Auth routes
	// ============================================================
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/user", authMiddleware, authHandler.GetUser)
	}

	// ============================================================
	// Error report routes
	// ============================================================
	errors := api.Group("/errors")
	errors.Use(authMiddleware)
	{
		errors.POST("", errorHandler.CreateError)
		errors.GET("", errorHandler.GetErrors)
		errors.GET("/:errorId", errorHandler.GetError)
		errors.PATCH("/:errorId", errorHandler.UpdateError)
		errors.DELETE("/:errorId", errorHandler.DeleteError)
	}

	// ============================================================
	// Dashboard stats routes
	// ============================================================
	stats := api.Group("/stats")
	stats.Use(authMiddleware)
	{
		stats.GET("/errors", statsHandler.GetErrorStats)
		stats.GET("/weekly", statsHandler.GetWeeklyStats)
		stats.GET("/categories", statsHandler.GetCategoryStats)
	}

	// ============================================================
	// AI assist routes
	// ============================================================
	ai := api.Group("/ai")
	ai.Use(authMiddleware)
	{
		ai.POST("/generate-title", classifyHandler.GenerateTitle)
		ai.POST("/analyze-system", classifyHandler.AnalyzeSystem)
		ai.POST("/analyze-image", classifyHandler.AnalyzeImage)
	}

	// Attachment serving (no auth; file names are unguessable)
	r.GET("/uploads/:filename", uploadHandler.ServeFile)

	return r
}
