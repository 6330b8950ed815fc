// @title           Error Report API
// @version         1.0
// @description     철도 오류 신고 접수/관리 API

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"error-report-api/internal/classify"
	"error-report-api/internal/client"
	"error-report-api/internal/config"
	"error-report-api/internal/database"
	"error-report-api/internal/job"
	"error-report-api/internal/metrics"
	"error-report-api/internal/repository"
	"error-report-api/internal/router"
	"error-report-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Error Report API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize database
	db, err := database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	// Initialize metrics
	m := metrics.NewWithRegistry(prometheus.DefaultRegisterer, logger)
	database.RegisterMetricsCallbacks(db, m)
	statsDone := database.StartDBStatsCollector(db, m)
	defer close(statsDone)
	logger.Info("Metrics initialized")

	// Initialize redis stats cache (nil = cache off)
	redisClient := database.NewRedis(cfg.Redis, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize attachment store (S3 when configured, local directory otherwise)
	var store client.FileStore
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3Store, err := client.NewS3Store(&cfg.S3)
		if err != nil {
			logger.Fatal("Failed to initialize S3 store", zap.Error(err))
		}
		store = s3Store
		logger.Info("S3 attachment store initialized",
			zap.String("bucket", cfg.S3.Bucket),
			zap.String("region", cfg.S3.Region),
		)
	} else {
		localStore, err := client.NewLocalStore(cfg.Upload.Dir)
		if err != nil {
			logger.Fatal("Failed to initialize local attachment store", zap.Error(err))
		}
		store = localStore
		logger.Info("Local attachment store initialized", zap.String("dir", cfg.Upload.Dir))
	}

	// Initialize AI suggester: remote provider when configured, keyword
	// fallback always available
	var primary classify.Suggester
	if cfg.Classify.BaseURL != "" {
		primary = classify.NewRemoteClassifier(cfg.Classify.BaseURL, cfg.Classify.Model, cfg.Classify.Timeout)
		logger.Info("Remote classify provider initialized",
			zap.String("base_url", cfg.Classify.BaseURL),
			zap.String("model", cfg.Classify.Model),
		)
	} else {
		logger.Info("No remote classify provider configured, using keyword classifier")
	}
	suggester := classify.NewFallbackSuggester(primary, classify.NewKeywordClassifier(), m, logger)

	// Initialize repositories and services
	errorRepo := repository.NewErrorRepository(db)
	userRepo := repository.NewUserRepository(db)
	errorService := service.NewErrorService(errorRepo, m, logger)
	statsService := service.NewStatsService(errorRepo, redisClient, logger)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL, logger)

	// Schedule orphaned upload cleanup
	cleanupJob := job.NewCleanupJob(errorRepo, store, cfg.Upload.OrphanAge, logger)
	c := cron.New()
	if _, err := c.AddJob(cfg.Upload.CleanupCron, cleanupJob); err != nil {
		logger.Warn("Failed to schedule cleanup job", zap.Error(err))
	} else {
		c.Start()
		defer c.Stop()
		logger.Info("Cleanup job scheduled", zap.String("cron", cfg.Upload.CleanupCron))
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:             db,
		Logger:         logger,
		Metrics:        m,
		JWTSecret:      cfg.JWT.Secret,
		TokenTTL:       cfg.JWT.TTL,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Store:          store,
		Suggester:      suggester,
		MaxFileSize:    cfg.Upload.MaxFileSize,
		MaxFiles:       cfg.Upload.MaxFiles,
		ErrorService:   errorService,
		StatsService:   statsService,
		AuthService:    authService,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Error Report API started successfully",
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapConfig.Build()
}
