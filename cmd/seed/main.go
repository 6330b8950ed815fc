// Seed creates the default admin account and a handful of sample error
// reports so a fresh deployment has data to look at.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"error-report-api/internal/config"
	"error-report-api/internal/database"
	"error-report-api/internal/domain"
	"error-report-api/internal/repository"
	"error-report-api/internal/service"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL, logger)

	admin, err := authService.EnsureDefaultAdmin(ctx)
	if err != nil {
		logger.Fatal("Failed to ensure default admin", zap.Error(err))
	}
	logger.Info("Default admin ready", zap.String("user_id", admin.ID))

	errorRepo := repository.NewErrorRepository(db)
	seeded, err := seedSampleReports(ctx, errorRepo, admin.ID)
	if err != nil {
		logger.Fatal("Failed to seed sample reports", zap.Error(err))
	}
	logger.Info("Seed completed", zap.Int("sample_reports", seeded))
}

// seedSampleReports inserts sample reports once; reruns are no-ops when
// reports already exist
func seedSampleReports(ctx context.Context, repo repository.ErrorRepository, reporterID string) (int, error) {
	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range counts {
		if c.Count > 0 {
			return 0, nil
		}
	}

	samples := []domain.ErrorReport{
		{
			Title:      "승차권 결제 오류 발생",
			Content:    "신용카드로 승차권을 결제하면 승인 완료 후에도 발권이 되지 않습니다. 재시도해도 동일합니다.",
			Priority:   domain.PriorityUrgent,
			System:     domain.CategoryTicketing,
			Status:     domain.StatusReceived,
			Browser:    "Chrome 126",
			OS:         "Windows 11",
			ReporterID: reporterID,
		},
		{
			Title:      "엘리베이터 정지 (동작 불가)",
			Content:    "3번 출구 엘리베이터가 2층에서 멈춘 상태로 움직이지 않습니다. 이용객 안내가 필요합니다.",
			Priority:   domain.PriorityHigh,
			System:     domain.CategoryFacility,
			Status:     domain.StatusInProgress,
			Browser:    "Safari 17",
			OS:         "iOS 17",
			ReporterID: reporterID,
		},
		{
			Title:      "화재 경보 오작동",
			Content:    "대합실 화재 경보가 연기 없이 반복적으로 울립니다. 센서 점검이 필요해 보입니다.",
			Priority:   domain.PriorityNormal,
			System:     domain.CategorySafety,
			Status:     domain.StatusDone,
			Browser:    "Edge 126",
			OS:         "Windows 10",
			ReporterID: reporterID,
		},
		{
			Title:      "조명 점멸 문제",
			Content:    "승강장 북측 조명이 깜빡거립니다. 야간 시간대 시야 확보가 어렵습니다.",
			Priority:   domain.PriorityLow,
			System:     domain.CategoryFacility,
			Status:     domain.StatusOnHold,
			Browser:    "Chrome 126",
			OS:         "Android 14",
			ReporterID: reporterID,
		},
	}

	for i := range samples {
		if err := repo.Create(ctx, &samples[i]); err != nil {
			return i, err
		}
	}
	return len(samples), nil
}
