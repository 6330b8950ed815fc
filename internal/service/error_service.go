package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"error-report-api/internal/domain"
	"error-report-api/internal/dto"
	"error-report-api/internal/metrics"
	"error-report-api/internal/repository"
	"error-report-api/internal/response"
)

// ErrorService defines the interface for error report business logic
type ErrorService interface {
	CreateError(ctx context.Context, reporterID string, req *dto.CreateErrorRequest) (*domain.ErrorReport, error)
	GetErrors(ctx context.Context, filter dto.ErrorListFilter) (*dto.ErrorListResponse, error)
	GetError(ctx context.Context, id int64) (*domain.ErrorReport, error)
	UpdateError(ctx context.Context, id int64, req *dto.UpdateErrorRequest) (*domain.ErrorReport, error)
	DeleteError(ctx context.Context, id int64) error
}

// errorServiceImpl is the implementation of ErrorService
type errorServiceImpl struct {
	errorRepo repository.ErrorRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewErrorService creates a new instance of ErrorService
func NewErrorService(errorRepo repository.ErrorRepository, m *metrics.Metrics, logger *zap.Logger) ErrorService {
	return &errorServiceImpl{
		errorRepo: errorRepo,
		metrics:   m,
		logger:    logger,
	}
}

// CreateError validates and files a new report. Priority and status default
// to 보통 and 접수됨; the reporter comes from the authenticated session, never
// from the payload.
func (s *errorServiceImpl) CreateError(ctx context.Context, reporterID string, req *dto.CreateErrorRequest) (*domain.ErrorReport, error) {
	if reporterID == "" {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Reporter identity missing", "")
	}

	if invalid := req.Validate(); len(invalid) > 0 {
		return nil, response.NewAppError(response.ErrCodeValidation,
			"Invalid fields: "+strings.Join(invalid, ", "), "")
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}

	report := &domain.ErrorReport{
		Title:       req.Title,
		Content:     req.Content,
		Priority:    priority,
		System:      req.System,
		Status:      domain.StatusReceived,
		Browser:     req.Browser,
		OS:          req.OS,
		Attachments: req.Attachments,
		ReporterID:  reporterID,
	}

	if err := s.errorRepo.Create(ctx, report); err != nil {
		s.logger.Error("Failed to create error report", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create error report", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementReportCreated()
	}

	s.logger.Info("Error report created",
		zap.Int64("id", report.ID),
		zap.String("system", report.System),
		zap.String("priority", report.Priority),
	)

	return report, nil
}

// GetErrors returns the filtered, paginated list ordered most recent first
func (s *errorServiceImpl) GetErrors(ctx context.Context, filter dto.ErrorListFilter) (*dto.ErrorListResponse, error) {
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	reports, total, err := s.errorRepo.Find(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list error reports", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch error reports", err.Error())
	}

	if reports == nil {
		reports = []domain.ErrorReport{}
	}

	return &dto.ErrorListResponse{Errors: reports, Total: total}, nil
}

// GetError returns a single report by ID
func (s *errorServiceImpl) GetError(ctx context.Context, id int64) (*domain.ErrorReport, error) {
	report, err := s.errorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Error report not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch error report", err.Error())
	}
	return report, nil
}

// UpdateError applies a partial update. Only provided fields change; the
// repository refreshes updated_at on every call.
func (s *errorServiceImpl) UpdateError(ctx context.Context, id int64, req *dto.UpdateErrorRequest) (*domain.ErrorReport, error) {
	if invalid := req.Validate(); len(invalid) > 0 {
		return nil, response.NewAppError(response.ErrCodeValidation,
			"Invalid fields: "+strings.Join(invalid, ", "), "")
	}

	report, err := s.errorRepo.Update(ctx, id, req.Fields())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Error report not found", "")
		}
		s.logger.Error("Failed to update error report", zap.Int64("id", id), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update error report", err.Error())
	}

	return report, nil
}

// DeleteError hard-deletes a report
func (s *errorServiceImpl) DeleteError(ctx context.Context, id int64) error {
	deleted, err := s.errorRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete error report", zap.Int64("id", id), zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete error report", err.Error())
	}
	if !deleted {
		return response.NewAppError(response.ErrCodeNotFound, "Error report not found", "")
	}

	s.logger.Info("Error report deleted", zap.Int64("id", id))
	return nil
}
