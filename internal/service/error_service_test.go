package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"error-report-api/internal/domain"
	"error-report-api/internal/dto"
	"error-report-api/internal/repository"
	"error-report-api/internal/response"
)

// MockErrorRepository is a mock implementation of ErrorRepository
type MockErrorRepository struct {
	CreateFunc                func(ctx context.Context, report *domain.ErrorReport) error
	FindFunc                  func(ctx context.Context, filter dto.ErrorListFilter) ([]domain.ErrorReport, int64, error)
	FindByIDFunc              func(ctx context.Context, id int64) (*domain.ErrorReport, error)
	UpdateFunc                func(ctx context.Context, id int64, fields map[string]interface{}) (*domain.ErrorReport, error)
	DeleteFunc                func(ctx context.Context, id int64) (bool, error)
	CountByStatusFunc         func(ctx context.Context) ([]repository.StatusCount, error)
	CreatedCountsByWeekFunc   func(ctx context.Context, since time.Time) ([]dto.WeekCount, error)
	ResolvedCountsByWeekFunc  func(ctx context.Context, since time.Time) ([]dto.WeekCount, error)
	CountByCategoryFunc       func(ctx context.Context) ([]repository.CategoryCount, error)
	ReferencedAttachmentsFunc func(ctx context.Context) ([]string, error)
}

func (m *MockErrorRepository) Create(ctx context.Context, report *domain.ErrorReport) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report)
	}
	return nil
}

func (m *MockErrorRepository) Find(ctx context.Context, filter dto.ErrorListFilter) ([]domain.ErrorReport, int64, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockErrorRepository) FindByID(ctx context.Context, id int64) (*domain.ErrorReport, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockErrorRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.ErrorReport, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, fields)
	}
	return nil, nil
}

func (m *MockErrorRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockErrorRepository) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return nil, nil
}

func (m *MockErrorRepository) CreatedCountsByWeek(ctx context.Context, since time.Time) ([]dto.WeekCount, error) {
	if m.CreatedCountsByWeekFunc != nil {
		return m.CreatedCountsByWeekFunc(ctx, since)
	}
	return nil, nil
}

func (m *MockErrorRepository) ResolvedCountsByWeek(ctx context.Context, since time.Time) ([]dto.WeekCount, error) {
	if m.ResolvedCountsByWeekFunc != nil {
		return m.ResolvedCountsByWeekFunc(ctx, since)
	}
	return nil, nil
}

func (m *MockErrorRepository) CountByCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	if m.CountByCategoryFunc != nil {
		return m.CountByCategoryFunc(ctx)
	}
	return nil, nil
}

func (m *MockErrorRepository) ReferencedAttachments(ctx context.Context) ([]string, error) {
	if m.ReferencedAttachmentsFunc != nil {
		return m.ReferencedAttachmentsFunc(ctx)
	}
	return nil, nil
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestErrorService_CreateError(t *testing.T) {
	tests := []struct {
		name        string
		reporterID  string
		req         *dto.CreateErrorRequest
		mockRepo    func(*MockErrorRepository)
		wantErr     bool
		wantErrCode string
		check       func(*testing.T, *domain.ErrorReport)
	}{
		{
			name:       "성공: 정상적인 오류 신고 생성",
			reporterID: "user-1",
			req: &dto.CreateErrorRequest{
				Title:    "결제 화면 오류",
				Content:  "결제 버튼을 누르면 화면이 멈춥니다",
				Priority: domain.PriorityHigh,
				System:   domain.CategoryTicketing,
			},
			mockRepo: func(m *MockErrorRepository) {
				m.CreateFunc = func(ctx context.Context, report *domain.ErrorReport) error {
					report.ID = 1
					report.CreatedAt = time.Now()
					report.UpdatedAt = report.CreatedAt
					return nil
				}
			},
			check: func(t *testing.T, report *domain.ErrorReport) {
				if report.Status != domain.StatusReceived {
					t.Errorf("status = %q, want %q", report.Status, domain.StatusReceived)
				}
				if report.Priority != domain.PriorityHigh {
					t.Errorf("priority = %q, want %q", report.Priority, domain.PriorityHigh)
				}
				if report.ReporterID != "user-1" {
					t.Errorf("reporterID = %q, want user-1", report.ReporterID)
				}
			},
		},
		{
			name:       "성공: 우선순위 생략 시 보통으로 기본 설정",
			reporterID: "user-1",
			req: &dto.CreateErrorRequest{
				Title:   "조명 문제",
				Content: "승강장 조명이 깜빡거립니다",
				System:  domain.CategoryFacility,
			},
			mockRepo: func(m *MockErrorRepository) {
				m.CreateFunc = func(ctx context.Context, report *domain.ErrorReport) error {
					report.ID = 2
					return nil
				}
			},
			check: func(t *testing.T, report *domain.ErrorReport) {
				if report.Priority != domain.PriorityNormal {
					t.Errorf("priority = %q, want %q", report.Priority, domain.PriorityNormal)
				}
			},
		},
		{
			name:       "실패: 인증된 사용자 없음",
			reporterID: "",
			req: &dto.CreateErrorRequest{
				Title:   "조명 문제",
				Content: "승강장 조명이 깜빡거립니다",
				System:  domain.CategoryFacility,
			},
			mockRepo:    func(m *MockErrorRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeUnauthorized,
		},
		{
			name:       "실패: 내용이 10자 미만",
			reporterID: "user-1",
			req: &dto.CreateErrorRequest{
				Title:   "조명 문제",
				Content: "짧음",
				System:  domain.CategoryFacility,
			},
			mockRepo:    func(m *MockErrorRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:       "실패: 알 수 없는 우선순위",
			reporterID: "user-1",
			req: &dto.CreateErrorRequest{
				Title:    "조명 문제",
				Content:  "승강장 조명이 깜빡거립니다",
				Priority: "엄청급함",
				System:   domain.CategoryFacility,
			},
			mockRepo:    func(m *MockErrorRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:       "실패: 생성 중 DB 에러",
			reporterID: "user-1",
			req: &dto.CreateErrorRequest{
				Title:   "조명 문제",
				Content: "승강장 조명이 깜빡거립니다",
				System:  domain.CategoryFacility,
			},
			mockRepo: func(m *MockErrorRepository) {
				m.CreateFunc = func(ctx context.Context, report *domain.ErrorReport) error {
					return errors.New("database error")
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockErrorRepository{}
			tt.mockRepo(mockRepo)

			svc := NewErrorService(mockRepo, nil, zap.NewNop())
			report, err := svc.CreateError(context.Background(), tt.reporterID, tt.req)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if code := appErrCode(t, err); code != tt.wantErrCode {
					t.Errorf("error code = %q, want %q", code, tt.wantErrCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, report)
			}
		})
	}
}

func TestErrorService_GetErrors(t *testing.T) {
	t.Run("성공: 잘못된 limit은 20으로 보정", func(t *testing.T) {
		var gotFilter dto.ErrorListFilter
		mockRepo := &MockErrorRepository{
			FindFunc: func(ctx context.Context, filter dto.ErrorListFilter) ([]domain.ErrorReport, int64, error) {
				gotFilter = filter
				return nil, 0, nil
			},
		}

		svc := NewErrorService(mockRepo, nil, zap.NewNop())
		list, err := svc.GetErrors(context.Background(), dto.ErrorListFilter{Limit: 500, Offset: -3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotFilter.Limit != 20 {
			t.Errorf("limit = %d, want 20", gotFilter.Limit)
		}
		if gotFilter.Offset != 0 {
			t.Errorf("offset = %d, want 0", gotFilter.Offset)
		}
		if list.Errors == nil {
			t.Error("errors slice should never be nil")
		}
	})

	t.Run("성공: 필터가 그대로 전달됨", func(t *testing.T) {
		var gotFilter dto.ErrorListFilter
		mockRepo := &MockErrorRepository{
			FindFunc: func(ctx context.Context, filter dto.ErrorListFilter) ([]domain.ErrorReport, int64, error) {
				gotFilter = filter
				return []domain.ErrorReport{{ID: 1}}, 1, nil
			},
		}

		svc := NewErrorService(mockRepo, nil, zap.NewNop())
		list, err := svc.GetErrors(context.Background(), dto.ErrorListFilter{
			Search: "엘리베이터",
			Status: domain.StatusReceived,
			Limit:  10,
			Offset: 20,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotFilter.Search != "엘리베이터" || gotFilter.Status != domain.StatusReceived {
			t.Errorf("filter not forwarded: %+v", gotFilter)
		}
		if list.Total != 1 || len(list.Errors) != 1 {
			t.Errorf("list = %+v, want 1 row", list)
		}
	})
}

func TestErrorService_GetError(t *testing.T) {
	t.Run("실패: 존재하지 않는 신고", func(t *testing.T) {
		mockRepo := &MockErrorRepository{
			FindByIDFunc: func(ctx context.Context, id int64) (*domain.ErrorReport, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := NewErrorService(mockRepo, nil, zap.NewNop())
		_, err := svc.GetError(context.Background(), 99)
		if code := appErrCode(t, err); code != response.ErrCodeNotFound {
			t.Errorf("error code = %q, want %q", code, response.ErrCodeNotFound)
		}
	})
}

func TestErrorService_UpdateError(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("성공: 전달된 필드만 수정", func(t *testing.T) {
		var gotFields map[string]interface{}
		mockRepo := &MockErrorRepository{
			UpdateFunc: func(ctx context.Context, id int64, fields map[string]interface{}) (*domain.ErrorReport, error) {
				gotFields = fields
				return &domain.ErrorReport{ID: id, Status: domain.StatusInProgress}, nil
			},
		}

		svc := NewErrorService(mockRepo, nil, zap.NewNop())
		report, err := svc.UpdateError(context.Background(), 1, &dto.UpdateErrorRequest{
			Status: strPtr(domain.StatusInProgress),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gotFields) != 1 || gotFields["status"] != domain.StatusInProgress {
			t.Errorf("fields = %v, want only status", gotFields)
		}
		if report.Status != domain.StatusInProgress {
			t.Errorf("status = %q, want %q", report.Status, domain.StatusInProgress)
		}
	})

	t.Run("실패: 알 수 없는 상태 값", func(t *testing.T) {
		svc := NewErrorService(&MockErrorRepository{}, nil, zap.NewNop())
		_, err := svc.UpdateError(context.Background(), 1, &dto.UpdateErrorRequest{
			Status: strPtr("완료됨됨"),
		})
		if code := appErrCode(t, err); code != response.ErrCodeValidation {
			t.Errorf("error code = %q, want %q", code, response.ErrCodeValidation)
		}
	})

	t.Run("실패: 존재하지 않는 신고 수정", func(t *testing.T) {
		mockRepo := &MockErrorRepository{
			UpdateFunc: func(ctx context.Context, id int64, fields map[string]interface{}) (*domain.ErrorReport, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := NewErrorService(mockRepo, nil, zap.NewNop())
		_, err := svc.UpdateError(context.Background(), 99, &dto.UpdateErrorRequest{
			Status: strPtr(domain.StatusDone),
		})
		if code := appErrCode(t, err); code != response.ErrCodeNotFound {
			t.Errorf("error code = %q, want %q", code, response.ErrCodeNotFound)
		}
	})
}

func TestErrorService_DeleteError(t *testing.T) {
	t.Run("성공: 신고 삭제", func(t *testing.T) {
		mockRepo := &MockErrorRepository{
			DeleteFunc: func(ctx context.Context, id int64) (bool, error) {
				return true, nil
			},
		}

		svc := NewErrorService(mockRepo, nil, zap.NewNop())
		if err := svc.DeleteError(context.Background(), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("실패: 존재하지 않는 신고 삭제", func(t *testing.T) {
		mockRepo := &MockErrorRepository{
			DeleteFunc: func(ctx context.Context, id int64) (bool, error) {
				return false, nil
			},
		}

		svc := NewErrorService(mockRepo, nil, zap.NewNop())
		err := svc.DeleteError(context.Background(), 99)
		if code := appErrCode(t, err); code != response.ErrCodeNotFound {
			t.Errorf("error code = %q, want %q", code, response.ErrCodeNotFound)
		}
	})
}
