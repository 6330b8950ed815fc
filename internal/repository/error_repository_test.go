package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"error-report-api/internal/domain"
	"error-report-api/internal/dto"
)

// setupErrorTestDB opens an in-memory SQLite database. The errors table is
// created by hand for SQLite compatibility (text[] has no SQLite type); the
// pq.StringArray column round-trips through its literal encoding.
func setupErrorTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	db.Exec(`CREATE TABLE errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT '보통',
		system TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT '접수됨',
		browser TEXT,
		os TEXT,
		attachments TEXT,
		reporter_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`)

	return db
}

func sampleReport() *domain.ErrorReport {
	return &domain.ErrorReport{
		Title:       "승차권 결제 오류",
		Content:     "결제 버튼을 누르면 오류가 발생합니다",
		Priority:    domain.PriorityHigh,
		System:      domain.CategoryTicketing,
		Status:      domain.StatusReceived,
		Browser:     "Chrome 126",
		OS:          "Windows 11",
		Attachments: pq.StringArray{"/uploads/a.png"},
		ReporterID:  "user-1",
	}
}

func TestErrorRepository_CreateAndFindByID(t *testing.T) {
	db := setupErrorTestDB(t)
	repo := NewErrorRepository(db)
	ctx := context.Background()

	t.Run("성공: 생성 시 ID가 할당되고 생성/수정 시각이 동일", func(t *testing.T) {
		report := sampleReport()
		if err := repo.Create(ctx, report); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if report.ID == 0 {
			t.Error("ID must be assigned by the database")
		}
		if !report.CreatedAt.Equal(report.UpdatedAt) {
			t.Errorf("createdAt %v != updatedAt %v on creation", report.CreatedAt, report.UpdatedAt)
		}
	})

	t.Run("성공: 저장한 신고를 그대로 다시 조회", func(t *testing.T) {
		report := sampleReport()
		if err := repo.Create(ctx, report); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		found, err := repo.FindByID(ctx, report.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Title != report.Title || found.Content != report.Content {
			t.Errorf("round-trip mismatch: got %+v", found)
		}
		if found.Priority != domain.PriorityHigh || found.Status != domain.StatusReceived {
			t.Errorf("enum fields not preserved: %+v", found)
		}
		if len(found.Attachments) != 1 || found.Attachments[0] != "/uploads/a.png" {
			t.Errorf("attachments = %v", found.Attachments)
		}
	})

	t.Run("실패: 없는 ID는 ErrRecordNotFound", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, 9999); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
		}
	})
}

func TestErrorRepository_Find(t *testing.T) {
	db := setupErrorTestDB(t)
	repo := NewErrorRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	titles := []string{"첫 번째 신고", "두 번째 신고", "세 번째 신고"}
	statuses := []string{domain.StatusReceived, domain.StatusDone, domain.StatusReceived}
	for i := range titles {
		report := sampleReport()
		report.Title = titles[i]
		report.Status = statuses[i]
		report.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		report.UpdatedAt = report.CreatedAt
		if err := repo.Create(ctx, report); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	t.Run("성공: 최신 생성 순으로 정렬", func(t *testing.T) {
		reports, total, err := repo.Find(ctx, dto.ErrorListFilter{Limit: 10})
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if total != 3 || len(reports) != 3 {
			t.Fatalf("total = %d, rows = %d, want 3/3", total, len(reports))
		}
		if reports[0].Title != "세 번째 신고" || reports[2].Title != "첫 번째 신고" {
			t.Errorf("not ordered created_at DESC: %q, %q, %q",
				reports[0].Title, reports[1].Title, reports[2].Title)
		}
	})

	t.Run("성공: 상태 필터는 정확히 일치하는 행만", func(t *testing.T) {
		reports, total, err := repo.Find(ctx, dto.ErrorListFilter{Status: domain.StatusDone, Limit: 10})
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if total != 1 || len(reports) != 1 {
			t.Fatalf("total = %d, rows = %d, want 1/1", total, len(reports))
		}
		if reports[0].Status != domain.StatusDone {
			t.Errorf("status = %q", reports[0].Status)
		}
	})

	t.Run("성공: '모든 상태'는 필터 해제", func(t *testing.T) {
		_, total, err := repo.Find(ctx, dto.ErrorListFilter{Status: domain.StatusAll, Limit: 10})
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
	})

	t.Run("성공: 페이지네이션 중에도 total은 전체 일치 건수", func(t *testing.T) {
		reports, total, err := repo.Find(ctx, dto.ErrorListFilter{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		if len(reports) != 1 || reports[0].Title != "두 번째 신고" {
			t.Errorf("page = %+v, want the middle row", reports)
		}
	})
}

func TestErrorRepository_Update(t *testing.T) {
	db := setupErrorTestDB(t)
	repo := NewErrorRepository(db)
	ctx := context.Background()

	t.Run("성공: 전달한 필드만 변경되고 updated_at은 증가", func(t *testing.T) {
		report := sampleReport()
		if err := repo.Create(ctx, report); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		time.Sleep(20 * time.Millisecond)

		updated, err := repo.Update(ctx, report.ID, map[string]interface{}{
			"status": domain.StatusInProgress,
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Status != domain.StatusInProgress {
			t.Errorf("status = %q, want %q", updated.Status, domain.StatusInProgress)
		}
		if updated.Title != report.Title || updated.Content != report.Content {
			t.Errorf("untouched fields changed: %+v", updated)
		}
		if !updated.UpdatedAt.After(report.CreatedAt) {
			t.Errorf("updatedAt %v must be after createdAt %v", updated.UpdatedAt, report.CreatedAt)
		}
	})

	t.Run("실패: 없는 ID는 ErrRecordNotFound", func(t *testing.T) {
		_, err := repo.Update(ctx, 9999, map[string]interface{}{
			"status": domain.StatusDone,
		})
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
		}
	})
}

func TestErrorRepository_Delete(t *testing.T) {
	db := setupErrorTestDB(t)
	repo := NewErrorRepository(db)
	ctx := context.Background()

	t.Run("성공: 삭제되면 true, 재삭제는 false", func(t *testing.T) {
		report := sampleReport()
		if err := repo.Create(ctx, report); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		deleted, err := repo.Delete(ctx, report.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !deleted {
			t.Error("Delete() = false, want true")
		}

		if _, err := repo.FindByID(ctx, report.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("row still present after delete: %v", err)
		}

		deleted, err = repo.Delete(ctx, report.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if deleted {
			t.Error("second Delete() = true, want false")
		}
	})

	t.Run("성공: 없는 ID 삭제는 오류 없이 false", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, 9999)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if deleted {
			t.Error("Delete() = true, want false")
		}
	})
}

func TestErrorRepository_CountByStatus(t *testing.T) {
	db := setupErrorTestDB(t)
	repo := NewErrorRepository(db)
	ctx := context.Background()

	for _, status := range []string{
		domain.StatusReceived, domain.StatusReceived, domain.StatusDone,
	} {
		report := sampleReport()
		report.Status = status
		if err := repo.Create(ctx, report); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}

	byStatus := make(map[string]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	if byStatus[domain.StatusReceived] != 2 {
		t.Errorf("접수됨 = %d, want 2", byStatus[domain.StatusReceived])
	}
	if byStatus[domain.StatusDone] != 1 {
		t.Errorf("완료 = %d, want 1", byStatus[domain.StatusDone])
	}
}
