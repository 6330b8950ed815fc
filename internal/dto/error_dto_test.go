package dto

import (
	"reflect"
	"testing"

	"github.com/lib/pq"

	"error-report-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCreateErrorRequest_Validate(t *testing.T) {
	valid := CreateErrorRequest{
		Title:    "승차권 결제 오류",
		Content:  "결제 버튼을 누르면 오류가 발생합니다",
		Priority: domain.PriorityHigh,
		System:   domain.CategoryTicketing,
	}

	t.Run("성공: 유효한 요청은 빈 목록", func(t *testing.T) {
		if invalid := valid.Validate(); len(invalid) != 0 {
			t.Errorf("invalid = %v, want empty", invalid)
		}
	})

	t.Run("성공: 우선순위 생략 허용", func(t *testing.T) {
		req := valid
		req.Priority = ""
		if invalid := req.Validate(); len(invalid) != 0 {
			t.Errorf("invalid = %v, want empty", invalid)
		}
	})

	tests := []struct {
		name    string
		mutate  func(r *CreateErrorRequest)
		invalid []string
	}{
		{
			name:    "실패: 제목 공백",
			mutate:  func(r *CreateErrorRequest) { r.Title = "   " },
			invalid: []string{"title"},
		},
		{
			name:    "실패: 내용 10자 미만",
			mutate:  func(r *CreateErrorRequest) { r.Content = "짧은 내용" },
			invalid: []string{"content"},
		},
		{
			name:    "실패: 알 수 없는 우선순위",
			mutate:  func(r *CreateErrorRequest) { r.Priority = "엄청급함" },
			invalid: []string{"priority"},
		},
		{
			name:    "실패: 시스템 누락",
			mutate:  func(r *CreateErrorRequest) { r.System = "" },
			invalid: []string{"system"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if invalid := req.Validate(); !reflect.DeepEqual(invalid, tt.invalid) {
				t.Errorf("invalid = %v, want %v", invalid, tt.invalid)
			}
		})
	}
}

func TestUpdateErrorRequest_Validate(t *testing.T) {
	t.Run("성공: 모든 필드 nil이면 유효하지만 비어 있음", func(t *testing.T) {
		req := UpdateErrorRequest{}
		if invalid := req.Validate(); len(invalid) != 0 {
			t.Errorf("invalid = %v, want empty", invalid)
		}
		if !req.IsEmpty() {
			t.Error("IsEmpty() = false, want true")
		}
	})

	t.Run("성공: 상태만 변경", func(t *testing.T) {
		req := UpdateErrorRequest{Status: strPtr(domain.StatusDone)}
		if invalid := req.Validate(); len(invalid) != 0 {
			t.Errorf("invalid = %v, want empty", invalid)
		}
		if req.IsEmpty() {
			t.Error("IsEmpty() = true, want false")
		}
	})

	t.Run("실패: 알 수 없는 상태", func(t *testing.T) {
		req := UpdateErrorRequest{Status: strPtr("검토중")}
		if invalid := req.Validate(); !reflect.DeepEqual(invalid, []string{"status"}) {
			t.Errorf("invalid = %v, want [status]", invalid)
		}
	})

	t.Run("실패: 제목을 공백으로 변경", func(t *testing.T) {
		req := UpdateErrorRequest{Title: strPtr("  ")}
		if invalid := req.Validate(); !reflect.DeepEqual(invalid, []string{"title"}) {
			t.Errorf("invalid = %v, want [title]", invalid)
		}
	})
}

func TestUpdateErrorRequest_Fields(t *testing.T) {
	t.Run("성공: 존재하는 필드만 맵에 포함", func(t *testing.T) {
		req := UpdateErrorRequest{
			Title:  strPtr("새 제목"),
			Status: strPtr(domain.StatusInProgress),
		}

		fields := req.Fields()
		if len(fields) != 2 {
			t.Fatalf("len(fields) = %d, want 2: %v", len(fields), fields)
		}
		if fields["title"] != "새 제목" {
			t.Errorf("title = %v", fields["title"])
		}
		if fields["status"] != domain.StatusInProgress {
			t.Errorf("status = %v", fields["status"])
		}
		if _, ok := fields["updated_at"]; ok {
			t.Error("updated_at must not be client-settable")
		}
	})

	t.Run("성공: 첨부 목록은 text[] 값으로 변환", func(t *testing.T) {
		req := UpdateErrorRequest{
			Attachments: &[]string{"/uploads/a.png", "/uploads/b.png"},
		}

		fields := req.Fields()
		arr, ok := fields["attachments"].(pq.StringArray)
		if !ok {
			t.Fatalf("attachments = %T, want pq.StringArray", fields["attachments"])
		}
		if len(arr) != 2 || arr[0] != "/uploads/a.png" {
			t.Errorf("attachments = %v", arr)
		}
	})
}
