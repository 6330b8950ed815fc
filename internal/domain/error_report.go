package domain

import (
	"time"

	"github.com/lib/pq"
)

// Priority values for an error report
const (
	PriorityLow    = "낮음"
	PriorityNormal = "보통"
	PriorityHigh   = "높음"
	PriorityUrgent = "긴급"
)

// Status values for the error report lifecycle
const (
	StatusReceived   = "접수됨"
	StatusInProgress = "처리중"
	StatusDone       = "완료"
	StatusOnHold     = "보류"
)

// StatusAll is the sentinel filter value that disables status filtering
const StatusAll = "모든 상태"

// System categories produced by the classifier. The system column itself is
// open-ended; legacy rows carry values like "백엔드 API" or "기타".
const (
	CategoryTicketing = "역무지원"
	CategorySafety    = "안전관리"
	CategoryFacility  = "시설물관리"
)

// ValidPriority reports whether p is one of the four known priorities
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the four lifecycle statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusReceived, StatusInProgress, StatusDone, StatusOnHold:
		return true
	}
	return false
}

// ErrorReport represents a single filed issue with lifecycle status
type ErrorReport struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Priority    string         `gorm:"type:varchar(50);not null;default:'보통'" json:"priority"`
	System      string         `gorm:"type:varchar(100);not null" json:"system"`
	Status      string         `gorm:"type:varchar(50);not null;default:'접수됨';index:idx_errors_status" json:"status"`
	Browser     string         `gorm:"type:varchar(255)" json:"browser"`
	OS          string         `gorm:"type:varchar(255);column:os" json:"os"`
	Attachments pq.StringArray `gorm:"type:text[]" json:"attachments"`
	ReporterID  string         `gorm:"type:varchar(255);not null;index:idx_errors_reporter_id" json:"reporterId"`
	CreatedAt   time.Time      `gorm:"not null;index:idx_errors_created_at" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for ErrorReport
func (ErrorReport) TableName() string {
	return "errors"
}
