package dto

import (
	"strings"
	"time"

	"github.com/lib/pq"

	"error-report-api/internal/domain"
)

// MinContentLength is the minimum accepted report content length (runes)
const MinContentLength = 10

// CreateErrorRequest is the payload for filing a new error report.
// ID, timestamps and reporter are never client-settable; the reporter is
// injected from the authenticated session by the handler.
type CreateErrorRequest struct {
	Title       string   `json:"title" form:"title"`
	Content     string   `json:"content" form:"content"`
	Priority    string   `json:"priority" form:"priority"`
	System      string   `json:"system" form:"system"`
	Browser     string   `json:"browser" form:"browser"`
	OS          string   `json:"os" form:"os"`
	Attachments []string `json:"attachments,omitempty" form:"-"`
}

// Validate returns the list of offending fields, empty when the request is valid
func (r *CreateErrorRequest) Validate() []string {
	var invalid []string
	if strings.TrimSpace(r.Title) == "" || len(r.Title) > 255 {
		invalid = append(invalid, "title")
	}
	if len([]rune(strings.TrimSpace(r.Content))) < MinContentLength {
		invalid = append(invalid, "content")
	}
	if r.Priority != "" && !domain.ValidPriority(r.Priority) {
		invalid = append(invalid, "priority")
	}
	if strings.TrimSpace(r.System) == "" {
		invalid = append(invalid, "system")
	}
	return invalid
}

// UpdateErrorRequest is the partial-update payload. Every field is optional;
// a nil pointer means "leave unchanged". Present fields follow the same
// per-field rules as creation.
type UpdateErrorRequest struct {
	Title       *string   `json:"title,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	System      *string   `json:"system,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Browser     *string   `json:"browser,omitempty"`
	OS          *string   `json:"os,omitempty"`
	Attachments *[]string `json:"attachments,omitempty"`
}

// Validate returns the list of offending fields among those present
func (r *UpdateErrorRequest) Validate() []string {
	var invalid []string
	if r.Title != nil && (strings.TrimSpace(*r.Title) == "" || len(*r.Title) > 255) {
		invalid = append(invalid, "title")
	}
	if r.Content != nil && len([]rune(strings.TrimSpace(*r.Content))) < MinContentLength {
		invalid = append(invalid, "content")
	}
	if r.Priority != nil && !domain.ValidPriority(*r.Priority) {
		invalid = append(invalid, "priority")
	}
	if r.System != nil && strings.TrimSpace(*r.System) == "" {
		invalid = append(invalid, "system")
	}
	if r.Status != nil && !domain.ValidStatus(*r.Status) {
		invalid = append(invalid, "status")
	}
	return invalid
}

// IsEmpty reports whether the request carries no fields at all
func (r *UpdateErrorRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Priority == nil &&
		r.System == nil && r.Status == nil && r.Browser == nil &&
		r.OS == nil && r.Attachments == nil
}

// Fields converts the present fields into a column→value map for a partial
// UPDATE. updated_at is owned by the repository and never included here.
func (r *UpdateErrorRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Content != nil {
		fields["content"] = *r.Content
	}
	if r.Priority != nil {
		fields["priority"] = *r.Priority
	}
	if r.System != nil {
		fields["system"] = *r.System
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.Browser != nil {
		fields["browser"] = *r.Browser
	}
	if r.OS != nil {
		fields["os"] = *r.OS
	}
	if r.Attachments != nil {
		fields["attachments"] = toStringArray(*r.Attachments)
	}
	return fields
}

func toStringArray(s []string) pq.StringArray {
	return pq.StringArray(s)
}

// ErrorListFilter carries the query options for listing reports
type ErrorListFilter struct {
	Search string
	Status string
	Limit  int
	Offset int
}

// ErrorListResponse is the paginated list payload
type ErrorListResponse struct {
	Errors []domain.ErrorReport `json:"errors"`
	Total  int64                `json:"total"`
}

// ErrorStatsResponse is the count-by-status summary. Every bucket is always
// present so the dashboard never sees a missing key.
type ErrorStatsResponse struct {
	NewErrors  int64 `json:"newErrors"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	OnHold     int64 `json:"onHold"`
}

// WeeklyStatsResponse is one Monday-aligned week bucket for the trend chart
type WeeklyStatsResponse struct {
	Week     string `json:"week"`
	Errors   int64  `json:"errors"`
	Resolved int64  `json:"resolved"`
}

// CategoryStatsResponse is one row of the count-by-category aggregation
type CategoryStatsResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// WeekCount is a raw (week start, count) pair from the repository
type WeekCount struct {
	WeekStart time.Time
	Count     int64
}
