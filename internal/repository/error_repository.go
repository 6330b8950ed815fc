package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"error-report-api/internal/domain"
	"error-report-api/internal/dto"
)

// StatusCount is one row of the count-by-status aggregation
type StatusCount struct {
	Status string
	Count  int64
}

// CategoryCount is one row of the count-by-category aggregation
type CategoryCount struct {
	System string
	Count  int64
}

// ErrorRepository defines the interface for error report data access
type ErrorRepository interface {
	Create(ctx context.Context, report *domain.ErrorReport) error
	Find(ctx context.Context, filter dto.ErrorListFilter) ([]domain.ErrorReport, int64, error)
	FindByID(ctx context.Context, id int64) (*domain.ErrorReport, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.ErrorReport, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CreatedCountsByWeek(ctx context.Context, since time.Time) ([]dto.WeekCount, error)
	ResolvedCountsByWeek(ctx context.Context, since time.Time) ([]dto.WeekCount, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	ReferencedAttachments(ctx context.Context) ([]string, error)
}

// errorRepositoryImpl is the GORM implementation of ErrorRepository
type errorRepositoryImpl struct {
	db *gorm.DB
}

// NewErrorRepository creates a new instance of ErrorRepository
func NewErrorRepository(db *gorm.DB) ErrorRepository {
	return &errorRepositoryImpl{db: db}
}

// Create inserts a new report. The database assigns the ID and GORM stamps
// created_at and updated_at with the same now value.
func (r *errorRepositoryImpl) Create(ctx context.Context, report *domain.ErrorReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// Find returns the filtered page ordered by created_at descending, plus the
// total matching count before pagination.
func (r *errorRepositoryImpl) Find(ctx context.Context, filter dto.ErrorListFilter) ([]domain.ErrorReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.ErrorReport{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	if filter.Status != "" && filter.Status != domain.StatusAll {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []domain.ErrorReport
	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// FindByID finds a report by its ID
func (r *errorRepositoryImpl) FindByID(ctx context.Context, id int64) (*domain.ErrorReport, error) {
	var report domain.ErrorReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// Update applies a partial update and always refreshes updated_at.
// Returns gorm.ErrRecordNotFound when the ID does not exist.
func (r *errorRepositoryImpl) Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.ErrorReport, error) {
	fields["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&domain.ErrorReport{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id)
}

// Delete hard-deletes a report and reports whether a row was removed
func (r *errorRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.ErrorReport{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByStatus groups report counts by status value
func (r *errorRepositoryImpl) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	if err := r.db.WithContext(ctx).
		Model(&domain.ErrorReport{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// CreatedCountsByWeek counts reports created per Monday-aligned week
func (r *errorRepositoryImpl) CreatedCountsByWeek(ctx context.Context, since time.Time) ([]dto.WeekCount, error) {
	var counts []dto.WeekCount
	if err := r.db.WithContext(ctx).
		Model(&domain.ErrorReport{}).
		Select("date_trunc('week', created_at) AS week_start, count(*) AS count").
		Where("created_at >= ?", since).
		Group("week_start").
		Order("week_start").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// ResolvedCountsByWeek counts completed reports per Monday-aligned week of
// their last update
func (r *errorRepositoryImpl) ResolvedCountsByWeek(ctx context.Context, since time.Time) ([]dto.WeekCount, error) {
	var counts []dto.WeekCount
	if err := r.db.WithContext(ctx).
		Model(&domain.ErrorReport{}).
		Select("date_trunc('week', updated_at) AS week_start, count(*) AS count").
		Where("status = ? AND updated_at >= ?", domain.StatusDone, since).
		Group("week_start").
		Order("week_start").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// CountByCategory groups report counts by system value
func (r *errorRepositoryImpl) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var counts []CategoryCount
	if err := r.db.WithContext(ctx).
		Model(&domain.ErrorReport{}).
		Select("system, count(*) AS count").
		Group("system").
		Order("count DESC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// ReferencedAttachments returns every attachment path referenced by any
// report. Used by the upload cleanup job to spare live files.
func (r *errorRepositoryImpl) ReferencedAttachments(ctx context.Context) ([]string, error) {
	var paths []string
	if err := r.db.WithContext(ctx).
		Raw("SELECT DISTINCT unnest(attachments) FROM errors WHERE attachments IS NOT NULL").
		Scan(&paths).Error; err != nil {
		return nil, err
	}
	return paths, nil
}
