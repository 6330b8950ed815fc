package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"error-report-api/internal/domain"
	"error-report-api/internal/dto"
	"error-report-api/internal/repository"
	"error-report-api/internal/response"
)

// weeklyBuckets is the number of week buckets the trend chart shows
const weeklyBuckets = 7

// statsCacheTTL bounds how stale a cached dashboard aggregate may be
const statsCacheTTL = 30 * time.Second

// StatsService defines the interface for dashboard aggregations
type StatsService interface {
	GetErrorStats(ctx context.Context) (*dto.ErrorStatsResponse, error)
	GetWeeklyStats(ctx context.Context) ([]dto.WeeklyStatsResponse, error)
	GetCategoryStats(ctx context.Context) ([]dto.CategoryStatsResponse, error)
}

// statsServiceImpl recomputes aggregates on read, with an optional
// short-TTL redis cache in front. A nil redis client disables caching.
type statsServiceImpl struct {
	errorRepo repository.ErrorRepository
	cache     *redis.Client
	logger    *zap.Logger
	now       func() time.Time
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(errorRepo repository.ErrorRepository, cache *redis.Client, logger *zap.Logger) StatsService {
	return &statsServiceImpl{
		errorRepo: errorRepo,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// GetErrorStats returns the count-by-status summary. Every bucket is present
// even when empty; unknown legacy status values are ignored.
func (s *statsServiceImpl) GetErrorStats(ctx context.Context) (*dto.ErrorStatsResponse, error) {
	var stats dto.ErrorStatsResponse
	if s.cacheGet(ctx, "stats:errors", &stats) {
		return &stats, nil
	}

	counts, err := s.errorRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Failed to aggregate status counts", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch error stats", err.Error())
	}

	for _, c := range counts {
		switch c.Status {
		case domain.StatusReceived:
			stats.NewErrors = c.Count
		case domain.StatusInProgress:
			stats.InProgress = c.Count
		case domain.StatusDone:
			stats.Completed = c.Count
		case domain.StatusOnHold:
			stats.OnHold = c.Count
		}
	}

	s.cacheSet(ctx, "stats:errors", &stats)
	return &stats, nil
}

// GetWeeklyStats returns exactly 7 Monday-aligned week buckets in
// chronological order, zero-filled so the chart x-axis stays continuous
func (s *statsServiceImpl) GetWeeklyStats(ctx context.Context) ([]dto.WeeklyStatsResponse, error) {
	var cached []dto.WeeklyStatsResponse
	if s.cacheGet(ctx, "stats:weekly", &cached) {
		return cached, nil
	}

	currentWeek := mondayOf(s.now().UTC())
	since := currentWeek.AddDate(0, 0, -7*(weeklyBuckets-1))

	created, err := s.errorRepo.CreatedCountsByWeek(ctx, since)
	if err != nil {
		s.logger.Error("Failed to aggregate weekly created counts", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch weekly stats", err.Error())
	}
	resolved, err := s.errorRepo.ResolvedCountsByWeek(ctx, since)
	if err != nil {
		s.logger.Error("Failed to aggregate weekly resolved counts", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch weekly stats", err.Error())
	}

	createdByWeek := indexByWeek(created)
	resolvedByWeek := indexByWeek(resolved)

	stats := make([]dto.WeeklyStatsResponse, 0, weeklyBuckets)
	for i := 0; i < weeklyBuckets; i++ {
		weekStart := since.AddDate(0, 0, 7*i)
		key := weekStart.Format("2006-01-02")
		stats = append(stats, dto.WeeklyStatsResponse{
			Week:     weekStart.Format("1/2"),
			Errors:   createdByWeek[key],
			Resolved: resolvedByWeek[key],
		})
	}

	s.cacheSet(ctx, "stats:weekly", stats)
	return stats, nil
}

// GetCategoryStats returns count-by-category rows for observed categories
func (s *statsServiceImpl) GetCategoryStats(ctx context.Context) ([]dto.CategoryStatsResponse, error) {
	var cached []dto.CategoryStatsResponse
	if s.cacheGet(ctx, "stats:categories", &cached) {
		return cached, nil
	}

	counts, err := s.errorRepo.CountByCategory(ctx)
	if err != nil {
		s.logger.Error("Failed to aggregate category counts", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch category stats", err.Error())
	}

	stats := make([]dto.CategoryStatsResponse, 0, len(counts))
	for _, c := range counts {
		stats = append(stats, dto.CategoryStatsResponse{Category: c.System, Count: c.Count})
	}

	s.cacheSet(ctx, "stats:categories", stats)
	return stats, nil
}

// mondayOf truncates t to the Monday 00:00 UTC of its ISO week
func mondayOf(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

func indexByWeek(counts []dto.WeekCount) map[string]int64 {
	byWeek := make(map[string]int64, len(counts))
	for _, c := range counts {
		// Key by the week start's own calendar date. The database returns
		// Monday 00:00 in its session time zone; converting that instant to
		// UTC would shift a non-UTC Monday back onto Sunday and orphan the
		// count.
		byWeek[c.WeekStart.Format("2006-01-02")] = c.Count
	}
	return byWeek
}

func (s *statsServiceImpl) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *statsServiceImpl) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, statsCacheTTL).Err(); err != nil {
		s.logger.Debug("Failed to cache stats", zap.String("key", key), zap.Error(err))
	}
}
