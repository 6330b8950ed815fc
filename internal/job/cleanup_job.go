package job

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"

	"error-report-api/internal/client"
	"error-report-api/internal/repository"
)

// CleanupJob deletes uploaded files no report references anymore. Attachments
// are removed from reports by edits and deletes without touching the store,
// so orphans accumulate until this job sweeps them.
type CleanupJob struct {
	errorRepo repository.ErrorRepository
	store     client.FileStore
	orphanAge time.Duration
	logger    *zap.Logger

	now func() time.Time
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	errorRepo repository.ErrorRepository,
	store client.FileStore,
	orphanAge time.Duration,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		errorRepo: errorRepo,
		store:     store,
		orphanAge: orphanAge,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes the cleanup job. It lists stored files, collects every
// attachment path still referenced by a report, and deletes unreferenced
// files older than the configured orphan age. The age cutoff keeps files
// from uploads whose report has not been submitted yet.
func (j *CleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting orphaned upload cleanup")

	files, err := j.store.List(ctx)
	if err != nil {
		j.logger.Error("Failed to list stored files", zap.Error(err))
		return
	}
	if len(files) == 0 {
		j.logger.Info("No stored files found")
		return
	}

	referenced, err := j.errorRepo.ReferencedAttachments(ctx)
	if err != nil {
		j.logger.Error("Failed to collect referenced attachments", zap.Error(err))
		return
	}

	// Attachments are stored as URL paths; reduce to the file name
	referencedNames := make(map[string]bool, len(referenced))
	for _, ref := range referenced {
		referencedNames[path.Base(ref)] = true
	}

	cutoff := j.now().Add(-j.orphanAge)
	successCount := 0
	failCount := 0

	for _, file := range files {
		if referencedNames[file.Name] {
			continue
		}
		if file.ModTime.After(cutoff) {
			continue
		}

		if err := j.store.Delete(ctx, file.Name); err != nil {
			j.logger.Error("Failed to delete orphaned file",
				zap.String("file", file.Name),
				zap.Error(err),
			)
			failCount++
			continue
		}

		successCount++
		j.logger.Debug("Deleted orphaned file",
			zap.String("file", file.Name),
			zap.Time("mod_time", file.ModTime),
		)
	}

	j.logger.Info("Orphaned upload cleanup completed",
		zap.Int("total_files", len(files)),
		zap.Int("deleted", successCount),
		zap.Int("failed", failCount),
	)
}
