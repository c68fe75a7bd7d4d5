package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/logger"
)

// CleanupJobName identifies the retention job in scheduler and worker logs
const CleanupJobName = "eventlog_cleanup"

// CleanupJob deletes records past the retention window
type CleanupJob struct {
	service       Service
	retentionDays int
}

func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{service: service, retentionDays: retentionDays}
}

func (j *CleanupJob) Name() string {
	return CleanupJobName
}

// Process runs one retention pass
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With(LogFieldRetentionDays, j.retentionDays)
	log.Info(LogMsgCleanupJobStarting)

	start := time.Now()
	count, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, LogFieldError, err, LogFieldDuration, time.Since(start))
		return fmt.Errorf("event log cleanup: %w", err)
	}

	log.Info(LogMsgCleanupJobCompleted, LogFieldDeletedCount, count, LogFieldDuration, time.Since(start))
	return nil
}
