package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/logger"
	"github.com/osse101/RestoLoyalty_Go/internal/metrics"
	"github.com/osse101/RestoLoyalty_Go/internal/multiplier"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// BoosterExpiryBackfillJob writes unlocked_at + name duration into booster
// rows that were stored before expires_at existed.
type BoosterExpiryBackfillJob struct {
	repo      repository.BoosterMaintenance
	batchSize int
}

// NewBoosterExpiryBackfillJob creates the backfill job
func NewBoosterExpiryBackfillJob(repo repository.BoosterMaintenance, batchSize int) *BoosterExpiryBackfillJob {
	if batchSize <= 0 {
		batchSize = DefaultBackfillBatchSize
	}
	return &BoosterExpiryBackfillJob{repo: repo, batchSize: batchSize}
}

// Name returns the job name
func (j *BoosterExpiryBackfillJob) Name() string {
	return JobNameBoosterBackfill
}

// Process fills in missing booster expiries
func (j *BoosterExpiryBackfillJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	rows, err := j.repo.ListBoostersWithoutExpiry(ctx, j.batchSize)
	if err != nil {
		return fmt.Errorf("failed to list boosters without expiry: %w", err)
	}

	updated := 0
	for _, row := range rows {
		d, ok := multiplier.DurationFromName(row.ItemName)
		if !ok {
			log.Debug(LogMsgBackfillSkipped, "inventory_id", row.ID, "item", row.ItemName)
			continue
		}
		changed, err := j.repo.SetInventoryExpiry(ctx, row.ID, row.UnlockedAt.Add(d))
		if err != nil {
			return fmt.Errorf("failed to set expiry on inventory row %d: %w", row.ID, err)
		}
		if changed {
			updated++
			metrics.BoostersBackfilled.Inc()
		}
	}

	log.Info(LogMsgBackfillCompleted, "scanned", len(rows), "updated", updated)
	return nil
}

// SessionCleanupJob deletes sessions past their expiry
type SessionCleanupJob struct {
	sessions repository.Sessions
	now      func() time.Time
}

// NewSessionCleanupJob creates the cleanup job
func NewSessionCleanupJob(sessions repository.Sessions) *SessionCleanupJob {
	return &SessionCleanupJob{sessions: sessions, now: time.Now}
}

// Name returns the job name
func (j *SessionCleanupJob) Name() string {
	return JobNameSessionCleanup
}

// Process removes expired sessions
func (j *SessionCleanupJob) Process(ctx context.Context) error {
	n, err := j.sessions.DeleteExpiredSessions(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgSessionCleanupComplete, "count", n)
	}
	return nil
}
