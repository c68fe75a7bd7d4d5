package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/config"
	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
	"github.com/osse101/RestoLoyalty_Go/internal/scheduler"
	"github.com/osse101/RestoLoyalty_Go/internal/worker"
)

const eventLogCleanupInterval = 24 * time.Hour

// Maintenance bundles the worker pool and the scheduler feeding it
type Maintenance struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// StartMaintenance starts the worker pool and schedules the booster expiry
// backfill, expired session cleanup and event log retention jobs.
func StartMaintenance(cfg *config.Config, repos *Repositories, events eventlog.Service) (*Maintenance, error) {
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)

	sched, err := scheduler.New(pool)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateScheduler, err)
	}

	jobs := []struct {
		interval  time.Duration
		job       worker.Job
		immediate bool
	}{
		{cfg.BoosterSweepInterval, worker.NewBoosterExpiryBackfillJob(repos.Loyalty, worker.DefaultBackfillBatchSize), true},
		{cfg.SessionCleanupInterval, worker.NewSessionCleanupJob(repos.Sessions), false},
		{eventLogCleanupInterval, eventlog.NewCleanupJob(events, cfg.EventLogRetentionDays), false},
	}
	for _, j := range jobs {
		if err := sched.Schedule(j.interval, j.job, j.immediate); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedScheduleJob, err)
		}
	}

	pool.Start()
	sched.Start()
	slog.Info(LogMsgMaintenanceScheduled, "jobs", len(jobs), "workers", cfg.WorkerCount)

	return &Maintenance{Pool: pool, Scheduler: sched}, nil
}
