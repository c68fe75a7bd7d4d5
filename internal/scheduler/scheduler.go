package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/osse101/RestoLoyalty_Go/internal/logger"
	"github.com/osse101/RestoLoyalty_Go/internal/worker"
)

// Scheduler triggers maintenance jobs on fixed intervals. Triggered jobs
// run on the worker pool, not on the scheduler goroutines.
type Scheduler struct {
	cron       gocron.Scheduler
	workerPool *worker.Pool
}

// New creates a new scheduler feeding pool
func New(pool *worker.Pool) (*Scheduler, error) {
	cron, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{cron: cron, workerPool: pool}, nil
}

// Schedule registers job to be enqueued every interval. When immediate is
// set the first run fires as soon as the scheduler starts.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job, immediate bool) error {
	name := jobName(job)
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if immediate {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := s.cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if !s.workerPool.Enqueue(job) {
				logger.Warn(LogMsgJobNotEnqueued, "job", name)
			}
		}),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	logger.Info(LogMsgJobScheduled, "job", name, "interval", interval)
	return nil
}

// Start begins firing registered jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler; jobs already handed to the pool keep running
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}

func jobName(job worker.Job) string {
	if named, ok := job.(worker.NamedJob); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", job)
}
