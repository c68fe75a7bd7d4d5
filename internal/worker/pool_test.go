package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RestoLoyalty_Go/internal/testing/leaktest"
)

type countingJob struct {
	executed *int32
	err      error
}

func (j *countingJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

type blockingJob struct {
	started chan struct{}
}

func (j *blockingJob) Process(ctx context.Context) error {
	close(j.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestPool_RunsJobs(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()
	defer pool.Stop()

	job := &countingJob{executed: &executed}
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(&countingJob{executed: &executed, err: errors.New("boom")}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestPool_EnqueueFullQueue(t *testing.T) {
	var executed int32
	// Not started, so nothing drains the queue.
	pool := NewPool(1, 1)
	defer pool.Stop()

	assert.True(t, pool.Enqueue(&countingJob{executed: &executed}))
	assert.False(t, pool.Enqueue(&countingJob{executed: &executed}))
}

func TestPool_StopCancelsRunningJob(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	job := &blockingJob{started: make(chan struct{})}
	require.True(t, pool.Enqueue(job))
	<-job.started

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}

	var executed int32
	assert.False(t, pool.Enqueue(&countingJob{executed: &executed}), "stopped pool rejects jobs")
	pool.Stop()
}

func TestPool_StopReleasesGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(4, 8)
		pool.Start()

		var executed int32
		for i := 0; i < 8; i++ {
			pool.Enqueue(&countingJob{executed: &executed})
		}
		pool.Stop()
	})
}
