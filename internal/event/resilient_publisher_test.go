package event

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/testing/leaktest"
)

var errBusDown = errors.New("bus unavailable")

// flakyBus records every publish and fails the calls selected by failOn.
type flakyBus struct {
	mu     sync.Mutex
	times  []time.Time
	events []Event
	failOn func(call int) bool
	delay  time.Duration
}

func (b *flakyBus) Publish(_ context.Context, evt Event) error {
	b.mu.Lock()
	b.events = append(b.events, evt)
	b.times = append(b.times, time.Now())
	call := len(b.events)
	b.mu.Unlock()

	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if b.failOn != nil && b.failOn(call) {
		return errBusDown
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func (b *flakyBus) callTimes() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time(nil), b.times...)
}

func alwaysFail(int) bool { return true }

func newTestPublisher(t *testing.T, bus Bus, maxRetries int, delay time.Duration) (*ResilientPublisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, maxRetries, delay, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rp.Shutdown(context.Background()) })
	return rp, path
}

func claimEvent(userID string) Event {
	return NewQuestClaimedEvent(userID, domain.ClaimResult{QuestID: 1, RewardType: domain.RewardTypeXP, Amount: 100, BaseAmount: 100, Multiplier: 1})
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 100 * time.Millisecond
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
	assert.Equal(t, base, CalculateRetryDelay(base, 1))
	assert.Equal(t, 200*time.Millisecond, CalculateRetryDelay(base, 2))
	assert.Equal(t, 800*time.Millisecond, CalculateRetryDelay(base, 4))
	assert.Equal(t, MaxRetryDelay, CalculateRetryDelay(time.Minute, 10))
}

func TestResilientPublisher_DeliversOnFirstTry(t *testing.T) {
	bus := &flakyBus{}
	rp, path := newTestPublisher(t, bus, 3, 20*time.Millisecond)

	rp.PublishWithRetry(context.Background(), claimEvent("u1"))

	assert.Equal(t, 1, bus.calls())
	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResilientPublisher_RetriesUntilDelivered(t *testing.T) {
	bus := &flakyBus{failOn: func(call int) bool { return call <= 2 }}
	rp, path := newTestPublisher(t, bus, 3, 20*time.Millisecond)

	rp.PublishWithRetry(context.Background(), claimEvent("u1"))

	require.Eventually(t, func() bool { return bus.calls() == 3 }, 2*time.Second, 5*time.Millisecond)
	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResilientPublisher_DeadLettersAfterMaxRetries(t *testing.T) {
	bus := &flakyBus{failOn: alwaysFail}
	rp, path := newTestPublisher(t, bus, 2, 10*time.Millisecond)

	rp.PublishWithRetry(context.Background(), claimEvent("u-dead"))

	var entries []DeadLetterEntry
	require.Eventually(t, func() bool {
		var err error
		entries, err = ReadDeadLetters(path)
		return err == nil && len(entries) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// initial publish plus two retries
	assert.Equal(t, 3, bus.calls())

	entry := entries[0]
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, QuestClaimed, entry.Event.Type)
	assert.Equal(t, 2, entry.Attempts)
	assert.Equal(t, errBusDown.Error(), entry.LastError)

	payload, err := DecodePayload[domain.QuestClaimedPayload](entry.Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, "u-dead", payload.UserID)
}

func TestResilientPublisher_FullQueueGoesStraightToDeadLetter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	// No worker is started so the queue never drains.
	rp := &ResilientPublisher{
		bus:        &flakyBus{failOn: alwaysFail},
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), claimEvent("u1"))
	}

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Len(t, rp.retryQueue, 2)

	require.NoError(t, rp.Shutdown(context.Background()))
	entries, err = ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Len(t, entries, 5, "queued retries are flushed to dead-letter on shutdown")
}

func TestResilientPublisher_ShutdownDeadLettersPendingRetries(t *testing.T) {
	bus := &flakyBus{failOn: alwaysFail}
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), claimEvent("u1"))
	rp.PublishWithRetry(context.Background(), claimEvent("u2"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))
	require.NoError(t, rp.Shutdown(ctx), "second shutdown is a no-op")

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, bus.calls(), "no retry runs before the hour-long backoff")
}

func TestResilientPublisher_BackoffDoubles(t *testing.T) {
	bus := &flakyBus{failOn: func(call int) bool { return call <= 3 }}
	base := 40 * time.Millisecond
	rp, _ := newTestPublisher(t, bus, 5, base)

	rp.PublishWithRetry(context.Background(), claimEvent("u1"))

	require.Eventually(t, func() bool { return bus.calls() == 4 }, 3*time.Second, 5*time.Millisecond)
	times := bus.callTimes()

	first := times[1].Sub(times[0])
	second := times[2].Sub(times[1])
	third := times[3].Sub(times[2])
	assert.GreaterOrEqual(t, first, base)
	assert.GreaterOrEqual(t, second, 2*base)
	assert.GreaterOrEqual(t, third, 4*base)
}

func TestResilientPublisher_ConcurrentPublishers(t *testing.T) {
	bus := &flakyBus{}
	rp, _ := newTestPublisher(t, bus, 3, 10*time.Millisecond)

	const publishers, perPublisher = 8, 25
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				rp.PublishWithRetry(context.Background(), NewQuestCompletedEvent("u1", j))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, publishers*perPublisher, bus.calls())
}

func TestResilientPublisher_PublishDelegatesWithoutRetry(t *testing.T) {
	bus := &flakyBus{failOn: alwaysFail}
	rp, path := newTestPublisher(t, bus, 3, time.Millisecond)

	err := rp.Publish(context.Background(), claimEvent("u1"))
	assert.ErrorIs(t, err, errBusDown)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, bus.calls())
	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadDeadLetters(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		entries, err := ReadDeadLetters(filepath.Join(t.TempDir(), "none.jsonl"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("write after close fails", func(t *testing.T) {
		w, err := NewDeadLetterWriter(filepath.Join(t.TempDir(), "dl.jsonl"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.NoError(t, w.Close())
		assert.Error(t, w.Write(claimEvent("u1"), 1, nil))
	})

	t.Run("round trip keeps order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dl.jsonl")
		w, err := NewDeadLetterWriter(path)
		require.NoError(t, err)
		require.NoError(t, w.Write(NewQuestCompletedEvent("u1", 1), 1, nil))
		require.NoError(t, w.Write(NewQuestCompletedEvent("u1", 2), 3, errBusDown))
		require.NoError(t, w.Close())

		entries, err := ReadDeadLetters(path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Empty(t, entries[0].LastError)
		assert.Equal(t, 3, entries[1].Attempts)

		p, err := DecodePayload[domain.QuestCompletedPayload](entries[1].Event.Payload)
		require.NoError(t, err)
		assert.Equal(t, 2, p.QuestID)
	})
}

func TestResilientPublisher_ShutdownReleasesGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		bus := &flakyBus{failOn: func(call int) bool { return call == 1 }}
		rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, filepath.Join(t.TempDir(), "deadletter.jsonl"))
		require.NoError(t, err)

		rp.PublishWithRetry(context.Background(), NewQuestCompletedEvent("u1", 1))

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, rp.Shutdown(ctx))
	})
}
