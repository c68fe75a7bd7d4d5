package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/logger"
)

// Publisher is what services depend on to emit events without blocking on subscribers
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt Event)
}

type retryEntry struct {
	event    Event
	attempt  int
	lastErr  error
	notAfter time.Time
}

// ResilientPublisher publishes to a Bus and retries failed deliveries in the
// background with exponential backoff. Events that exhaust their retries are
// written to a dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// PublishWithRetry publishes the event once synchronously and queues it for
// background retry on failure. It never returns an error to the caller.
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := rp.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	rp.enqueue(retryEntry{
		event:    evt,
		attempt:  1,
		lastErr:  err,
		notAfter: time.Now().Add(CalculateRetryDelay(rp.retryDelay, 1)),
	})
}

func (rp *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case rp.retryQueue <- entry:
	default:
		logger.FromContext(context.Background()).Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case <-rp.shutdown:
			return
		case entry := <-rp.retryQueue:
			if wait := time.Until(entry.notAfter); wait > 0 {
				select {
				case <-time.After(wait):
				case <-rp.shutdown:
					logger.FromContext(context.Background()).Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
					rp.writeDeadLetter(entry)
					return
				}
			}
			rp.retry(entry)
		}
	}
}

func (rp *ResilientPublisher) retry(entry retryEntry) {
	log := logger.FromContext(context.Background())

	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.lastErr = err
	if entry.attempt >= rp.maxRetries {
		log.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt, "error", err)
		rp.writeDeadLetter(entry)
		return
	}

	entry.attempt++
	entry.notAfter = time.Now().Add(CalculateRetryDelay(rp.retryDelay, entry.attempt))
	log.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	rp.enqueue(entry)
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if rp.deadLetter == nil {
		return
	}
	if err := rp.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker, dead-letters anything still queued and closes the file
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.closeOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	for {
		select {
		case entry := <-rp.retryQueue:
			rp.writeDeadLetter(entry)
		default:
			if rp.deadLetter == nil {
				return nil
			}
			return rp.deadLetter.Close()
		}
	}
}

// Subscribe delegates to the inner bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

// Publish delegates to the inner bus without retry
func (rp *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	if rp.bus == nil {
		return errors.New("resilient publisher has no bus")
	}
	return rp.bus.Publish(ctx, evt)
}
