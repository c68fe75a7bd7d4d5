package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/RestoLoyalty_Go/internal/config"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
	"github.com/osse101/RestoLoyalty_Go/internal/metrics"
)

// EventSystem is the in-process bus plus the retrying publisher services use
type EventSystem struct {
	Bus       event.Bus
	Publisher *event.ResilientPublisher
}

// InitializeEventSystem builds the bus and publisher. Events left in the
// dead-letter file by a previous run are counted and reported, not replayed.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	maxRetries := cfg.EventMaxRetries
	if maxRetries <= 0 {
		maxRetries = config.DefaultEventMaxRetries
	}
	retryDelay := cfg.EventRetryDelay
	if retryDelay <= 0 {
		retryDelay = config.DefaultEventRetryDelay
	}
	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultEventDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}
	if pending, err := event.ReadDeadLetters(deadLetterPath); err != nil {
		slog.Warn(LogMsgDeadLetterUnreadable, "path", deadLetterPath, "error", err)
	} else if len(pending) > 0 {
		slog.Warn(LogMsgDeadLettersPending, "path", deadLetterPath, "count", len(pending))
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreatePublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)
	return &EventSystem{Bus: bus, Publisher: publisher}, nil
}

// Subscribe attaches the metrics collector and the event log to the bus
func (es *EventSystem) Subscribe(eventLog eventlog.Service) error {
	if err := metrics.NewEventMetricsCollector().Register(es.Bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	if err := eventLog.Subscribe(es.Bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventSubscribersRegistered, "event_types", len(event.AllLoyaltyTypes))
	return nil
}
