package eventlog

import (
	"context"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
)

// Service records every loyalty event for later audit
type Service interface {
	// Subscribe registers the event logger to listen to all loyalty events
	Subscribe(bus event.Bus) error

	// CleanupOldEvents removes records older than retentionDays
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)

	// RecentForUser returns the latest records of a user, optionally limited to types
	RecentForUser(ctx context.Context, userID string, types []string, limit int) ([]Record, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range event.AllLoyaltyTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent flattens the typed payload and stores it
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadUndecodable, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	rec := &Record{Type: string(evt.Type), Payload: payload}
	if uid, ok := payload[PayloadKeyUserID].(string); ok && uid != "" {
		rec.UserID = &uid
	}
	if m, ok := evt.Metadata.(map[string]interface{}); ok {
		rec.Metadata = m
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldUserID, rec.UserID)
	return nil
}

// CleanupOldEvents removes records older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	return s.repo.DeleteBefore(ctx, cutoff)
}

// RecentForUser returns the latest records of a user
func (s *service) RecentForUser(ctx context.Context, userID string, types []string, limit int) ([]Record, error) {
	return s.repo.Find(ctx, Query{UserID: userID, Types: types, Limit: limit})
}
