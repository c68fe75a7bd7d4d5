package metrics

import (
	"context"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records business metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all loyalty events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllLoyaltyTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.QuestCompleted:
		QuestsCompletedTotal.Inc()

	case event.QuestClaimed:
		p, err := event.DecodePayload[domain.QuestClaimedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		if p.RewardType == domain.RewardTypeToken {
			TokensCredited.Add(float64(p.Amount))
		} else {
			PointsCredited.Add(float64(p.Amount))
		}

	case event.ItemPurchased, event.ItemRenewed:
		p, err := event.DecodePayload[domain.ItemPurchasedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		TokensSpent.Add(float64(p.Price))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
