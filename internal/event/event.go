package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Loyalty event types
const (
	QuestCompleted Type = domain.EventTypeQuestCompleted
	QuestClaimed   Type = domain.EventTypeQuestClaimed
	ItemPurchased  Type = domain.EventTypeItemPurchased
	ItemRenewed    Type = domain.EventTypeItemRenewed
	LedgerAdjusted Type = domain.EventTypeLedgerAdjusted
)

// AllLoyaltyTypes lists every event type the loyalty engine publishes
var AllLoyaltyTypes = []Type{
	QuestCompleted,
	QuestClaimed,
	ItemPurchased,
	ItemRenewed,
	LedgerAdjusted,
}

// NewQuestCompletedEvent creates a quest completion event
func NewQuestCompletedEvent(userID string, questID int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestCompleted,
		Payload: domain.QuestCompletedPayload{
			UserID:    userID,
			QuestID:   questID,
			Timestamp: time.Now().UTC(),
		},
	}
}

// NewQuestClaimedEvent creates a reward claim event
func NewQuestClaimedEvent(userID string, result domain.ClaimResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestClaimed,
		Payload: domain.QuestClaimedPayload{
			UserID:     userID,
			QuestID:    result.QuestID,
			RewardType: result.RewardType,
			Amount:     result.Amount,
			Multiplier: result.Multiplier,
			Timestamp:  time.Now().UTC(),
		},
	}
}

// NewItemPurchasedEvent creates a purchase or renewal event
func NewItemPurchasedEvent(userID string, item domain.ShopItem, inv domain.InventoryItem, renewed bool) Event {
	t := ItemPurchased
	if renewed {
		t = ItemRenewed
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: domain.ItemPurchasedPayload{
			UserID:    userID,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Price:     item.Price,
			ExpiresAt: inv.ExpiresAt,
			Timestamp: time.Now().UTC(),
		},
	}
}

// NewLedgerAdjustedEvent creates a manual balance adjustment event
func NewLedgerAdjustedEvent(entry domain.LedgerEntry) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LedgerAdjusted,
		Payload: domain.LedgerAdjustedPayload{
			UserID:    entry.UserID,
			Currency:  entry.Currency,
			Delta:     entry.Delta,
			Reason:    entry.Reason,
			Timestamp: time.Now().UTC(),
		},
		Metadata: map[string]interface{}{
			"reference": entry.Reference,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Every subscriber runs even when an earlier one fails
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s %s: %w", ErrMsgHandlersFailed, event.Type, errors.Join(errs...))
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
