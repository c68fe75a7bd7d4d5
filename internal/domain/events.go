package domain

import "time"

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "quest.claimed")
const (
	// EventTypeQuestCompleted is published when activity pushes a quest to COMPLETED
	EventTypeQuestCompleted = "quest.completed"

	// EventTypeQuestClaimed is published after a reward has been credited
	EventTypeQuestClaimed = "quest.claimed"

	// EventTypeItemPurchased is published when a new inventory row is created
	EventTypeItemPurchased = "shop.item_purchased"

	// EventTypeItemRenewed is published when an expired inventory row is renewed
	EventTypeItemRenewed = "shop.item_renewed"

	// EventTypeLedgerAdjusted is published for manual balance adjustments
	EventTypeLedgerAdjusted = "ledger.adjusted"
)

// QuestCompletedPayload is the payload of EventTypeQuestCompleted
type QuestCompletedPayload struct {
	UserID    string    `json:"user_id"`
	QuestID   int       `json:"quest_id"`
	Timestamp time.Time `json:"timestamp"`
}

// QuestClaimedPayload is the payload of EventTypeQuestClaimed
type QuestClaimedPayload struct {
	UserID     string     `json:"user_id"`
	QuestID    int        `json:"quest_id"`
	RewardType RewardType `json:"reward_type"`
	Amount     int64      `json:"amount"`
	Multiplier float64    `json:"multiplier"`
	Timestamp  time.Time  `json:"timestamp"`
}

// ItemPurchasedPayload is the payload of EventTypeItemPurchased and EventTypeItemRenewed
type ItemPurchasedPayload struct {
	UserID    string     `json:"user_id"`
	ItemID    int        `json:"item_id"`
	ItemName  string     `json:"item_name"`
	Price     int64      `json:"price"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// LedgerAdjustedPayload is the payload of EventTypeLedgerAdjusted
type LedgerAdjustedPayload struct {
	UserID    string    `json:"user_id"`
	Currency  Currency  `json:"currency"`
	Delta     int64     `json:"delta"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
