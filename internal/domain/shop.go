package domain

import (
	"encoding/json"
	"time"
)

// ItemTypeBoosters is the shop category whose items grant timed multipliers
const ItemTypeBoosters = "Boosters"

// ShopItem is an admin-defined purchasable item
type ShopItem struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Price     int64           `json:"price"`
	Active    bool            `json:"active"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InventoryItem is a user's ownership record for a shop item.
// A nil ExpiresAt means permanent unless a duration can be derived from the item name.
type InventoryItem struct {
	ID         int64      `json:"id"`
	UserID     string     `json:"user_id"`
	ItemID     int        `json:"item_id"`
	UnlockedAt time.Time  `json:"unlocked_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Version    int64      `json:"-"`

	// Joined fields
	ItemName string `json:"item_name,omitempty"`
	ItemType string `json:"item_type,omitempty"`
}

// InventoryView annotates an inventory row for display
type InventoryView struct {
	InventoryItem
	Active             bool       `json:"active"`
	EffectiveExpiresAt *time.Time `json:"effective_expires_at,omitempty"`
}

// PurchaseResult is the outcome of a successful purchase
type PurchaseResult struct {
	Item      InventoryItem `json:"item"`
	Price     int64         `json:"price"`
	Renewed   bool          `json:"renewed"`
	TokensNow int64         `json:"tokens"`
}
