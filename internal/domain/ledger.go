package domain

import "time"

// Currency is a balance column on the user record
type Currency string

const (
	CurrencyPoints Currency = "POINTS"
	CurrencyTokens Currency = "TOKENS"
)

// Valid reports whether c is a known currency
func (c Currency) Valid() bool {
	return c == CurrencyPoints || c == CurrencyTokens
}

// Ledger entry reasons
const (
	LedgerReasonQuestReward     = "quest_reward"
	LedgerReasonShopPurchase    = "shop_purchase"
	LedgerReasonAdminAdjustment = "admin_adjustment"
)

// LedgerEntry is one journaled balance movement
type LedgerEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Currency  Currency  `json:"currency"`
	Delta     int64     `json:"delta"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Balance is the user's balance summary
type Balance struct {
	UserID        string        `json:"user_id"`
	LoyaltyPoints int64         `json:"loyalty_points"`
	Tokens        int64         `json:"tokens"`
	Tier          Tier          `json:"tier"`
	Recent        []LedgerEntry `json:"recent"`
}
