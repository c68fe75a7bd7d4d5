package handler

import "encoding/json"

// PurchaseRequest is the body of POST /shop/purchase
type PurchaseRequest struct {
	ItemID int `json:"itemId" validate:"required,gt=0"`
}

// ActivityRequest reports completed orders for a user
type ActivityRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Amount int    `json:"amount" validate:"required,gt=0,max=1000"`
}

// QuestRequest creates or replaces a quest definition
type QuestRequest struct {
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description" validate:"max=2000"`
	RewardType       string `json:"reward_type" validate:"required,oneof=XP TOKEN"`
	RewardAmount     int64  `json:"reward_amount" validate:"gte=0"`
	RequiredProgress int    `json:"required_progress" validate:"gte=0"`
	Active           *bool  `json:"active"`
}

// ShopItemRequest creates or replaces a shop item
type ShopItemRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Type     string          `json:"type" validate:"required,max=50"`
	Price    int64           `json:"price" validate:"gte=0"`
	Active   *bool           `json:"active"`
	Metadata json.RawMessage `json:"metadata"`
}

// CreateUserRequest registers a diner
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// AdjustRequest credits or debits a balance
type AdjustRequest struct {
	Currency string `json:"currency" validate:"required,oneof=POINTS TOKENS"`
	Delta    int64  `json:"delta" validate:"nonzero"`
	Note     string `json:"note" validate:"max=200"`
}

// IssueSessionRequest creates a bearer session for a user
type IssueSessionRequest struct {
	UserID     string `json:"userId" validate:"required,uuid"`
	TTLSeconds int    `json:"ttlSeconds" validate:"gte=0"`
}

func activeOrDefault(active *bool) bool {
	return active == nil || *active
}
