package domain

import "time"

// RewardType names the currency a quest pays out
type RewardType string

const (
	RewardTypeXP    RewardType = "XP"
	RewardTypeToken RewardType = "TOKEN"
)

// Valid reports whether r is a known reward type
func (r RewardType) Valid() bool {
	return r == RewardTypeXP || r == RewardTypeToken
}

// QuestStatus is the per-user lifecycle of a quest.
// Transitions are PENDING -> COMPLETED -> CLAIMED only.
type QuestStatus string

const (
	QuestStatusPending   QuestStatus = "PENDING"
	QuestStatusCompleted QuestStatus = "COMPLETED"
	QuestStatusClaimed   QuestStatus = "CLAIMED"
)

// Quest is an admin-defined task with a reward
type Quest struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	RewardType       RewardType `json:"reward_type"`
	RewardAmount     int64      `json:"reward_amount"`
	RequiredProgress int        `json:"required_progress"`
	Active           bool       `json:"active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// UserQuest is one user's progress on one quest
type UserQuest struct {
	UserID      string      `json:"user_id"`
	QuestID     int         `json:"quest_id"`
	Progress    int         `json:"progress"`
	Status      QuestStatus `json:"status"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	ClaimedAt   *time.Time  `json:"claimed_at,omitempty"`
	Version     int64       `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// QuestView merges a catalog quest with the caller's progress
type QuestView struct {
	Quest
	Progress    int         `json:"progress"`
	Status      QuestStatus `json:"status"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// QuestBoard is the quest list as displayed to a user
type QuestBoard struct {
	Quests        []QuestView      `json:"quests"`
	LoyaltyPoints int64            `json:"loyalty_points"`
	Tier          Tier             `json:"tier"`
	Multipliers   MultiplierResult `json:"multipliers"`
}

// ClaimResult is the credited outcome of a reward claim
type ClaimResult struct {
	QuestID    int        `json:"quest_id"`
	RewardType RewardType `json:"type"`
	Amount     int64      `json:"amount"`
	BaseAmount int64      `json:"base_amount"`
	Multiplier float64    `json:"multiplier"`
}
