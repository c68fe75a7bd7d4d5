package repository

import (
	"context"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
)

// Users defines read and provisioning access to user records
type Users interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	ListLedgerEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
}

// QuestCatalog defines admin-owned quest definitions and non-locking progress reads
type QuestCatalog interface {
	GetQuest(ctx context.Context, questID int) (*domain.Quest, error)
	ListQuests(ctx context.Context, activeOnly bool) ([]domain.Quest, error)
	CreateQuest(ctx context.Context, quest *domain.Quest) error
	UpdateQuest(ctx context.Context, quest *domain.Quest) error
	ListUserQuests(ctx context.Context, userID string) ([]domain.UserQuest, error)
}

// ShopCatalog defines admin-owned shop items and non-locking inventory reads
type ShopCatalog interface {
	GetShopItem(ctx context.Context, itemID int) (*domain.ShopItem, error)
	ListShopItems(ctx context.Context, activeOnly bool) ([]domain.ShopItem, error)
	CreateShopItem(ctx context.Context, item *domain.ShopItem) error
	UpdateShopItem(ctx context.Context, item *domain.ShopItem) error
	ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)
}

// BoosterMaintenance is used by background jobs that repair legacy inventory rows
type BoosterMaintenance interface {
	ListBoostersWithoutExpiry(ctx context.Context, limit int) ([]domain.InventoryItem, error)
	SetInventoryExpiry(ctx context.Context, inventoryID int64, expiresAt time.Time) (bool, error)
}

// Loyalty is the full persistence contract of the loyalty engine
type Loyalty interface {
	Users
	QuestCatalog
	ShopCatalog
	BoosterMaintenance
	BeginTx(ctx context.Context) (LoyaltyTx, error)
}

// LoyaltyTx is a unit of work over balances, quest progress and inventory.
// Balance mutations are atomic increments; rows read "ForUpdate" stay locked
// (or version-checked) until commit.
type LoyaltyTx interface {
	Tx

	// Balance ledger
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)
	AddPoints(ctx context.Context, userID string, delta int64) (int64, error)
	AddTokens(ctx context.Context, userID string, delta int64) (int64, error)
	RecordLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error

	// Quest progress. GetUserQuestForUpdate returns nil, nil when the user never started the quest.
	GetQuest(ctx context.Context, questID int) (*domain.Quest, error)
	ListQuests(ctx context.Context, activeOnly bool) ([]domain.Quest, error)
	GetUserQuestForUpdate(ctx context.Context, userID string, questID int) (*domain.UserQuest, error)
	InsertUserQuest(ctx context.Context, uq *domain.UserQuest) error
	UpdateUserQuest(ctx context.Context, uq *domain.UserQuest) error

	// Inventory. GetInventoryItemForUpdate returns nil, nil when the user never owned the item.
	GetShopItem(ctx context.Context, itemID int) (*domain.ShopItem, error)
	ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	GetInventoryItemForUpdate(ctx context.Context, userID string, itemID int) (*domain.InventoryItem, error)
	InsertInventoryItem(ctx context.Context, item *domain.InventoryItem) error
	UpdateInventoryItem(ctx context.Context, item *domain.InventoryItem) error
}

// Sessions resolves bearer tokens issued by the storefront
type Sessions interface {
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	CreateSession(ctx context.Context, session *domain.Session) error
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}
