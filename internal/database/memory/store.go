// Package memory is an in-process store for development and tests. It has no
// real transactions: each LoyaltyTx works on private row copies and commits
// with a compare-and-swap on row versions, failing with
// domain.ErrTransactionConflict when another transaction got there first.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/multiplier"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

type userQuestKey struct {
	userID  string
	questID int
}

type inventoryKey struct {
	userID string
	itemID int
}

// Store implements repository.Loyalty and repository.Sessions in memory
type Store struct {
	mu sync.Mutex

	users      map[string]*domain.User
	quests     map[int]*domain.Quest
	userQuests map[userQuestKey]*domain.UserQuest
	items      map[int]*domain.ShopItem
	inventory  map[inventoryKey]*domain.InventoryItem
	ledger     []domain.LedgerEntry
	sessions   map[string]*domain.Session

	nextQuestID     int
	nextItemID      int
	nextInventoryID int64
	nextLedgerID    int64

	now func() time.Time
}

var (
	_ repository.Loyalty  = (*Store)(nil)
	_ repository.Sessions = (*Store)(nil)
)

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		users:      make(map[string]*domain.User),
		quests:     make(map[int]*domain.Quest),
		userQuests: make(map[userQuestKey]*domain.UserQuest),
		items:      make(map[int]*domain.ShopItem),
		inventory:  make(map[inventoryKey]*domain.InventoryItem),
		sessions:   make(map[string]*domain.Session),
		now:        time.Now,
	}
}

// WithClock overrides the time source used for timestamps
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// ---- Users ----

// GetUser returns a copy of the user record
func (s *Store) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// CreateUser inserts a user, assigning an ID when empty
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, exists := s.users[user.ID]; exists {
		return fmt.Errorf("%w: user %s already exists", domain.ErrInvalidInput, user.ID)
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: username %s already taken", domain.ErrInvalidInput, user.Username)
		}
	}
	if user.LoyaltyPoints < 0 || user.Tokens < 0 {
		return domain.ErrNegativeBalance
	}

	now := s.now()
	user.Version = 1
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// ListLedgerEntries returns the most recent journal entries for a user, newest first
func (s *Store) ListLedgerEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []domain.LedgerEntry{}
	for i := len(s.ledger) - 1; i >= 0; i-- {
		if s.ledger[i].UserID != userID {
			continue
		}
		entries = append(entries, s.ledger[i])
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

// ---- Quest catalog ----

// GetQuest returns a quest definition
func (s *Store) GetQuest(ctx context.Context, questID int) (*domain.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getQuestLocked(questID)
}

func (s *Store) getQuestLocked(questID int) (*domain.Quest, error) {
	q, ok := s.quests[questID]
	if !ok {
		return nil, domain.ErrQuestNotFound
	}
	cp := *q
	return &cp, nil
}

// ListQuests returns quests ordered by ID
func (s *Store) ListQuests(ctx context.Context, activeOnly bool) ([]domain.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listQuestsLocked(activeOnly), nil
}

func (s *Store) listQuestsLocked(activeOnly bool) []domain.Quest {
	quests := make([]domain.Quest, 0, len(s.quests))
	for _, q := range s.quests {
		if activeOnly && !q.Active {
			continue
		}
		quests = append(quests, *q)
	}
	sort.Slice(quests, func(i, j int) bool { return quests[i].ID < quests[j].ID })
	return quests
}

// CreateQuest inserts a quest and assigns its ID
func (s *Store) CreateQuest(ctx context.Context, quest *domain.Quest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextQuestID++
	now := s.now()
	quest.ID = s.nextQuestID
	quest.CreatedAt = now
	quest.UpdatedAt = now
	cp := *quest
	s.quests[quest.ID] = &cp
	return nil
}

// UpdateQuest replaces a quest definition
func (s *Store) UpdateQuest(ctx context.Context, quest *domain.Quest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.quests[quest.ID]
	if !ok {
		return domain.ErrQuestNotFound
	}
	quest.CreatedAt = existing.CreatedAt
	quest.UpdatedAt = s.now()
	cp := *quest
	s.quests[quest.ID] = &cp
	return nil
}

// ListUserQuests returns every progress row of a user
func (s *Store) ListUserQuests(ctx context.Context, userID string) ([]domain.UserQuest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := []domain.UserQuest{}
	for k, uq := range s.userQuests {
		if k.userID == userID {
			rows = append(rows, *uq)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].QuestID < rows[j].QuestID })
	return rows, nil
}

// ---- Shop catalog ----

// GetShopItem returns a shop item
func (s *Store) GetShopItem(ctx context.Context, itemID int) (*domain.ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getShopItemLocked(itemID)
}

func (s *Store) getShopItemLocked(itemID int) (*domain.ShopItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

// ListShopItems returns items ordered by type, then price
func (s *Store) ListShopItems(ctx context.Context, activeOnly bool) ([]domain.ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.ShopItem, 0, len(s.items))
	for _, it := range s.items {
		if activeOnly && !it.Active {
			continue
		}
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Type != items[j].Type {
			return items[i].Type < items[j].Type
		}
		if items[i].Price != items[j].Price {
			return items[i].Price < items[j].Price
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// CreateShopItem inserts an item and assigns its ID
func (s *Store) CreateShopItem(ctx context.Context, item *domain.ShopItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextItemID++
	now := s.now()
	item.ID = s.nextItemID
	item.CreatedAt = now
	item.UpdatedAt = now
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

// UpdateShopItem replaces an item definition
func (s *Store) UpdateShopItem(ctx context.Context, item *domain.ShopItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[item.ID]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = s.now()
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

// ListInventory returns the user's inventory joined with item data, newest unlock first
func (s *Store) ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listInventoryLocked(userID, nil), nil
}

func (s *Store) listInventoryLocked(userID string, overlay map[inventoryKey]*txRow[domain.InventoryItem]) []domain.InventoryItem {
	rows := make(map[inventoryKey]domain.InventoryItem)
	for k, inv := range s.inventory {
		if k.userID == userID {
			rows[k] = *inv
		}
	}
	for k, r := range overlay {
		if k.userID == userID && r.current != nil {
			rows[k] = *r.current
		}
	}

	items := make([]domain.InventoryItem, 0, len(rows))
	for _, inv := range rows {
		if it, ok := s.items[inv.ItemID]; ok {
			inv.ItemName = it.Name
			inv.ItemType = it.Type
		}
		items = append(items, inv)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].UnlockedAt.Equal(items[j].UnlockedAt) {
			return items[i].UnlockedAt.After(items[j].UnlockedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items
}

// ---- Booster maintenance ----

// ListBoostersWithoutExpiry returns booster rows with no recorded expiry whose name carries a duration
func (s *Store) ListBoostersWithoutExpiry(ctx context.Context, limit int) ([]domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []domain.InventoryItem
	for _, inv := range s.inventory {
		if inv.ExpiresAt != nil {
			continue
		}
		it, ok := s.items[inv.ItemID]
		if !ok || it.Type != domain.ItemTypeBoosters {
			continue
		}
		if _, ok := multiplier.DurationFromName(it.Name); !ok {
			continue
		}
		row := *inv
		row.ItemName = it.Name
		row.ItemType = it.Type
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// SetInventoryExpiry records expiresAt on a row that has none. It reports whether the row changed.
func (s *Store) SetInventoryExpiry(ctx context.Context, inventoryID int64, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.inventory {
		if inv.ID != inventoryID {
			continue
		}
		if inv.ExpiresAt != nil {
			return false, nil
		}
		exp := expiresAt
		inv.ExpiresAt = &exp
		inv.Version++
		return true, nil
	}
	return false, nil
}

// ---- Sessions ----

// GetSession resolves a bearer token
func (s *Store) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	cp := *sess
	return &cp, nil
}

// CreateSession stores a session
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[session.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now()
	}
	cp := *session
	s.sessions[session.Token] = &cp
	return nil
}

// DeleteExpiredSessions removes sessions that expired before the cutoff
func (s *Store) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for token, sess := range s.sessions {
		if sess.ExpiresAt.Before(before) {
			delete(s.sessions, token)
			n++
		}
	}
	return n, nil
}
