package memory

import (
	"context"
	"fmt"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// txRow tracks one row touched by a transaction
type txRow[T any] struct {
	seen    int64 // version observed on first read, 0 when the row did not exist
	current *T    // private working copy, nil when the row does not exist
	dirty   bool
}

// Tx is an optimistic unit of work over a Store
type Tx struct {
	s *Store

	users      map[string]*txRow[domain.User]
	userQuests map[userQuestKey]*txRow[domain.UserQuest]
	inventory  map[inventoryKey]*txRow[domain.InventoryItem]
	ledger     []domain.LedgerEntry

	closed bool
}

var _ repository.LoyaltyTx = (*Tx)(nil)

// BeginTx starts an optimistic transaction
func (s *Store) BeginTx(ctx context.Context) (repository.LoyaltyTx, error) {
	return &Tx{
		s:          s,
		users:      make(map[string]*txRow[domain.User]),
		userQuests: make(map[userQuestKey]*txRow[domain.UserQuest]),
		inventory:  make(map[inventoryKey]*txRow[domain.InventoryItem]),
	}, nil
}

// Commit validates every row version read by the transaction and applies its writes atomically
func (t *Tx) Commit(ctx context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true

	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range t.users {
		if userVersion(s.users[id]) != r.seen {
			return fmt.Errorf("%w: user %s changed concurrently", domain.ErrTransactionConflict, id)
		}
	}
	for k, r := range t.userQuests {
		if userQuestVersion(s.userQuests[k]) != r.seen {
			return fmt.Errorf("%w: quest %d progress changed concurrently", domain.ErrTransactionConflict, k.questID)
		}
	}
	for k, r := range t.inventory {
		if inventoryVersion(s.inventory[k]) != r.seen {
			return fmt.Errorf("%w: inventory item %d changed concurrently", domain.ErrTransactionConflict, k.itemID)
		}
	}

	now := s.now()
	for id, r := range t.users {
		if !r.dirty {
			continue
		}
		cp := *r.current
		cp.Version = r.seen + 1
		cp.UpdatedAt = now
		s.users[id] = &cp
	}
	for k, r := range t.userQuests {
		if !r.dirty {
			continue
		}
		cp := *r.current
		cp.Version = r.seen + 1
		cp.UpdatedAt = now
		if r.seen == 0 {
			cp.CreatedAt = now
		}
		s.userQuests[k] = &cp
	}
	for k, r := range t.inventory {
		if !r.dirty {
			continue
		}
		cp := *r.current
		cp.Version = r.seen + 1
		cp.ItemName = ""
		cp.ItemType = ""
		s.inventory[k] = &cp
	}
	for _, e := range t.ledger {
		s.nextLedgerID++
		e.ID = s.nextLedgerID
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		s.ledger = append(s.ledger, e)
	}
	return nil
}

// Rollback discards the working copies
func (t *Tx) Rollback(ctx context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	return nil
}

func userVersion(u *domain.User) int64 {
	if u == nil {
		return 0
	}
	return u.Version
}

func userQuestVersion(uq *domain.UserQuest) int64 {
	if uq == nil {
		return 0
	}
	return uq.Version
}

func inventoryVersion(inv *domain.InventoryItem) int64 {
	if inv == nil {
		return 0
	}
	return inv.Version
}

func (t *Tx) checkOpen() error {
	if t.closed {
		return repository.ErrTxClosed
	}
	return nil
}

// ---- Balance ledger ----

func (t *Tx) loadUser(userID string) *txRow[domain.User] {
	if r, ok := t.users[userID]; ok {
		return r
	}
	t.s.mu.Lock()
	u, ok := t.s.users[userID]
	r := &txRow[domain.User]{}
	if ok {
		cp := *u
		r.seen = u.Version
		r.current = &cp
	}
	t.s.mu.Unlock()

	t.users[userID] = r
	return r
}

// GetUserForUpdate returns the user and pins its version for commit validation
func (t *Tx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	r := t.loadUser(userID)
	if r.current == nil {
		return nil, domain.ErrUserNotFound
	}
	cp := *r.current
	return &cp, nil
}

// AddPoints adjusts loyalty points by delta and returns the new balance
func (t *Tx) AddPoints(ctx context.Context, userID string, delta int64) (int64, error) {
	if err := t.checkOpen(); err != nil {
		return 0, err
	}
	r := t.loadUser(userID)
	if r.current == nil {
		return 0, domain.ErrUserNotFound
	}
	if r.current.LoyaltyPoints+delta < 0 {
		return 0, domain.ErrNegativeBalance
	}
	r.current.LoyaltyPoints += delta
	r.dirty = true
	return r.current.LoyaltyPoints, nil
}

// AddTokens adjusts tokens by delta and returns the new balance
func (t *Tx) AddTokens(ctx context.Context, userID string, delta int64) (int64, error) {
	if err := t.checkOpen(); err != nil {
		return 0, err
	}
	r := t.loadUser(userID)
	if r.current == nil {
		return 0, domain.ErrUserNotFound
	}
	if r.current.Tokens+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	r.current.Tokens += delta
	r.dirty = true
	return r.current.Tokens, nil
}

// RecordLedgerEntry journals a balance movement, written on commit
func (t *Tx) RecordLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.ledger = append(t.ledger, *entry)
	return nil
}

// ---- Quest progress ----

// GetQuest reads a quest definition
func (t *Tx) GetQuest(ctx context.Context, questID int) (*domain.Quest, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	return t.s.GetQuest(ctx, questID)
}

// ListQuests reads quest definitions
func (t *Tx) ListQuests(ctx context.Context, activeOnly bool) ([]domain.Quest, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	return t.s.ListQuests(ctx, activeOnly)
}

func (t *Tx) loadUserQuest(k userQuestKey) *txRow[domain.UserQuest] {
	if r, ok := t.userQuests[k]; ok {
		return r
	}
	t.s.mu.Lock()
	uq, ok := t.s.userQuests[k]
	r := &txRow[domain.UserQuest]{}
	if ok {
		cp := *uq
		r.seen = uq.Version
		r.current = &cp
	}
	t.s.mu.Unlock()

	t.userQuests[k] = r
	return r
}

// GetUserQuestForUpdate returns the progress row or nil when it does not exist
func (t *Tx) GetUserQuestForUpdate(ctx context.Context, userID string, questID int) (*domain.UserQuest, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	r := t.loadUserQuest(userQuestKey{userID: userID, questID: questID})
	if r.current == nil {
		return nil, nil
	}
	cp := *r.current
	return &cp, nil
}

// InsertUserQuest creates a progress row
func (t *Tx) InsertUserQuest(ctx context.Context, uq *domain.UserQuest) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	r := t.loadUserQuest(userQuestKey{userID: uq.UserID, questID: uq.QuestID})
	if r.current != nil {
		return fmt.Errorf("%w: quest %d progress already exists", domain.ErrTransactionConflict, uq.QuestID)
	}
	cp := *uq
	r.current = &cp
	r.dirty = true
	return nil
}

// UpdateUserQuest overwrites a progress row read in this transaction
func (t *Tx) UpdateUserQuest(ctx context.Context, uq *domain.UserQuest) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	r := t.loadUserQuest(userQuestKey{userID: uq.UserID, questID: uq.QuestID})
	if r.current == nil {
		return domain.ErrQuestNotStarted
	}
	cp := *uq
	r.current = &cp
	r.dirty = true
	return nil
}

// ---- Inventory ----

// GetShopItem reads a shop item
func (t *Tx) GetShopItem(ctx context.Context, itemID int) (*domain.ShopItem, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	return t.s.GetShopItem(ctx, itemID)
}

// ListInventory lists the user's inventory including this transaction's writes
func (t *Tx) ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.listInventoryLocked(userID, t.inventory), nil
}

func (t *Tx) loadInventory(k inventoryKey) *txRow[domain.InventoryItem] {
	if r, ok := t.inventory[k]; ok {
		return r
	}
	t.s.mu.Lock()
	inv, ok := t.s.inventory[k]
	r := &txRow[domain.InventoryItem]{}
	if ok {
		cp := *inv
		if it, found := t.s.items[inv.ItemID]; found {
			cp.ItemName = it.Name
			cp.ItemType = it.Type
		}
		r.seen = inv.Version
		r.current = &cp
	}
	t.s.mu.Unlock()

	t.inventory[k] = r
	return r
}

// GetInventoryItemForUpdate returns the ownership row or nil when it does not exist
func (t *Tx) GetInventoryItemForUpdate(ctx context.Context, userID string, itemID int) (*domain.InventoryItem, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	r := t.loadInventory(inventoryKey{userID: userID, itemID: itemID})
	if r.current == nil {
		return nil, nil
	}
	cp := *r.current
	return &cp, nil
}

// InsertInventoryItem creates an ownership row and assigns its ID
func (t *Tx) InsertInventoryItem(ctx context.Context, item *domain.InventoryItem) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	r := t.loadInventory(inventoryKey{userID: item.UserID, itemID: item.ItemID})
	if r.current != nil {
		return fmt.Errorf("%w: item %d already in inventory", domain.ErrTransactionConflict, item.ItemID)
	}

	t.s.mu.Lock()
	t.s.nextInventoryID++
	item.ID = t.s.nextInventoryID
	t.s.mu.Unlock()

	item.Version = 1
	cp := *item
	r.current = &cp
	r.dirty = true
	return nil
}

// UpdateInventoryItem overwrites an ownership row read in this transaction
func (t *Tx) UpdateInventoryItem(ctx context.Context, item *domain.InventoryItem) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	r := t.loadInventory(inventoryKey{userID: item.UserID, itemID: item.ItemID})
	if r.current == nil {
		return domain.ErrItemNotFound
	}
	item.ID = r.current.ID
	item.Version = r.seen + 1
	cp := *item
	r.current = &cp
	r.dirty = true
	return nil
}
