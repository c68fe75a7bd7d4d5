package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// loyaltyTx runs every LoyaltyTx operation on one pgx transaction.
// Rows read "ForUpdate" are locked with SELECT ... FOR UPDATE until commit.
type loyaltyTx struct {
	tx pgx.Tx
}

var _ repository.LoyaltyTx = (*loyaltyTx)(nil)

// Commit commits the transaction, reporting serialization failures as conflicts
func (t *loyaltyTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return mapPgError(err, "commit")
	}
	return nil
}

// Rollback aborts the transaction
func (t *loyaltyTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return err
	}
	return nil
}

// ---- Balance ledger ----

func (t *loyaltyTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	return selectUser(ctx, t.tx, userID, true)
}

func (t *loyaltyTx) AddPoints(ctx context.Context, userID string, delta int64) (int64, error) {
	return addBalance(ctx, t.tx, "loyalty_points", userID, delta, domain.ErrNegativeBalance)
}

func (t *loyaltyTx) AddTokens(ctx context.Context, userID string, delta int64) (int64, error) {
	return addBalance(ctx, t.tx, "tokens", userID, delta, domain.ErrInsufficientFunds)
}

func (t *loyaltyTx) RecordLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	return insertLedgerEntry(ctx, t.tx, entry)
}

// ---- Quest progress ----

func (t *loyaltyTx) GetQuest(ctx context.Context, questID int) (*domain.Quest, error) {
	return selectQuest(ctx, t.tx, questID)
}

func (t *loyaltyTx) ListQuests(ctx context.Context, activeOnly bool) ([]domain.Quest, error) {
	return selectQuests(ctx, t.tx, activeOnly)
}

func (t *loyaltyTx) GetUserQuestForUpdate(ctx context.Context, userID string, questID int) (*domain.UserQuest, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	uq, err := scanUserQuest(t.tx.QueryRow(ctx, `
		SELECT `+userQuestColumns+`
		FROM user_quests
		WHERE user_id = $1 AND quest_id = $2
		FOR UPDATE`, id, questID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapPgError(err, ErrMsgFailedToGetUserQuest)
	}
	return uq, nil
}

func (t *loyaltyTx) InsertUserQuest(ctx context.Context, uq *domain.UserQuest) error {
	id, err := parseUserUUID(uq.UserID)
	if err != nil {
		return err
	}
	err = t.tx.QueryRow(ctx, `
		INSERT INTO user_quests (user_id, quest_id, progress, status, completed_at, claimed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING version, created_at, updated_at`,
		id, uq.QuestID, uq.Progress, string(uq.Status), uq.CompletedAt, uq.ClaimedAt,
	).Scan(&uq.Version, &uq.CreatedAt, &uq.UpdatedAt)
	if err != nil {
		return mapPgError(err, ErrMsgFailedToSaveUserQuest)
	}
	return nil
}

func (t *loyaltyTx) UpdateUserQuest(ctx context.Context, uq *domain.UserQuest) error {
	id, err := parseUserUUID(uq.UserID)
	if err != nil {
		return err
	}
	err = t.tx.QueryRow(ctx, `
		UPDATE user_quests
		SET progress = $3, status = $4, completed_at = $5, claimed_at = $6,
		    version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND quest_id = $2
		RETURNING version, updated_at`,
		id, uq.QuestID, uq.Progress, string(uq.Status), uq.CompletedAt, uq.ClaimedAt,
	).Scan(&uq.Version, &uq.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrQuestNotStarted
	}
	if err != nil {
		return mapPgError(err, ErrMsgFailedToSaveUserQuest)
	}
	return nil
}

// ---- Inventory ----

func (t *loyaltyTx) GetShopItem(ctx context.Context, itemID int) (*domain.ShopItem, error) {
	return selectShopItem(ctx, t.tx, itemID)
}

func (t *loyaltyTx) ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return selectInventory(ctx, t.tx, userID)
}

func (t *loyaltyTx) GetInventoryItemForUpdate(ctx context.Context, userID string, itemID int) (*domain.InventoryItem, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	inv, err := scanInventoryItem(t.tx.QueryRow(ctx, `
		SELECT `+inventoryColumns+`
		FROM user_inventory ui
		JOIN shop_items si ON si.item_id = ui.item_id
		WHERE ui.user_id = $1 AND ui.item_id = $2
		FOR UPDATE OF ui`, id, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapPgError(err, ErrMsgFailedToGetInventory)
	}
	return inv, nil
}

func (t *loyaltyTx) InsertInventoryItem(ctx context.Context, item *domain.InventoryItem) error {
	id, err := parseUserUUID(item.UserID)
	if err != nil {
		return err
	}
	err = t.tx.QueryRow(ctx, `
		INSERT INTO user_inventory (user_id, item_id, unlocked_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING inventory_id, version`,
		id, item.ItemID, item.UnlockedAt, item.ExpiresAt,
	).Scan(&item.ID, &item.Version)
	if err != nil {
		return mapPgError(err, ErrMsgFailedToSaveInventory)
	}
	return nil
}

func (t *loyaltyTx) UpdateInventoryItem(ctx context.Context, item *domain.InventoryItem) error {
	id, err := parseUserUUID(item.UserID)
	if err != nil {
		return err
	}
	err = t.tx.QueryRow(ctx, `
		UPDATE user_inventory
		SET unlocked_at = $3, expires_at = $4, version = version + 1
		WHERE user_id = $1 AND item_id = $2
		RETURNING inventory_id, version`,
		id, item.ItemID, item.UnlockedAt, item.ExpiresAt,
	).Scan(&item.ID, &item.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: item %d not in inventory", domain.ErrItemNotFound, item.ItemID)
	}
	if err != nil {
		return mapPgError(err, ErrMsgFailedToSaveInventory)
	}
	return nil
}
