package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
)

// psql builds PostgreSQL statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Column lists shared by the plain and locking reads
const (
	userColumns      = `user_id::text, username, loyalty_points, tokens, version, created_at, updated_at`
	userQuestColumns = `user_id::text, quest_id, progress, status, completed_at, claimed_at, version, created_at, updated_at`
	inventoryColumns = `ui.inventory_id, ui.user_id::text, ui.item_id, ui.unlocked_at, ui.expires_at, ui.version, si.name, si.item_type`
)

var (
	questColumns    = []string{"quest_id", "title", "description", "reward_type", "reward_amount", "required_progress", "active", "created_at", "updated_at"}
	shopItemColumns = []string{"item_id", "name", "item_type", "price", "active", "metadata", "created_at", "updated_at"}
)

// ---- Users ----

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.LoyaltyPoints, &u.Tokens, &u.Version, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func selectUser(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.User, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	u, err := scanUser(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, mapPgError(err, ErrMsgFailedToGetUser)
	}
	return u, nil
}

// addBalance applies delta to column guarded so the balance never goes negative.
// underflow is returned when the guard rejects the update.
func addBalance(ctx context.Context, q querier, column, userID string, delta int64, underflow error) (int64, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = %[1]s + $2, version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND %[1]s + $2 >= 0
		RETURNING %[1]s`, column)

	var balance int64
	err = q.QueryRow(ctx, query, id, delta).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`, id).Scan(&exists); err != nil {
			return 0, mapPgError(err, ErrMsgFailedToUpdateBalance)
		}
		if !exists {
			return 0, domain.ErrUserNotFound
		}
		return 0, underflow
	}
	if err != nil {
		return 0, mapPgError(err, ErrMsgFailedToUpdateBalance)
	}
	return balance, nil
}

func insertLedgerEntry(ctx context.Context, q querier, e *domain.LedgerEntry) error {
	id, err := parseUserUUID(e.UserID)
	if err != nil {
		return err
	}
	err = q.QueryRow(ctx, `
		INSERT INTO balance_transactions (user_id, currency, delta, reason, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING transaction_id, created_at`,
		id, string(e.Currency), e.Delta, e.Reason, e.Reference,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return mapPgError(err, ErrMsgFailedToRecordLedger)
	}
	return nil
}

// ---- Quests ----

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var qu domain.Quest
	var rewardType string
	if err := row.Scan(&qu.ID, &qu.Title, &qu.Description, &rewardType, &qu.RewardAmount,
		&qu.RequiredProgress, &qu.Active, &qu.CreatedAt, &qu.UpdatedAt); err != nil {
		return nil, err
	}
	qu.RewardType = domain.RewardType(rewardType)
	return &qu, nil
}

func selectQuest(ctx context.Context, q querier, questID int) (*domain.Quest, error) {
	query, args, err := psql.Select(questColumns...).
		From("quests").
		Where(squirrel.Eq{"quest_id": questID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	qu, err := scanQuest(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrQuestNotFound
	}
	if err != nil {
		return nil, mapPgError(err, ErrMsgFailedToGetQuest)
	}
	return qu, nil
}

func selectQuests(ctx context.Context, q querier, activeOnly bool) ([]domain.Quest, error) {
	builder := psql.Select(questColumns...).From("quests").OrderBy("quest_id")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, ErrMsgFailedToListQuests)
	}
	defer rows.Close()

	quests := []domain.Quest{}
	for rows.Next() {
		qu, err := scanQuest(rows)
		if err != nil {
			return nil, mapPgError(err, ErrMsgFailedToListQuests)
		}
		quests = append(quests, *qu)
	}
	return quests, rows.Err()
}

func scanUserQuest(row pgx.Row) (*domain.UserQuest, error) {
	var uq domain.UserQuest
	var status string
	if err := row.Scan(&uq.UserID, &uq.QuestID, &uq.Progress, &status, &uq.CompletedAt,
		&uq.ClaimedAt, &uq.Version, &uq.CreatedAt, &uq.UpdatedAt); err != nil {
		return nil, err
	}
	uq.Status = domain.QuestStatus(status)
	return &uq, nil
}

// ---- Shop ----

func scanShopItem(row pgx.Row) (*domain.ShopItem, error) {
	var it domain.ShopItem
	var metadata []byte
	if err := row.Scan(&it.ID, &it.Name, &it.Type, &it.Price, &it.Active, &metadata, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		it.Metadata = json.RawMessage(metadata)
	}
	return &it, nil
}

func selectShopItem(ctx context.Context, q querier, itemID int) (*domain.ShopItem, error) {
	query, args, err := psql.Select(shopItemColumns...).
		From("shop_items").
		Where(squirrel.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	it, err := scanShopItem(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, mapPgError(err, ErrMsgFailedToGetShopItem)
	}
	return it, nil
}

func metadataOrEmpty(m json.RawMessage) []byte {
	if len(m) == 0 {
		return []byte(`{}`)
	}
	return m
}

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var inv domain.InventoryItem
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.ItemID, &inv.UnlockedAt, &inv.ExpiresAt,
		&inv.Version, &inv.ItemName, &inv.ItemType); err != nil {
		return nil, err
	}
	return &inv, nil
}

func selectInventory(ctx context.Context, q querier, userID string) ([]domain.InventoryItem, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `
		SELECT `+inventoryColumns+`
		FROM user_inventory ui
		JOIN shop_items si ON si.item_id = ui.item_id
		WHERE ui.user_id = $1
		ORDER BY ui.unlocked_at DESC, ui.inventory_id DESC`, id)
	if err != nil {
		return nil, mapPgError(err, ErrMsgFailedToGetInventory)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		inv, err := scanInventoryItem(rows)
		if err != nil {
			return nil, mapPgError(err, ErrMsgFailedToGetInventory)
		}
		items = append(items, *inv)
	}
	return items, rows.Err()
}
