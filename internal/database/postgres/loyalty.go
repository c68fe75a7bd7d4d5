package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// LoyaltyRepository implements repository.Loyalty on PostgreSQL
type LoyaltyRepository struct {
	db        *pgxpool.Pool
	isolation pgx.TxIsoLevel
}

var _ repository.Loyalty = (*LoyaltyRepository)(nil)

// NewLoyaltyRepository creates a repository whose transactions run at isolation
func NewLoyaltyRepository(db *pgxpool.Pool, isolation pgx.TxIsoLevel) *LoyaltyRepository {
	if isolation == "" {
		isolation = pgx.ReadCommitted
	}
	return &LoyaltyRepository{db: db, isolation: isolation}
}

// BeginTx opens a transaction at the configured isolation level
func (r *LoyaltyRepository) BeginTx(ctx context.Context) (repository.LoyaltyTx, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: r.isolation})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &loyaltyTx{tx: tx}, nil
}

// ---- Users ----

// GetUser returns the user record
func (r *LoyaltyRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return selectUser(ctx, r.db, userID, false)
}

// CreateUser inserts a user; an empty ID is generated by the database
func (r *LoyaltyRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.LoyaltyPoints < 0 || user.Tokens < 0 {
		return domain.ErrNegativeBalance
	}

	builder := psql.Insert("users")
	if user.ID != "" {
		id, err := parseUserUUID(user.ID)
		if err != nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidUserID)
		}
		builder = builder.Columns("user_id", "username", "loyalty_points", "tokens").
			Values(id, user.Username, user.LoyaltyPoints, user.Tokens)
	} else {
		builder = builder.Columns("username", "loyalty_points", "tokens").
			Values(user.Username, user.LoyaltyPoints, user.Tokens)
	}
	query, args, err := builder.Suffix("RETURNING " + userColumns).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	created, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: user %s already exists", domain.ErrInvalidInput, user.Username)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertUser, err)
	}
	*user = *created
	return nil
}

// ListLedgerEntries returns the newest journal entries of a user
func (r *LoyaltyRepository) ListLedgerEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	builder := psql.Select("transaction_id", "user_id::text", "currency", "delta", "reason", "reference", "created_at").
		From("balance_transactions").
		Where(squirrel.Eq{"user_id": id.String()}).
		OrderBy("created_at DESC", "transaction_id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListLedger, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		var currency string
		if err := rows.Scan(&e.ID, &e.UserID, &currency, &e.Delta, &e.Reason, &e.Reference, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListLedger, err)
		}
		e.Currency = domain.Currency(currency)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ---- Quest catalog ----

// GetQuest returns a quest definition
func (r *LoyaltyRepository) GetQuest(ctx context.Context, questID int) (*domain.Quest, error) {
	return selectQuest(ctx, r.db, questID)
}

// ListQuests returns quest definitions ordered by ID
func (r *LoyaltyRepository) ListQuests(ctx context.Context, activeOnly bool) ([]domain.Quest, error) {
	return selectQuests(ctx, r.db, activeOnly)
}

// CreateQuest inserts a quest and assigns its ID
func (r *LoyaltyRepository) CreateQuest(ctx context.Context, quest *domain.Quest) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO quests (title, description, reward_type, reward_amount, required_progress, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING quest_id, created_at, updated_at`,
		quest.Title, quest.Description, string(quest.RewardType), quest.RewardAmount, quest.RequiredProgress, quest.Active,
	).Scan(&quest.ID, &quest.CreatedAt, &quest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveQuest, err)
	}
	return nil
}

// UpdateQuest replaces a quest definition
func (r *LoyaltyRepository) UpdateQuest(ctx context.Context, quest *domain.Quest) error {
	err := r.db.QueryRow(ctx, `
		UPDATE quests
		SET title = $2, description = $3, reward_type = $4, reward_amount = $5,
		    required_progress = $6, active = $7, updated_at = NOW()
		WHERE quest_id = $1
		RETURNING created_at, updated_at`,
		quest.ID, quest.Title, quest.Description, string(quest.RewardType), quest.RewardAmount, quest.RequiredProgress, quest.Active,
	).Scan(&quest.CreatedAt, &quest.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrQuestNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveQuest, err)
	}
	return nil
}

// ListUserQuests returns every progress row of a user
func (r *LoyaltyRepository) ListUserQuests(ctx context.Context, userID string) ([]domain.UserQuest, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT `+userQuestColumns+` FROM user_quests WHERE user_id = $1 ORDER BY quest_id`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUserQuests, err)
	}
	defer rows.Close()

	out := []domain.UserQuest{}
	for rows.Next() {
		uq, err := scanUserQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUserQuests, err)
		}
		out = append(out, *uq)
	}
	return out, rows.Err()
}

// ---- Shop catalog ----

// GetShopItem returns a shop item
func (r *LoyaltyRepository) GetShopItem(ctx context.Context, itemID int) (*domain.ShopItem, error) {
	return selectShopItem(ctx, r.db, itemID)
}

// ListShopItems returns items ordered by type, then price
func (r *LoyaltyRepository) ListShopItems(ctx context.Context, activeOnly bool) ([]domain.ShopItem, error) {
	builder := psql.Select(shopItemColumns...).From("shop_items").OrderBy("item_type", "price", "item_id")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListShopItems, err)
	}
	defer rows.Close()

	items := []domain.ShopItem{}
	for rows.Next() {
		it, err := scanShopItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListShopItems, err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// CreateShopItem inserts an item and assigns its ID
func (r *LoyaltyRepository) CreateShopItem(ctx context.Context, item *domain.ShopItem) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO shop_items (name, item_type, price, active, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING item_id, created_at, updated_at`,
		item.Name, item.Type, item.Price, item.Active, metadataOrEmpty(item.Metadata),
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveShopItem, err)
	}
	return nil
}

// UpdateShopItem replaces an item definition
func (r *LoyaltyRepository) UpdateShopItem(ctx context.Context, item *domain.ShopItem) error {
	err := r.db.QueryRow(ctx, `
		UPDATE shop_items
		SET name = $2, item_type = $3, price = $4, active = $5, metadata = $6, updated_at = NOW()
		WHERE item_id = $1
		RETURNING created_at, updated_at`,
		item.ID, item.Name, item.Type, item.Price, item.Active, metadataOrEmpty(item.Metadata),
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveShopItem, err)
	}
	return nil
}

// ListInventory returns a user's owned items, most recently unlocked first
func (r *LoyaltyRepository) ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return selectInventory(ctx, r.db, userID)
}

// ---- Booster maintenance ----

// ListBoostersWithoutExpiry returns booster rows with no expiry whose name carries an "(Nh)" duration
func (r *LoyaltyRepository) ListBoostersWithoutExpiry(ctx context.Context, limit int) ([]domain.InventoryItem, error) {
	builder := psql.Select(inventoryColumns).
		From("user_inventory ui").
		Join("shop_items si ON si.item_id = ui.item_id").
		Where(squirrel.Eq{"ui.expires_at": nil, "si.item_type": domain.ItemTypeBoosters}).
		Where(squirrel.Expr(`si.name ~ '\(\d+h\)'`)).
		OrderBy("ui.inventory_id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		inv, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
		}
		items = append(items, *inv)
	}
	return items, rows.Err()
}

// SetInventoryExpiry records expiresAt on a row that has none. It reports whether the row changed.
func (r *LoyaltyRepository) SetInventoryExpiry(ctx context.Context, inventoryID int64, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE user_inventory
		SET expires_at = $2, version = version + 1
		WHERE inventory_id = $1 AND expires_at IS NULL`,
		inventoryID, expiresAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToSaveInventory, err)
	}
	return tag.RowsAffected() == 1, nil
}
