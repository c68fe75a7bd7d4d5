package shop

import (
	"context"
	"strconv"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
	"github.com/osse101/RestoLoyalty_Go/internal/metrics"
	"github.com/osse101/RestoLoyalty_Go/internal/multiplier"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// Purchase debits the item price and grants or renews the inventory row in
// one transaction. An owned, unexpired item is rejected before the balance is
// checked, and tokens are only debited after both checks pass.
func (s *service) Purchase(ctx context.Context, userID string, itemID int) (*domain.PurchaseResult, error) {
	log := logger.FromContext(ctx)

	var (
		result domain.PurchaseResult
		item   *domain.ShopItem
	)
	err := repository.RunInTx(ctx, OpPurchase, s.repo.BeginTx, func(tx repository.LoyaltyTx) error {
		user, err := tx.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		item, err = tx.GetShopItem(ctx, itemID)
		if err != nil {
			return err
		}
		if !item.Active {
			return domain.ErrItemNotActive
		}

		now := s.resolver.Now()
		owned, err := tx.GetInventoryItemForUpdate(ctx, userID, itemID)
		if err != nil {
			return err
		}
		if owned != nil && !multiplier.Expired(*owned, now) {
			return domain.ErrAlreadyOwned
		}
		if user.Tokens < item.Price {
			return domain.ErrInsufficientFunds
		}

		inv := domain.InventoryItem{
			UserID:     userID,
			ItemID:     itemID,
			UnlockedAt: now,
			ExpiresAt:  multiplier.PurchaseExpiry(*item, now),
			ItemName:   item.Name,
			ItemType:   item.Type,
		}
		renewed := owned != nil
		if renewed {
			err = tx.UpdateInventoryItem(ctx, &inv)
		} else {
			err = tx.InsertInventoryItem(ctx, &inv)
		}
		if err != nil {
			return err
		}

		tokens, err := tx.AddTokens(ctx, userID, -item.Price)
		if err != nil {
			return err
		}
		if item.Price > 0 {
			if err := tx.RecordLedgerEntry(ctx, &domain.LedgerEntry{
				UserID:    userID,
				Currency:  domain.CurrencyTokens,
				Delta:     -item.Price,
				Reason:    domain.LedgerReasonShopPurchase,
				Reference: "item:" + strconv.Itoa(itemID),
			}); err != nil {
				return err
			}
		}

		result = domain.PurchaseResult{
			Item:      inv,
			Price:     item.Price,
			Renewed:   renewed,
			TokensNow: tokens,
		}
		return nil
	})

	if err != nil {
		kind := domain.KindOf(err)
		metrics.PurchasesTotal.WithLabelValues(string(kind)).Inc()
		if kind == domain.ErrorKindInternal || kind == domain.ErrorKindConflict {
			log.Error(LogMsgPurchaseFailed, "user_id", userID, "item_id", itemID, "error", err)
		} else {
			log.Info(LogMsgPurchaseRejected, "user_id", userID, "item_id", itemID, "reason", err)
		}
		return nil, err
	}

	if result.Renewed {
		metrics.PurchasesTotal.WithLabelValues(metrics.OutcomeRenewed).Inc()
		log.Info(LogMsgPurchaseRenewed, "user_id", userID, "item_id", itemID, "expires_at", result.Item.ExpiresAt)
	} else {
		metrics.PurchasesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
		log.Info(LogMsgPurchaseSucceeded, "user_id", userID, "item_id", itemID, "price", result.Price)
	}
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewItemPurchasedEvent(userID, *item, result.Item, result.Renewed))
	}
	return &result, nil
}
