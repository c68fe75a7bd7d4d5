package quest

import (
	"context"
	"math"
	"strconv"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
	"github.com/osse101/RestoLoyalty_Go/internal/metrics"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// Claim pays out a completed quest exactly once. The user row is locked
// before the progress row so claims and purchases of one user serialize.
func (s *service) Claim(ctx context.Context, userID string, questID int) (*domain.ClaimResult, error) {
	log := logger.FromContext(ctx)

	var result domain.ClaimResult
	err := repository.RunInTx(ctx, OpClaim, s.repo.BeginTx, func(tx repository.LoyaltyTx) error {
		if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
			return err
		}

		uq, err := tx.GetUserQuestForUpdate(ctx, userID, questID)
		if err != nil {
			return err
		}
		switch {
		case uq == nil:
			return domain.ErrQuestNotStarted
		case uq.Status == domain.QuestStatusPending:
			return domain.ErrQuestNotCompleted
		case uq.Status == domain.QuestStatusClaimed:
			return domain.ErrQuestAlreadyClaimed
		}

		q, err := tx.GetQuest(ctx, questID)
		if err != nil {
			return err
		}

		mult, err := s.resolver.Resolve(ctx, tx, userID)
		if err != nil {
			return err
		}
		factor := mult.For(q.RewardType)
		amount := int64(math.Floor(float64(q.RewardAmount) * factor))

		now := s.resolver.Now()
		uq.Status = domain.QuestStatusClaimed
		uq.ClaimedAt = &now
		if err := tx.UpdateUserQuest(ctx, uq); err != nil {
			return err
		}

		currency := domain.CurrencyPoints
		if q.RewardType == domain.RewardTypeToken {
			currency = domain.CurrencyTokens
			_, err = tx.AddTokens(ctx, userID, amount)
		} else {
			_, err = tx.AddPoints(ctx, userID, amount)
		}
		if err != nil {
			return err
		}

		if err := tx.RecordLedgerEntry(ctx, &domain.LedgerEntry{
			UserID:    userID,
			Currency:  currency,
			Delta:     amount,
			Reason:    domain.LedgerReasonQuestReward,
			Reference: "quest:" + strconv.Itoa(questID),
		}); err != nil {
			return err
		}

		result = domain.ClaimResult{
			QuestID:    questID,
			RewardType: q.RewardType,
			Amount:     amount,
			BaseAmount: q.RewardAmount,
			Multiplier: factor,
		}
		return nil
	})

	if err != nil {
		kind := domain.KindOf(err)
		metrics.QuestClaimsTotal.WithLabelValues(string(kind)).Inc()
		if kind == domain.ErrorKindInternal || kind == domain.ErrorKindConflict {
			log.Error(LogMsgClaimFailed, "user_id", userID, "quest_id", questID, "error", err)
		} else {
			log.Info(LogMsgClaimRejected, "user_id", userID, "quest_id", questID, "reason", err)
		}
		return nil, err
	}

	metrics.QuestClaimsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info(LogMsgClaimSucceeded, "user_id", userID, "quest_id", questID,
		"reward_type", result.RewardType, "amount", result.Amount, "multiplier", result.Multiplier)
	s.publish(ctx, event.NewQuestClaimedEvent(userID, result))
	return &result, nil
}
