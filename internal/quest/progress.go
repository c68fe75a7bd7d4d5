package quest

import (
	"context"
	"fmt"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// RecordActivity adds amount progress to every active quest the user has not
// finished yet and returns the IDs of quests that became COMPLETED.
func (s *service) RecordActivity(ctx context.Context, userID string, amount int) ([]int, error) {
	if amount < 1 || amount > MaxActivityAmount {
		return nil, fmt.Errorf("%w: activity amount must be between 1 and %d", domain.ErrInvalidInput, MaxActivityAmount)
	}

	var completed []int
	err := repository.RunInTx(ctx, OpRecordActivity, s.repo.BeginTx, func(tx repository.LoyaltyTx) error {
		completed = completed[:0]

		if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
			return err
		}
		quests, err := tx.ListQuests(ctx, true)
		if err != nil {
			return err
		}

		now := s.resolver.Now()
		for _, q := range quests {
			uq, err := tx.GetUserQuestForUpdate(ctx, userID, q.ID)
			if err != nil {
				return err
			}
			isNew := uq == nil
			if isNew {
				uq = &domain.UserQuest{UserID: userID, QuestID: q.ID, Status: domain.QuestStatusPending}
			}
			if uq.Status != domain.QuestStatusPending {
				continue
			}

			uq.Progress = advance(uq.Progress, amount, q.RequiredProgress)
			if uq.Progress >= q.RequiredProgress {
				uq.Status = domain.QuestStatusCompleted
				uq.CompletedAt = &now
				completed = append(completed, q.ID)
			}

			if isNew {
				err = tx.InsertUserQuest(ctx, uq)
			} else {
				err = tx.UpdateUserQuest(ctx, uq)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgActivityRecorded, "user_id", userID, "amount", amount, "completed", len(completed))
	for _, id := range completed {
		log.Info(LogMsgQuestCompleted, "user_id", userID, "quest_id", id)
		s.publish(ctx, event.NewQuestCompletedEvent(userID, id))
	}
	return completed, nil
}

// advance adds amount to progress, capped at required
func advance(progress, amount, required int) int {
	if required < 1 {
		required = 1
	}
	progress += amount
	if progress > required {
		progress = required
	}
	return progress
}
