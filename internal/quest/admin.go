package quest

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
)

// ListQuests returns the catalog, optionally only active quests
func (s *service) ListQuests(ctx context.Context, activeOnly bool) ([]domain.Quest, error) {
	return s.repo.ListQuests(ctx, activeOnly)
}

// CreateQuest validates and stores a new quest definition
func (s *service) CreateQuest(ctx context.Context, q *domain.Quest) error {
	if err := validateQuest(q); err != nil {
		return err
	}
	if err := s.repo.CreateQuest(ctx, q); err != nil {
		return fmt.Errorf("failed to create quest: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgQuestCreated, "quest_id", q.ID, "title", q.Title)
	return nil
}

// UpdateQuest replaces a quest definition. Existing progress rows are kept.
func (s *service) UpdateQuest(ctx context.Context, q *domain.Quest) error {
	if err := validateQuest(q); err != nil {
		return err
	}
	if err := s.repo.UpdateQuest(ctx, q); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgQuestUpdated, "quest_id", q.ID)
	return nil
}

// DeactivateQuest hides a quest from the board. Completed rows stay claimable.
func (s *service) DeactivateQuest(ctx context.Context, questID int) error {
	q, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		return err
	}
	if !q.Active {
		return nil
	}
	q.Active = false
	if err := s.repo.UpdateQuest(ctx, q); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgQuestDeactivated, "quest_id", questID)
	return nil
}

func validateQuest(q *domain.Quest) error {
	q.Title = strings.TrimSpace(q.Title)
	if q.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !q.RewardType.Valid() {
		return fmt.Errorf("%w: reward type must be XP or TOKEN", domain.ErrInvalidInput)
	}
	if q.RewardAmount < 0 {
		return fmt.Errorf("%w: reward amount cannot be negative", domain.ErrInvalidInput)
	}
	if q.RequiredProgress == 0 {
		q.RequiredProgress = 1
	}
	if q.RequiredProgress < 0 {
		return fmt.Errorf("%w: required progress must be at least 1", domain.ErrInvalidInput)
	}
	return nil
}
