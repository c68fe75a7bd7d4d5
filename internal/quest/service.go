package quest

import (
	"context"
	"fmt"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/multiplier"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// Service tracks quest progress and pays out quest rewards
type Service interface {
	// Player surface
	ListForUser(ctx context.Context, userID string) (*domain.QuestBoard, error)
	Claim(ctx context.Context, userID string, questID int) (*domain.ClaimResult, error)

	// Progress tracking, called by the ordering system
	RecordActivity(ctx context.Context, userID string, amount int) ([]int, error)

	// Catalog administration
	ListQuests(ctx context.Context, activeOnly bool) ([]domain.Quest, error)
	CreateQuest(ctx context.Context, q *domain.Quest) error
	UpdateQuest(ctx context.Context, q *domain.Quest) error
	DeactivateQuest(ctx context.Context, questID int) error
}

type service struct {
	repo      repository.Loyalty
	resolver  *multiplier.Resolver
	publisher event.Publisher
}

// NewService creates a quest service. publisher may be nil.
func NewService(repo repository.Loyalty, resolver *multiplier.Resolver, publisher event.Publisher) Service {
	if resolver == nil {
		resolver = multiplier.NewResolver()
	}
	return &service{
		repo:      repo,
		resolver:  resolver,
		publisher: publisher,
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

// ListForUser merges the active catalog with the caller's progress
func (s *service) ListForUser(ctx context.Context, userID string) (*domain.QuestBoard, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	quests, err := s.repo.ListQuests(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}

	rows, err := s.repo.ListUserQuests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quest progress: %w", err)
	}
	progress := make(map[int]domain.UserQuest, len(rows))
	for _, uq := range rows {
		progress[uq.QuestID] = uq
	}

	mult, err := s.resolver.Resolve(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	board := &domain.QuestBoard{
		Quests:        make([]domain.QuestView, 0, len(quests)),
		LoyaltyPoints: user.LoyaltyPoints,
		Tier:          domain.TierFor(user.LoyaltyPoints),
		Multipliers:   mult,
	}
	for _, q := range quests {
		view := domain.QuestView{Quest: q, Status: domain.QuestStatusPending}
		if uq, ok := progress[q.ID]; ok {
			view.Progress = uq.Progress
			view.Status = uq.Status
			view.CompletedAt = uq.CompletedAt
		}
		board.Quests = append(board.Quests, view)
	}
	return board, nil
}
