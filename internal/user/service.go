package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// Service owns user records and their point and token balances
type Service interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	Balance(ctx context.Context, userID string) (*domain.Balance, error)
	Adjust(ctx context.Context, userID string, currency domain.Currency, delta int64, note string) (*domain.Balance, error)
}

type service struct {
	repo      repository.Loyalty
	publisher event.Publisher
}

// NewService creates a user service. publisher may be nil.
func NewService(repo repository.Loyalty, publisher event.Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

// CreateUser registers a user with empty balances
func (s *service) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	u := &domain.User{Username: username}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgUserCreated, "user_id", u.ID, "username", u.Username)
	return u, nil
}

// GetUser returns the user record
func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUser(ctx, userID)
}

// Balance returns the user's balances, tier and latest journal entries
func (s *service) Balance(ctx context.Context, userID string) (*domain.Balance, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.ListLedgerEntries(ctx, userID, RecentLedgerEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return &domain.Balance{
		UserID:        u.ID,
		LoyaltyPoints: u.LoyaltyPoints,
		Tokens:        u.Tokens,
		Tier:          domain.TierFor(u.LoyaltyPoints),
		Recent:        recent,
	}, nil
}

// Adjust credits or debits one currency by delta. Debits never take the balance below zero.
func (s *service) Adjust(ctx context.Context, userID string, currency domain.Currency, delta int64, note string) (*domain.Balance, error) {
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: currency must be POINTS or TOKENS", domain.ErrInvalidInput)
	}
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta cannot be zero", domain.ErrInvalidInput)
	}

	entry := domain.LedgerEntry{
		UserID:    userID,
		Currency:  currency,
		Delta:     delta,
		Reason:    domain.LedgerReasonAdminAdjustment,
		Reference: strings.TrimSpace(note),
	}
	err := repository.RunInTx(ctx, OpAdjust, s.repo.BeginTx, func(tx repository.LoyaltyTx) error {
		if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
			return err
		}
		var err error
		if currency == domain.CurrencyTokens {
			_, err = tx.AddTokens(ctx, userID, delta)
		} else {
			_, err = tx.AddPoints(ctx, userID, delta)
		}
		if err != nil {
			return err
		}
		e := entry
		return tx.RecordLedgerEntry(ctx, &e)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgBalanceAdjusted, "user_id", userID, "currency", currency, "delta", delta)
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewLedgerAdjustedEvent(entry))
	}
	return s.Balance(ctx, userID)
}
