package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/multiplier"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// Service sells shop items for tokens and reports what a user owns
type Service interface {
	// Player surface
	ListItems(ctx context.Context) ([]domain.ShopItem, error)
	Purchase(ctx context.Context, userID string, itemID int) (*domain.PurchaseResult, error)
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryView, error)
	Multipliers(ctx context.Context, userID string) (domain.MultiplierResult, error)

	// Catalog administration
	ListAllItems(ctx context.Context) ([]domain.ShopItem, error)
	CreateItem(ctx context.Context, item *domain.ShopItem) error
	UpdateItem(ctx context.Context, item *domain.ShopItem) error
	DeactivateItem(ctx context.Context, itemID int) error
}

type service struct {
	repo      repository.Loyalty
	resolver  *multiplier.Resolver
	publisher event.Publisher
	catalog   *catalogCache
}

// NewService creates a shop service. publisher may be nil; a zero cacheTTL uses the default.
func NewService(repo repository.Loyalty, resolver *multiplier.Resolver, publisher event.Publisher, cacheTTL time.Duration) Service {
	if resolver == nil {
		resolver = multiplier.NewResolver()
	}
	return &service{
		repo:      repo,
		resolver:  resolver,
		publisher: publisher,
		catalog:   newCatalogCache(cacheTTL),
	}
}

// ListItems returns the active catalog ordered by type, then price
func (s *service) ListItems(ctx context.Context) ([]domain.ShopItem, error) {
	if items, ok := s.catalog.Get(); ok {
		return items, nil
	}
	items, err := s.repo.ListShopItems(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop items: %w", err)
	}
	s.catalog.Set(items)
	return items, nil
}

// GetInventory returns the user's items, most recent first, with their activity state
func (s *service) GetInventory(ctx context.Context, userID string) ([]domain.InventoryView, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	now := s.resolver.Now()
	views := make([]domain.InventoryView, 0, len(items))
	for _, inv := range items {
		view := domain.InventoryView{InventoryItem: inv}
		if exp, ok := multiplier.EffectiveExpiry(inv); ok {
			e := exp
			view.EffectiveExpiresAt = &e
		}
		if inv.ItemType == domain.ItemTypeBoosters {
			view.Active = multiplier.ActiveBooster(inv, now)
		} else {
			view.Active = !multiplier.Expired(inv, now)
		}
		views = append(views, view)
	}
	return views, nil
}

// Multipliers returns the booster multipliers currently applying to the user
func (s *service) Multipliers(ctx context.Context, userID string) (domain.MultiplierResult, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return domain.MultiplierResult{}, err
	}
	return s.resolver.Resolve(ctx, s.repo, userID)
}
