package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
	"github.com/osse101/RestoLoyalty_Go/internal/validation"
)

// ListAllItems returns the whole catalog including inactive items, bypassing the cache
func (s *service) ListAllItems(ctx context.Context) ([]domain.ShopItem, error) {
	return s.repo.ListShopItems(ctx, false)
}

// CreateItem validates and stores a new item
func (s *service) CreateItem(ctx context.Context, item *domain.ShopItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.repo.CreateShopItem(ctx, item); err != nil {
		return fmt.Errorf("failed to create shop item: %w", err)
	}
	s.catalog.Clear()
	logger.FromContext(ctx).Info(LogMsgItemCreated, "item_id", item.ID, "name", item.Name, "price", item.Price)
	return nil
}

// UpdateItem replaces an item definition. Owned inventory rows are kept.
func (s *service) UpdateItem(ctx context.Context, item *domain.ShopItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.repo.UpdateShopItem(ctx, item); err != nil {
		return err
	}
	s.catalog.Clear()
	logger.FromContext(ctx).Info(LogMsgItemUpdated, "item_id", item.ID)
	return nil
}

// DeactivateItem removes an item from sale
func (s *service) DeactivateItem(ctx context.Context, itemID int) error {
	item, err := s.repo.GetShopItem(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.Active {
		return nil
	}
	item.Active = false
	if err := s.repo.UpdateShopItem(ctx, item); err != nil {
		return err
	}
	s.catalog.Clear()
	logger.FromContext(ctx).Info(LogMsgItemDeactivated, "item_id", itemID)
	return nil
}

func validateItem(item *domain.ShopItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Type = strings.TrimSpace(item.Type)
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if item.Type == "" {
		return fmt.Errorf("%w: type is required", domain.ErrInvalidInput)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if len(item.Metadata) > 0 {
		if !json.Valid(item.Metadata) {
			return fmt.Errorf("%w: metadata must be valid JSON", domain.ErrInvalidInput)
		}
		if err := validation.Default().ValidateBytes(item.Metadata, validation.ShopItemMetadataSchema); err != nil {
			return fmt.Errorf("%w: metadata: %v", domain.ErrInvalidInput, err)
		}
	}
	return nil
}
