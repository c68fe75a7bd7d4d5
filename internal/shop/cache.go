package shop

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
)

type cachedCatalog struct {
	Version  string
	Items    []domain.ShopItem
	CachedAt time.Time
}

// catalogCache holds the active catalog for a short TTL. Admin writes purge it.
type catalogCache struct {
	lru *expirable.LRU[string, *cachedCatalog]
}

func newCatalogCache(ttl time.Duration) *catalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogCacheTTL
	}
	return &catalogCache{
		lru: expirable.NewLRU[string, *cachedCatalog](1, nil, ttl),
	}
}

func (c *catalogCache) Get() ([]domain.ShopItem, bool) {
	entry, found := c.lru.Get(catalogKeyActive)
	if !found {
		return nil, false
	}
	if entry.Version != CatalogCacheSchemaVersion {
		c.lru.Remove(catalogKeyActive)
		return nil, false
	}
	return cloneItems(entry.Items), true
}

func (c *catalogCache) Set(items []domain.ShopItem) {
	c.lru.Add(catalogKeyActive, &cachedCatalog{
		Version:  CatalogCacheSchemaVersion,
		Items:    cloneItems(items),
		CachedAt: time.Now(),
	})
}

func (c *catalogCache) Clear() {
	c.lru.Purge()
}

func cloneItems(items []domain.ShopItem) []domain.ShopItem {
	out := make([]domain.ShopItem, len(items))
	copy(out, items)
	return out
}
