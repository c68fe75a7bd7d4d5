package multiplier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
)

func TestDurationFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   time.Duration
		wantOK bool
	}{
		{"XP Overdrive (24h)", 24 * time.Hour, true},
		{"Protocol Hack (1h)", time.Hour, true},
		{"Mega Boost (168h) deluxe", 168 * time.Hour, true},
		{"Thème Néon", 0, false},
		{"Broken (h)", 0, false},
		{"Zero (0h)", 0, false},
		{"Minutes (30m)", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DurationFromName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPurchaseExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("booster with duration", func(t *testing.T) {
		exp := PurchaseExpiry(domain.ShopItem{Name: "XP Overdrive (24h)", Type: domain.ItemTypeBoosters}, now)
		require.NotNil(t, exp)
		assert.Equal(t, now.Add(24*time.Hour), *exp)
	})

	t.Run("booster without duration is permanent", func(t *testing.T) {
		assert.Nil(t, PurchaseExpiry(domain.ShopItem{Name: "Eternal Booster", Type: domain.ItemTypeBoosters}, now))
	})

	t.Run("non-booster with duration marker is permanent", func(t *testing.T) {
		assert.Nil(t, PurchaseExpiry(domain.ShopItem{Name: "Poster (24h)", Type: "Cosmetics"}, now))
	})
}

func TestExpiryChecks(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name        string
		item        domain.InventoryItem
		wantExpired bool
		wantActive  bool
	}{
		{
			name:        "recorded expiry in future",
			item:        domain.InventoryItem{ItemName: "XP Overdrive (24h)", ItemType: domain.ItemTypeBoosters, UnlockedAt: now.Add(-time.Hour), ExpiresAt: &future},
			wantExpired: false,
			wantActive:  true,
		},
		{
			name:        "recorded expiry in past",
			item:        domain.InventoryItem{ItemName: "XP Overdrive (24h)", ItemType: domain.ItemTypeBoosters, UnlockedAt: now.Add(-25 * time.Hour), ExpiresAt: &past},
			wantExpired: true,
			wantActive:  false,
		},
		{
			name:        "recorded expiry wins over name duration",
			item:        domain.InventoryItem{ItemName: "XP Overdrive (24h)", ItemType: domain.ItemTypeBoosters, UnlockedAt: now.Add(-48 * time.Hour), ExpiresAt: &future},
			wantExpired: false,
			wantActive:  true,
		},
		{
			name:        "derived from name still running",
			item:        domain.InventoryItem{ItemName: "Protocol Hack (12h)", ItemType: domain.ItemTypeBoosters, UnlockedAt: now.Add(-11 * time.Hour)},
			wantExpired: false,
			wantActive:  true,
		},
		{
			name:        "derived from name elapsed",
			item:        domain.InventoryItem{ItemName: "Protocol Hack (12h)", ItemType: domain.ItemTypeBoosters, UnlockedAt: now.Add(-13 * time.Hour)},
			wantExpired: true,
			wantActive:  false,
		},
		{
			name:        "expiry exactly now counts as expired",
			item:        domain.InventoryItem{ItemName: "XP Overdrive (24h)", ItemType: domain.ItemTypeBoosters, ExpiresAt: &now},
			wantExpired: true,
			wantActive:  false,
		},
		{
			name:        "booster without any expiry is inactive but never expires",
			item:        domain.InventoryItem{ItemName: "Eternal Overdrive", ItemType: domain.ItemTypeBoosters, UnlockedAt: now.Add(-time.Hour)},
			wantExpired: false,
			wantActive:  false,
		},
		{
			name:        "non-booster is never an active booster",
			item:        domain.InventoryItem{ItemName: "XP Overdrive Poster (24h)", ItemType: "Cosmetics", UnlockedAt: now.Add(-time.Hour)},
			wantExpired: false,
			wantActive:  false,
		},
		{
			name:        "non-booster name duration never elapses",
			item:        domain.InventoryItem{ItemName: "Mug (24h)", ItemType: "Cosmetics", UnlockedAt: now.Add(-25 * time.Hour)},
			wantExpired: false,
			wantActive:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantExpired, Expired(tt.item, now))
			assert.Equal(t, tt.wantActive, ActiveBooster(tt.item, now))
		})
	}
}

func TestEffectiveExpiry_NameFallbackOnlyForBoosters(t *testing.T) {
	unlocked := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	exp, ok := EffectiveExpiry(domain.InventoryItem{ItemName: "XP Overdrive (24h)", ItemType: domain.ItemTypeBoosters, UnlockedAt: unlocked})
	require.True(t, ok)
	assert.Equal(t, unlocked.Add(24*time.Hour), exp)

	_, ok = EffectiveExpiry(domain.InventoryItem{ItemName: "Mug (24h)", ItemType: "Cosmetics", UnlockedAt: unlocked})
	assert.False(t, ok)
}
