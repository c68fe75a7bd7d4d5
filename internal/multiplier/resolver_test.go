package multiplier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
)

type staticInventory struct {
	items []domain.InventoryItem
	err   error
}

func (s staticInventory) ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return s.items, s.err
}

func booster(name string, expiresAt time.Time) domain.InventoryItem {
	return domain.InventoryItem{
		ItemName:   name,
		ItemType:   domain.ItemTypeBoosters,
		UnlockedAt: expiresAt.Add(-24 * time.Hour),
		ExpiresAt:  &expiresAt,
	}
}

func TestResolver_ResolveItems(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	active := now.Add(time.Hour)
	expired := now.Add(-time.Hour)
	r := NewResolver()

	tests := []struct {
		name        string
		items       []domain.InventoryItem
		wantXP      float64
		wantToken   float64
		wantBoosted []string
	}{
		{
			name:        "no inventory",
			wantXP:      1.0,
			wantToken:   1.0,
			wantBoosted: []string{},
		},
		{
			name:        "xp overdrive doubles xp",
			items:       []domain.InventoryItem{booster("XP Overdrive (24h)", active)},
			wantXP:      2.0,
			wantToken:   1.0,
			wantBoosted: []string{"XP Overdrive (24h)"},
		},
		{
			name: "two boosters accumulate additively",
			items: []domain.InventoryItem{
				booster("XP Overdrive (24h)", active),
				booster("Protocol Hack (12h)", active),
			},
			wantXP:      2.5,
			wantToken:   1.5,
			wantBoosted: []string{"XP Overdrive (24h)", "Protocol Hack (12h)"},
		},
		{
			name:        "matching ignores case",
			items:       []domain.InventoryItem{booster("xP OVERDRIVE ultra (24h)", active)},
			wantXP:      2.0,
			wantToken:   1.0,
			wantBoosted: []string{"xP OVERDRIVE ultra (24h)"},
		},
		{
			name:        "expired booster ignored",
			items:       []domain.InventoryItem{booster("XP Overdrive (24h)", expired)},
			wantXP:      1.0,
			wantToken:   1.0,
			wantBoosted: []string{},
		},
		{
			name: "unknown booster ignored",
			items: []domain.InventoryItem{
				booster("Lucky Charm (24h)", active),
			},
			wantXP:      1.0,
			wantToken:   1.0,
			wantBoosted: []string{},
		},
		{
			name: "booster without any expiry ignored",
			items: []domain.InventoryItem{
				{ItemName: "XP Overdrive", ItemType: domain.ItemTypeBoosters, UnlockedAt: now},
			},
			wantXP:      1.0,
			wantToken:   1.0,
			wantBoosted: []string{},
		},
		{
			name: "legacy row derives expiry from name",
			items: []domain.InventoryItem{
				{ItemName: "XP Overdrive (24h)", ItemType: domain.ItemTypeBoosters, UnlockedAt: now.Add(-2 * time.Hour)},
			},
			wantXP:      2.0,
			wantToken:   1.0,
			wantBoosted: []string{"XP Overdrive (24h)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolveItems(tt.items, now)
			assert.InDelta(t, tt.wantXP, got.XP, 1e-9)
			assert.InDelta(t, tt.wantToken, got.Token, 1e-9)
			assert.Equal(t, tt.wantBoosted, got.ActiveBoosters)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewResolver().WithClock(func() time.Time { return now })

	t.Run("uses clock and source", func(t *testing.T) {
		src := staticInventory{items: []domain.InventoryItem{booster("XP Overdrive (24h)", now.Add(time.Minute))}}
		got, err := r.Resolve(context.Background(), src, "u1")
		require.NoError(t, err)
		assert.Equal(t, 2.0, got.For(domain.RewardTypeXP))
		assert.Equal(t, 1.0, got.For(domain.RewardTypeToken))
	})

	t.Run("propagates source errors", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), staticInventory{err: errors.New("boom")}, "u1")
		assert.ErrorContains(t, err, "boom")
	})
}

func TestNewResolver_CustomRules(t *testing.T) {
	now := time.Now()
	r := NewResolver(Rule{Match: "Token Surge", TokenBonus: 1.0})

	got := r.ResolveItems([]domain.InventoryItem{booster("token surge (2h)", now.Add(time.Hour))}, now)
	assert.Equal(t, 1.0, got.XP)
	assert.Equal(t, 2.0, got.Token)
}
