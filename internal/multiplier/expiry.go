package multiplier

import (
	"regexp"
	"strconv"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
)

// durationPattern matches the "(24h)" suffix carried by timed booster names
var durationPattern = regexp.MustCompile(`\((\d+)h\)`)

// DurationFromName parses the hour count encoded in an item name.
// "XP Overdrive (24h)" yields 24h; names without the marker yield false.
func DurationFromName(name string) (time.Duration, bool) {
	m := durationPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil || hours <= 0 {
		return 0, false
	}
	return time.Duration(hours) * time.Hour, true
}

// PurchaseExpiry returns the expiry to record when item is bought at now.
// Only Boosters with a parseable duration expire; everything else is permanent.
func PurchaseExpiry(item domain.ShopItem, now time.Time) *time.Time {
	if item.Type != domain.ItemTypeBoosters {
		return nil
	}
	d, ok := DurationFromName(item.Name)
	if !ok {
		return nil
	}
	exp := now.Add(d)
	return &exp
}

// EffectiveExpiry returns the recorded expiry, or for Boosters unlockedAt plus
// the duration derived from the item name for rows written before expires_at
// was populated. ok is false when the row has no recorded or derivable expiry.
func EffectiveExpiry(item domain.InventoryItem) (time.Time, bool) {
	if item.ExpiresAt != nil {
		return *item.ExpiresAt, true
	}
	if item.ItemType != domain.ItemTypeBoosters {
		return time.Time{}, false
	}
	if d, ok := DurationFromName(item.ItemName); ok {
		return item.UnlockedAt.Add(d), true
	}
	return time.Time{}, false
}

// Expired reports whether an owned item can be bought again.
// Rows without any expiry are permanent and never expire.
func Expired(item domain.InventoryItem, now time.Time) bool {
	exp, ok := EffectiveExpiry(item)
	return ok && !exp.After(now)
}

// ActiveBooster reports whether item is a Booster whose expiry lies in the future.
// Boosters with no recorded or derivable expiry are treated as inactive.
func ActiveBooster(item domain.InventoryItem, now time.Time) bool {
	if item.ItemType != domain.ItemTypeBoosters {
		return false
	}
	exp, ok := EffectiveExpiry(item)
	return ok && exp.After(now)
}
