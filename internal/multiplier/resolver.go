package multiplier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
)

// BaseMultiplier applies when no booster is active
const BaseMultiplier = 1.0

// Rule grants additive bonuses to boosters whose name contains Match (case-insensitive)
type Rule struct {
	Match      string
	XPBonus    float64
	TokenBonus float64
}

// DefaultRules is the booster rule table
var DefaultRules = []Rule{
	{Match: "xp overdrive", XPBonus: 1.0},
	{Match: "protocol hack", XPBonus: 0.5, TokenBonus: 0.5},
}

// InventorySource lists a user's inventory joined with item name and type.
// Both the catalog store and an open LoyaltyTx satisfy it.
type InventorySource interface {
	ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)
}

// Resolver computes reward multipliers from active boosters.
// Claims and display surfaces share one Resolver so they always agree.
type Resolver struct {
	rules []Rule
	now   func() time.Time
}

// NewResolver creates a Resolver over rules, or DefaultRules when none are given
func NewResolver(rules ...Rule) *Resolver {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	fold := cases.Fold()
	folded := make([]Rule, len(rules))
	for i, r := range rules {
		r.Match = fold.String(r.Match)
		folded[i] = r
	}
	return &Resolver{rules: folded, now: time.Now}
}

// WithClock overrides the time source
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Now returns the resolver's current time
func (r *Resolver) Now() time.Time {
	return r.now()
}

// Resolve loads the user's inventory from src and computes the multipliers at the current time
func (r *Resolver) Resolve(ctx context.Context, src InventorySource, userID string) (domain.MultiplierResult, error) {
	items, err := src.ListInventory(ctx, userID)
	if err != nil {
		return domain.MultiplierResult{}, fmt.Errorf("failed to load inventory for multipliers: %w", err)
	}
	return r.ResolveItems(items, r.now()), nil
}

// ResolveItems computes the multipliers for items at now
func (r *Resolver) ResolveItems(items []domain.InventoryItem, now time.Time) domain.MultiplierResult {
	result := domain.MultiplierResult{
		XP:             BaseMultiplier,
		Token:          BaseMultiplier,
		ActiveBoosters: []string{},
	}

	// cases.Caser is stateful and not safe to share between goroutines
	fold := cases.Fold()
	for _, item := range items {
		if !ActiveBooster(item, now) {
			continue
		}
		name := fold.String(item.ItemName)
		matched := false
		for _, rule := range r.rules {
			if strings.Contains(name, rule.Match) {
				result.XP += rule.XPBonus
				result.Token += rule.TokenBonus
				matched = true
			}
		}
		if matched {
			result.ActiveBoosters = append(result.ActiveBoosters, item.ItemName)
		}
	}
	return result
}
