package domain

import "time"

// User is a customer of the ordering platform with its loyalty balances.
// LoyaltyPoints and Tokens only change through atomic ledger operations.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	LoyaltyPoints int64     `json:"loyalty_points"`
	Tokens        int64     `json:"tokens"`
	Version       int64     `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Tier is a loyalty status derived from accumulated points
type Tier struct {
	Name      string `json:"name"`
	MinPoints int64  `json:"min_points"`
}

// Tiers is ordered by ascending threshold
var Tiers = []Tier{
	{Name: TierBronze, MinPoints: 0},
	{Name: TierSilver, MinPoints: 500},
	{Name: TierGold, MinPoints: 2000},
	{Name: TierPlatinum, MinPoints: 5000},
}

const (
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

// TierFor returns the highest tier whose threshold is reached
func TierFor(points int64) Tier {
	current := Tiers[0]
	for _, t := range Tiers {
		if points >= t.MinPoints {
			current = t
		}
	}
	return current
}

// Session binds an opaque bearer token to a user
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is no longer valid at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
