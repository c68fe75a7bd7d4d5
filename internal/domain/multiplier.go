package domain

// MultiplierResult holds the reward multipliers granted by active boosters
type MultiplierResult struct {
	XP             float64  `json:"xp_multiplier"`
	Token          float64  `json:"token_multiplier"`
	ActiveBoosters []string `json:"active_boosters"`
}

// For returns the multiplier applying to the given reward type
func (m MultiplierResult) For(rt RewardType) float64 {
	if rt == RewardTypeToken {
		return m.Token
	}
	return m.XP
}
