package models

// Tier is the standings bracket derived from a player's position, not from raw points.
type Tier string

const (
	TierS      Tier = "S"
	TierA      Tier = "A"
	TierB      Tier = "B"
	TierRandom Tier = "Random"
)

// TierForPosition maps a 1-based standings position to its tier.
func TierForPosition(position int) Tier {
	switch {
	case position <= 3:
		return TierS
	case position <= 6:
		return TierA
	case position <= 10:
		return TierB
	default:
		return TierRandom
	}
}
