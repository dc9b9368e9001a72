package models

// Rank is the competitive skill label a player picks for themselves.
type Rank string

const (
	RankIron        Rank = "Iron"
	RankBronze      Rank = "Bronze"
	RankSilver      Rank = "Silver"
	RankGold        Rank = "Gold"
	RankPlatinum    Rank = "Platinum"
	RankDiamond     Rank = "Diamond"
	RankMaster      Rank = "Master"
	RankGrandmaster Rank = "Grandmaster"
	RankChallenger  Rank = "Challenger"
)

var rankOrder = map[Rank]int{
	RankIron:        1,
	RankBronze:      2,
	RankSilver:      3,
	RankGold:        4,
	RankPlatinum:    5,
	RankDiamond:     6,
	RankMaster:      7,
	RankGrandmaster: 8,
	RankChallenger:  9,
}

// Order returns the position of the rank in the ladder, 1 for Iron up to 9 for Challenger.
// Unknown labels return 0 and therefore sort below every known rank.
func (r Rank) Order() int {
	return rankOrder[r]
}

func (r Rank) IsValid() bool {
	_, ok := rankOrder[r]
	return ok
}

// Ranks lists every rank from lowest to highest.
func Ranks() []Rank {
	return []Rank{
		RankIron, RankBronze, RankSilver, RankGold, RankPlatinum,
		RankDiamond, RankMaster, RankGrandmaster, RankChallenger,
	}
}
