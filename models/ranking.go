package models

// RankingEntry is the per-user standings row. Points, Rank and MatchesPlayed are
// denormalized copies of the owning User and are kept in sync by the services.
type RankingEntry struct {
	UserID        int    `json:"userId"`
	Username      string `json:"username"`
	Points        int    `json:"points"`
	Rank          Rank   `json:"rank"`
	MatchesPlayed int    `json:"matchesPlayed"`
	Tier          Tier   `json:"tier"`
}

func NewRankingEntry(u User) RankingEntry {
	return RankingEntry{
		UserID:        u.ID,
		Username:      u.Username,
		Points:        u.Points,
		Rank:          u.Rank,
		MatchesPlayed: u.MatchesPlayed,
		Tier:          TierRandom,
	}
}

// Standing is one rendered row of the standings table.
type Standing struct {
	Position int          `json:"position"`
	Entry    RankingEntry `json:"entry"`
	Tier     Tier         `json:"tier"`
}
