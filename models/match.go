package models

const (
	TeamOne = 1
	TeamTwo = 2

	// TeamSize is the number of players on each side of a generated match.
	TeamSize = 3
)

type MatchScores struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// Match is a 3v3 game inside an event. Winner is 0 until a result is recorded,
// then 1 or 2 and never changes again.
type Match struct {
	ID         int         `json:"id"`
	Team1      []int       `json:"team1"`
	Team2      []int       `json:"team2"`
	Players    []int       `json:"players"`
	Winner     int         `json:"winner"`
	Scores     MatchScores `json:"scores"`
	ReportedBy int         `json:"reportedBy,omitempty"`
}

func NewMatch(id int, team1, team2 []int) Match {
	players := make([]int, 0, len(team1)+len(team2))
	players = append(players, team1...)
	players = append(players, team2...)
	return Match{
		ID:      id,
		Team1:   team1,
		Team2:   team2,
		Players: players,
	}
}

func (m Match) HasResult() bool {
	return m.Winner != 0
}

func (m Match) HasPlayer(userID int) bool {
	for _, id := range m.Players {
		if id == userID {
			return true
		}
	}
	return false
}

// Teams returns the winning and losing sides for the given winning team index.
func (m Match) Teams(winningTeam int) (winners, losers []int) {
	if winningTeam == TeamOne {
		return m.Team1, m.Team2
	}
	return m.Team2, m.Team1
}

// TeamOf returns 1 or 2 for a participant, 0 if the user does not play in the match.
func (m Match) TeamOf(userID int) int {
	for _, id := range m.Team1 {
		if id == userID {
			return TeamOne
		}
	}
	for _, id := range m.Team2 {
		if id == userID {
			return TeamTwo
		}
	}
	return 0
}

func (m Match) Clone() Match {
	c := m
	c.Team1 = append([]int(nil), m.Team1...)
	c.Team2 = append([]int(nil), m.Team2...)
	c.Players = append([]int(nil), m.Players...)
	return c
}

// MatchView resolves player ids to usernames for display.
type MatchView struct {
	Match
	Team1Names []string `json:"team1_names"`
	Team2Names []string `json:"team2_names"`
}
