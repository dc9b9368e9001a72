package brackets

import (
	"context"
	"errors"
	"sort"

	"github.com/Dosada05/gaming-portal/models"
)

// groupSize is the number of players needed for one 3v3 match.
const groupSize = 2 * models.TeamSize

type ThreeVThreeGenerator struct{}

func NewThreeVThreeGenerator() MatchGenerator {
	return &ThreeVThreeGenerator{}
}

func (g *ThreeVThreeGenerator) GetName() string {
	return "ThreeVThree"
}

// GenerateMatches sorts players from highest to lowest rank, cuts the list into
// consecutive groups of six and splits each group by alternating positions, so
// 0,2,4 play against 1,3,5. A trailing group smaller than six gets no match.
func (g *ThreeVThreeGenerator) GenerateMatches(ctx context.Context, params GenerateMatchesParams) ([]models.Match, error) {
	if params.Event == nil {
		return nil, errors.New("ThreeVThreeGenerator: event is required")
	}

	players := make([]*models.User, 0, len(params.Players))
	for _, p := range params.Players {
		if p != nil {
			players = append(players, p)
		}
	}

	// Stable: players of equal rank keep their registration order.
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rank.Order() > players[j].Rank.Order()
	})

	matches := make([]models.Match, 0, len(players)/groupSize)
	for start := 0; start+groupSize <= len(players); start += groupSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		group := players[start : start+groupSize]

		team1 := make([]int, 0, models.TeamSize)
		team2 := make([]int, 0, models.TeamSize)
		for i, p := range group {
			if i%2 == 0 {
				team1 = append(team1, p.ID)
			} else {
				team2 = append(team2, p.ID)
			}
		}
		matches = append(matches, models.NewMatch(len(matches)+1, team1, team2))
	}

	return matches, nil
}
