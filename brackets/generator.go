package brackets

import (
	"context"

	"github.com/Dosada05/gaming-portal/models"
)

type GenerateMatchesParams struct {
	Event   *models.Event
	Players []*models.User
}

// MatchGenerator turns the registered roster of a closed event into matches.
type MatchGenerator interface {
	GenerateMatches(ctx context.Context, params GenerateMatchesParams) ([]models.Match, error)

	GetName() string
}
