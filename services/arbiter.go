package services

import (
	"fmt"
	"sync"

	"github.com/Dosada05/gaming-portal/models"
)

// ResultReport is a participant's claim about who won a match.
type ResultReport struct {
	EventID     int
	MatchID     int
	WinningTeam int
	ReporterID  int
}

// ResultArbiter decides when reported results become final. Decide returns the
// winning team of a final result, or ErrResultPending when more reports are needed.
type ResultArbiter interface {
	Decide(match models.Match, report ResultReport) (int, error)
	Name() string
}

// SingleReportArbiter accepts the first report from any participant.
type SingleReportArbiter struct{}

func NewSingleReportArbiter() ResultArbiter {
	return SingleReportArbiter{}
}

func (SingleReportArbiter) Decide(_ models.Match, report ResultReport) (int, error) {
	return report.WinningTeam, nil
}

func (SingleReportArbiter) Name() string { return "single-report" }

// ConfirmationArbiter requires one player from each team to report the same
// winner. A later report from a team replaces that team's earlier claim.
type ConfirmationArbiter struct {
	mu      sync.Mutex
	pending map[string]map[int]int
}

func NewConfirmationArbiter() ResultArbiter {
	return &ConfirmationArbiter{pending: make(map[string]map[int]int)}
}

func (a *ConfirmationArbiter) Decide(match models.Match, report ResultReport) (int, error) {
	team := match.TeamOf(report.ReporterID)
	if team == 0 {
		return 0, ErrNotAParticipant
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := fmt.Sprintf("%d/%d", report.EventID, report.MatchID)
	claims, ok := a.pending[key]
	if !ok {
		claims = make(map[int]int, 2)
		a.pending[key] = claims
	}
	claims[team] = report.WinningTeam

	first, second := claims[models.TeamOne], claims[models.TeamTwo]
	if first != 0 && first == second {
		delete(a.pending, key)
		return first, nil
	}
	return 0, ErrResultPending
}

func (a *ConfirmationArbiter) Name() string { return "confirmation" }
