package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/repositories"
)

type MatchService interface {
	// RecordMatchResult applies a reported result once the arbiter accepts it.
	// Winners get the configured points and star bonus; everybody gets a match played.
	RecordMatchResult(ctx context.Context, eventID, matchID, winningTeam, reportingUserID int) (*models.Match, error)
}

type matchService struct {
	store         *Store
	arbiter       ResultArbiter
	rankings      RankingService
	notifications NotificationService
	logger        *slog.Logger
}

func NewMatchService(
	store *Store,
	arbiter ResultArbiter,
	rankings RankingService,
	notifications NotificationService,
	logger *slog.Logger,
) MatchService {
	if arbiter == nil {
		arbiter = NewSingleReportArbiter()
	}
	return &matchService{
		store:         store,
		arbiter:       arbiter,
		rankings:      rankings,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *matchService) RecordMatchResult(ctx context.Context, eventID, matchID, winningTeam, reportingUserID int) (*models.Match, error) {
	var (
		recorded models.Match
		event    models.Event
		notices  []Notice
	)

	err := s.store.Update(ctx, func(st *State) error {
		e := st.FindEvent(eventID)
		if e == nil {
			return ErrEventNotFound
		}
		var match *models.Match
		for i := range e.Matches {
			if e.Matches[i].ID == matchID {
				match = &e.Matches[i]
				break
			}
		}
		if match == nil {
			return ErrMatchNotFound
		}
		if winningTeam != models.TeamOne && winningTeam != models.TeamTwo {
			return ErrInvalidWinningTeam
		}
		if match.HasResult() {
			return ErrResultAlreadyRecorded
		}
		if !match.HasPlayer(reportingUserID) {
			return ErrNotAParticipant
		}

		winner, err := s.arbiter.Decide(*match, ResultReport{
			EventID:     eventID,
			MatchID:     matchID,
			WinningTeam: winningTeam,
			ReporterID:  reportingUserID,
		})
		if err != nil {
			return err
		}

		match.Winner = winner
		match.ReportedBy = reportingUserID

		award := st.Settings.PointsPerWin
		winners, losers := match.Teams(winner)
		for _, id := range winners {
			u := st.FindUser(id)
			if u == nil {
				continue
			}
			gained := award
			if u.StarPlayer {
				gained += st.Settings.StarPlayerBonus
			}
			u.Points += gained
			u.MatchesPlayed++
			st.syncRanking(u)
			notices = append(notices, Notice{
				UserID:  id,
				EventID: eventID,
				Kind:    models.NotificationPointsAwarded,
				Message: fmt.Sprintf("Victory in match #%d of %q: +%d points", matchID, e.Title, gained),
			})
		}
		for _, id := range losers {
			u := st.FindUser(id)
			if u == nil {
				continue
			}
			u.MatchesPlayed++
			st.syncRanking(u)
			notices = append(notices, Notice{
				UserID:  id,
				EventID: eventID,
				Kind:    models.NotificationPointsAwarded,
				Message: fmt.Sprintf("Result of match #%d of %q recorded", matchID, e.Title),
			})
		}

		st.MarkDirty(repositories.CollectionEvents, repositories.CollectionUsers)
		recorded = match.Clone()
		event = e.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("match result recorded",
		slog.Int("event_id", eventID),
		slog.Int("match_id", matchID),
		slog.Int("winner", recorded.Winner),
		slog.Int("reported_by", reportingUserID),
		slog.String("arbiter", s.arbiter.Name()),
	)

	s.notifications.Publish(notices...)
	s.notifications.EventChanged(event)
	if standings, err := s.rankings.GetStandings(ctx); err == nil {
		s.notifications.StandingsChanged(standings)
	}
	return &recorded, nil
}
