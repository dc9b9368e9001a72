package services

import (
	"context"

	"github.com/Dosada05/gaming-portal/models"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	store *Store
}

func NewDashboardService(store *Store) DashboardService {
	return &dashboardService{store: store}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	stats := models.DashboardStats{StarPlayers: []string{}}
	err := s.store.View(func(st *State) error {
		stats.UsersTotal = len(st.Users)
		stats.EventsTotal = len(st.Events)
		for _, u := range st.Users {
			stats.MatchesTotal += u.MatchesPlayed
			if u.StarPlayer {
				stats.StarPlayers = append(stats.StarPlayers, u.Username)
			}
		}
		for _, e := range st.Events {
			if e.Status == models.EventStatusOpen {
				stats.OpenEvents++
			}
		}
		return nil
	})
	return stats, err
}
