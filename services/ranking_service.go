package services

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/repositories"
)

type RankingService interface {
	// GetStandings returns the ranking ordered by points with positions and
	// tiers attached. Stored entries are not modified.
	GetStandings(ctx context.Context) ([]models.Standing, error)
	// UpdateAllTiers stores the current standings tier on every ranking entry.
	UpdateAllTiers(ctx context.Context) ([]models.Standing, error)
	// RebuildRankings recomputes the ranking entries from users.
	RebuildRankings(ctx context.Context) error
}

type rankingService struct {
	store         *Store
	notifications NotificationService
	logger        *slog.Logger
}

func NewRankingService(store *Store, notifications NotificationService, logger *slog.Logger) RankingService {
	return &rankingService{
		store:         store,
		notifications: notifications,
		logger:        logger,
	}
}

func buildStandings(entries []models.RankingEntry) []models.Standing {
	sorted := append([]models.RankingEntry(nil), entries...)
	sortRankingEntries(sorted)

	standings := make([]models.Standing, len(sorted))
	for i, entry := range sorted {
		position := i + 1
		tier := models.TierForPosition(position)
		entry.Tier = tier
		standings[i] = models.Standing{Position: position, Entry: entry, Tier: tier}
	}
	return standings
}

func (s *rankingService) GetStandings(ctx context.Context) ([]models.Standing, error) {
	var standings []models.Standing
	err := s.store.View(func(st *State) error {
		standings = buildStandings(st.Rankings)
		return nil
	})
	return standings, err
}

func (s *rankingService) UpdateAllTiers(ctx context.Context) ([]models.Standing, error) {
	var standings []models.Standing
	err := s.store.Update(ctx, func(st *State) error {
		standings = buildStandings(st.Rankings)
		for _, row := range standings {
			if entry := st.FindRanking(row.Entry.UserID); entry != nil {
				entry.Tier = row.Tier
			}
		}
		st.MarkDirty(repositories.CollectionRankings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tiers updated", slog.Int("entries", len(standings)))
	s.notifications.StandingsChanged(standings)
	return standings, nil
}

func (s *rankingService) RebuildRankings(ctx context.Context) error {
	var rebuilt bool
	err := s.store.Update(ctx, func(st *State) error {
		entries := make([]models.RankingEntry, 0, len(st.Users))
		for _, u := range st.Users {
			entry := models.NewRankingEntry(u)
			if existing := st.FindRanking(u.ID); existing != nil && existing.Tier != "" {
				entry.Tier = existing.Tier
			}
			entries = append(entries, entry)
		}
		if slices.Equal(entries, st.Rankings) {
			return nil
		}
		st.Rankings = entries
		st.MarkDirty(repositories.CollectionRankings)
		rebuilt = true
		return nil
	})
	if err != nil {
		return err
	}
	if rebuilt {
		s.logger.Info("rankings rebuilt from users")
	}
	return nil
}
