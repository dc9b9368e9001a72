package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/repositories"
	"github.com/gosimple/slug"
)

type seedUser struct {
	username      string
	password      string
	rank          models.Rank
	points        int
	matchesPlayed int
	starPlayer    bool
	isAdmin       bool
}

var defaultUsers = []seedUser{
	{username: "Admin", password: "admin123", rank: models.RankDiamond, starPlayer: true, isAdmin: true},
	{username: "Player1", password: "123", rank: models.RankGold, points: 100, matchesPlayed: 10},
	{username: "Player2", password: "123", rank: models.RankSilver, points: 80, matchesPlayed: 8},
}

// SeedDefaults fills an empty store with the default accounts and a first
// event scheduled one day after now. It does nothing when users exist.
func SeedDefaults(ctx context.Context, store *Store, credentials CredentialPolicy, now time.Time, logger *slog.Logger) (bool, error) {
	passwords := make([]string, len(defaultUsers))
	for i, u := range defaultUsers {
		stored, err := credentials.Hash(u.password)
		if err != nil {
			return false, fmt.Errorf("failed to prepare seed credentials: %w", err)
		}
		passwords[i] = stored
	}

	seeded := false
	err := store.Update(ctx, func(st *State) error {
		if len(st.Users) > 0 {
			return nil
		}

		st.Users = make([]models.User, len(defaultUsers))
		for i, u := range defaultUsers {
			st.Users[i] = models.User{
				ID:            i + 1,
				Username:      u.username,
				Password:      passwords[i],
				Rank:          u.rank,
				Points:        u.points,
				MatchesPlayed: u.matchesPlayed,
				StarPlayer:    u.starPlayer,
				IsAdmin:       u.isAdmin,
				CreatedAt:     now.UTC(),
			}
		}

		st.Rankings = make([]models.RankingEntry, 0, len(st.Users))
		for _, row := range buildStandings(rankingEntriesFor(st.Users)) {
			st.Rankings = append(st.Rankings, row.Entry)
		}

		if len(st.Events) == 0 {
			title := "Tournoi 3v3"
			st.Events = []models.Event{{
				ID:                1,
				Title:             title,
				Slug:              slug.Make(title),
				Description:       "Competitive tournament with balanced matchmaking",
				Date:              now.Add(24 * time.Hour).UTC(),
				MaxPlayers:        12,
				RegisteredPlayers: []int{1, 3},
				Status:            models.EventStatusOpen,
				Matches:           []models.Match{},
			}}
		}

		st.MarkDirty(repositories.CollectionUsers, repositories.CollectionEvents, repositories.CollectionRankings)
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		logger.Info("default data seeded", slog.Int("users", len(defaultUsers)))
	}
	return seeded, nil
}

func rankingEntriesFor(users []models.User) []models.RankingEntry {
	entries := make([]models.RankingEntry, len(users))
	for i, u := range users {
		entries[i] = models.NewRankingEntry(u)
	}
	return entries
}
