package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustRegister(t, "alice", models.RankGold)
	bob := env.mustRegister(t, "bob", models.RankGold)
	event := env.mustCreateEvent(t, "Cup", baseTime.Add(time.Hour), 6)
	require.NoError(t, env.events.RegisterForEvent(ctx, event.ID, alice.ID))
	require.NoError(t, env.events.RegisterForEvent(ctx, event.ID, bob.ID))
	_, err := env.auth.Login(ctx, LoginInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, env.admin.DeleteUser(ctx, alice.ID))

	_, err = env.users.GetUserByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	got, err := env.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{bob.ID}, got.RegisteredPlayers)

	standings, err := env.rankings.GetStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, bob.ID, standings[0].Entry.UserID)

	current, err := env.auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	assert.ErrorIs(t, env.admin.DeleteUser(ctx, alice.ID), ErrUserNotFound)
}

func TestAddPointsClampsAtZero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustRegister(t, "alice", models.RankGold)

	updated, err := env.admin.AddPoints(ctx, u.ID, 15, "tournament bonus")
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Points)

	updated, err = env.admin.AddPoints(ctx, u.ID, -40, "penalty")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Points)
	assert.Equal(t, 0, env.rankingEntry(t, u.ID).Points)

	_, err = env.admin.AddPoints(ctx, u.ID, 0, "noop")
	assert.ErrorIs(t, err, ErrInvalidPoints)
	_, err = env.admin.AddPoints(ctx, 404, 5, "")
	assert.ErrorIs(t, err, ErrUserNotFound)

	inbox := env.notifications.ListForUser(u.ID)
	require.Len(t, inbox, 2)
	assert.Equal(t, "-40 points (penalty)", inbox[0].Message)
}

func TestSetPoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustRegister(t, "alice", models.RankGold)

	_, err := env.admin.SetPoints(ctx, u.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidPoints)

	updated, err := env.admin.SetPoints(ctx, u.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, 250, updated.Points)
	assert.Equal(t, 250, env.rankingEntry(t, u.ID).Points)
}

func TestResetRanking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustRegister(t, "alice", models.RankGold)
	_, err := env.admin.SetPoints(ctx, u.ID, 90)
	require.NoError(t, err)
	_, err = env.rankings.UpdateAllTiers(ctx)
	require.NoError(t, err)

	require.NoError(t, env.admin.ResetRanking(ctx))

	got := env.user(t, u.ID)
	assert.Zero(t, got.Points)
	assert.Zero(t, got.MatchesPlayed)
	entry := env.rankingEntry(t, u.ID)
	assert.Zero(t, entry.Points)
	assert.Equal(t, models.TierRandom, entry.Tier)
}

func TestCreateEventValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.admin.CreateEvent(ctx, CreateEventInput{Title: " ", Date: baseTime, MaxPlayers: 6})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = env.admin.CreateEvent(ctx, CreateEventInput{Title: "Cup", Date: baseTime})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = env.admin.CreateEvent(ctx, CreateEventInput{Title: "Cup", MaxPlayers: 6})
	assert.ErrorIs(t, err, ErrValidationFailed)

	first := env.mustCreateEvent(t, "Summer Cup", baseTime, 6)
	second := env.mustCreateEvent(t, "Summer Cup", baseTime, 6)
	assert.Equal(t, "summer-cup", first.Slug)
	assert.Equal(t, "summer-cup-2", second.Slug)
	assert.Equal(t, models.EventStatusOpen, first.Status)
	assert.NotNil(t, first.RegisteredPlayers)

	require.NoError(t, env.admin.DeleteEvent(ctx, first.ID))
	assert.ErrorIs(t, env.admin.DeleteEvent(ctx, first.ID), ErrEventNotFound)
}

func TestCreateUserByAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.admin.CreateUser(ctx, CreateUserInput{
		Username: "Coach", Password: "coach1", Rank: models.RankMaster,
		Points: 40, StarPlayer: true, IsAdmin: true,
	})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, 40, env.rankingEntry(t, u.ID).Points)

	views, err := env.admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].StarPlayer)

	_, err = env.admin.SetAdmin(ctx, u.ID, false)
	require.NoError(t, err)
	assert.False(t, env.user(t, u.ID).IsAdmin)
}

func TestUpdateSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.admin.UpdateSettings(ctx, models.Settings{PointsPerWin: 0, StarPlayerBonus: 3, CloseRegistrationMinutes: 15})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	want := models.Settings{PointsPerWin: 12, StarPlayerBonus: 4, CloseRegistrationMinutes: 30}
	_, err = env.admin.UpdateSettings(ctx, want)
	require.NoError(t, err)

	snap, err := env.repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Settings)
	assert.Equal(t, want, *snap.Settings)
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seeded, err := SeedDefaults(ctx, env.store, mustPlainPolicy(t), baseTime, discardLogger())
	require.NoError(t, err)
	require.True(t, seeded)

	stats, err := env.dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.UsersTotal)
	assert.Equal(t, 1, stats.EventsTotal)
	assert.Equal(t, 1, stats.OpenEvents)
	assert.Equal(t, 18, stats.MatchesTotal)
	assert.Equal(t, []string{"Admin"}, stats.StarPlayers)
}

func mustPlainPolicy(t *testing.T) CredentialPolicy {
	t.Helper()
	p, err := NewCredentialPolicy(CredentialPolicyPlain)
	require.NoError(t, err)
	return p
}
