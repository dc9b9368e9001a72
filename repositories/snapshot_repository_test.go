package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockKVStore implements storage.KVStore
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKVStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockKVStore) Delete(ctx context.Context, key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockKVStore) Close() error {
	return nil
}

func newTestRepo(kv storage.KVStore) *kvSnapshotRepository {
	return NewKVSnapshotRepository(kv, KVSnapshotRepositoryConfig{
		Prefix:          "gamingCommunity",
		MaxTries:        3,
		InitialInterval: time.Millisecond,
	}).(*kvSnapshotRepository)
}

func TestSnapshotKeys(t *testing.T) {
	repo := newTestRepo(storage.NewMemoryStore())
	assert.Equal(t, "gamingCommunityUsers", repo.Key(CollectionUsers))
	assert.Equal(t, "gamingCommunityEvents", repo.Key(CollectionEvents))
	assert.Equal(t, "gamingCommunityRankings", repo.Key(CollectionRankings))
	assert.Equal(t, "gamingCommunitySettings", repo.Key(CollectionSettings))
	assert.Equal(t, "currentUser", repo.Key(CollectionCurrentUser))
}

func TestLoadEmptyStore(t *testing.T) {
	repo := newTestRepo(storage.NewMemoryStore())
	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Users)
	assert.NotNil(t, snap.Users)
	assert.Empty(t, snap.Events)
	assert.Empty(t, snap.Rankings)
	assert.Nil(t, snap.CurrentUser)
	assert.Nil(t, snap.Settings)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(storage.NewMemoryStore())

	user := models.User{ID: 1, Username: "Admin", Password: "admin123", Rank: models.RankDiamond, StarPlayer: true}
	settings := models.DefaultSettings()
	snap := &Snapshot{
		Users:       []models.User{user},
		Events:      []models.Event{{ID: 1, Title: "Cup", MaxPlayers: 12, Status: models.EventStatusOpen, RegisteredPlayers: []int{1}}},
		Rankings:    []models.RankingEntry{models.NewRankingEntry(user)},
		CurrentUser: &user,
		Settings:    &settings,
	}
	require.NoError(t, repo.Save(ctx, snap, AllCollections()...))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Users, loaded.Users)
	assert.Equal(t, "Cup", loaded.Events[0].Title)
	assert.Equal(t, []int{1}, loaded.Events[0].RegisteredPlayers)
	require.NotNil(t, loaded.CurrentUser)
	assert.Equal(t, "Admin", loaded.CurrentUser.Username)
	require.NotNil(t, loaded.Settings)
	assert.Equal(t, 10, loaded.Settings.PointsPerWin)

	snap.CurrentUser = nil
	require.NoError(t, repo.Save(ctx, snap, CollectionCurrentUser))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded.CurrentUser)
}

func TestLoadCorruptedBlob(t *testing.T) {
	kv := storage.NewMemoryStore()
	repo := newTestRepo(kv)
	require.NoError(t, kv.Set(context.Background(), "gamingCommunityEvents", []byte("{not json")))

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotCorrupted)
}

func TestSaveRetriesTransientFailure(t *testing.T) {
	kv := new(MockKVStore)
	kv.On("Set", "gamingCommunityUsers", mock.Anything).Return(errors.New("disk busy")).Twice()
	kv.On("Set", "gamingCommunityUsers", mock.Anything).Return(nil).Once()

	repo := newTestRepo(kv)
	err := repo.Save(context.Background(), &Snapshot{Users: []models.User{}}, CollectionUsers)
	require.NoError(t, err)
	kv.AssertNumberOfCalls(t, "Set", 3)
}

func TestSaveSurfacesPersistentFailure(t *testing.T) {
	kv := new(MockKVStore)
	kv.On("Set", "gamingCommunityRankings", mock.Anything).Return(errors.New("quota exceeded"))

	repo := newTestRepo(kv)
	err := repo.Save(context.Background(), &Snapshot{Rankings: []models.RankingEntry{}}, CollectionRankings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	kv.AssertNumberOfCalls(t, "Set", 3)
}
