package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/repositories"
	"github.com/Dosada05/gaming-portal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreUpdatePersistsOnlyDirtyCollections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustRegister(t, "alice", models.RankGold)

	_, err := env.kv.Get(ctx, "gamingCommunityUsers")
	require.NoError(t, err)
	_, err = env.kv.Get(ctx, "gamingCommunityRankings")
	require.NoError(t, err)
	_, err = env.kv.Get(ctx, "gamingCommunityEvents")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestStoreFailedPersistenceLeavesStateUntouched(t *testing.T) {
	repo := new(MockSnapshotRepository)
	repo.On("Load", mock.Anything).Return(&repositories.Snapshot{}, nil)
	repo.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	store := NewStore(repo, discardLogger())
	require.NoError(t, store.Load(context.Background()))

	err := store.Update(context.Background(), func(st *State) error {
		st.Users = append(st.Users, models.User{ID: 1, Username: "alice"})
		st.MarkDirty(repositories.CollectionUsers)
		return nil
	})
	require.ErrorIs(t, err, ErrPersistenceFailed)

	require.NoError(t, store.View(func(st *State) error {
		assert.Empty(t, st.Users)
		return nil
	}))
	repo.AssertExpectations(t)
}

// keyFailingKV rejects every write to keys ending in suffix.
type keyFailingKV struct {
	storage.KVStore
	suffix string
}

func (kv *keyFailingKV) Set(ctx context.Context, key string, value []byte) error {
	if strings.HasSuffix(key, kv.suffix) {
		return errors.New("write rejected")
	}
	return kv.KVStore.Set(ctx, key, value)
}

func TestStorePartialSaveFailureRestoresWrittenCollections(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	backing := storage.NewMemoryStore()
	repo := repositories.NewKVSnapshotRepository(&keyFailingKV{KVStore: backing, suffix: "Rankings"}, repositories.KVSnapshotRepositoryConfig{
		Prefix:          "gamingCommunity",
		InitialInterval: time.Millisecond,
	})
	store := NewStore(repo, logger)
	require.NoError(t, store.Load(ctx))

	credentials, err := NewCredentialPolicy(CredentialPolicyPlain)
	require.NoError(t, err)
	auth := NewAuthService(store, credentials, logger)

	_, err = auth.RegisterUser(ctx, RegisterInput{Username: "alice", Password: "secret", Rank: models.RankGold})
	require.ErrorIs(t, err, ErrPersistenceFailed)

	require.NoError(t, store.View(func(st *State) error {
		assert.Empty(t, st.Users)
		return nil
	}))

	raw, err := backing.Get(ctx, "gamingCommunityUsers")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "alice")

	reloaded := NewStore(repositories.NewKVSnapshotRepository(backing, repositories.KVSnapshotRepositoryConfig{
		Prefix: "gamingCommunity",
	}), logger)
	require.NoError(t, reloaded.Load(ctx))
	require.NoError(t, reloaded.View(func(st *State) error {
		assert.Empty(t, st.Users)
		assert.Empty(t, st.Rankings)
		return nil
	}))
}

func TestStoreUpdateErrorDiscardsChanges(t *testing.T) {
	env := newTestEnv(t)
	boom := errors.New("boom")

	err := env.store.Update(context.Background(), func(st *State) error {
		st.Users = append(st.Users, models.User{ID: 99, Username: "ghost"})
		st.MarkDirty(repositories.CollectionUsers)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = env.users.GetUserByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStoreUpdateWithoutChangesSkipsSave(t *testing.T) {
	repo := new(MockSnapshotRepository)
	repo.On("Load", mock.Anything).Return(&repositories.Snapshot{}, nil)

	store := NewStore(repo, discardLogger())
	require.NoError(t, store.Load(context.Background()))
	require.NoError(t, store.Update(context.Background(), func(st *State) error { return nil }))

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestStoreLoadDefaultsSettings(t *testing.T) {
	env := newTestEnv(t)
	settings, err := env.admin.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestStoreReloadRestoresSessionAndState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.mustRegister(t, "alice", models.RankGold)
	_, err := env.auth.Login(ctx, LoginInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	// Changing the signed-in user also rewrites the session blob.
	_, err = env.users.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Rank: models.RankMaster})
	require.NoError(t, err)

	reloaded := NewStore(env.repo, discardLogger())
	require.NoError(t, reloaded.Load(ctx))
	require.NoError(t, reloaded.View(func(st *State) error {
		require.Len(t, st.Users, 1)
		current := st.CurrentUser()
		require.NotNil(t, current)
		assert.Equal(t, models.RankMaster, current.Rank)
		return nil
	}))

	snap, err := env.repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.CurrentUser)
	assert.Equal(t, models.RankMaster, snap.CurrentUser.Rank)
}
