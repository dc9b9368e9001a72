package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/storage"
	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"
)

// Collection names one persisted blob.
type Collection string

const (
	CollectionUsers       Collection = "users"
	CollectionEvents      Collection = "events"
	CollectionRankings    Collection = "rankings"
	CollectionCurrentUser Collection = "currentUser"
	CollectionSettings    Collection = "settings"
)

func AllCollections() []Collection {
	return []Collection{
		CollectionUsers,
		CollectionEvents,
		CollectionRankings,
		CollectionCurrentUser,
		CollectionSettings,
	}
}

var ErrSnapshotCorrupted = errors.New("persisted snapshot is corrupted")

// Snapshot is the full persisted state. Settings is nil when it was never saved.
type Snapshot struct {
	Users       []models.User
	Events      []models.Event
	Rankings    []models.RankingEntry
	CurrentUser *models.User
	Settings    *models.Settings
}

type SnapshotRepository interface {
	Load(ctx context.Context) (*Snapshot, error)
	// Save writes the listed collections of snapshot, each as a whole.
	Save(ctx context.Context, snapshot *Snapshot, collections ...Collection) error
}

type KVSnapshotRepositoryConfig struct {
	// Prefix is prepended to collection keys: "gamingCommunity" + "Users".
	Prefix          string
	MaxTries        uint
	InitialInterval time.Duration
}

type kvSnapshotRepository struct {
	kv              storage.KVStore
	prefix          string
	maxTries        uint
	initialInterval time.Duration
}

func NewKVSnapshotRepository(kv storage.KVStore, cfg KVSnapshotRepositoryConfig) SnapshotRepository {
	if cfg.MaxTries == 0 {
		cfg.MaxTries = 3
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	return &kvSnapshotRepository{
		kv:              kv,
		prefix:          cfg.Prefix,
		maxTries:        cfg.MaxTries,
		initialInterval: cfg.InitialInterval,
	}
}

// Key returns the storage key of a collection. The session key is never prefixed.
func (r *kvSnapshotRepository) Key(c Collection) string {
	if c == CollectionCurrentUser || r.prefix == "" {
		return string(c)
	}
	name := string(c)
	return r.prefix + strings.ToUpper(name[:1]) + name[1:]
}

func (r *kvSnapshotRepository) Load(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{
		Users:    []models.User{},
		Events:   []models.Event{},
		Rankings: []models.RankingEntry{},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := r.load(gCtx, CollectionUsers, &snapshot.Users)
		return err
	})
	g.Go(func() error {
		_, err := r.load(gCtx, CollectionEvents, &snapshot.Events)
		return err
	})
	g.Go(func() error {
		_, err := r.load(gCtx, CollectionRankings, &snapshot.Rankings)
		return err
	})
	g.Go(func() error {
		var user models.User
		found, err := r.load(gCtx, CollectionCurrentUser, &user)
		if found {
			snapshot.CurrentUser = &user
		}
		return err
	})
	g.Go(func() error {
		var settings models.Settings
		found, err := r.load(gCtx, CollectionSettings, &settings)
		if found {
			snapshot.Settings = &settings
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *kvSnapshotRepository) load(ctx context.Context, c Collection, dst interface{}) (bool, error) {
	raw, err := r.kv.Get(ctx, r.Key(c))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", c, err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrSnapshotCorrupted, c, err)
	}
	return true, nil
}

func (r *kvSnapshotRepository) Save(ctx context.Context, snapshot *Snapshot, collections ...Collection) error {
	if snapshot == nil {
		return errors.New("snapshot is required")
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, c := range collections {
		var payload interface{}
		switch c {
		case CollectionUsers:
			payload = snapshot.Users
		case CollectionEvents:
			payload = snapshot.Events
		case CollectionRankings:
			payload = snapshot.Rankings
		case CollectionCurrentUser:
			if snapshot.CurrentUser == nil {
				g.Go(func() error {
					return r.withRetry(gCtx, c, func() error { return r.kv.Delete(gCtx, r.Key(c)) })
				})
				continue
			}
			payload = snapshot.CurrentUser
		case CollectionSettings:
			payload = snapshot.Settings
		default:
			return fmt.Errorf("unknown collection %q", c)
		}

		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", c, err)
		}
		g.Go(func() error {
			return r.withRetry(gCtx, c, func() error { return r.kv.Set(gCtx, r.Key(c), raw) })
		})
	}
	return g.Wait()
}

func (r *kvSnapshotRepository) withRetry(ctx context.Context, c Collection, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, op()
	}, backoff.WithBackOff(b), backoff.WithMaxTries(r.maxTries))
	if err != nil {
		return fmt.Errorf("failed to save %s after %d tries: %w", c, r.maxTries, err)
	}
	return nil
}
