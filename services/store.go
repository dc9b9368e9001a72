package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/repositories"
)

// State is the complete in-memory portal state. Inside Store.Update it is a
// private copy; inside Store.View it must be treated as read-only.
type State struct {
	Users         []models.User
	Events        []models.Event
	Rankings      []models.RankingEntry
	CurrentUserID int
	Settings      models.Settings

	dirty map[repositories.Collection]bool
}

func newState() *State {
	return &State{
		Users:    []models.User{},
		Events:   []models.Event{},
		Rankings: []models.RankingEntry{},
		Settings: models.DefaultSettings(),
	}
}

func (st *State) clone() *State {
	c := &State{
		Users:         append([]models.User(nil), st.Users...),
		Events:        make([]models.Event, len(st.Events)),
		Rankings:      append([]models.RankingEntry(nil), st.Rankings...),
		CurrentUserID: st.CurrentUserID,
		Settings:      st.Settings,
		dirty:         make(map[repositories.Collection]bool),
	}
	for i, e := range st.Events {
		c.Events[i] = e.Clone()
	}
	return c
}

// MarkDirty records that the given collections changed and must be persisted.
func (st *State) MarkDirty(collections ...repositories.Collection) {
	if st.dirty == nil {
		st.dirty = make(map[repositories.Collection]bool)
	}
	for _, c := range collections {
		st.dirty[c] = true
	}
}

func (st *State) dirtyCollections() []repositories.Collection {
	var out []repositories.Collection
	for _, c := range repositories.AllCollections() {
		if st.dirty[c] {
			out = append(out, c)
		}
	}
	return out
}

func (st *State) FindUser(userID int) *models.User {
	for i := range st.Users {
		if st.Users[i].ID == userID {
			return &st.Users[i]
		}
	}
	return nil
}

// FindUserByUsername matches usernames case-insensitively.
func (st *State) FindUserByUsername(username string) *models.User {
	folded := foldUsername(username)
	for i := range st.Users {
		if foldUsername(st.Users[i].Username) == folded {
			return &st.Users[i]
		}
	}
	return nil
}

func (st *State) FindEvent(eventID int) *models.Event {
	for i := range st.Events {
		if st.Events[i].ID == eventID {
			return &st.Events[i]
		}
	}
	return nil
}

func (st *State) FindRanking(userID int) *models.RankingEntry {
	for i := range st.Rankings {
		if st.Rankings[i].UserID == userID {
			return &st.Rankings[i]
		}
	}
	return nil
}

func (st *State) CurrentUser() *models.User {
	if st.CurrentUserID == 0 {
		return nil
	}
	return st.FindUser(st.CurrentUserID)
}

func (st *State) nextUserID() int {
	maxID := 0
	for _, u := range st.Users {
		maxID = max(maxID, u.ID)
	}
	return maxID + 1
}

func (st *State) nextEventID() int {
	maxID := 0
	for _, e := range st.Events {
		maxID = max(maxID, e.ID)
	}
	return maxID + 1
}

// syncRanking copies the denormalized user fields onto the user's ranking entry, if any.
func (st *State) syncRanking(u *models.User) {
	if entry := st.FindRanking(u.ID); entry != nil {
		entry.Username = u.Username
		entry.Points = u.Points
		entry.Rank = u.Rank
		entry.MatchesPlayed = u.MatchesPlayed
		st.MarkDirty(repositories.CollectionRankings)
	}
}

func (st *State) snapshot() *repositories.Snapshot {
	settings := st.Settings
	return &repositories.Snapshot{
		Users:       st.Users,
		Events:      st.Events,
		Rankings:    st.Rankings,
		CurrentUser: st.CurrentUser(),
		Settings:    &settings,
	}
}

// Store owns the portal state. Every mutation runs on a copy that replaces
// the live state only after the changed collections were persisted.
type Store struct {
	mu     sync.RWMutex
	state  *State
	repo   repositories.SnapshotRepository
	logger *slog.Logger
}

func NewStore(repo repositories.SnapshotRepository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state:  newState(),
		repo:   repo,
		logger: logger,
	}
}

// Load replaces the in-memory state with the persisted snapshot.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	st := newState()
	if snap.Users != nil {
		st.Users = snap.Users
	}
	if snap.Events != nil {
		st.Events = snap.Events
	}
	if snap.Rankings != nil {
		st.Rankings = snap.Rankings
	}
	if snap.Settings != nil {
		st.Settings = *snap.Settings
	}
	if snap.CurrentUser != nil && st.FindUser(snap.CurrentUser.ID) != nil {
		st.CurrentUserID = snap.CurrentUser.ID
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	s.logger.Info("state loaded",
		slog.Int("users", len(st.Users)),
		slog.Int("events", len(st.Events)),
		slog.Int("rankings", len(st.Rankings)),
	)
	return nil
}

// View runs fn under a read lock. fn must not modify or retain the state.
func (s *Store) View(fn func(st *State) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Update runs fn on a copy of the state. If fn fails nothing changes. Otherwise
// the collections fn marked dirty are saved and the copy becomes the live state.
// A failed save returns ErrPersistenceFailed, leaves the live state untouched and
// rewrites the same collections from the live state, so collections that were
// already written do not keep the rejected change.
func (s *Store) Update(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(next); err != nil {
		return err
	}

	if next.dirty[repositories.CollectionUsers] && next.CurrentUserID != 0 {
		next.MarkDirty(repositories.CollectionCurrentUser)
	}
	collections := next.dirtyCollections()
	if len(collections) > 0 {
		if err := s.repo.Save(ctx, next.snapshot(), collections...); err != nil {
			s.logger.Error("failed to persist state", slog.Any("collections", collections), slog.String("error", err.Error()))
			s.restore(ctx, collections)
			return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
		}
	}

	next.dirty = nil
	s.state = next
	return nil
}

// restore writes each collection back from the live state after a failed save.
// Collections are restored one at a time so one failing key does not cancel the
// others. Caller must hold s.mu.
func (s *Store) restore(ctx context.Context, collections []repositories.Collection) {
	ctx = context.WithoutCancel(ctx)
	live := s.state.snapshot()
	for _, c := range collections {
		if err := s.repo.Save(ctx, live, c); err != nil {
			s.logger.Error("failed to restore persisted collection, storage differs from memory until the next successful save",
				slog.String("collection", string(c)),
				slog.String("error", err.Error()),
			)
		}
	}
}
