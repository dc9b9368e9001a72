package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Dosada05/gaming-portal/brackets"
	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/repositories"
)

const unknownPlayerName = "Unknown player"

type EventService interface {
	// Tick advances every event whose time window has been reached, at most one
	// status step per event, and commits all changes in a single update.
	Tick(ctx context.Context, now time.Time) ([]Transition, error)
	RegisterForEvent(ctx context.Context, eventID, userID int) error
	UnregisterFromEvent(ctx context.Context, eventID, userID int) error
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, eventID int) (*models.Event, error)
	ListUserEvents(ctx context.Context, userID int) ([]models.UserEvent, error)
	GetEventMatches(ctx context.Context, eventID int) ([]models.MatchView, error)
}

// Transition is one status change applied by Tick.
type Transition struct {
	EventID int                `json:"event_id"`
	From    models.EventStatus `json:"from"`
	To      models.EventStatus `json:"to"`
}

type eventService struct {
	store         *Store
	generator     brackets.MatchGenerator
	notifications NotificationService
	logger        *slog.Logger
}

func NewEventService(
	store *Store,
	generator brackets.MatchGenerator,
	notifications NotificationService,
	logger *slog.Logger,
) EventService {
	return &eventService{
		store:         store,
		generator:     generator,
		notifications: notifications,
		logger:        logger,
	}
}

// nextStatus reports the status the event should move to at now, if any.
func nextStatus(event models.Event, now time.Time, closeWindow time.Duration) (models.EventStatus, bool) {
	untilStart := event.Date.Sub(now)
	switch event.Status {
	case models.EventStatusOpen:
		if untilStart < closeWindow {
			return models.EventStatusClosed, true
		}
	case models.EventStatusClosed:
		if untilStart > 0 && untilStart < closeWindow {
			return models.EventStatusInProgress, true
		}
	case models.EventStatusInProgress:
		if untilStart < 0 {
			return models.EventStatusFinished, true
		}
	}
	return "", false
}

func (s *eventService) Tick(ctx context.Context, now time.Time) ([]Transition, error) {
	var (
		transitions   []Transition
		notices       []Notice
		announcements []Notice
		changed       []models.Event
	)

	err := s.store.Update(ctx, func(st *State) error {
		closeWindow := st.Settings.CloseWindow()

		order := make([]int, len(st.Events))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return st.Events[order[a]].Date.Before(st.Events[order[b]].Date)
		})

		for _, idx := range order {
			event := &st.Events[idx]
			next, ok := nextStatus(*event, now, closeWindow)
			if !ok {
				continue
			}
			if !isValidStatusTransition(event.Status, next) {
				return fmt.Errorf("%w: event %d %s -> %s", ErrInvalidStatusTransition, event.ID, event.Status, next)
			}

			from := event.Status
			event.Status = next

			switch next {
			case models.EventStatusClosed:
				closed, general, err := s.closeRegistration(ctx, st, event)
				if err != nil {
					return err
				}
				notices = append(notices, closed...)
				announcements = append(announcements, general...)
			case models.EventStatusInProgress:
				minutes := int(event.Date.Sub(now) / time.Minute)
				msg := fmt.Sprintf("Event %q starts in %d minutes!", event.Title, minutes)
				notices = append(notices, noticesFor(event.RegisteredPlayers, event.ID, models.NotificationEventStarting, msg)...)
			case models.EventStatusFinished:
				msg := fmt.Sprintf("Event %q is finished!", event.Title)
				notices = append(notices, noticesFor(event.RegisteredPlayers, event.ID, models.NotificationEventFinished, msg)...)
			}

			transitions = append(transitions, Transition{EventID: event.ID, From: from, To: next})
			changed = append(changed, event.Clone())
		}

		if len(transitions) > 0 {
			st.MarkDirty(repositories.CollectionEvents)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Publish(notices...)
	for _, a := range announcements {
		s.notifications.Announce(a.EventID, a.Kind, a.Message)
	}
	for _, e := range changed {
		s.notifications.EventChanged(e)
	}
	for _, t := range transitions {
		s.logger.Info("event status changed",
			slog.Int("event_id", t.EventID),
			slog.String("from", string(t.From)),
			slog.String("to", string(t.To)),
		)
	}
	return transitions, nil
}

// closeRegistration generates the matches of a freshly closed event, once.
// It returns the players' notices and the general-feed announcements separately.
func (s *eventService) closeRegistration(ctx context.Context, st *State, event *models.Event) ([]Notice, []Notice, error) {
	closedMsg := fmt.Sprintf("Registration for %q is now closed!", event.Title)
	notices := noticesFor(event.RegisteredPlayers, event.ID, models.NotificationRegistrationClosed, closedMsg)
	announcements := []Notice{{EventID: event.ID, Kind: models.NotificationRegistrationClosed, Message: closedMsg}}

	if event.Status != models.EventStatusClosed || len(event.Matches) > 0 {
		return notices, announcements, nil
	}

	players := make([]*models.User, 0, len(event.RegisteredPlayers))
	for _, id := range event.RegisteredPlayers {
		if u := st.FindUser(id); u != nil {
			c := *u
			players = append(players, &c)
		}
	}

	matches, err := s.generator.GenerateMatches(ctx, brackets.GenerateMatchesParams{Event: event, Players: players})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate matches for event %d: %w", event.ID, err)
	}
	event.Matches = matches

	createdMsg := fmt.Sprintf("Matches for %q have been created! Get ready to play.", event.Title)
	notices = append(notices, noticesFor(event.RegisteredPlayers, event.ID, models.NotificationMatchesCreated, createdMsg)...)
	announcements = append(announcements, Notice{EventID: event.ID, Kind: models.NotificationMatchesCreated, Message: fmt.Sprintf("Matches created for %q", event.Title)})

	s.logger.Info("matches generated",
		slog.Int("event_id", event.ID),
		slog.Int("players", len(players)),
		slog.Int("matches", len(matches)),
		slog.String("generator", s.generator.GetName()),
	)
	return notices, announcements, nil
}

func noticesFor(userIDs []int, eventID int, kind models.NotificationKind, message string) []Notice {
	notices := make([]Notice, 0, len(userIDs))
	for _, id := range userIDs {
		notices = append(notices, Notice{UserID: id, EventID: eventID, Kind: kind, Message: message})
	}
	return notices
}

func (s *eventService) RegisterForEvent(ctx context.Context, eventID, userID int) error {
	var event models.Event
	err := s.store.Update(ctx, func(st *State) error {
		e := st.FindEvent(eventID)
		if e == nil {
			return ErrEventNotFound
		}
		if st.FindUser(userID) == nil {
			return ErrUserNotFound
		}
		if e.Status != models.EventStatusOpen {
			return ErrRegistrationNotOpen
		}
		if e.IsRegistered(userID) {
			return ErrAlreadyRegistered
		}
		if e.IsFull() {
			return ErrEventFull
		}
		e.RegisteredPlayers = append(e.RegisteredPlayers, userID)
		st.MarkDirty(repositories.CollectionEvents)
		event = e.Clone()
		return nil
	})
	if err != nil {
		return err
	}

	s.notifications.Notify(userID, eventID, models.NotificationRegistered,
		fmt.Sprintf("You are registered for event %q", event.Title))
	s.notifications.EventChanged(event)
	s.logger.Info("player registered for event", slog.Int("event_id", eventID), slog.Int("user_id", userID))
	return nil
}

func (s *eventService) UnregisterFromEvent(ctx context.Context, eventID, userID int) error {
	var event models.Event
	err := s.store.Update(ctx, func(st *State) error {
		e := st.FindEvent(eventID)
		if e == nil {
			return ErrEventNotFound
		}
		if e.Status != models.EventStatusOpen {
			return ErrRegistrationNotOpen
		}
		if !e.IsRegistered(userID) {
			return ErrNotRegistered
		}
		e.RegisteredPlayers = removeInt(e.RegisteredPlayers, userID)
		st.MarkDirty(repositories.CollectionEvents)
		event = e.Clone()
		return nil
	})
	if err != nil {
		return err
	}

	s.notifications.EventChanged(event)
	s.logger.Info("player unregistered from event", slog.Int("event_id", eventID), slog.Int("user_id", userID))
	return nil
}

// ListEvents returns all events by start date.
func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.store.View(func(st *State) error {
		events = make([]models.Event, len(st.Events))
		for i, e := range st.Events {
			events[i] = e.Clone()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID int) (*models.Event, error) {
	var event models.Event
	err := s.store.View(func(st *State) error {
		e := st.FindEvent(eventID)
		if e == nil {
			return ErrEventNotFound
		}
		event = e.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *eventService) ListUserEvents(ctx context.Context, userID int) ([]models.UserEvent, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.UserEvent, 0)
	for _, e := range events {
		if !e.IsRegistered(userID) {
			continue
		}
		count := 0
		for _, m := range e.Matches {
			if m.HasPlayer(userID) {
				count++
			}
		}
		result = append(result, models.UserEvent{Event: e, MatchCount: count})
	}
	return result, nil
}

func (s *eventService) GetEventMatches(ctx context.Context, eventID int) ([]models.MatchView, error) {
	var views []models.MatchView
	err := s.store.View(func(st *State) error {
		e := st.FindEvent(eventID)
		if e == nil {
			return ErrEventNotFound
		}
		names := func(ids []int) []string {
			out := make([]string, len(ids))
			for i, id := range ids {
				out[i] = unknownPlayerName
				if u := st.FindUser(id); u != nil {
					out[i] = u.Username
				}
			}
			return out
		}
		views = make([]models.MatchView, len(e.Matches))
		for i, m := range e.Matches {
			views[i] = models.MatchView{Match: m.Clone(), Team1Names: names(m.Team1), Team2Names: names(m.Team2)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
