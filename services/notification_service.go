package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/gaming-portal/brackets"
	"github.com/Dosada05/gaming-portal/models"
	"github.com/google/uuid"
)

// inboxLimit bounds every inbox; older notifications are dropped first.
const inboxLimit = 100

// Broadcaster pushes live updates to WebSocket observers. *brackets.Hub implements it.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// Notice is a notification that has not been delivered yet. Services collect
// notices while mutating state and publish them once the change is committed.
type Notice struct {
	UserID  int
	EventID int
	Kind    models.NotificationKind
	Message string
}

type NotificationService interface {
	Notify(userID, eventID int, kind models.NotificationKind, message string)
	// Announce posts to the general feed read by every observer.
	Announce(eventID int, kind models.NotificationKind, message string)
	Publish(notices ...Notice)
	ListForUser(userID int) []models.Notification
	ListGeneral() []models.Notification
	EventChanged(event models.Event)
	StandingsChanged(standings []models.Standing)
}

type notificationService struct {
	mu          sync.RWMutex
	inboxes     map[int][]models.Notification
	broadcaster Broadcaster
	logger      *slog.Logger
	now         func() time.Time
}

// NewNotificationService keeps inboxes in memory. broadcaster may be nil.
func NewNotificationService(broadcaster Broadcaster, logger *slog.Logger) NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		inboxes:     make(map[int][]models.Notification),
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *notificationService) Notify(userID, eventID int, kind models.NotificationKind, message string) {
	s.Publish(Notice{UserID: userID, EventID: eventID, Kind: kind, Message: message})
}

func (s *notificationService) Announce(eventID int, kind models.NotificationKind, message string) {
	s.Publish(Notice{EventID: eventID, Kind: kind, Message: message})
}

func (s *notificationService) Publish(notices ...Notice) {
	if len(notices) == 0 {
		return
	}

	delivered := make([]models.Notification, 0, len(notices))
	s.mu.Lock()
	for _, n := range notices {
		notification := models.Notification{
			ID:        uuid.New(),
			UserID:    n.UserID,
			EventID:   n.EventID,
			Kind:      n.Kind,
			Message:   n.Message,
			CreatedAt: s.now().UTC(),
		}
		inbox := append(s.inboxes[n.UserID], notification)
		if len(inbox) > inboxLimit {
			inbox = append([]models.Notification(nil), inbox[len(inbox)-inboxLimit:]...)
		}
		s.inboxes[n.UserID] = inbox
		delivered = append(delivered, notification)
	}
	s.mu.Unlock()

	for _, n := range delivered {
		s.logger.Debug("notification queued",
			slog.Int("user_id", n.UserID),
			slog.Int("event_id", n.EventID),
			slog.String("kind", string(n.Kind)),
		)
		if n.UserID != 0 || s.broadcaster == nil {
			continue
		}
		msg := brackets.WebSocketMessage{Type: "NOTIFICATION", Payload: n, RoomID: brackets.RoomEvents}
		s.broadcaster.BroadcastToRoom(brackets.RoomEvents, msg)
		if n.EventID != 0 {
			room := brackets.EventRoom(n.EventID)
			s.broadcaster.BroadcastToRoom(room, brackets.WebSocketMessage{Type: "NOTIFICATION", Payload: n, RoomID: room})
		}
	}
}

// ListForUser returns the user's inbox, newest first.
func (s *notificationService) ListForUser(userID int) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inbox := s.inboxes[userID]
	out := make([]models.Notification, len(inbox))
	for i, n := range inbox {
		out[len(inbox)-1-i] = n
	}
	return out
}

func (s *notificationService) ListGeneral() []models.Notification {
	return s.ListForUser(0)
}

func (s *notificationService) EventChanged(event models.Event) {
	if s.broadcaster == nil {
		return
	}
	room := brackets.EventRoom(event.ID)
	s.broadcaster.BroadcastToRoom(room, brackets.WebSocketMessage{Type: "EVENT_UPDATED", Payload: event, RoomID: room})
	s.broadcaster.BroadcastToRoom(brackets.RoomEvents, brackets.WebSocketMessage{Type: "EVENT_UPDATED", Payload: event, RoomID: brackets.RoomEvents})
}

func (s *notificationService) StandingsChanged(standings []models.Standing) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToRoom(brackets.RoomStandings, brackets.WebSocketMessage{Type: "STANDINGS_UPDATED", Payload: standings, RoomID: brackets.RoomStandings})
}
