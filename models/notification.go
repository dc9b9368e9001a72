package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationRegistered         NotificationKind = "registered"
	NotificationRegistrationClosed NotificationKind = "registration_closed"
	NotificationMatchesCreated     NotificationKind = "matches_created"
	NotificationEventStarting      NotificationKind = "event_starting"
	NotificationEventFinished      NotificationKind = "event_finished"
	NotificationPointsAwarded      NotificationKind = "points_awarded"
)

// Notification is a queued message for one user. UserID 0 addresses the general feed.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    int              `json:"user_id"`
	EventID   int              `json:"event_id,omitempty"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}
