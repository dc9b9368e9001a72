package models

import "time"

// EventStatus follows open -> closed -> in-progress -> finished and never moves backwards.
type EventStatus string

const (
	EventStatusOpen       EventStatus = "open"
	EventStatusClosed     EventStatus = "closed"
	EventStatusInProgress EventStatus = "in-progress"
	EventStatusFinished   EventStatus = "finished"
)

// Event is a scheduled community tournament players sign up for.
type Event struct {
	ID                int         `json:"id"`
	Title             string      `json:"title"`
	Slug              string      `json:"slug"`
	Description       string      `json:"description"`
	Date              time.Time   `json:"date"`
	MaxPlayers        int         `json:"maxPlayers"`
	RegisteredPlayers []int       `json:"registeredPlayers"`
	Status            EventStatus `json:"status"`
	Matches           []Match     `json:"matches"`
}

func (e Event) IsRegistered(userID int) bool {
	for _, id := range e.RegisteredPlayers {
		if id == userID {
			return true
		}
	}
	return false
}

func (e Event) IsFull() bool {
	return len(e.RegisteredPlayers) >= e.MaxPlayers
}

func (e Event) Clone() Event {
	c := e
	c.RegisteredPlayers = append([]int(nil), e.RegisteredPlayers...)
	if e.Matches != nil {
		c.Matches = make([]Match, len(e.Matches))
		for i, m := range e.Matches {
			c.Matches[i] = m.Clone()
		}
	}
	return c
}

// UserEvent is an event seen from one registered player.
type UserEvent struct {
	Event
	MatchCount int `json:"match_count"`
}
