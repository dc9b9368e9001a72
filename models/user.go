package models

import "time"

// User is a registered community member. Password holds the stored credential
// and is only ever serialized into the persisted users collection.
type User struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Password      string    `json:"password"`
	Rank          Rank      `json:"rank"`
	Points        int       `json:"points"`
	MatchesPlayed int       `json:"matchesPlayed"`
	StarPlayer    bool      `json:"starPlayer"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserView is the public representation of a user returned by the API.
type UserView struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Rank          Rank      `json:"rank"`
	Points        int       `json:"points"`
	MatchesPlayed int       `json:"matches_played"`
	StarPlayer    bool      `json:"star_player"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u User) View() UserView {
	return UserView{
		ID:            u.ID,
		Username:      u.Username,
		Rank:          u.Rank,
		Points:        u.Points,
		MatchesPlayed: u.MatchesPlayed,
		StarPlayer:    u.StarPlayer,
		IsAdmin:       u.IsAdmin,
		CreatedAt:     u.CreatedAt,
	}
}

// Role is the session role encoded into access tokens.
func (u User) Role() UserRole {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RolePlayer
}

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RolePlayer UserRole = "player"
)
