package models

type DashboardStats struct {
	UsersTotal   int      `json:"users_total"`
	EventsTotal  int      `json:"events_total"`
	OpenEvents   int      `json:"open_events"`
	MatchesTotal int      `json:"matches_total"`
	StarPlayers  []string `json:"star_players"`
}
