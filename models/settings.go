package models

import "time"

// Settings are the admin-tunable scoring and scheduling parameters.
type Settings struct {
	PointsPerWin             int `json:"pointsPerWin"`
	StarPlayerBonus          int `json:"starPlayerBonus"`
	CloseRegistrationMinutes int `json:"closeRegMinutes"`
}

func DefaultSettings() Settings {
	return Settings{
		PointsPerWin:             10,
		StarPlayerBonus:          3,
		CloseRegistrationMinutes: 15,
	}
}

func (s Settings) CloseWindow() time.Duration {
	return time.Duration(s.CloseRegistrationMinutes) * time.Minute
}
