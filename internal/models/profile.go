package models

// Profile holds a user's cumulative reward counters.
type Profile struct {
	UserID int `json:"userId"`
	Coins  int `json:"coins"`
	XP     int `json:"xp"`
}
