package models

import "time"

// Profile is the per-user XP/level/streak aggregate maintained remotely and
// mirrored locally. The remote completion write returns the updated profile.
type Profile struct {
	UserID        string    `json:"user_id"`
	TotalXP       int       `json:"total_xp"`
	Level         int       `json:"level"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastActiveDay string    `json:"last_active_day,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}
