package models

import "time"

// UserProgress tracks one user's progress in one game. At most one row
// exists per (UserID, GameID).
type UserProgress struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	GameID          int       `json:"game_id"`
	Score           int       `json:"score"`
	CompletedLevels string    `json:"completed_levels"`
	LastPlayed      time.Time `json:"last_played"`
}

// ProgressEntry is the upsert input: last played is stamped by storage.
type ProgressEntry struct {
	UserID          int
	GameID          int
	Score           int
	CompletedLevels string
}
