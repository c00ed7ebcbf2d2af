package model

import "time"

// FavoriteEntry joins a user with a snapshot of a recipe taken when it was
// favorited. Later edits to the original recipe do not reach the snapshot.
type FavoriteEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Recipe    Recipe    `json:"recipe"`
	Timestamp time.Time `json:"timestamp"`
}
