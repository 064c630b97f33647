package model

import "time"

// Favorite is a city a user has starred.
type Favorite struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}
