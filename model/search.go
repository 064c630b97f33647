package model

import "time"

// SearchRecord is one row of the append-only weather search log.
type SearchRecord struct {
	ID         int       `json:"id"`
	City       string    `json:"city"`
	SearchedAt time.Time `json:"searched_at"`
}

// CityCount is an aggregate row for the most-searched listing.
type CityCount struct {
	City     string `json:"city"`
	Searches int    `json:"searches"`
}
