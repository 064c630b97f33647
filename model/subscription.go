package model

import "time"

// PushSubscription holds a persisted browser push subscription. Keys is the
// client's key material stored verbatim as JSON; no delivery happens here.
type PushSubscription struct {
	ID        int       `json:"id"`
	Endpoint  string    `json:"endpoint"`
	Keys      string    `json:"keys"`
	CreatedAt time.Time `json:"created_at"`
}
