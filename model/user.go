package model

import "time"

// User is the credential-store record. HashedPassword is a salted bcrypt
// digest and is never exposed in JSON responses. LastLogin is nil until the
// first successful login.
type User struct {
	ID             int        `json:"id"`
	Username       string     `json:"username"`
	HashedPassword string     `json:"-"`
	LastLogin      *time.Time `json:"last_login"`
	CreatedAt      time.Time  `json:"created_at"`
}

// LoginRecord is one row of the /logins/all listing.
type LoginRecord struct {
	Username  string     `json:"username"`
	LastLogin *time.Time `json:"last_login"`
}
