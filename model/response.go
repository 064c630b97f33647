// file: model/response.go

package model

import "time"

// TokenResponse is the body returned by the token endpoint. LastLogin is
// the timestamp of the PREVIOUS successful login (null on the first one),
// captured before the current login is recorded.
type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	LastLogin   *time.Time `json:"last_login"`
}

// MessageResponse is a minimal success body.
type MessageResponse struct {
	Message string `json:"message"`
}
