// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=4,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// LoginRequest defines the credentials submitted to the token endpoint.
// The endpoint itself is form-encoded (OAuth2 password-flow shape), so this
// struct is filled from form values and then validated.
type LoginRequest struct {
	Username string `validate:"required,min=4,max=50"`
	Password string `validate:"required,min=6,max=100"`
}

// ForgotPasswordRequest defines the payload for resetting a password.
type ForgotPasswordRequest struct {
	Username    string `json:"username" validate:"required,min=1"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=100"`
}

// AddFavoriteRequest defines the payload for saving a favorite city.
type AddFavoriteRequest struct {
	City string `json:"city" validate:"required,min=1,max=100"`
}

// SubscribeRequest carries a browser push subscription. Keys holds the
// client's encryption keys as an opaque JSON object.
type SubscribeRequest struct {
	Endpoint string                 `json:"endpoint" validate:"required,url"`
	Keys     map[string]interface{} `json:"keys" validate:"required"`
}
