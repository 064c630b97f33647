package handler

import (
	"context"
	"errors"
	"go-weather-api/common"
	"go-weather-api/repository"
	"go-weather-api/service"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UsernameKey contextKey = "username"
)

// unauthorizedMessage is the single message sent for every gate failure.
// Missing header, malformed token, bad signature, expiry and a vanished user
// are indistinguishable to the client; the real reason is only logged.
const unauthorizedMessage = "Could not validate credentials"

// AuthMiddleware guards routes behind a bearer token. After the token
// validates, the subject is resolved against the credential store — a
// structurally valid token whose user no longer exists is rejected.
type AuthMiddleware struct {
	authService *service.AuthService
	userRepo    repository.IUserRepository
}

func NewAuthMiddleware(authService *service.AuthService, userRepo repository.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
	}
}

func (m *AuthMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			appErr := common.NewAppError(http.StatusUnauthorized, unauthorizedMessage, errors.New("authorization header missing"))
			appErr.Send(w)
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			appErr := common.NewAppError(http.StatusUnauthorized, unauthorizedMessage, errors.New("authorization header is not a bearer token"))
			appErr.Send(w)
			return
		}

		username, err := m.authService.ValidateToken(headerParts[1], time.Now())
		if err != nil {
			appErr := common.NewAppError(http.StatusUnauthorized, unauthorizedMessage, err)
			appErr.Send(w)
			return
		}

		user, err := m.userRepo.GetUserByUsername(username)
		if err != nil {
			// Covers the stale-token case where the account was deleted
			// after issuance.
			appErr := common.NewAppError(http.StatusUnauthorized, unauthorizedMessage, err)
			appErr.Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, UsernameKey, user.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
