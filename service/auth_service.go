package service

import (
	"errors"
	"fmt"
	"go-weather-api/logger"
	"go-weather-api/model"
	"go-weather-api/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenTTL is the fixed lifetime of an access token. There is no
	// revocation mechanism: a token stays valid until it expires. That is a
	// known gap in the external contract, not an oversight.
	TokenTTL = 30 * time.Minute

	// TokenType is the fixed token-type label in the login response.
	TokenType = "bearer"

	// maxPasswordBytes is bcrypt's input limit; longer passwords are
	// truncated before hashing and verification so both sides agree.
	maxPasswordBytes = 72

	bcryptCost = 14
)

// Authentication and token errors. Token validation failures are for
// internal logging only; the HTTP layer collapses them all into a single
// unauthorized response.
var (
	ErrInvalidCredentials    = errors.New("incorrect username or password")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenMissingSubject   = errors.New("token has no subject")
)

// AuthService owns password hashing, credential verification and the access
// token lifecycle. The signing key is injected at construction and read-only
// afterwards.
type AuthService struct {
	userRepo repository.IUserRepository
	jwtKey   []byte
}

func NewAuthService(userRepo repository.IUserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwtKey:   []byte(jwtSecret),
	}
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcryptCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password))
	return err == nil
}

// Register creates a new user with a freshly hashed password. Returns
// repository.ErrDuplicateUsername if the username is taken.
func (s *AuthService) Register(username, password string) (*model.User, error) {
	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       username,
		HashedPassword: hashedPassword,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	logger.Log.WithField("username", username).Info("New user registered")
	return user, nil
}

// Authenticate verifies a username/password pair. An unknown user and a
// wrong password both yield ErrInvalidCredentials so the response cannot be
// used for username enumeration; the distinction is logged internally only.
// On success the caller is responsible for invoking RecordLogin.
func (s *AuthService) Authenticate(username, password string) (*model.User, error) {
	log := logger.Log.WithField("username", username)

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Warn("Authentication failed: user not found")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.CheckPasswordHash(password, user.HashedPassword) {
		log.Warn("Authentication failed: incorrect password")
		return nil, ErrInvalidCredentials
	}

	log.Info("User authenticated")
	return user, nil
}

// RecordLogin overwrites the user's last-login timestamp. Last write wins;
// concurrent logins for the same user are safe.
func (s *AuthService) RecordLogin(username string, loginTime time.Time) error {
	return s.userRepo.UpdateLastLogin(username, loginTime)
}

// ResetPassword replaces the stored hash for an existing user. Returns
// repository.ErrUserNotFound if the username does not exist.
func (s *AuthService) ResetPassword(username, newPassword string) error {
	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(username, hashedPassword); err != nil {
		return err
	}
	logger.Log.WithField("username", username).Info("Password reset")
	return nil
}

// GenerateToken issues an HS256-signed access token bound to the username,
// expiring a fixed TTL after issuedAt. The result is an opaque string to
// callers.
func (s *AuthService) GenerateToken(username string, issuedAt time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	logger.Log.WithField("username", username).Info("Access token created")
	return tokenString, nil
}

// ValidateToken verifies the signature and expiry of a token against the
// given clock and returns its subject. Failures map onto the token error
// taxonomy above.
func (s *AuthService) ValidateToken(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.jwtKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrTokenMalformed
		default:
			return "", ErrTokenMalformed
		}
	}
	if !token.Valid {
		return "", ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return "", ErrTokenMissingSubject
	}
	return claims.Subject, nil
}
