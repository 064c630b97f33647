// file: service/auth_service_test.go

package service

import (
	"errors"
	"go-weather-api/model"
	"go-weather-api/repository"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepo) GetUserByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) UpdatePassword(username, newHashedPassword string) error {
	args := m.Called(username, newHashedPassword)
	return args.Error(0)
}
func (m *mockUserRepo) UpdateLastLogin(username string, loginTime time.Time) error {
	args := m.Called(username, loginTime)
	return args.Error(0)
}
func (m *mockUserRepo) GetAllLogins() ([]*model.LoginRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LoginRecord), args.Error(1)
}

// quickHash hashes with the minimum cost so tests stay fast. The service
// verifies hashes of any cost.
func quickHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := NewAuthService(nil, "test-secret")
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() returned an unexpected error: %v", err)
	}
	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	if !authService.CheckPasswordHash(password, hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned true for a matching password.")
	}
	if authService.CheckPasswordHash("notMyPassword", hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned false for a non-matching password.")
	}
}

func TestAuthService_PasswordTruncation(t *testing.T) {
	authService := NewAuthService(nil, "test-secret")

	// bcrypt only consumes 72 bytes; the service truncates consistently on
	// both hash and verify so oversized passwords still round-trip.
	long := strings.Repeat("a", 100)
	hash, err := authService.HashPassword(long)
	assert.NoError(t, err)
	assert.True(t, authService.CheckPasswordHash(long, hash))

	// Any password sharing the first 72 bytes verifies too.
	assert.True(t, authService.CheckPasswordHash(strings.Repeat("a", 72)+"different-tail", hash))
}

func TestAuthService_Authenticate(t *testing.T) {
	password := "secret123"
	hash := quickHash(t, password)

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "alice").Return(&model.User{
			ID:             1,
			Username:       "alice",
			HashedPassword: hash,
		}, nil).Once()

		authService := NewAuthService(mockRepo, "test-secret")
		user, err := authService.Authenticate("alice", password)

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "alice").Return(&model.User{
			ID:             1,
			Username:       "alice",
			HashedPassword: hash,
		}, nil).Once()

		authService := NewAuthService(mockRepo, "test-secret")
		_, err := authService.Authenticate("alice", "wrongpassword")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown user fails with the same error", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "nobody").Return(nil, repository.ErrUserNotFound).Once()

		authService := NewAuthService(mockRepo, "test-secret")
		_, err := authService.Authenticate("nobody", "anything")

		// Unknown user and wrong password must be indistinguishable.
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		mockRepo.AssertExpectations(t)
	})

	t.Run("storage error is not invalid credentials", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		dbErr := errors.New("connection refused")
		mockRepo.On("GetUserByUsername", "alice").Return(nil, dbErr).Once()

		authService := NewAuthService(mockRepo, "test-secret")
		_, err := authService.Authenticate("alice", password)

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "bob" && u.HashedPassword != "" && u.HashedPassword != "hunter22"
		})).Return(nil).Once()

		authService := NewAuthService(mockRepo, "test-secret")
		user, err := authService.Register("bob", "hunter22")

		assert.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("CreateUser", mock.Anything).Return(repository.ErrDuplicateUsername).Once()

		authService := NewAuthService(mockRepo, "test-secret")
		_, err := authService.Register("bob", "hunter22")

		assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("old hash replaced", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		var storedHash string
		mockRepo.On("UpdatePassword", "alice", mock.MatchedBy(func(h string) bool {
			storedHash = h
			return h != ""
		})).Return(nil).Once()

		authService := NewAuthService(mockRepo, "test-secret")
		err := authService.ResetPassword("alice", "newpassword")

		assert.NoError(t, err)
		// The new hash verifies the new password and rejects the old one.
		assert.True(t, authService.CheckPasswordHash("newpassword", storedHash))
		assert.False(t, authService.CheckPasswordHash("secret123", storedHash))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("UpdatePassword", "ghost", mock.Anything).Return(repository.ErrUserNotFound).Once()

		authService := NewAuthService(mockRepo, "test-secret")
		err := authService.ResetPassword("ghost", "whatever")

		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	authService := NewAuthService(nil, "test-secret")
	issuedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	token, err := authService.GenerateToken("alice", issuedAt)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	t.Run("valid for the whole TTL", func(t *testing.T) {
		for _, delta := range []time.Duration{0, time.Minute, TokenTTL - time.Second} {
			subject, err := authService.ValidateToken(token, issuedAt.Add(delta))
			assert.NoError(t, err, "token should be valid at issuedAt+%v", delta)
			assert.Equal(t, "alice", subject)
		}
	})

	t.Run("expired at and after the TTL", func(t *testing.T) {
		for _, delta := range []time.Duration{TokenTTL + time.Second, 24 * time.Hour} {
			_, err := authService.ValidateToken(token, issuedAt.Add(delta))
			assert.ErrorIs(t, err, ErrTokenExpired, "token should be expired at issuedAt+%v", delta)
		}
	})
}

func TestAuthService_ValidateToken_Failures(t *testing.T) {
	authService := NewAuthService(nil, "test-secret")
	issuedAt := time.Now().UTC()

	t.Run("tampered signature", func(t *testing.T) {
		token, err := authService.GenerateToken("alice", issuedAt)
		assert.NoError(t, err)

		parts := strings.Split(token, ".")
		assert.Len(t, parts, 3)

		// Flip one character of the signature segment.
		sig := []byte(parts[2])
		if sig[3] == 'A' {
			sig[3] = 'B'
		} else {
			sig[3] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		_, err = authService.ValidateToken(tampered, issuedAt)
		assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})

	t.Run("signed with a different secret", func(t *testing.T) {
		other := NewAuthService(nil, "another-secret")
		token, err := other.GenerateToken("alice", issuedAt)
		assert.NoError(t, err)

		_, err = authService.ValidateToken(token, issuedAt)
		assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := authService.ValidateToken("not-a-token", issuedAt)
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := authService.GenerateToken("", issuedAt)
		assert.NoError(t, err)

		_, err = authService.ValidateToken(token, issuedAt)
		assert.ErrorIs(t, err, ErrTokenMissingSubject)
	})
}

func TestAuthService_RecordLogin_LastWriteWins(t *testing.T) {
	mockRepo := new(mockUserRepo)
	authService := NewAuthService(mockRepo, "test-secret")

	t1 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	mockRepo.On("UpdateLastLogin", "alice", t1).Return(nil).Once()
	mockRepo.On("UpdateLastLogin", "alice", t2).Return(nil).Once()

	assert.NoError(t, authService.RecordLogin("alice", t1))
	assert.NoError(t, authService.RecordLogin("alice", t2))
	mockRepo.AssertExpectations(t)
}
