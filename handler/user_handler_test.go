// file: handler/user_handler_test.go

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"go-weather-api/common"
	"go-weather-api/model"
	"go-weather-api/repository"
	"go-weather-api/service"
)

func newUserHandler(t *testing.T) (*UserHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, testSecret)
	return NewUserHandler(userRepo, authService), mock
}

func postForm(handler func(http.ResponseWriter, *http.Request) *common.AppError, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	ErrorHandlingMiddleware(handler).ServeHTTP(rr, req)
	return rr
}

func postJSON(handler func(http.ResponseWriter, *http.Request) *common.AppError, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ErrorHandlingMiddleware(handler).ServeHTTP(rr, req)
	return rr
}

func TestUserHandler_Login(t *testing.T) {
	password := "secret123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	selectUser := regexp.QuoteMeta(`SELECT id, username, hashed_password, last_login, created_at FROM users WHERE username = $1`)
	updateLogin := regexp.QuoteMeta(`UPDATE users SET last_login = $1 WHERE username = $2`)

	t.Run("first login returns a token and a null last_login", func(t *testing.T) {
		h, mock := newUserHandler(t)

		mock.ExpectQuery(selectUser).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "hashed_password", "last_login", "created_at"}).
				AddRow(1, "alice@example.com", string(hash), nil, time.Now()))
		mock.ExpectExec(updateLogin).
			WithArgs(sqlmock.AnyArg(), "alice@example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rr := postForm(h.Login, "/token", url.Values{
			"username": {"alice@example.com"},
			"password": {password},
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		var response model.TokenResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.NotEmpty(t, response.AccessToken)
		assert.Equal(t, "bearer", response.TokenType)
		assert.Nil(t, response.LastLogin)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("subsequent login reports the previous login time", func(t *testing.T) {
		h, mock := newUserHandler(t)

		previousLogin := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		mock.ExpectQuery(selectUser).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "hashed_password", "last_login", "created_at"}).
				AddRow(1, "alice@example.com", string(hash), previousLogin, time.Now()))
		mock.ExpectExec(updateLogin).
			WithArgs(sqlmock.AnyArg(), "alice@example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rr := postForm(h.Login, "/token", url.Values{
			"username": {"alice@example.com"},
			"password": {password},
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		var response model.TokenResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		// The response carries the PREVIOUS session's timestamp, not the
		// one just recorded.
		if assert.NotNil(t, response.LastLogin) {
			assert.True(t, previousLogin.Equal(*response.LastLogin))
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		h, mock := newUserHandler(t)

		mock.ExpectQuery(selectUser).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "hashed_password", "last_login", "created_at"}).
				AddRow(1, "alice@example.com", string(hash), nil, time.Now()))

		rr := postForm(h.Login, "/token", url.Values{
			"username": {"alice@example.com"},
			"password": {"wrongpassword"},
		})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown user gets the same response as a wrong password", func(t *testing.T) {
		h, mock := newUserHandler(t)

		wrongPassRR := func() *httptest.ResponseRecorder {
			mock.ExpectQuery(selectUser).
				WithArgs("alice@example.com").
				WillReturnRows(sqlmock.NewRows([]string{"id", "username", "hashed_password", "last_login", "created_at"}).
					AddRow(1, "alice@example.com", string(hash), nil, time.Now()))
			return postForm(h.Login, "/token", url.Values{
				"username": {"alice@example.com"},
				"password": {"wrongpassword"},
			})
		}()

		mock.ExpectQuery(selectUser).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)
		unknownUserRR := postForm(h.Login, "/token", url.Values{
			"username": {"ghost@example.com"},
			"password": {"anypassword"},
		})

		assert.Equal(t, http.StatusUnauthorized, unknownUserRR.Code)
		assert.Equal(t, wrongPassRR.Body.String(), unknownUserRR.Body.String())
	})
}

func TestUserHandler_Register(t *testing.T) {
	insertUser := regexp.QuoteMeta(`INSERT INTO users (username, hashed_password) VALUES ($1, $2) RETURNING id, created_at`)

	t.Run("success", func(t *testing.T) {
		h, mock := newUserHandler(t)

		mock.ExpectQuery(insertUser).
			WithArgs("newuser", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

		rr := postJSON(h.Register, "/register", `{"username":"newuser","password":"password123"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"message":"User registered successfully"}`, rr.Body.String())
	})

	t.Run("duplicate username", func(t *testing.T) {
		h, mock := newUserHandler(t)

		mock.ExpectQuery(insertUser).
			WithArgs("newuser", sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505"})

		rr := postJSON(h.Register, "/register", `{"username":"newuser","password":"password123"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("username too short", func(t *testing.T) {
		h, _ := newUserHandler(t)

		rr := postJSON(h.Register, "/register", `{"username":"abc","password":"password123"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUserHandler_ForgotPassword(t *testing.T) {
	updatePassword := regexp.QuoteMeta(`UPDATE users SET hashed_password = $1 WHERE username = $2`)

	t.Run("success", func(t *testing.T) {
		h, mock := newUserHandler(t)

		mock.ExpectExec(updatePassword).
			WithArgs(sqlmock.AnyArg(), "alice@example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rr := postJSON(h.ForgotPassword, "/forgot-password", `{"username":"alice@example.com","new_password":"newpassword"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Password reset successful"}`, rr.Body.String())
	})

	t.Run("unknown user", func(t *testing.T) {
		h, mock := newUserHandler(t)

		mock.ExpectExec(updatePassword).
			WithArgs(sqlmock.AnyArg(), "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		rr := postJSON(h.ForgotPassword, "/forgot-password", `{"username":"ghost","new_password":"newpassword"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUserHandler_ListLogins(t *testing.T) {
	h, mock := newUserHandler(t)

	lastLogin := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, last_login FROM users ORDER BY username`)).
		WillReturnRows(sqlmock.NewRows([]string{"username", "last_login"}).
			AddRow("alice", lastLogin).
			AddRow("bob", nil))

	req := httptest.NewRequest("GET", "/logins/all", nil)
	rr := httptest.NewRecorder()
	ErrorHandlingMiddleware(h.ListLogins).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var response struct {
		Logins []model.LoginRecord `json:"logins"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Len(t, response.Logins, 2)
	assert.Equal(t, "alice", response.Logins[0].Username)
	assert.Nil(t, response.Logins[1].LastLogin)
}
