package repository

import (
	"database/sql"
	"errors"
	"go-weather-api/logger"
	"go-weather-api/model"
	"time"

	"github.com/lib/pq"
)

// Credential-store errors. Raw storage errors never escape this package for
// the cases callers are expected to branch on.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// IUserRepository defines the contract for credential-store operations.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByUsername(username string) (*model.User, error)
	UpdatePassword(username, newHashedPassword string) error
	UpdateLastLogin(username string, loginTime time.Time) error
	GetAllLogins() ([]*model.LoginRecord, error)
}

// UserRepository implements IUserRepository on top of Postgres.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new user row. The username carries a uniqueness
// constraint; a violation is translated into ErrDuplicateUsername.
func (r *UserRepository) CreateUser(user *model.User) error {
	log := logger.Log.WithField("username", user.Username)
	log.Info("Executing query to create a new user")

	query := `INSERT INTO users (username, hashed_password) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRow(query, user.Username, user.HashedPassword).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			log.Warn("Username already taken")
			return ErrDuplicateUsername
		}
		log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

// GetUserByUsername retrieves a user by their unique username. Returns
// ErrUserNotFound when no row matches.
func (r *UserRepository) GetUserByUsername(username string) (*model.User, error) {
	user := &model.User{}
	var lastLogin sql.NullTime

	query := `SELECT id, username, hashed_password, last_login, created_at FROM users WHERE username = $1`
	err := r.DB.QueryRow(query, username).Scan(&user.ID, &user.Username, &user.HashedPassword, &lastLogin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Log.WithError(err).WithField("username", username).Error("Failed to execute get user query")
		return nil, err
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return user, nil
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(username, newHashedPassword string) error {
	log := logger.Log.WithField("username", username)
	log.Info("Executing query to update user password")

	query := `UPDATE users SET hashed_password = $1 WHERE username = $2`
	res, err := r.DB.Exec(query, newHashedPassword, username)
	if err != nil {
		log.WithError(err).Error("Failed to execute update password query")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin overwrites the last-login timestamp. Last write wins; no
// ordering guarantee is needed beyond "approximately now".
func (r *UserRepository) UpdateLastLogin(username string, loginTime time.Time) error {
	log := logger.Log.WithField("username", username)
	log.Info("Executing query to update last login")

	query := `UPDATE users SET last_login = $1 WHERE username = $2`
	_, err := r.DB.Exec(query, loginTime.UTC(), username)
	if err != nil {
		log.WithError(err).Error("Failed to execute update last login query")
		return err
	}
	return nil
}

// GetAllLogins lists every user with their last-login timestamp.
func (r *UserRepository) GetAllLogins() ([]*model.LoginRecord, error) {
	logger.Log.Info("Executing query to list all logins")

	query := `SELECT username, last_login FROM users ORDER BY username`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list logins query")
		return nil, err
	}
	defer rows.Close()

	var records []*model.LoginRecord
	for rows.Next() {
		var rec model.LoginRecord
		var lastLogin sql.NullTime
		if err := rows.Scan(&rec.Username, &lastLogin); err != nil {
			logger.Log.WithError(err).Error("Failed to scan login row")
			return nil, err
		}
		if lastLogin.Valid {
			rec.LastLogin = &lastLogin.Time
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
