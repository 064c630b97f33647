package repository

import (
	"database/sql"
	"errors"
	"go-weather-api/logger"
	"go-weather-api/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrDuplicateFavorite is returned when a user stars a city twice.
var ErrDuplicateFavorite = errors.New("city is already a favorite")

// IFavoriteRepository defines the contract for favorite-city storage.
type IFavoriteRepository interface {
	CreateFavorite(favorite *model.Favorite) error
	GetFavoritesByUserID(userID int) ([]*model.Favorite, error)
}

// FavoriteRepository implements IFavoriteRepository.
type FavoriteRepository struct {
	DB *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// CreateFavorite adds a city to a user's favorites. The (user_id, city)
// pair is unique; a violation maps to ErrDuplicateFavorite.
func (r *FavoriteRepository) CreateFavorite(favorite *model.Favorite) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": favorite.UserID,
		"city":    favorite.City,
	})
	log.Info("Executing query to create a new favorite")

	query := `INSERT INTO favorites (user_id, city) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRow(query, favorite.UserID, favorite.City).Scan(&favorite.ID, &favorite.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateFavorite
		}
		log.WithError(err).Error("Failed to execute create favorite query")
		return err
	}
	return nil
}

// GetFavoritesByUserID retrieves all favorite cities for a specific user.
func (r *FavoriteRepository) GetFavoritesByUserID(userID int) ([]*model.Favorite, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to get favorites by user ID")

	query := `SELECT id, user_id, city, created_at FROM favorites WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for favorites by user ID")
		return nil, err
	}
	defer rows.Close()

	var favorites []*model.Favorite
	for rows.Next() {
		var fav model.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.City, &fav.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan favorite row")
			return nil, err
		}
		favorites = append(favorites, &fav)
	}
	return favorites, rows.Err()
}
