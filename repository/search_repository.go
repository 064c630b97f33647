package repository

import (
	"database/sql"
	"go-weather-api/logger"
	"go-weather-api/model"
)

// ISearchRepository defines the contract for the append-only search log.
type ISearchRepository interface {
	RecordSearch(city string) (*model.SearchRecord, error)
	TopSearched(limit int) ([]*model.CityCount, error)
}

// SearchRepository implements ISearchRepository.
type SearchRepository struct {
	DB *sql.DB
}

func NewSearchRepository(db *sql.DB) *SearchRepository {
	return &SearchRepository{DB: db}
}

// RecordSearch appends one row to the search log and returns it with the
// generated id and timestamp.
func (r *SearchRepository) RecordSearch(city string) (*model.SearchRecord, error) {
	log := logger.Log.WithField("city", city)
	log.Info("Executing query to record a weather search")

	record := &model.SearchRecord{City: city}
	query := `INSERT INTO search_history (city) VALUES ($1) RETURNING id, searched_at`
	err := r.DB.QueryRow(query, city).Scan(&record.ID, &record.SearchedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute record search query")
		return nil, err
	}
	return record, nil
}

// TopSearched returns the most frequently searched cities, busiest first.
func (r *SearchRepository) TopSearched(limit int) ([]*model.CityCount, error) {
	log := logger.Log.WithField("limit", limit)
	log.Info("Executing query to get most searched cities")

	query := `
		SELECT city, COUNT(*) AS searches
		FROM search_history
		GROUP BY city
		ORDER BY searches DESC
		LIMIT $1`

	rows, err := r.DB.Query(query, limit)
	if err != nil {
		log.WithError(err).Error("Failed to execute top searched query")
		return nil, err
	}
	defer rows.Close()

	var counts []*model.CityCount
	for rows.Next() {
		var c model.CityCount
		if err := rows.Scan(&c.City, &c.Searches); err != nil {
			log.WithError(err).Error("Failed to scan city count row")
			return nil, err
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}
