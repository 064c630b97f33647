// file: repository/subscription_repository.go

package repository

import (
	"database/sql"
	"go-weather-api/logger"
	"go-weather-api/model"
)

// ISubscriptionRepository defines the contract for push-subscription storage.
type ISubscriptionRepository interface {
	Create(subscription *model.PushSubscription) error
}

// SubscriptionRepository implements ISubscriptionRepository.
type SubscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// Create inserts a new push subscription record. Subscriptions are stored
// for a future delivery worker; nothing reads them back yet.
func (r *SubscriptionRepository) Create(subscription *model.PushSubscription) error {
	log := logger.Log.WithField("endpoint", subscription.Endpoint)
	log.Info("Executing query to save a push subscription")

	query := `INSERT INTO push_subscriptions (endpoint, keys) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRow(query, subscription.Endpoint, subscription.Keys).Scan(&subscription.ID, &subscription.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create subscription query")
		return err
	}
	return nil
}
