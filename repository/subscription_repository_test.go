// file: repository/subscription_repository_test.go

package repository

import (
	"go-weather-api/model"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSubscriptionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubscriptionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO push_subscriptions (endpoint, keys) VALUES ($1, $2) RETURNING id, created_at`)).
		WithArgs("https://push.example.com/sub/1", `{"auth":"a","p256dh":"b"}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	subscription := &model.PushSubscription{
		Endpoint: "https://push.example.com/sub/1",
		Keys:     `{"auth":"a","p256dh":"b"}`,
	}
	err := repo.Create(subscription)

	assert.NoError(t, err)
	assert.Equal(t, 1, subscription.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
