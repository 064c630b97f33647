// file: app/test_app.go

package app

import (
	"database/sql"
	"go-weather-api/config"
	"go-weather-api/handler"
	"go-weather-api/repository"
	"go-weather-api/router"
	"go-weather-api/service"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// TestApp bundles a fully wired router with its backing connections so
// integration tests can drive the real HTTP surface. Auth is exposed so
// tests can mint tokens accepted by the gate.
type TestApp struct {
	DB     *sql.DB
	Auth   *service.AuthService
	Router http.Handler
}

// NewTestApp wires the application layers onto the given connections. The
// weather base URL can be overridden via config to point at a fake upstream.
func NewTestApp(db *sql.DB, redisClient *redis.Client) *TestApp {
	userRepo := repository.NewUserRepository(db)
	searchRepo := repository.NewSearchRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	authService := service.NewAuthService(userRepo, config.AppConfig.JWT.SecretKey)
	weatherService := service.NewWeatherService(
		config.AppConfig.Weather.APIKey,
		config.AppConfig.Weather.BaseURL,
		searchRepo,
	)
	favoriteService := service.NewFavoriteService(favoriteRepo, redisClient)

	r := router.NewRouter(
		handler.NewUserHandler(userRepo, authService),
		handler.NewWeatherHandler(weatherService),
		handler.NewFavoriteHandler(favoriteService),
		handler.NewSubscriptionHandler(subscriptionRepo),
		handler.NewSearchHandler(searchRepo),
		handler.NewAuthMiddleware(authService, userRepo),
		config.AppConfig.Server.StaticDir,
	)

	return &TestApp{
		DB:     db,
		Auth:   authService,
		Router: r,
	}
}
