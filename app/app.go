// File: app/app.go
package app

import (
	"context"
	"errors"
	"go-weather-api/config"
	"go-weather-api/db"
	"go-weather-api/handler"
	"go-weather-api/logger"
	"go-weather-api/repository"
	"go-weather-api/router"
	"go-weather-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	demoUsername = "user@example.com"
	demoPassword = "password123"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database, config.AppConfig.Database.MigrationsDir); err != nil {
		logger.Log.Fatalf("Error migrating the database: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---

	userRepo := repository.NewUserRepository(database)
	searchRepo := repository.NewSearchRepository(database)
	favoriteRepo := repository.NewFavoriteRepository(database)
	subscriptionRepo := repository.NewSubscriptionRepository(database)

	authService := service.NewAuthService(userRepo, config.AppConfig.JWT.SecretKey)
	weatherService := service.NewWeatherService(
		config.AppConfig.Weather.APIKey,
		config.AppConfig.Weather.BaseURL,
		searchRepo,
	)
	favoriteService := service.NewFavoriteService(favoriteRepo, redisClient)

	userHandler := handler.NewUserHandler(userRepo, authService)
	weatherHandler := handler.NewWeatherHandler(weatherService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionRepo)
	searchHandler := handler.NewSearchHandler(searchRepo)
	authMiddleware := handler.NewAuthMiddleware(authService, userRepo)

	if config.AppConfig.CreateDemoUser {
		createDemoUser(authService)
	}

	r := router.NewRouter(
		userHandler,
		weatherHandler,
		favoriteHandler,
		subscriptionHandler,
		searchHandler,
		authMiddleware,
		config.AppConfig.Server.StaticDir,
	)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// createDemoUser seeds a well-known account for local use. A duplicate means
// the seed already ran on a previous start.
func createDemoUser(authService *service.AuthService) {
	if _, err := authService.Register(demoUsername, demoPassword); err != nil {
		if !errors.Is(err, repository.ErrDuplicateUsername) {
			logger.Log.WithError(err).Error("Failed to create demo user")
		}
		return
	}
	logger.Log.Info("Demo user created")
}
