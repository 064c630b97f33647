package router

import (
	"go-weather-api/handler"
	"net/http"
	"path/filepath"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-weather-api/docs" // swagger docs registration
)

// NewRouter wires every route. Weather, favorites and login reporting sit
// behind the auth gate; registration, the token endpoint, password reset,
// push subscription and the static frontend are public.
func NewRouter(
	userHandler *handler.UserHandler,
	weatherHandler *handler.WeatherHandler,
	favoriteHandler *handler.FavoriteHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	searchHandler *handler.SearchHandler,
	authMiddleware *handler.AuthMiddleware,
	staticDir string,
) http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("/health", handler.HealthCheck)
	mux.Handle("POST /register", handler.ErrorHandlingMiddleware(userHandler.Register))
	mux.Handle("POST /token", handler.ErrorHandlingMiddleware(userHandler.Login))
	mux.Handle("POST /forgot-password", handler.ErrorHandlingMiddleware(userHandler.ForgotPassword))
	mux.Handle("POST /subscribe", handler.ErrorHandlingMiddleware(subscriptionHandler.Subscribe))

	// Protected routes
	mux.Handle("GET /weather", authMiddleware.Handle(handler.ErrorHandlingMiddleware(weatherHandler.GetWeather)))
	mux.Handle("GET /forecast", authMiddleware.Handle(handler.ErrorHandlingMiddleware(weatherHandler.GetForecast)))
	mux.Handle("GET /weather-by-coords", authMiddleware.Handle(handler.ErrorHandlingMiddleware(weatherHandler.GetWeatherByCoords)))
	mux.Handle("GET /favorites", authMiddleware.Handle(handler.ErrorHandlingMiddleware(favoriteHandler.ListFavorites)))
	mux.Handle("POST /favorites", authMiddleware.Handle(handler.ErrorHandlingMiddleware(favoriteHandler.AddFavorite)))
	mux.Handle("GET /logins/all", authMiddleware.Handle(handler.ErrorHandlingMiddleware(userHandler.ListLogins)))
	mux.Handle("GET /searches/top", authMiddleware.Handle(handler.ErrorHandlingMiddleware(searchHandler.TopSearches)))

	// API documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Static frontend
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	mux.HandleFunc("GET /manifest.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(staticDir, "manifest.json"))
	})
	mux.HandleFunc("GET /service-worker.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		http.ServeFile(w, r, filepath.Join(staticDir, "service-worker.js"))
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})

	return mux
}
