package handler

import (
	"encoding/json"
	"errors"
	"go-weather-api/common"
	"go-weather-api/logger"
	"go-weather-api/model"
	"go-weather-api/service"
	"net/http"
	"strconv"
)

type WeatherHandler struct {
	service *service.WeatherService
}

func NewWeatherHandler(service *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// GetWeather godoc
// @Summary      Current weather
// @Description  Looks up by city name, or by lat/lon when both are given.
// @Description  With no parameters the default city is used. City lookups
// @Description  are appended to the search history.
// @Tags         weather
// @Produce      json
// @Security     BearerAuth
// @Param        city query string  false "City name"
// @Param        lat  query number false "Latitude"
// @Param        lon  query number false "Longitude"
// @Success      200 {object} model.WeatherReport
// @Failure      404 {object} common.AppError
// @Router       /weather [get]
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, _ := r.Context().Value(UsernameKey).(string)
	city := r.URL.Query().Get("city")
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	logger.Log.WithField("username", username).WithField("city", city).Info("Weather requested")

	var report *model.WeatherReport
	var err error
	if city == "" && latStr != "" && lonStr != "" {
		lat, lon, parseErr := parseCoords(latStr, lonStr)
		if parseErr != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid coordinates", parseErr)
		}
		report, err = h.service.CurrentByCoords(r.Context(), lat, lon)
	} else {
		report, err = h.service.Current(r.Context(), city)
	}
	if err != nil {
		return weatherError(err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(report)
	return nil
}

// GetForecast godoc
// @Summary      Five-day forecast, one entry per day
// @Tags         weather
// @Produce      json
// @Security     BearerAuth
// @Param        city query string true "City name"
// @Success      200 {object} model.ForecastReport
// @Failure      404 {object} common.AppError
// @Router       /forecast [get]
func (h *WeatherHandler) GetForecast(w http.ResponseWriter, r *http.Request) *common.AppError {
	city := r.URL.Query().Get("city")
	if city == "" {
		return common.NewAppError(http.StatusBadRequest, "City parameter is required", nil)
	}

	username, _ := r.Context().Value(UsernameKey).(string)
	logger.Log.WithField("username", username).WithField("city", city).Info("Forecast requested")

	report, err := h.service.Forecast(r.Context(), city)
	if err != nil {
		return weatherError(err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(report)
	return nil
}

// GetWeatherByCoords godoc
// @Summary      Current weather for a coordinate pair
// @Tags         weather
// @Produce      json
// @Security     BearerAuth
// @Param        lat query number true "Latitude"
// @Param        lon query number true "Longitude"
// @Success      200 {object} model.WeatherReport
// @Failure      404 {object} common.AppError
// @Router       /weather-by-coords [get]
func (h *WeatherHandler) GetWeatherByCoords(w http.ResponseWriter, r *http.Request) *common.AppError {
	lat, lon, err := parseCoords(r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "lat and lon parameters are required", err)
	}

	report, svcErr := h.service.CurrentByCoords(r.Context(), lat, lon)
	if svcErr != nil {
		return weatherError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(report)
	return nil
}

func parseCoords(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func weatherError(err error) *common.AppError {
	if errors.Is(err, service.ErrCityNotFound) {
		return common.NewAppError(http.StatusNotFound, "City not found", nil)
	}
	return common.NewAppError(http.StatusBadGateway, "Weather provider unavailable", err)
}
