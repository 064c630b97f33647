package handler

import (
	"encoding/json"
	"errors"
	"go-weather-api/common"
	"go-weather-api/model"
	"go-weather-api/repository"
	"go-weather-api/service"
	"net/http"
)

type FavoriteHandler struct {
	service *service.FavoriteService
}

func NewFavoriteHandler(service *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// ListFavorites godoc
// @Summary      List the caller's favorite cities
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.Favorite
// @Router       /favorites [get]
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user in token", nil)
	}

	favorites, err := h.service.ListFavorites(r.Context(), userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Error listing favorites", err)
	}
	if favorites == nil {
		favorites = []*model.Favorite{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(favorites)
	return nil
}

// AddFavorite godoc
// @Summary      Star a city
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.AddFavoriteRequest true "City"
// @Success      201 {object} model.Favorite
// @Failure      409 {object} common.AppError
// @Router       /favorites [post]
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user in token", nil)
	}

	var req model.AddFavoriteRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	favorite, err := h.service.AddFavorite(r.Context(), userID, req.City)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			return common.NewAppError(http.StatusConflict, "City is already a favorite", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Error adding favorite", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(favorite)
	return nil
}
