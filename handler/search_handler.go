package handler

import (
	"encoding/json"
	"go-weather-api/common"
	"go-weather-api/model"
	"go-weather-api/repository"
	"net/http"
	"strconv"
)

const defaultTopSearchLimit = 5

type SearchHandler struct {
	Repo repository.ISearchRepository
}

func NewSearchHandler(repo repository.ISearchRepository) *SearchHandler {
	return &SearchHandler{Repo: repo}
}

// TopSearches godoc
// @Summary      Most searched cities
// @Tags         weather
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of cities (default 5)"
// @Success      200 {array} model.CityCount
// @Router       /searches/top [get]
func (h *SearchHandler) TopSearches(w http.ResponseWriter, r *http.Request) *common.AppError {
	limit := defaultTopSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return common.NewAppError(http.StatusBadRequest, "Invalid limit parameter", err)
		}
		limit = parsed
	}

	counts, err := h.Repo.TopSearched(limit)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Error listing top searches", err)
	}
	if counts == nil {
		counts = []*model.CityCount{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(counts)
	return nil
}
