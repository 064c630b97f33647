package handler

import (
	"encoding/json"
	"go-weather-api/common"
	"go-weather-api/logger"
	"go-weather-api/model"
	"go-weather-api/repository"
	"net/http"
)

type SubscriptionHandler struct {
	Repo repository.ISubscriptionRepository
}

func NewSubscriptionHandler(repo repository.ISubscriptionRepository) *SubscriptionHandler {
	return &SubscriptionHandler{Repo: repo}
}

// Subscribe godoc
// @Summary      Save a browser push subscription
// @Description  Persists the subscription endpoint and keys. No delivery is
// @Description  performed.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body model.SubscribeRequest true "Push subscription"
// @Success      201 {object} model.MessageResponse
// @Failure      400 {object} common.AppError
// @Router       /subscribe [post]
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SubscribeRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	keys, err := json.Marshal(req.Keys)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Missing subscription endpoint or keys", err)
	}

	subscription := &model.PushSubscription{
		Endpoint: req.Endpoint,
		Keys:     string(keys),
	}
	if err := h.Repo.Create(subscription); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Error saving subscription", err)
	}

	logger.Log.Info("New subscription saved")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(model.MessageResponse{Message: "Subscription saved successfully"})
	return nil
}
