package handler

import (
	"encoding/json"
	"errors"
	"go-weather-api/common"
	"go-weather-api/logger"
	"go-weather-api/model"
	"go-weather-api/repository"
	"go-weather-api/service"
	"net/http"
	"time"
)

type UserHandler struct {
	Repo        repository.IUserRepository
	authService *service.AuthService
}

func NewUserHandler(repo repository.IUserRepository, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		Repo:        repo,
		authService: authService,
	}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "Credentials"
// @Success      201 {object} model.MessageResponse
// @Failure      400 {object} common.AppError
// @Router       /register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if _, err := h.authService.Register(req.Username, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return common.NewAppError(http.StatusBadRequest, "Username already exists", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Error creating user", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(model.MessageResponse{Message: "User registered successfully"})
	return nil
}

// Login godoc
// @Summary      Exchange credentials for an access token
// @Description  Form-encoded username/password. The returned last_login is
// @Description  the timestamp of the previous successful login, null on the
// @Description  first one.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username formData string true "Username"
// @Param        password formData string true "Password"
// @Success      200 {object} model.TokenResponse
// @Failure      401 {object} common.AppError
// @Router       /token [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := r.ParseForm(); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid form data", err)
	}

	req := model.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := common.ValidateStruct(&req); err != nil {
		// A structurally invalid credential pair can never authenticate, so
		// it gets the same uniform response as a wrong password.
		return common.NewAppError(http.StatusUnauthorized, "Incorrect username or password", err)
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, "Incorrect username or password", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Error during authentication", err)
	}

	// The response reports the previous session's login time, so capture it
	// before recording the current one.
	previousLogin := user.LastLogin

	now := time.Now().UTC()
	if err := h.authService.RecordLogin(user.Username, now); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Error recording login", err)
	}

	token, err := h.authService.GenerateToken(user.Username, now)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Error generating token", err)
	}

	logger.Log.WithField("username", user.Username).Info("User logged in")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(model.TokenResponse{
		AccessToken: token,
		TokenType:   service.TokenType,
		LastLogin:   previousLogin,
	})
	return nil
}

// ForgotPassword godoc
// @Summary      Reset a user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.ForgotPasswordRequest true "Username and new password"
// @Success      200 {object} model.MessageResponse
// @Failure      404 {object} common.AppError
// @Router       /forgot-password [post]
func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ForgotPasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.authService.ResetPassword(req.Username, req.NewPassword); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Error resetting password", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(model.MessageResponse{Message: "Password reset successful"})
	return nil
}

// ListLogins godoc
// @Summary      List every user's last login
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]model.LoginRecord
// @Router       /logins/all [get]
func (h *UserHandler) ListLogins(w http.ResponseWriter, r *http.Request) *common.AppError {
	records, err := h.Repo.GetAllLogins()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Error listing logins", err)
	}
	if records == nil {
		records = []*model.LoginRecord{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(map[string][]*model.LoginRecord{"logins": records})
	return nil
}
