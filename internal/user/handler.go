package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/momentumhq/momentum-lambda/internal/auth"
	"github.com/momentumhq/momentum-lambda/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

type googleLoginRequest struct {
	Code string `json:"code"`
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req googleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, pair, err := h.service.GoogleLogin(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			http.Error(w, "invalid authorization code", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Google login failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	auth.SetAuthCookies(w, pair.AccessToken, pair.RefreshToken)
	config.JSON(w, http.StatusOK, u)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	cookie, err := r.Cookie(auth.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	pair, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, ErrInvalidRefresh) || errors.Is(err, ErrUserNotFound) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Token refresh failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	auth.SetAuthCookies(w, pair.AccessToken, pair.RefreshToken)
	config.JSON(w, http.StatusOK, map[string]string{"message": "token refreshed"})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, u)
}
