package auth

import (
	"net/http"

	"github.com/momentumhq/momentum-lambda/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearAuthCookies(w)

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
