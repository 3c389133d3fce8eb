package stats

import (
	"errors"
	"net/http"

	"github.com/momentumhq/momentum-lambda/internal/config"
)

type Handler struct {
	service StatsService
}

func NewHandler(service StatsService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) TagStats(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	stats, err := h.service.TagStats(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to compute tag stats")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, stats)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to compute dashboard")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, dashboard)
}
