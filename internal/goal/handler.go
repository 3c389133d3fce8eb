package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/momentumhq/momentum-lambda/internal/config"
)

type Handler struct {
	service GoalService
}

func NewHandler(service GoalService) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrGoalNotFound), errors.Is(err, ErrInvalidID):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotCountGoal):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrGoalCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.Create(r.Context(), dto)
	if err != nil {
		if !errors.Is(err, ErrValidation) {
			log.WithError(err).Error("Failed to create goal")
		}
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, g)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	goals, err := h.service.List(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Increment(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Increment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, g)
}
