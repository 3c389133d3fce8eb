package routine

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/momentumhq/momentum-lambda/internal/config"
)

type Handler struct {
	service RoutineService
}

func NewHandler(service RoutineService) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrRoutineNotFound), errors.Is(err, ErrInvalidID):
		http.Error(w, "routine not found", http.StatusNotFound)
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateRoutineDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	routine, err := h.service.Create(r.Context(), dto)
	if err != nil {
		if !errors.Is(err, ErrValidation) {
			log.WithError(err).Error("Failed to create routine")
		}
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, routine)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	routines, err := h.service.List(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list routines")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, routines)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	routine, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, routine)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateRoutineDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	routine, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, routine)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CompleteToday(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, result)
}
