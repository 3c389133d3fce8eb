package timer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/momentumhq/momentum-lambda/internal/config"
)

type Handler struct {
	service TimerService
}

func NewHandler(service TimerService) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrTimerNotFound), errors.Is(err, ErrInvalidID):
		http.Error(w, "timer not found", http.StatusNotFound)
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrTimerAlreadyRunning), errors.Is(err, ErrTimerCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateTimerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.CreateTimer(r.Context(), dto)
	if err != nil {
		if !errors.Is(err, ErrValidation) && !errors.Is(err, ErrTimerAlreadyRunning) {
			log.WithError(err).Error("Failed to create timer")
		}
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, t)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	timers, err := h.service.FindAllByUser(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list timers")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, timers)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateTimerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.UpdateTimer(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto AddCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, t)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.StartTimer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.PauseTimer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.CompleteTimer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, t)
}
