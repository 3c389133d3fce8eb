package timer

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/comments", h.AddComment)
	r.Post("/{id}/start", h.Start)
	r.Post("/{id}/pause", h.Pause)
	r.Post("/{id}/complete", h.Complete)

	return r
}
