package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates the dev backend's chi router with every /api route.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Chat waits on the language model, so every route shares a bound.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/providers", h.ListProviders)
			r.Post("/chat", h.Chat)
			r.Post("/rate", h.Rate)
			r.Get("/analytics", h.Analytics)
			r.Get("/conversations", h.Conversations)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusNotFound, ErrorResponse{Error: "The requested resource was not found."})
	})

	return r
}
