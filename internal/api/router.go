// ABOUTME: chi router wiring for the HTTP API
// ABOUTME: Request logging, panic recovery, and consistent path handling
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Get("/health", apiHandler.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/query", apiHandler.QueryHandler)
		r.Get("/courses", apiHandler.CoursesHandler)
		r.Delete("/sessions/{sessionID}/clear", apiHandler.ClearSessionHandler)
	})

	return r
}
