package routes

import (
	"github.com/go-chi/chi/v5"

	"smsguide/internal/handlers"
)

// RegisterLegacyRoutes serves the original unversioned submissions endpoint.
func RegisterLegacyRoutes(r chi.Router, handler *handlers.SubmissionHandler) {
	r.Route("/api/submissions", func(r chi.Router) {
		r.Get("/", handler.ListLegacy)
		r.Post("/", handler.Create)
	})
}

func RegisterSubmissionRoutes(r, admin chi.Router, handler *handlers.SubmissionHandler) {
	r.Route("/submissions", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
	})
	r.Get("/risk", handler.Risk)

	admin.Delete("/submissions/{id}", handler.Delete)
}
