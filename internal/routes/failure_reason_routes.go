package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"smsguide/internal/handlers"
	"smsguide/internal/repository"
)

func RegisterFailureReasonRoutes(r, admin chi.Router, db *sql.DB) {
	handler := handlers.NewFailureReasonHandler(repository.NewFailureReasonRepository(db))

	r.Get("/failure-reasons", handler.List)

	admin.Route("/failure-reasons", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Delete("/{id}", handler.Delete)
	})
}
