package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"smsguide/internal/handlers"
	"smsguide/internal/repository"
)

func RegisterCountryRoutes(r, admin chi.Router, db *sql.DB) {
	handler := handlers.NewCountryHandler(repository.NewCountryRepository(db))

	r.Get("/countries", handler.List)

	admin.Route("/countries", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
}
