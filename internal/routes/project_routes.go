package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"smsguide/internal/handlers"
	"smsguide/internal/repository"
)

func RegisterProjectRoutes(r, admin chi.Router, db *sql.DB) {
	handler := handlers.NewProjectHandler(repository.NewProjectRepository(db))

	r.Get("/projects", handler.List)

	admin.Route("/projects", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
}
