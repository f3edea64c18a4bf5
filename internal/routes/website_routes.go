package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"smsguide/internal/handlers"
	"smsguide/internal/repository"
)

func RegisterWebsiteRoutes(r, admin chi.Router, db *sql.DB) {
	handler := handlers.NewWebsiteHandler(repository.NewWebsiteRepository(db))

	r.Get("/websites", handler.ListPublic)

	admin.Route("/websites", func(r chi.Router) {
		r.Get("/", handler.ListAll)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
}
