package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"smsguide/internal/handlers"
	"smsguide/internal/repository"
	"smsguide/internal/services"
)

func RegisterLinkReplacementRoutes(admin chi.Router, db *sql.DB, replacer *services.LinkReplacer) {
	handler := handlers.NewLinkReplacementHandler(repository.NewLinkReplacementRepository(db), replacer)

	admin.Route("/link-replacements", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
}
