package routes

import (
	"github.com/go-chi/chi/v5"

	"smsguide/internal/adcache"
	"smsguide/internal/config"
	"smsguide/internal/handlers"
	"smsguide/internal/services"
)

func RegisterAnnouncementRoutes(r, admin chi.Router, svc *services.AnnouncementService, cache *adcache.Cache, s3Config *config.S3Config) {
	handler := handlers.NewAnnouncementHandler(svc, cache, s3Config)

	r.Route("/announcements", func(r chi.Router) {
		r.Get("/", handler.ListActive)
		r.Post("/{id}/view", handler.RecordView)
		r.Post("/{id}/click", handler.RecordClick)
	})

	admin.Route("/announcements", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/stats", handler.Stats)
		r.Post("/upload", handler.UploadImage)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
}
