package routes

import (
	"github.com/go-chi/chi/v5"

	"smsguide/internal/adcache"
	"smsguide/internal/handlers"
)

func RegisterAdsCacheRoutes(admin chi.Router, cache *adcache.Cache) {
	handler := handlers.NewAdsCacheHandler(cache)

	admin.Route("/ads-cache", func(r chi.Router) {
		r.Get("/", handler.Info)
		r.Delete("/", handler.Clear)
		r.Post("/preload", handler.Preload)
	})
}
