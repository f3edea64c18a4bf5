// internal/routes/routes.go
package routes

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"smsguide/internal/adcache"
	"smsguide/internal/config"
	"smsguide/internal/handlers"
	"smsguide/internal/interfaces"
	"smsguide/internal/logging"
	appmw "smsguide/internal/middleware"
	"smsguide/internal/models"
	"smsguide/internal/ratelimit"
	"smsguide/internal/repository"
	"smsguide/internal/services"
)

type routeOptions struct {
	ipLogs    interfaces.IPLogRepository
	adminAuth *services.AdminAuth
	warmCtx   context.Context
}

type Option func(*routeOptions)

// WithIPLogStore replaces the Postgres ip_logs store used by the rate limiter.
func WithIPLogStore(store interfaces.IPLogRepository) Option {
	return func(o *routeOptions) { o.ipLogs = store }
}

func WithAdminAuth(a *services.AdminAuth) Option {
	return func(o *routeOptions) { o.adminAuth = a }
}

// WithWarmSlots keeps one cache consumer per announcement position alive
// until ctx is done, so a cache clear re-fetches every slot at once.
func WithWarmSlots(ctx context.Context) Option {
	return func(o *routeOptions) { o.warmCtx = ctx }
}

func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config, opts ...Option) *chi.Mux {
	o := &routeOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.ipLogs == nil {
		o.ipLogs = repository.NewIPLogRepository(db)
	}
	if o.adminAuth == nil {
		o.adminAuth = newAdminAuth(cfg)
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(logging.Middleware(logrus.WithField("component", "http")))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(cfg)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "smsguide api"})
	})
	r.Get("/health", healthHandler(db))
	RegisterSwaggerRoutes(r)

	links := services.NewLinkReplacer(repository.NewLinkReplacementRepository(db), cfg.LinkCacheTTL)
	submissions := services.NewSubmissionService(
		repository.NewSubmissionRepository(db),
		repository.NewWebsiteRepository(db),
		repository.NewCountryRepository(db),
		repository.NewProjectRepository(db),
		links,
	)
	submissions.SetRecentLimit(cfg.LegacyListLimit)
	limiter := ratelimit.New(o.ipLogs, ratelimit.Options{
		Max:      cfg.RateLimitMax,
		Window:   cfg.RateLimitWindow,
		FailOpen: cfg.RateLimitFailOpen,
	})
	announcements := services.NewAnnouncementService(repository.NewAnnouncementRepository(db))
	cache := adcache.New(announcements.ActiveAnnouncements, adcache.WithTTL(cfg.AdsCacheTTL))
	if o.warmCtx != nil {
		startSlotConsumers(o.warmCtx, cache)
	}

	submissionHandler := handlers.NewSubmissionHandler(submissions, limiter)
	RegisterLegacyRoutes(r, submissionHandler)

	// API v1 routes
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", handlers.NewAuthHandler(o.adminAuth).Login)

			admin.Group(func(protected chi.Router) {
				protected.Use(appmw.AdminAuth(o.adminAuth.Secret()))

				RegisterWebsiteRoutes(api, protected, db)
				RegisterCountryRoutes(api, protected, db)
				RegisterProjectRoutes(api, protected, db)
				RegisterFailureReasonRoutes(api, protected, db)
				RegisterSubmissionRoutes(api, protected, submissionHandler)
				RegisterAnnouncementRoutes(api, protected, announcements, cache, s3Config)
				RegisterLinkReplacementRoutes(protected, db, links)
				RegisterAdsCacheRoutes(protected, cache)
			})
		})
	})

	return r
}

func newAdminAuth(cfg *config.Config) *services.AdminAuth {
	a, err := services.NewAdminAuth(cfg.AdminPassword, cfg.JWTSecret, cfg.AdminSessionTTL)
	if err == nil {
		return a
	}
	logrus.WithError(err).Error("admin auth setup failed, admin login disabled")
	a, err = services.NewAdminAuth("", cfg.JWTSecret, cfg.AdminSessionTTL)
	if err != nil {
		logrus.WithError(err).Fatal("admin auth setup failed")
	}
	return a
}

func corsOptions(cfg *config.Config) cors.Options {
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}
}

func startSlotConsumers(ctx context.Context, cache *adcache.Cache) {
	consumers := make([]*adcache.Consumer, 0, len(models.AnnouncementPositions))
	for _, pos := range models.AnnouncementPositions {
		consumers = append(consumers, adcache.NewConsumer(ctx, cache, adcache.Options{Position: string(pos)}))
	}
	go func() {
		<-ctx.Done()
		for _, c := range consumers {
			c.Close()
		}
	}()
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := map[string]any{"status": "ok"}
		status, code := "ok", http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			logrus.WithError(err).Warn("health check: database unreachable")
			dbStatus = map[string]any{"status": "down", "error": err.Error()}
			status, code = "degraded", http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]any{"status": status, "db": dbStatus})
	}
}
