package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig wires the handlers into the HTTP router.
// RateLimiter, Photos and Metrics are optional.
type RouterConfig struct {
	Handler     *Handler
	Contacts    *ContactHandler
	Photos      *PhotoHandler
	Metrics     *Metrics
	RateLimiter *RateLimiter
	// UploadDir is served under /uploads/ when Photos is set.
	UploadDir string
}

// NewRouter creates the API router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(cfg.Metrics))
	r.Use(SecurityHeaders)
	r.Use(cfg.Handler.CORS)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}

	r.Get("/api/health", cfg.Handler.Health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", cfg.Contacts.List)
		r.Post("/", cfg.Contacts.Create)
		r.Get("/{id}", cfg.Contacts.Get)
		r.Delete("/{id}", cfg.Contacts.Delete)
	})

	if cfg.Photos != nil {
		r.Post("/api/photos", cfg.Photos.Upload)
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	return r
}
