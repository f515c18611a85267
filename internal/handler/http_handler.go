package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/config"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/middleware"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/observability"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/service"
)

// NewRouter builds the API router.
func NewRouter(cfg *config.Config, p *service.ProfileService, ready observability.Pinger) http.Handler {
	r := chi.NewRouter()

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(observability.MetricsMiddleware(cfg.ServiceName))
	r.Use(middleware.Recovery())
	r.Use(middleware.AccessLog())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{headerCache},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(timeout))

	ph := NewProfileHandler(p)

	r.Get("/api/user/{username}", ph.Get)

	// Health
	healthPath := "/health"
	r.Get(healthPath, Health())
	r.Get(healthPath+"/ready", Ready(ready))

	return otelhttp.NewHandler(r, cfg.ServiceName)
}
