package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/auth"
	"github.com/fleetrent/fleetrent/internal/metrics"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// RouterConfig contains everything the API router needs.
type RouterConfig struct {
	UserHandler      *UserHandler
	VehicleHandler   *VehicleHandler
	CustomerHandler  *CustomerHandler
	AgreementHandler *AgreementHandler

	TokenValidator auth.TokenValidator
	Database       repository.DatabaseHealth
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

// NewRouter builds the HTTP handler for the API.
//
// Layout:
//
//	POST /api/users            registration (no token)
//	POST /api/users/token      token issuance (no token)
//	     /api/users/me         own profile (token)
//	     /api/rent/...         vehicles, customers, agreements (token)
//	GET  /health               liveness + database check
//	GET  /metrics              Prometheus metrics
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(requestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/health", healthHandler(cfg.Database))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		cfg.UserHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.TokenValidator, auth.DefaultConfig()))

			cfg.UserHandler.RegisterProtectedRoutes(r)

			r.Route("/rent", func(r chi.Router) {
				cfg.VehicleHandler.RegisterRoutes(r)
				cfg.CustomerHandler.RegisterRoutes(r)
				cfg.AgreementHandler.RegisterRoutes(r)
			})
		})
	})

	return r
}

// requestLogger logs one line per request.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", r.RemoteAddr).
				Msg("request")
		})
	}
}

// healthHandler reports liveness, including a database ping.
func healthHandler(db repository.DatabaseHealth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  "database unreachable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
