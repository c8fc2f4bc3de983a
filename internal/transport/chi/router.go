// Package chi exposes the query service over HTTP using the chi router.
package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogqa/internal/metrics"
)

// RouterConfig holds the middleware settings of the HTTP router.
type RouterConfig struct {
	APIKeys   []string
	RateRPS   float64
	RateBurst int
}

// NewRouter mounts the API routes behind the standard middleware chain:
// recovery, request ID, wide-event logging, auth, rate limiting, metrics.
func NewRouter(s *Server, cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(middleware.RequestID)
	r.Use(WideEventMiddleware(logger))
	r.Use(BearerAuthMiddleware(cfg.APIKeys))
	r.Use(RateLimitMiddleware(cfg.RateRPS, cfg.RateBurst))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/query", s.Query)
		r.Get("/products", s.SearchProducts)
		r.Get("/faq", s.LookupFAQ)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})

	return r
}
