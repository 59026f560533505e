// ABOUTME: Huma API server configuration and setup
// ABOUTME: Builds the chi router with CORS, request logging and per-client rate limiting

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"feeds-app-api/api/middleware"
	"feeds-app-api/core/interfaces"
)

const (
	apiTitle   = "Feeds API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger    interfaces.Logger
	RateLimit float64 // requests per second per client
	RateBurst int
}

// NewAPI creates a Huma API without logging or rate limiting
func NewAPI() (huma.API, chi.Router) {
	api, router, _ := NewServerAPI(APIConfig{})
	return api, router
}

// NewServerAPI creates a new API with middleware configured.
// The returned limiter is nil when rate limiting is disabled.
func NewServerAPI(cfg APIConfig) (huma.API, chi.Router, *middleware.RateLimiter) {
	router := chi.NewRouter()

	// CORS must run before rate limiting
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"X-Feed-Type", "X-RateLimit-Limit", "Retry-After", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 && cfg.RateBurst > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Content extraction, feed proxy and reading-state sync for the Feeds reader"

	api := humachi.New(router, config)

	return api, router, limiter
}
