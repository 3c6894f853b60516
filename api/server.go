// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"linkoff-engine/api/handlers"
	"linkoff-engine/api/middleware"
	"linkoff-engine/core/interfaces"
)

const (
	apiTitle   = "LinkOff API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger         interfaces.Logger
	RateLimit      int           // requests per window
	RateWindow     time.Duration // rate limit window
	AllowedOrigins []string      // CORS origins; empty allows all
}

// Engine is everything the handlers drive. *linkoff.Client implements it.
type Engine interface {
	handlers.SettingsService
	handlers.ItemService
	handlers.PageService
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// CORS must run first
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "X-RateLimit-Limit"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Control API for the LinkOff feed and jobs filter"

	api := humachi.New(router, config)

	return api, router
}

// RegisterRoutes registers every handler against engine
func RegisterRoutes(api huma.API, engine Engine) {
	handlers.NewSettingsHandler(engine).RegisterRoutes(api)
	handlers.NewItemHandler(engine).RegisterRoutes(api)
	handlers.NewPageHandler(engine).RegisterRoutes(api)
}
