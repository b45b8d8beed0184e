// ABOUTME: Huma API server configuration and setup
// ABOUTME: Wires the reader's view-models behind an OpenAPI-documented HTTP surface

package api

import (
	"context"
	"net/http"
	"time"

	"digests-reader/api/handlers"
	"digests-reader/api/middleware"
	"digests-reader/bootstrap"
	"digests-reader/core/interfaces"
	"digests-reader/core/viewmodel"
	"digests-reader/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	apiTitle       = "Digests Reader API"
	apiDescription = "API for browsing the source catalog, saving a source and reading its feed"
	defaultVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window

	// Flags gates rate limiting. Nil means rate limiting follows RateLimit alone.
	Flags featureflags.Manager
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler())

	// The OpenAPI document is served at /openapi.json and the docs UI at /docs
	return humachi.New(router, humaConfig(defaultVersion)), router
}

// NewAPIWithMiddleware creates a new API with middleware configured.
// The returned stop function releases the rate limiter, if any.
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router, func()) {
	router := chi.NewRouter()

	// CORS should be first
	router.Use(corsHandler())

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	stop := func() {}
	if rateLimited(cfg) {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
		stop = limiter.Stop
	}

	return humachi.New(router, humaConfig(defaultVersion)), router, stop
}

func rateLimited(cfg APIConfig) bool {
	if cfg.RateLimit <= 0 || cfg.RateWindow <= 0 {
		return false
	}
	if cfg.Flags == nil {
		return true
	}
	return cfg.Flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled)
}

func humaConfig(version string) huma.Config {
	config := huma.DefaultConfig(apiTitle, version)
	config.Info.Description = apiDescription
	return config
}

func corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}

// Server is the reader exposed over HTTP. One selection model and one feed
// model are shared by every request, the same way a single screen would own them.
type Server struct {
	API    huma.API
	Router chi.Router

	feed *viewmodel.FeedModel
	stop func()
}

// NewServer builds the API over app and registers every handler
func NewServer(ctx context.Context, app *bootstrap.App, version string) (*Server, error) {
	selection, err := app.NewSelectionModel(ctx)
	if err != nil {
		return nil, err
	}
	feedModel := app.NewFeedModel(nil)

	humaAPI, router, stop := NewAPIWithMiddleware(APIConfig{
		Logger:     app.Logger,
		RateLimit:  app.Config.Server.RateLimit,
		RateWindow: time.Minute,
		Flags:      app.Flags,
	})
	if version != "" {
		humaAPI.OpenAPI().Info.Version = version
	}

	handlers.NewHealthHandler(app.Flags, version).RegisterRoutes(humaAPI)
	handlers.NewSourcesHandler(selection).RegisterRoutes(humaAPI)
	handlers.NewFeedHandler(feedModel, app.LoadDeadline()).RegisterRoutes(humaAPI)
	handlers.NewArticleHandler(app.Articles).RegisterRoutes(humaAPI)

	return &Server{
		API:    humaAPI,
		Router: router,
		feed:   feedModel,
		stop:   stop,
	}, nil
}

// Close stops background work owned by the server
func (s *Server) Close() {
	s.stop()
	s.feed.Close()
}
