// ABOUTME: Composition root wiring configuration into stores, gateways and view-models
// ABOUTME: Shared by the HTTP server and the CLI so both run the same object graph

package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"digests-reader/core/catalog"
	"digests-reader/core/feed"
	"digests-reader/core/interfaces"
	"digests-reader/core/reader"
	"digests-reader/core/settings"
	"digests-reader/core/viewmodel"
	"digests-reader/infrastructure/cache/memory"
	"digests-reader/infrastructure/cache/redis"
	"digests-reader/infrastructure/cache/sqlite"
	stdhttp "digests-reader/infrastructure/http/standard"
	stdlogger "digests-reader/infrastructure/logger/standard"
	"digests-reader/pkg/config"
	"digests-reader/pkg/featureflags"
)

const (
	settingsTable = "settings"
	feedTable     = "feed_cache"
	redisPrefix   = "digests-reader:"
)

// App holds the long-lived collaborators of the reader
type App struct {
	Config     *config.Config
	Logger     interfaces.Logger
	Flags      featureflags.Manager
	Catalog    *catalog.Catalog
	Settings   *settings.Service
	Feeds      *feed.FeedService
	Articles   *reader.Service
	HTTPClient interfaces.HTTPClient

	closers []io.Closer
}

// Option customizes New
type Option func(*App)

// WithLogger replaces the logger built from the log configuration
func WithLogger(logger interfaces.Logger) Option {
	return func(a *App) {
		a.Logger = logger
	}
}

// WithHTTPClient replaces the retrying HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(a *App) {
		a.HTTPClient = client
	}
}

// WithFlags replaces the environment feature flags
func WithFlags(flags featureflags.Manager) Option {
	return func(a *App) {
		a.Flags = flags
	}
}

// New validates cfg and builds the application graph
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{Config: cfg}
	for _, opt := range opts {
		opt(app)
	}

	if app.Logger == nil {
		logger, err := stdlogger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
		if err != nil {
			return nil, err
		}
		app.Logger = logger
	}

	if app.Flags == nil {
		app.Flags = featureflags.NewEnvManagerWithDefaults("FEATURE_", map[featureflags.FeatureFlag]bool{
			featureflags.CacheEnabled:     true,
			featureflags.RateLimitEnabled: true,
		})
	}

	if app.HTTPClient == nil {
		app.HTTPClient = stdhttp.NewStandardHTTPClient(cfg.Feed.FetchTimeout, stdhttp.WithLogger(app.Logger))
	}

	settingsStore, err := app.openStore(cfg.Settings.Store, settingsTable)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	app.Settings = settings.NewService(settingsStore, app.Logger)

	feedCache, err := app.openStore(cfg.Cache.Type, feedTable)
	if err != nil {
		app.Logger.Error("Failed to open feed cache, falling back to memory", map[string]interface{}{
			"cache_type": cfg.Cache.Type,
			"error":      err.Error(),
		})
		feedCache = memory.NewMemoryCacheWithCleanup(cfg.Cache.Memory.CleanupInterval)
	}

	app.Feeds = feed.NewFeedService(interfaces.Dependencies{
		Cache:      feedCache,
		HTTPClient: app.HTTPClient,
		Logger:     app.Logger,
	})
	app.Feeds.SetFeatureFlags(app.Flags)
	app.Feeds.SetCacheTTL(cfg.Feed.CacheTTL)

	// Articles share the feed cache; keys are prefixed per kind
	app.Articles = reader.NewService(interfaces.Dependencies{
		Cache:      feedCache,
		HTTPClient: app.HTTPClient,
		Logger:     app.Logger,
	})

	if cfg.Feed.CatalogPath != "" {
		app.Catalog = catalog.FromFile(cfg.Feed.CatalogPath, app.Logger)
	} else {
		app.Catalog = catalog.Bundled(app.Logger)
	}

	app.Logger.Debug("Application initialized", map[string]interface{}{
		"settings_store": cfg.Settings.Store,
		"cache_type":     cfg.Cache.Type,
		"catalog":        cfg.Feed.CatalogPath,
	})

	return app, nil
}

// openStore returns the key/value backend named by kind
func (a *App) openStore(kind, table string) (interfaces.Cache, error) {
	switch kind {
	case config.StoreSQLite:
		store, err := sqlite.NewSQLiteCache(a.Config.Settings.Path,
			sqlite.WithTable(table),
			sqlite.WithLogger(a.Logger),
		)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		return store, nil
	case config.StoreRedis:
		store, err := redis.NewRedisCacheWithPrefix(a.Config.Cache.Redis, redisPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		return store, nil
	default:
		return memory.NewMemoryCacheWithCleanup(a.Config.Cache.Memory.CleanupInterval), nil
	}
}

// NewSelectionModel builds a selection model over the catalog and persisted settings
func (a *App) NewSelectionModel(ctx context.Context) (*viewmodel.SourceSelectionModel, error) {
	return viewmodel.NewSourceSelectionModel(ctx, a.Catalog, a.Settings, a.Logger)
}

// NewFeedModel builds a feed model. delegate may be nil.
func (a *App) NewFeedModel(delegate viewmodel.FeedDelegate) *viewmodel.FeedModel {
	return viewmodel.NewFeedModel(viewmodel.FeedConfig{
		Settings:     a.Settings,
		Data:         a.Feeds,
		Logger:       a.Logger,
		Delegate:     delegate,
		FetchTimeout: a.Config.Feed.FetchTimeout,
	})
}

// Close releases stores in reverse order of opening
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// LoadDeadline is the longest a caller should wait for one feed load outcome
func (a *App) LoadDeadline() time.Duration {
	return a.Config.Feed.FetchTimeout + 5*time.Second
}
