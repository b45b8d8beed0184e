// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as storage, HTTP communication and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory store backed by patrickmn/go-cache
// - cache/sqlite: File-backed store, the default home of persisted settings
// - cache/redis: Redis-based store for shared deployments
// - http/standard: net/http client with exponential backoff retries
// - logger/standard: logrus-backed structured logger
//
// Every store satisfies interfaces.Cache and reports a miss as
// interfaces.ErrKeyNotFound. A zero TTL stores an entry without expiry, which
// is how the settings service persists the selected source.
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// SQLite Example:
//
//	store, err := sqlite.NewSQLiteCache("settings.db", sqlite.WithTable("settings"))
//	defer store.Close()
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # HTTP Client
//
// Transport failures and 5xx responses are retried:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com/rss")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger, err := standard.New("debug", "json", os.Stderr)
//	logger.Info("Loaded catalog", map[string]interface{}{
//	    "sources": 10,
//	})
package infrastructure
