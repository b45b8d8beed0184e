// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Parses server, storage, feed and logging settings with caarlos0/env

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends accepted for the feed cache and the settings store
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains the feed response cache configuration
	Cache CacheConfig

	// Settings selects where the chosen source is persisted
	Settings SettingsConfig

	// Feed contains fetching configuration
	Feed FeedConfig

	// Log contains logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `env:"PORT" envDefault:"8000"`

	// RateLimit is the number of requests allowed per client per minute
	RateLimit int `env:"RATE_LIMIT" envDefault:"100"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/sqlite/redis)
	Type string `env:"CACHE_TYPE" envDefault:"memory"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`

	// Password is the Redis authentication password
	Password string `env:"REDIS_PASSWORD"`

	// DB is the Redis database number
	DB int `env:"REDIS_DB" envDefault:"0"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged
	CleanupInterval time.Duration `env:"MEMORY_CACHE_EXPIRATION" envDefault:"1h"`
}

// SettingsConfig holds the settings store configuration
type SettingsConfig struct {
	// Store is the backend holding the selected source (memory/sqlite/redis)
	Store string `env:"SETTINGS_STORE" envDefault:"sqlite"`

	// Path is the SQLite file, also used for the sqlite feed cache
	Path string `env:"SETTINGS_PATH" envDefault:"settings.db"`
}

// FeedConfig holds catalog and fetch configuration
type FeedConfig struct {
	// CatalogPath overrides the embedded catalog when set
	CatalogPath string `env:"CATALOG_PATH"`

	// FetchTimeout bounds a single feed download
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`

	// CacheTTL is how long a fetched feed is served from cache
	CacheTTL time.Duration `env:"FEED_CACHE_TTL" envDefault:"10m"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is text or json
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	return parse(env.Options{})
}

// LoadFromMap loads configuration from the given variables instead of the process environment
func LoadFromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func validStore(store string) bool {
	switch store {
	case StoreMemory, StoreSQLite, StoreRedis:
		return true
	}
	return false
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.New("rate limit must be at least 1 request per minute")
	}

	if !validStore(c.Cache.Type) {
		return errors.New("cache type must be 'memory', 'sqlite' or 'redis'")
	}

	if !validStore(c.Settings.Store) {
		return errors.New("settings store must be 'memory', 'sqlite' or 'redis'")
	}

	usesRedis := c.Cache.Type == StoreRedis || c.Settings.Store == StoreRedis
	if usesRedis && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis")
	}

	usesSQLite := c.Cache.Type == StoreSQLite || c.Settings.Store == StoreSQLite
	if usesSQLite && c.Settings.Path == "" {
		return errors.New("settings path cannot be empty when using sqlite")
	}

	if c.Feed.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	if c.Feed.CacheTTL < 0 {
		return errors.New("feed cache ttl cannot be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}
