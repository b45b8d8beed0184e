// ABOUTME: SQLite-backed key/value store for settings and cached feeds
// ABOUTME: Survives application restarts; entries with a zero TTL never expire

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"digests-reader/core/interfaces"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DefaultTable is used when no table is configured
	DefaultTable = "cache"

	// DefaultCleanupInterval is how often expired rows are purged
	DefaultCleanupInterval = 5 * time.Minute
)

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger used for key warnings
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTable stores entries in the named table, letting several stores share one file
func WithTable(table string) Option {
	return func(c *Client) {
		c.table = table
	}
}

// WithCleanupInterval changes how often expired rows are purged. Zero disables the purge.
func WithCleanupInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.cleanupInterval = interval
	}
}

// Client implements the Cache interface using SQLite
type Client struct {
	db              *sql.DB
	filePath        string
	table           string
	queries         queries
	logger          Logger
	cleanupInterval time.Duration

	stop      chan struct{}
	done      sync.WaitGroup
	closeOnce sync.Once
}

// NewSQLiteCache opens (or creates) the database at filePath
func NewSQLiteCache(filePath string, opts ...Option) (*Client, error) {
	if filePath == "" {
		filePath = "cache.db"
	}

	client := &Client{
		filePath:        filePath,
		table:           DefaultTable,
		cleanupInterval: DefaultCleanupInterval,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(client)
	}

	q, err := buildQueries(client.table)
	if err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}
	client.queries = q

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// A single connection avoids "database is locked" between writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	client.db = db

	// Settings and the feed cache may share a file through separate clients
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure SQLite database: %w", err)
	}

	if _, err := db.Exec(q.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if client.cleanupInterval > 0 {
		client.done.Add(1)
		go client.cleanupRoutine()
	}

	return client, nil
}

// NewSQLiteCacheWithLogger creates a client that logs suspicious keys
func NewSQLiteCacheWithLogger(filePath string, logger Logger) (*Client, error) {
	return NewSQLiteCache(filePath, WithLogger(logger))
}

// Get retrieves a value. Missing and expired keys return interfaces.ErrKeyNotFound.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key, c.logger); err != nil {
		return nil, err
	}

	var value []byte
	err := c.db.QueryRowContext(ctx, c.queries.get, key, time.Now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

// Set stores a value. A ttl of zero or less stores it without expiry.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}

	var expiry int64
	if ttl > 0 {
		expiry = time.Now().Add(ttl).Unix()
		// Sub-second TTLs would otherwise expire immediately
		if expiry <= time.Now().Unix() {
			expiry = time.Now().Unix() + 1
		}
	}

	if _, err := c.db.ExecContext(ctx, c.queries.set, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, c.queries.del, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

// Clear removes all values from the table
func (c *Client) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, c.queries.clear); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func (c *Client) cleanupRoutine() {
	defer c.done.Done()

	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries
func (c *Client) cleanup() {
	_, _ = c.db.Exec(c.queries.cleanup, time.Now().Unix())
}

// Close stops the cleanup routine and closes the database connection
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.stop)
		c.done.Wait()
		err = c.db.Close()
	})
	return err
}

// Stats returns cache statistics
func (c *Client) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int
	if err := c.db.QueryRow(c.queries.count).Scan(&count); err != nil {
		return nil, err
	}
	stats["total_entries"] = count

	var expired int
	if err := c.db.QueryRow(c.queries.expired, time.Now().Unix()).Scan(&expired); err != nil {
		return nil, err
	}
	stats["expired_entries"] = expired

	var pageCount, pageSize int
	if err := c.db.QueryRow("PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := c.db.QueryRow("PRAGMA page_size").Scan(&pageSize); err == nil {
			stats["db_size_bytes"] = pageCount * pageSize
		}
	}

	stats["file_path"] = c.filePath
	stats["table"] = c.table

	return stats, nil
}
