// ABOUTME: Parameterized SQL for the SQLite key/value store
// ABOUTME: Validates table names and keys so every statement stays injection safe

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Logger is the subset of interfaces.Logger the store needs
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	maxKeyLength    = 255
	maxValueLength  = 10 * 1024 * 1024
)

// suspiciousPatterns are harmless under parameterization but worth a warning
var suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

// queries holds the statements for one table. An expiry of 0 marks an entry
// that never expires.
type queries struct {
	schema  string
	get     string
	set     string
	del     string
	clear   string
	cleanup string
	count   string
	expired string
}

// validateName validates table names to prevent SQL injection
func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	return nil
}

// buildQueries renders the statements for table
func buildQueries(table string) (queries, error) {
	if err := validateName(table); err != nil {
		return queries{}, err
	}

	return queries{
		schema: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				key TEXT PRIMARY KEY,
				value BLOB NOT NULL,
				expiry INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_%[1]s_expiry ON %[1]s(expiry);`, table),
		get:     fmt.Sprintf("SELECT value FROM %s WHERE key = ? AND (expiry = 0 OR expiry > ?)", table),
		set:     fmt.Sprintf("INSERT OR REPLACE INTO %s (key, value, expiry) VALUES (?, ?, ?)", table),
		del:     fmt.Sprintf("DELETE FROM %s WHERE key = ?", table),
		clear:   fmt.Sprintf("DELETE FROM %s", table),
		cleanup: fmt.Sprintf("DELETE FROM %s WHERE expiry <> 0 AND expiry <= ?", table),
		count:   fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
		expired: fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE expiry <> 0 AND expiry <= ?", table),
	}, nil
}

// ValidateKey validates a cache key. Suspicious characters are allowed but logged.
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}

	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
		}
	}

	return nil
}

// truncateKey returns a safe preview of the key for logging
func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates a cache value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}

	return nil
}
