// ABOUTME: Feature toggles for optional reader behaviour such as feed caching
// ABOUTME: Static and environment-backed managers share one Manager interface

package featureflags

import (
	"context"
	"os"
	"strings"
	"sync"
)

// FeatureFlag names one toggle
type FeatureFlag string

const (
	// CacheEnabled serves repeated fetches of the same source from the feed cache
	CacheEnabled FeatureFlag = "cache_enabled"

	// RateLimitEnabled enables per-IP rate limiting on the HTTP API
	RateLimitEnabled FeatureFlag = "rate_limit_enabled"
)

// All lists every defined flag
var All = []FeatureFlag{CacheEnabled, RateLimitEnabled}

// Manager reports and toggles feature flags
type Manager interface {
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// SetEnabled pins a flag, mostly from tests
	SetEnabled(flag FeatureFlag, enabled bool)

	// GetAllFlags returns a snapshot the caller may modify
	GetAllFlags() map[FeatureFlag]bool
}

// StaticManager holds flag states in memory. Unknown flags are off.
type StaticManager struct {
	mu    sync.RWMutex
	flags map[FeatureFlag]bool
}

// NewStaticManager copies the given states into a new manager
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	m := &StaticManager{flags: make(map[FeatureFlag]bool, len(flags))}
	for flag, enabled := range flags {
		m.flags[flag] = enabled
	}
	return m
}

func (m *StaticManager) IsEnabled(_ context.Context, flag FeatureFlag) bool {
	enabled, _ := m.lookup(flag)
	return enabled
}

func (m *StaticManager) lookup(flag FeatureFlag) (enabled, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	enabled, ok = m.flags[flag]
	return enabled, ok
}

func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	m.flags[flag] = enabled
	m.mu.Unlock()
}

func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[FeatureFlag]bool, len(m.flags))
	for flag, enabled := range m.flags {
		snapshot[flag] = enabled
	}
	return snapshot
}

// EnvManager reads flags from environment variables named prefix plus the
// upper-cased flag, e.g. FEATURE_CACHE_ENABLED. Lookups happen on every call,
// so a changed environment is picked up without a restart.
type EnvManager struct {
	prefix    string
	overrides *StaticManager
	defaults  map[FeatureFlag]bool
}

// NewEnvManager uses "FEATURE_" when prefix is empty
func NewEnvManager(prefix string) *EnvManager {
	return NewEnvManagerWithDefaults(prefix, nil)
}

// NewEnvManagerWithDefaults is like NewEnvManager but reports defaults for
// flags whose variable is unset
func NewEnvManagerWithDefaults(prefix string, defaults map[FeatureFlag]bool) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	m := &EnvManager{
		prefix:    prefix,
		overrides: NewStaticManager(nil),
		defaults:  make(map[FeatureFlag]bool, len(defaults)),
	}
	for flag, enabled := range defaults {
		m.defaults[flag] = enabled
	}
	return m
}

// IsEnabled prefers an override, then the environment, then the default
func (m *EnvManager) IsEnabled(_ context.Context, flag FeatureFlag) bool {
	if enabled, ok := m.overrides.lookup(flag); ok {
		return enabled
	}
	value, ok := os.LookupEnv(m.prefix + strings.ToUpper(string(flag)))
	if !ok {
		return m.defaults[flag]
	}
	return truthy(value)
}

// SetEnabled overrides a flag regardless of the environment
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.overrides.SetEnabled(flag, enabled)
}

// GetAllFlags resolves every flag in All
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	flags := make(map[FeatureFlag]bool, len(All))
	for _, flag := range All {
		flags[flag] = m.IsEnabled(context.Background(), flag)
	}
	return flags
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "enabled":
		return true
	}
	return false
}
