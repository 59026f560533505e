// ABOUTME: Feature flags for switching server capabilities on and off without a rebuild
// ABOUTME: Flags read from FEATURE_* environment variables and fall back to per-flag defaults

package featureflags

import (
	"os"
	"strings"
	"sync"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

const (
	// ExtractionCache caches successful extractions
	ExtractionCache FeatureFlag = "extraction_cache"

	// RateLimit applies the per-client token bucket
	RateLimit FeatureFlag = "rate_limit"

	// Sync exposes the /sync snapshot routes
	Sync FeatureFlag = "sync"
)

// Defaults holds the state of every flag when nothing overrides it
var Defaults = map[FeatureFlag]bool{
	ExtractionCache: true,
	RateLimit:       true,
	Sync:            true,
}

// Manager answers whether a flag is on
type Manager interface {
	IsEnabled(flag FeatureFlag) bool
	SetEnabled(flag FeatureFlag, enabled bool)
	GetAllFlags() map[FeatureFlag]bool
}

// EnvManager implements Manager using environment variables.
// An unset or unrecognised variable leaves the flag at its default.
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	prefix    string
	lookup    func(string) (string, bool)
}

// NewEnvManager creates a new environment-based feature flag manager
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		prefix:    prefix,
		lookup:    os.LookupEnv,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *EnvManager) IsEnabled(flag FeatureFlag) bool {
	m.mu.RLock()
	enabled, ok := m.overrides[flag]
	m.mu.RUnlock()
	if ok {
		return enabled
	}

	value, ok := m.lookup(m.prefix + strings.ToUpper(string(flag)))
	if ok {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "enabled", "on":
			return true
		case "false", "0", "disabled", "off":
			return false
		}
	}
	return Defaults[flag]
}

// SetEnabled overrides a flag regardless of the environment
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// GetAllFlags returns the state of all defined flags
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	flags := make(map[FeatureFlag]bool, len(Defaults))
	for flag := range Defaults {
		flags[flag] = m.IsEnabled(flag)
	}
	return flags
}

// StaticManager implements Manager with fixed states; unknown flags use Defaults
type StaticManager struct {
	flags map[FeatureFlag]bool
	mu    sync.RWMutex
}

// NewStaticManager creates a manager with predefined flag states
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	copied := make(map[FeatureFlag]bool, len(flags))
	for k, v := range flags {
		copied[k] = v
	}
	return &StaticManager{flags: copied}
}

// IsEnabled checks if a feature flag is enabled
func (m *StaticManager) IsEnabled(flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if enabled, ok := m.flags[flag]; ok {
		return enabled
	}
	return Defaults[flag]
}

// SetEnabled sets a feature flag's state
func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}

// GetAllFlags returns all flag states
func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	result := make(map[FeatureFlag]bool, len(Defaults))
	for flag := range Defaults {
		result[flag] = m.IsEnabled(flag)
	}
	return result
}
