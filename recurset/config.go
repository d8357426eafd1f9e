package recurset

import (
	"time"
)

// EngineConfig holds configuration options for the expansion engine.
type EngineConfig struct {
	CacheEnabled bool
	CacheConfig  CacheConfig

	// MaxExpansionOccurrences bounds how many occurrences an existence
	// check inspects before giving up.
	MaxExpansionOccurrences int
	// LargeRangeThreshold is the range span above which existence checks
	// probe a limited window first.
	LargeRangeThreshold time.Duration
	// LargeRangeLimit is the size of that probe window.
	LargeRangeLimit time.Duration
}

// DefaultEngineConfig provides sensible defaults for production use.
var DefaultEngineConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig:  DefaultCacheConfig,

	MaxExpansionOccurrences: 100,
	LargeRangeThreshold:     90 * 24 * time.Hour,
	LargeRangeLimit:         90 * 24 * time.Hour,
}

// HighPerformanceConfig is tuned for high-traffic scenarios: longer cache
// lifetimes, shallower probing.
var HighPerformanceConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             30 * time.Minute,
		MaxEntries:      5000,
		CleanupInterval: 10 * time.Minute,
	},

	MaxExpansionOccurrences: 50,
	LargeRangeThreshold:     30 * 24 * time.Hour,
	LargeRangeLimit:         30 * 24 * time.Hour,
}

// LowMemoryConfig is tuned for memory-constrained environments.
var LowMemoryConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 2 * time.Minute,
	},

	MaxExpansionOccurrences: 200,
	LargeRangeThreshold:     180 * 24 * time.Hour,
	LargeRangeLimit:         180 * 24 * time.Hour,
}

// DisabledCacheConfig turns caching off entirely.
var DisabledCacheConfig = EngineConfig{
	CacheEnabled: false,

	MaxExpansionOccurrences: 1000,
	LargeRangeThreshold:     365 * 24 * time.Hour,
	LargeRangeLimit:         365 * 24 * time.Hour,
}
