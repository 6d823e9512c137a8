// Package config holds the engine-wide settings recognized by the core
// (§6), following the teacher's struct-of-structs configuration shape.
package config

import "fmt"

// Config is the top-level engine configuration.
type Config struct {
	Engine  EngineConfig  `json:"engine"`
	Storage StorageConfig `json:"storage"`
	Logging LoggingConfig `json:"logging"`
}

// EngineConfig holds the four settings spec.md §6 names explicitly.
type EngineConfig struct {
	MaxTraversalDepth    int  `json:"maxTraversalDepth"`
	StaleThresholdMs     int64 `json:"staleThresholdMs"`
	EnableDriftDetection bool `json:"enableDriftDetection"`
	PruneOrphanedEdges   bool `json:"pruneOrphanedEdges"`
}

// StorageConfig selects and configures a Storage implementation.
type StorageConfig struct {
	Backend string `json:"backend"` // "memory" | "sqlite"
	Path    string `json:"path,omitempty"`

	// CacheEnabled layers a Redis read-through cache over the selected
	// backend (internal/graph.CachedStore) when set.
	CacheEnabled bool   `json:"cacheEnabled,omitempty"`
	CacheAddr    string `json:"cacheAddr,omitempty"`
}

// LoggingConfig controls the process-wide logger.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Default returns the configuration with spec.md §6's documented defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxTraversalDepth:    8,
			StaleThresholdMs:     86_400_000,
			EnableDriftDetection: true,
			PruneOrphanedEdges:   true,
		},
		Storage: StorageConfig{Backend: "memory"},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Validate checks the configuration for internally inconsistent values.
// Matches the teacher's manual validateConfig pattern rather than a
// struct-tag validation library (see DESIGN.md).
func (c *Config) Validate() error {
	if c.Engine.MaxTraversalDepth <= 0 {
		return fmt.Errorf("maxTraversalDepth must be positive, got %d", c.Engine.MaxTraversalDepth)
	}
	if c.Engine.StaleThresholdMs <= 0 {
		return fmt.Errorf("staleThresholdMs must be positive, got %d", c.Engine.StaleThresholdMs)
	}
	switch c.Storage.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}
	if c.Storage.Backend == "sqlite" && c.Storage.Path == "" {
		return fmt.Errorf("sqlite backend requires a storage path")
	}
	if c.Storage.CacheEnabled && c.Storage.CacheAddr == "" {
		return fmt.Errorf("cacheEnabled requires a cacheAddr")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
