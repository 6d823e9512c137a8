package graph

import (
	"context"
	"fmt"

	"github.com/cloudgraph/ikg/internal/config"
)

// NewStoreFromConfig selects and constructs a Store implementation per
// cfg.Backend ("memory" | "sqlite"), the storage factory spec.md §6's
// configuration section implies but leaves to the caller to wire. When
// cfg.CacheEnabled is set, the selected backend is wrapped in a Redis
// read-through CachedStore.
func NewStoreFromConfig(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	var store Store
	switch cfg.Backend {
	case "", "memory":
		store = NewMemoryStore()
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a storage path")
		}
		s, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}

	if !cfg.CacheEnabled {
		return store, nil
	}
	cacheCfg := DefaultCachedStoreConfig()
	cacheCfg.Addr = cfg.CacheAddr
	return NewCachedStore(ctx, store, cacheCfg)
}
