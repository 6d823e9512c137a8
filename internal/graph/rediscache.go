package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/cloudgraph/ikg/pkg/model"
)

// CachedStoreConfig configures the Redis read-through cache layered in
// front of another Store. Grounded on the teacher's RedisCache /
// RedisConfig shape, narrowed to standalone-client options since this
// core has no L1 local cache or cluster/sentinel deployment to manage.
type CachedStoreConfig struct {
	Addr       string
	Password   string
	DB         int
	KeyPrefix  string
	DefaultTTL time.Duration
}

// DefaultCachedStoreConfig mirrors the teacher's DefaultRedisConfig
// defaults for the options this core actually uses.
func DefaultCachedStoreConfig() CachedStoreConfig {
	return CachedStoreConfig{
		Addr:       "localhost:6379",
		KeyPrefix:  "ikg:",
		DefaultTTL: 5 * time.Minute,
	}
}

// CachedStore wraps another Store with a Redis read-through cache over
// GetNode, invalidated on every write that could change a node's
// value. Every other Store method passes straight through to the
// wrapped implementation.
type CachedStore struct {
	Store
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewCachedStore wraps inner with a Redis cache per cfg. It pings the
// client once up front so misconfiguration surfaces at construction
// time rather than on the first query.
func NewCachedStore(ctx context.Context, inner Store, cfg CachedStoreConfig) (*CachedStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedStore{Store: inner, client: client, prefix: cfg.KeyPrefix, ttl: ttl}, nil
}

// Close releases the underlying Redis client.
func (c *CachedStore) Close() error {
	return c.client.Close()
}

func (c *CachedStore) nodeKey(id string) string {
	return c.prefix + "node:" + id
}

// GetNode serves from cache when present, otherwise falls through to
// the wrapped Store and populates the cache on the way out.
func (c *CachedStore) GetNode(ctx context.Context, id string) (*model.Node, error) {
	key := c.nodeKey(id)
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var n model.Node
		if jsonErr := json.Unmarshal(raw, &n); jsonErr == nil {
			return &n, nil
		}
	}

	n, err := c.Store.GetNode(ctx, id)
	if err != nil || n == nil {
		return n, err
	}
	if raw, err := json.Marshal(n); err == nil {
		c.client.Set(ctx, key, raw, c.ttl)
	}
	return n, nil
}

// UpsertNode writes through to the wrapped Store and invalidates the
// node's cache entry, since a cached stale value would be wrong on the
// very next read otherwise.
func (c *CachedStore) UpsertNode(ctx context.Context, input model.NodeInput) (model.Node, error) {
	n, err := c.Store.UpsertNode(ctx, input)
	if err == nil {
		c.client.Del(ctx, c.nodeKey(n.ID))
	}
	return n, err
}

// UpsertNodes writes through and invalidates every affected node's
// cache entry.
func (c *CachedStore) UpsertNodes(ctx context.Context, inputs []model.NodeInput) ([]model.Node, error) {
	nodes, err := c.Store.UpsertNodes(ctx, inputs)
	if err == nil {
		keys := make([]string, len(nodes))
		for i, n := range nodes {
			keys[i] = c.nodeKey(n.ID)
		}
		if len(keys) > 0 {
			c.client.Del(ctx, keys...)
		}
	}
	return nodes, err
}

// MarkNodesDisappeared writes through and invalidates the cache entry of
// every node whose status it changed.
func (c *CachedStore) MarkNodesDisappeared(ctx context.Context, staleBefore time.Time, provider *model.Provider) ([]string, error) {
	ids, err := c.Store.MarkNodesDisappeared(ctx, staleBefore, provider)
	if err == nil && len(ids) > 0 {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = c.nodeKey(id)
		}
		c.client.Del(ctx, keys...)
	}
	return ids, err
}
