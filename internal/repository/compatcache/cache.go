// Package compatcache persists resolved canonical-to-legacy query mappings in
// a key-value store so the compatibility resolver only consults the backend's
// facet metadata on a cold path.
package compatcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/merxlabs/searchgate/internal/db"
	"github.com/merxlabs/searchgate/internal/domain"
	"github.com/merxlabs/searchgate/internal/domain/search"
)

var cacheKeyPrefix = domain.KeyPrefix + "compat:"

// store is the consumer interface for the mapping cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache is a read-through mapping store keyed by canonical query string.
// Store failures degrade to misses; freshness is the store's TTL.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a mapping cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the stored legacy pair for a canonical query, if any.
func (c *Cache) Get(ctx context.Context, canonicalQuery string) (search.CompatibilityArgs, bool) {
	key := cacheKeyPrefix + canonicalQuery

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read compat mapping", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return search.CompatibilityArgs{}, false
	}

	var args search.CompatibilityArgs
	if err := json.Unmarshal(data, &args); err != nil {
		c.logger.Warn("Failed to parse compat mapping", zap.String("key", key), zap.Error(err))
		c.incCache("miss")
		return search.CompatibilityArgs{}, false
	}

	c.incCache("hit")
	return args, true
}

// Put stores a resolved legacy pair. Concurrent writers for the same canonical
// query overwrite each other with identical values, which is benign.
func (c *Cache) Put(ctx context.Context, canonicalQuery string, args search.CompatibilityArgs) {
	key := cacheKeyPrefix + canonicalQuery

	data, err := json.Marshal(args)
	if err != nil {
		c.logger.Warn("Failed to encode compat mapping", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to store compat mapping", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
