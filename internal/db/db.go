// Package db abstracts the key-value store backing the persisted
// canonical-to-legacy mapping cache.
package db

import (
	"context"
	"time"
)

// Store is the database facade used by the mapping cache.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides the key-value operations the mapping cache needs. Cache
// entries expire by TTL only, so there is no unbounded Set and no delete.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
