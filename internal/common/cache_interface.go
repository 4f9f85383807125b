package common

import "time"

// CacheInterface is the lookaside cache the services keep derived
// upstream state behind: club rosters, normalized catalogs, wallet
// balances and the merged activity feed. CacheService backs it in-process
// for single-node deployments; RedisCacheService shares it across
// replicas.
type CacheInterface interface {
	// Set stores a value under key for the given lifetime
	Set(key string, value interface{}, duration time.Duration)

	// Get returns the cached value for key and whether it was present
	Get(key string) (interface{}, bool)

	// Delete drops key. Mutation paths call this to invalidate derived
	// state once a write has gone upstream.
	Delete(key string)

	// GetOrSet returns the cached value, or stores and returns whatever
	// the loader produces when the key is absent
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases the backing connection, if any
	Close() error
}
