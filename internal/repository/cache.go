// Package repository defines data access interfaces for FleetRent.
package repository

import (
	"context"
	"strconv"
	"time"
)

// =============================================================================
// Cache Interface
// =============================================================================

// Cache defines the interface for caching operations.
// Implemented by the in-memory cache for single-node deployments and by
// Redis for multi-node ones. The auth layer uses it to avoid a database
// round trip on every bearer-token lookup.
type Cache interface {
	// Get retrieves a value by key.
	// Returns ErrCacheMiss if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an optional TTL.
	// If ttl is 0, the value doesn't expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists.
	Exists(ctx context.Context, key string) (bool, error)
}

// =============================================================================
// Common Cache Keys
// =============================================================================

// CacheKey generates cache keys for common scenarios.
type CacheKey struct{}

// Token returns a cache key for a bearer token lookup.
func (CacheKey) Token(key string) string {
	return "cache:token:" + key
}

// UserByID returns a cache key for user metadata.
func (CacheKey) UserByID(id int64) string {
	return "cache:user:id:" + strconv.FormatInt(id, 10)
}
