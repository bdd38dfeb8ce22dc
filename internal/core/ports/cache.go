package ports

import (
	"context"
	"time"
)

// Cache defines a minimal key-value contract with per-key TTL. The session
// backing store is built on it; implementations should degrade gracefully so
// callers can surface store failures without crashing.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL (0 or negative means no expiration if supported).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
}
