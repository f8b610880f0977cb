// Package cache stores computed results keyed by a hash of their inputs.
//
// Three backends implement [Cache]:
//   - [NullCache]: stores nothing, the default
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for API servers
//
// Keys come from a [Keyer]. Every key embeds a SHA-256 hash of the full
// input, so a hit always returns what a fresh computation would.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the data stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default lifetimes for cached results. Results are pure functions of
// their keys, so these only bound storage growth.
const (
	TTLRebuild  = 24 * time.Hour
	TTLPack     = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Backend names accepted by New.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Dir       string
	RedisAddr string
}

// New opens the backend named by opts.Backend. An empty backend is none.
func New(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		dir := opts.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCache(ctx, RedisConfig{Addr: opts.RedisAddr})
	}
	return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
}
