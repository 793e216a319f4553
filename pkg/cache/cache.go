// Package cache stores rendered artifacts between CLI runs.
//
// A pattern is fully determined by its token, so an artifact keyed by token,
// format, scale and palette never goes stale; entries expire only when a TTL
// is given. Keys are built by a [Keyer] so callers never hand-assemble them.
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1:")
//	key := k.ArtifactKey(token, cache.ArtifactKeyOpts{Format: "png", Scale: 2})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(token string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds everything besides the token that changes the bytes
// of a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Scale       float64 `json:"scale,omitempty"`
	Palette     string  `json:"palette,omitempty"`
	BaseURL     string  `json:"base_url,omitempty"`
	Columns     int     `json:"columns,omitempty"`
	Transparent bool    `json:"transparent,omitempty"`
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>" over the token and options.
func (DefaultKeyer) ArtifactKey(token string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", token, opts)
}
