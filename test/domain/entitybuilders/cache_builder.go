//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

// CacheBuilder helps create test caches with a fluent interface.
type CacheBuilder struct {
	*testkit.BaseBuilder
	id          int64
	key         string
	ref         string
	sizeInBytes int64
	accessedAt  time.Time
}

// NewCacheBuilder creates a new cache builder with sensible defaults.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          1,
		key:         "Linux-go-build-abc123",
		ref:         "refs/heads/main",
		sizeInBytes: 1024,
		accessedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithID sets the cache identifier.
func (b *CacheBuilder) WithID(id int64) *CacheBuilder {
	b.id = id
	return b
}

// WithKey sets the cache key.
func (b *CacheBuilder) WithKey(key string) *CacheBuilder {
	b.key = key
	return b
}

// WithRef sets the git ref the cache was created for.
func (b *CacheBuilder) WithRef(ref string) *CacheBuilder {
	b.ref = ref
	return b
}

// WithSize sets the cache size in bytes.
func (b *CacheBuilder) WithSize(size int64) *CacheBuilder {
	b.sizeInBytes = size
	return b
}

// Build creates the cache (satisfies testkit.Builder interface).
func (b *CacheBuilder) Build() interface{} {
	return b.BuildCache()
}

// BuildCache creates the cache with a concrete return type.
func (b *CacheBuilder) BuildCache() entities.Cache {
	return entities.Cache{
		ID:             b.id,
		Key:            b.key,
		Ref:            b.ref,
		Version:        "v1",
		SizeInBytes:    b.sizeInBytes,
		CreatedAt:      b.accessedAt,
		LastAccessedAt: b.accessedAt,
	}
}
