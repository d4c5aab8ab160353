package repositories

import (
	"context"

	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

// CacheRepository abstracts a Git hosting service that stores CI caches per
// repository (GitHub Actions today).
type CacheRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// ListRepositories returns every repository of the organization, in the
	// order the service lists them.
	ListRepositories(ctx context.Context, org string) ([]entities.Repository, error)

	// ListCaches returns the caches of a repository. When listing stops early
	// the caches gathered so far are returned together with the error.
	ListCaches(ctx context.Context, repo entities.Repository) ([]entities.Cache, error)

	// DeleteCache deletes one cache by its identifier.
	DeleteCache(ctx context.Context, repo entities.Repository, cacheID int64) error
}
