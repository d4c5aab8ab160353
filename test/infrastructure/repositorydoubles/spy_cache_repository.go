//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/cachesweep/internal/domain/entities"
	"github.com/rios0rios0/cachesweep/internal/domain/repositories"
)

// DeleteCall records one DeleteCache invocation.
type DeleteCall struct {
	Repository string
	CacheID    int64
}

// SpyCacheRepository implements repositories.CacheRepository as a configurable spy.
// Every call is appended to Calls in order ("repos:<org>", "caches:<repo>",
// "delete:<repo>/<id>") so tests can assert on the exact sequence.
type SpyCacheRepository struct {
	// --- identity ---
	ProviderName string

	// --- ListRepositories ---
	Repositories []entities.Repository
	ListReposErr error
	ListedOrgs   []string

	// --- ListCaches ---
	Caches        map[string][]entities.Cache // keyed by repository name
	ListCachesErr map[string]error
	ListedRepos   []string

	// --- DeleteCache ---
	DeleteErrs  map[int64]error
	DeleteCalls []DeleteCall

	Calls []string
}

var _ repositories.CacheRepository = (*SpyCacheRepository)(nil)

func (p *SpyCacheRepository) Name() string { return p.ProviderName }

func (p *SpyCacheRepository) ListRepositories(
	_ context.Context, org string,
) ([]entities.Repository, error) {
	p.ListedOrgs = append(p.ListedOrgs, org)
	p.Calls = append(p.Calls, "repos:"+org)
	if p.ListReposErr != nil {
		return nil, p.ListReposErr
	}
	return p.Repositories, nil
}

func (p *SpyCacheRepository) ListCaches(
	_ context.Context, repo entities.Repository,
) ([]entities.Cache, error) {
	p.ListedRepos = append(p.ListedRepos, repo.Name)
	p.Calls = append(p.Calls, "caches:"+repo.Name)
	return p.Caches[repo.Name], p.ListCachesErr[repo.Name]
}

func (p *SpyCacheRepository) DeleteCache(
	_ context.Context, repo entities.Repository, cacheID int64,
) error {
	p.DeleteCalls = append(p.DeleteCalls, DeleteCall{Repository: repo.Name, CacheID: cacheID})
	p.Calls = append(p.Calls, fmt.Sprintf("delete:%s/%d", repo.Name, cacheID))
	return p.DeleteErrs[cacheID]
}
