package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/time/rate"

	"github.com/rios0rios0/cachesweep/internal/domain/entities"
	"github.com/rios0rios0/cachesweep/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
)

// CacheRepository implements repositories.CacheRepository for GitHub Actions.
type CacheRepository struct {
	client  *gh.Client
	limiter *rate.Limiter
}

// NewProviderRepository creates a GitHub cache repository from the settings.
// It panics only when settings.BaseURL was not validated beforehand.
func NewProviderRepository(settings *entities.Settings) repositories.CacheRepository {
	repo, err := newCacheRepository(settings, newHTTPClient(settings, retryWaitMin, retryWaitMax))
	if err != nil {
		panic(err)
	}
	return repo
}

func newCacheRepository(settings *entities.Settings, httpClient *http.Client) (*CacheRepository, error) {
	client := gh.NewClient(httpClient).WithAuthToken(settings.Token)

	if settings.BaseURL != "" {
		rawURL := settings.BaseURL
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		baseURL, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", settings.BaseURL, err)
		}
		client.BaseURL = baseURL
	}

	limit := rate.Inf
	if settings.RequestsPerSecond > 0 {
		limit = rate.Limit(settings.RequestsPerSecond)
	}

	return &CacheRepository{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

func (p *CacheRepository) Name() string { return providerName }

// ListRepositories lists all repositories in a GitHub organization, one page
// of 100 at a time, until a page comes back empty.
func (p *CacheRepository) ListRepositories(
	ctx context.Context,
	org string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for page := 1; ; page++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		opts.Page = page
		repos, _, err := p.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repos for %q (page %d): %w", org, page, err)
		}
		if len(repos) == 0 {
			break
		}

		for _, r := range repos {
			defaultBranch := "main"
			if r.DefaultBranch != nil {
				defaultBranch = *r.DefaultBranch
			}
			allRepos = append(allRepos, entities.Repository{
				ID:            strconv.FormatInt(r.GetID(), 10),
				Name:          r.GetName(),
				Organization:  org,
				DefaultBranch: "refs/heads/" + defaultBranch,
				RemoteURL:     r.GetCloneURL(),
				SSHURL:        r.GetSSHURL(),
				ProviderName:  providerName,
			})
		}
	}

	return allRepos, nil
}

// ListCaches lists the Actions caches of a repository. Anything but a 200
// ends the listing; the caches gathered so far are returned with the error.
func (p *CacheRepository) ListCaches(
	ctx context.Context,
	repo entities.Repository,
) ([]entities.Cache, error) {
	var allCaches []entities.Cache
	opts := &gh.ActionsCacheListOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for page := 1; ; page++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return allCaches, err
		}

		opts.Page = page
		list, resp, err := p.client.Actions.ListCaches(ctx, repo.Organization, repo.Name, opts)
		if err != nil {
			return allCaches, fmt.Errorf("failed to list caches for %q (page %d): %w", repo.Name, page, err)
		}
		if resp.StatusCode != http.StatusOK {
			return allCaches, fmt.Errorf(
				"failed to list caches for %q (page %d): unexpected status %d",
				repo.Name, page, resp.StatusCode,
			)
		}
		if list == nil || len(list.ActionsCaches) == 0 {
			break
		}

		for _, c := range list.ActionsCaches {
			allCaches = append(allCaches, entities.Cache{
				ID:             c.GetID(),
				Key:            c.GetKey(),
				Ref:            c.GetRef(),
				Version:        c.GetVersion(),
				SizeInBytes:    c.GetSizeInBytes(),
				CreatedAt:      c.GetCreatedAt().Time,
				LastAccessedAt: c.GetLastAccessedAt().Time,
			})
		}
	}

	return allCaches, nil
}

// DeleteCache deletes one Actions cache. Only a 204 counts as success.
func (p *CacheRepository) DeleteCache(
	ctx context.Context,
	repo entities.Repository,
	cacheID int64,
) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := p.client.Actions.DeleteCachesByID(ctx, repo.Organization, repo.Name, cacheID)
	if err != nil {
		return fmt.Errorf("failed to delete cache %d: %w", cacheID, err)
	}
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to delete cache %d: unexpected status %d", cacheID, resp.StatusCode)
	}
	return nil
}
