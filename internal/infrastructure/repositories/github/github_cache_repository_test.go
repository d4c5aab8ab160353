//go:build unit

package github //nolint:testpackage // tests unexported constructor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

func newTestRepository(t *testing.T, handler http.Handler, retryMax int) *CacheRepository {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	settings := &entities.Settings{
		Provider:     providerName,
		Organization: "test-org",
		BaseURL:      server.URL,
		Token:        "test-token",
		RetryMax:     retryMax,
	}
	repo, err := newCacheRepository(
		settings,
		newHTTPClient(settings, time.Millisecond, 5*time.Millisecond),
	)
	require.NoError(t, err)
	return repo
}

func testRepo(name string) entities.Repository {
	return entities.Repository{Name: name, Organization: "test-org"}
}

func repoPage(names ...string) string {
	items := make([]string, 0, len(names))
	for i, name := range names {
		items = append(items, fmt.Sprintf(`{"id": %d, "name": %q}`, i+1, name))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func cachePage(ids ...int64) string {
	items := make([]string, 0, len(ids))
	for _, id := range ids {
		items = append(items, fmt.Sprintf(
			`{"id": %d, "key": "key-%d", "ref": "refs/heads/main", "size_in_bytes": 10}`, id, id,
		))
	}
	return fmt.Sprintf(`{"total_count": %d, "actions_caches": [%s]}`, len(ids), strings.Join(items, ","))
}

func TestCacheRepository(t *testing.T) {
	t.Parallel()

	t.Run("Name", func(t *testing.T) {
		t.Parallel()

		t.Run("should return github", func(t *testing.T) {
			t.Parallel()

			// given
			repo := newTestRepository(t, http.NotFoundHandler(), 0)

			// when
			name := repo.Name()

			// then
			assert.Equal(t, "github", name)
		})
	})

	t.Run("ListRepositories", func(t *testing.T) {
		t.Parallel()

		t.Run("should return the union of all pages and stop at the first empty one", func(t *testing.T) {
			t.Parallel()

			// given
			var mu sync.Mutex
			var requestedPages []string
			pages := map[string]string{
				"1": repoPage("alpha", "beta"),
				"2": repoPage("gamma"),
				"3": repoPage(),
				"4": repoPage("never"),
			}
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/orgs/test-org/repos", r.URL.Path)
				assert.Equal(t, "100", r.URL.Query().Get("per_page"))
				page := r.URL.Query().Get("page")
				mu.Lock()
				requestedPages = append(requestedPages, page)
				mu.Unlock()
				_, _ = w.Write([]byte(pages[page]))
			})
			repo := newTestRepository(t, handler, 0)

			// when
			repos, err := repo.ListRepositories(context.Background(), "test-org")

			// then
			require.NoError(t, err)
			names := make([]string, 0, len(repos))
			for _, r := range repos {
				names = append(names, r.Name)
				assert.Equal(t, "test-org", r.Organization)
				assert.Equal(t, "github", r.ProviderName)
			}
			assert.Equal(t, []string{"alpha", "beta", "gamma"}, names)
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, []string{"1", "2", "3"}, requestedPages)
		})

		t.Run("should send the bearer token and API version headers", func(t *testing.T) {
			t.Parallel()

			// given
			var mu sync.Mutex
			var authorization, apiVersion string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				defer mu.Unlock()
				authorization = r.Header.Get("Authorization")
				apiVersion = r.Header.Get("X-GitHub-Api-Version")
				_, _ = w.Write([]byte(`[]`))
			})
			repo := newTestRepository(t, handler, 0)

			// when
			_, err := repo.ListRepositories(context.Background(), "test-org")

			// then
			require.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, "Bearer test-token", authorization)
			assert.NotEmpty(t, apiVersion)
		})

		t.Run("should return error when the organization cannot be listed", func(t *testing.T) {
			t.Parallel()

			// given
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
			})
			repo := newTestRepository(t, handler, 0)

			// when
			repos, err := repo.ListRepositories(context.Background(), "test-org")

			// then
			require.Error(t, err)
			assert.Nil(t, repos)
			assert.Contains(t, err.Error(), "test-org")
		})
	})

	t.Run("ListCaches", func(t *testing.T) {
		t.Parallel()

		t.Run("should paginate until an empty page", func(t *testing.T) {
			t.Parallel()

			// given
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/test-org/app/actions/caches", r.URL.Path)
				switch r.URL.Query().Get("page") {
				case "1":
					_, _ = w.Write([]byte(cachePage(1, 2)))
				case "2":
					_, _ = w.Write([]byte(cachePage(3)))
				default:
					_, _ = w.Write([]byte(cachePage()))
				}
			})
			repo := newTestRepository(t, handler, 0)

			// when
			caches, err := repo.ListCaches(context.Background(), testRepo("app"))

			// then
			require.NoError(t, err)
			require.Len(t, caches, 3)
			assert.Equal(t, int64(1), caches[0].ID)
			assert.Equal(t, "key-1", caches[0].Key)
			assert.Equal(t, "refs/heads/main", caches[0].Ref)
			assert.Equal(t, int64(10), caches[0].SizeInBytes)
			assert.Equal(t, int64(3), caches[2].ID)
		})

		t.Run("should return empty result and error when the first page is not 200", func(t *testing.T) {
			t.Parallel()

			// given
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"message": "Resource not accessible by integration"}`))
			})
			repo := newTestRepository(t, handler, 0)

			// when
			caches, err := repo.ListCaches(context.Background(), testRepo("app"))

			// then
			require.Error(t, err)
			assert.Empty(t, caches)
		})

		t.Run("should treat a success status other than 200 as a failure", func(t *testing.T) {
			t.Parallel()

			// given
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNonAuthoritativeInfo)
				_, _ = w.Write([]byte(cachePage(1)))
			})
			repo := newTestRepository(t, handler, 0)

			// when
			caches, err := repo.ListCaches(context.Background(), testRepo("app"))

			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unexpected status 203")
			assert.Empty(t, caches)
		})

		t.Run("should keep the caches gathered before a failing page", func(t *testing.T) {
			t.Parallel()

			// given
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("page") == "1" {
					_, _ = w.Write([]byte(cachePage(5)))
					return
				}
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			})
			repo := newTestRepository(t, handler, 0)

			// when
			caches, err := repo.ListCaches(context.Background(), testRepo("app"))

			// then
			require.Error(t, err)
			require.Len(t, caches, 1)
			assert.Equal(t, int64(5), caches[0].ID)
		})

		t.Run("should stop when the cache list is absent", func(t *testing.T) {
			t.Parallel()

			// given
			var calls atomic.Int32
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				_, _ = w.Write([]byte(`{"total_count": 0}`))
			})
			repo := newTestRepository(t, handler, 0)

			// when
			caches, err := repo.ListCaches(context.Background(), testRepo("app"))

			// then
			require.NoError(t, err)
			assert.Empty(t, caches)
			assert.Equal(t, int32(1), calls.Load())
		})
	})

	t.Run("DeleteCache", func(t *testing.T) {
		t.Parallel()

		t.Run("should succeed on 204", func(t *testing.T) {
			t.Parallel()

			// given
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/repos/test-org/app/actions/caches/101", r.URL.Path)
				w.WriteHeader(http.StatusNoContent)
			})
			repo := newTestRepository(t, handler, 0)

			// when
			err := repo.DeleteCache(context.Background(), testRepo("app"), 101)

			// then
			require.NoError(t, err)
		})

		t.Run("should fail on 404", func(t *testing.T) {
			t.Parallel()

			// given
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			})
			repo := newTestRepository(t, handler, 0)

			// when
			err := repo.DeleteCache(context.Background(), testRepo("app"), 101)

			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), "101")
		})

		t.Run("should fail on a 200 without content semantics", func(t *testing.T) {
			t.Parallel()

			// given
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			repo := newTestRepository(t, handler, 0)

			// when
			err := repo.DeleteCache(context.Background(), testRepo("app"), 101)

			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unexpected status 200")
		})

		t.Run("should retry transient server errors", func(t *testing.T) {
			t.Parallel()

			// given
			var calls atomic.Int32
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if calls.Add(1) == 1 {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})
			repo := newTestRepository(t, handler, 2)

			// when
			err := repo.DeleteCache(context.Background(), testRepo("app"), 101)

			// then
			require.NoError(t, err)
			assert.Equal(t, int32(2), calls.Load())
		})

		t.Run("should report the last status once retries are exhausted", func(t *testing.T) {
			t.Parallel()

			// given
			var calls atomic.Int32
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusServiceUnavailable)
			})
			repo := newTestRepository(t, handler, 1)

			// when
			err := repo.DeleteCache(context.Background(), testRepo("app"), 101)

			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), "503")
			assert.Equal(t, int32(2), calls.Load())
		})
	})

	t.Run("RequestsPerSecond", func(t *testing.T) {
		t.Parallel()

		t.Run("should pace requests when configured", func(t *testing.T) {
			t.Parallel()

			// given
			settings := &entities.Settings{Token: "test-token", RequestsPerSecond: 5}

			// when
			repo, err := newCacheRepository(settings, http.DefaultClient)

			// then
			require.NoError(t, err)
			assert.Equal(t, rate.Limit(5), repo.limiter.Limit())
		})

		t.Run("should not pace requests by default", func(t *testing.T) {
			t.Parallel()

			// given
			settings := &entities.Settings{Token: "test-token"}

			// when
			repo, err := newCacheRepository(settings, http.DefaultClient)

			// then
			require.NoError(t, err)
			assert.Equal(t, rate.Inf, repo.limiter.Limit())
		})
	})
}
