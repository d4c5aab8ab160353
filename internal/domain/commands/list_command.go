package commands

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cachesweep/internal/domain/entities"
	infraRepos "github.com/rios0rios0/cachesweep/internal/infrastructure/repositories"
)

// List is the interface for the list command.
type List interface {
	Execute(ctx context.Context, settings *entities.Settings) ([]entities.Inventory, error)
}

// ListCommand prints the cache inventory of the organization without deleting anything.
type ListCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
}

// NewListCommand creates a new ListCommand.
func NewListCommand(providerRegistry *infraRepos.ProviderRegistry) *ListCommand {
	return &ListCommand{providerRegistry: providerRegistry}
}

// Execute lists every repository and its caches.
func (it *ListCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
) ([]entities.Inventory, error) {
	provider, err := it.providerRegistry.Get(settings)
	if err != nil {
		return nil, err
	}

	repos, err := provider.ListRepositories(ctx, settings.Organization)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of %q: %w", settings.Organization, err)
	}

	inventories := make([]entities.Inventory, 0, len(repos))
	var totalCaches int
	var totalBytes int64

	for _, repo := range repos {
		caches, listErr := provider.ListCaches(ctx, repo)
		inventory := entities.Inventory{Repository: repo, Caches: caches, ListErr: listErr}
		inventories = append(inventories, inventory)

		if listErr != nil {
			logger.Errorf("Failed to retrieve caches for %s: %v", repo.Name, listErr)
		}
		logger.Infof("%s: %d caches (%d bytes)", repo.Name, len(caches), inventory.TotalBytes())
		for _, c := range caches {
			logger.Debugf(
				"  cache %d key=%s ref=%s size=%d last_accessed=%s",
				c.ID, c.Key, c.Ref, c.SizeInBytes, c.LastAccessedAt.Format(time.RFC3339),
			)
		}

		totalCaches += len(caches)
		totalBytes += inventory.TotalBytes()
	}

	logger.Infof(
		"%d caches (%d bytes) across %d repositories in %q",
		totalCaches, totalBytes, len(repos), settings.Organization,
	)
	return inventories, nil
}
