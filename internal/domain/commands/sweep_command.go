package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cachesweep/internal/domain/entities"
	"github.com/rios0rios0/cachesweep/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/cachesweep/internal/infrastructure/repositories"
)

// Sweep is the interface for the sweep command.
type Sweep interface {
	Execute(ctx context.Context, settings *entities.Settings, opts SweepOptions) (*entities.SweepReport, error)
}

// SweepOptions holds runtime options for a single sweep.
type SweepOptions struct {
	DryRun  bool
	Verbose bool
}

// SweepCommand deletes every cache of every repository in the organization:
// list repositories -> list caches per repository -> delete each cache.
type SweepCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
}

// NewSweepCommand creates a new SweepCommand with the given registry.
func NewSweepCommand(providerRegistry *infraRepos.ProviderRegistry) *SweepCommand {
	return &SweepCommand{providerRegistry: providerRegistry}
}

// Execute runs one sweep. Only a failure to list the repositories aborts it;
// listing and deletion failures are logged, recorded and skipped.
func (it *SweepCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts SweepOptions,
) (*entities.SweepReport, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	provider, err := it.providerRegistry.Get(settings)
	if err != nil {
		return nil, err
	}

	repos, err := provider.ListRepositories(ctx, settings.Organization)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of %q: %w", settings.Organization, err)
	}

	logger.Infof("Found %d repositories in %q", len(repos), settings.Organization)

	report := entities.NewSweepReport(settings.Organization, opts.DryRun)
	for _, repo := range repos {
		report.Add(it.sweepRepository(ctx, provider, repo, opts))
	}

	if opts.DryRun {
		logger.Infof(
			"Dry run complete: %d repositories processed, %d caches would be deleted, %d failures",
			report.Repositories(), report.Skipped(), report.Failures(),
		)
	} else {
		logger.Infof(
			"Sweep complete: %d repositories processed, %d caches deleted, %d failures",
			report.Repositories(), report.Deleted(), report.Failures(),
		)
	}
	return report, nil
}

func (it *SweepCommand) sweepRepository(
	ctx context.Context,
	provider repositories.CacheRepository,
	repo entities.Repository,
	opts SweepOptions,
) entities.RepositoryOutcome {
	logger.Infof("Checking caches for %s...", repo.Name)

	caches, listErr := provider.ListCaches(ctx, repo)
	outcome := entities.RepositoryOutcome{
		Repository: repo,
		Found:      len(caches),
		ListErr:    listErr,
	}
	if listErr != nil {
		// caches gathered before the failure are still swept
		logger.Errorf("Failed to retrieve caches for %s: %v", repo.Name, listErr)
	}

	if len(caches) == 0 {
		logger.Infof("No caches found for %s", repo.Name)
		return outcome
	}

	for _, cache := range caches {
		if opts.DryRun {
			logger.Infof("Would delete cache %d (%s) for %s", cache.ID, cache.Key, repo.Name)
			outcome.Skipped = append(outcome.Skipped, cache.ID)
			continue
		}

		if err := provider.DeleteCache(ctx, repo, cache.ID); err != nil {
			logger.Errorf("Failed to delete cache %d for %s: %v", cache.ID, repo.Name, err)
			outcome.Failed = append(outcome.Failed, cache.ID)
			continue
		}

		logger.Infof("Cache %d deleted for %s", cache.ID, repo.Name)
		outcome.Deleted = append(outcome.Deleted, cache.ID)
	}

	return outcome
}
