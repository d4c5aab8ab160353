//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cachesweep/internal/domain/commands"
	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

// StubSweepCommand is a stub implementation of commands.Sweep.
type StubSweepCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.SweepReport
	LastSettings     *entities.Settings
	LastOpts         commands.SweepOptions
}

var _ commands.Sweep = (*StubSweepCommand)(nil)

func (s *StubSweepCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.SweepOptions,
) (*entities.SweepReport, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Report != nil {
		return s.Report, nil
	}
	return entities.NewSweepReport(settings.Organization, opts.DryRun), nil
}
