//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cachesweep/internal/domain/commands"
	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

// StubListCommand is a stub implementation of commands.List.
type StubListCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Inventories      []entities.Inventory
	LastSettings     *entities.Settings
}

var _ commands.List = (*StubListCommand)(nil)

func (s *StubListCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) ([]entities.Inventory, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.Inventories, s.ExecuteErr
}
