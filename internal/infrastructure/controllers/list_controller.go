package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cachesweep/internal/domain/commands"
	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	command commands.List
}

// NewListController creates a new ListController.
func NewListController(command commands.List) *ListController {
	return &ListController{command: command}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list",
		Short: "List the GitHub Actions caches of the organization",
		Long: `Print every repository of the organization with the number and total
size of its GitHub Actions caches. Nothing is deleted.
Use --verbose to print one line per cache.`,
	}
}

// Execute runs the inventory listing.
func (it *ListController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Fatalf("Failed to load settings: %v", err)
	}

	if _, listErr := it.command.Execute(ctx, settings); listErr != nil {
		logger.Fatalf("List failed: %v", listErr)
	}
}
