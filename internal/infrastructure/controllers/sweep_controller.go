package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cachesweep/internal/domain/commands"
	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

// SweepController handles the "sweep" subcommand, also run by the bare root command.
type SweepController struct {
	command commands.Sweep
}

// NewSweepController creates a new SweepController.
func NewSweepController(command commands.Sweep) *SweepController {
	return &SweepController{command: command}
}

// GetBind returns the Cobra command metadata for the sweep controller.
func (it *SweepController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sweep",
		Short: "Delete every GitHub Actions cache of the organization",
		Long: `Walk every repository of the organization, list its GitHub Actions
caches and delete each one of them.

Failures on a single repository or cache are reported and skipped;
only a failure to list the organization's repositories aborts the run.`,
	}
}

// Execute runs the sweep. A missing token or an unreadable repository list
// is fatal; per-cache failures are not.
func (it *SweepController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Fatalf("Failed to load settings: %v", err)
	}

	logger.Infof("Sweeping caches of %q...", settings.Organization)

	if _, runErr := it.command.Execute(ctx, settings, commands.SweepOptions{
		DryRun:  dryRun,
		Verbose: verbose,
	}); runErr != nil {
		logger.Fatalf("Sweep failed: %v", runErr)
	}
}
