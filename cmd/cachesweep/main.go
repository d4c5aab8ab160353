package main

import (
	"os"

	"github.com/mattn/go-isatty"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cachesweep/internal"
	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

func buildRootCommand(defaultController entities.Controller) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "cachesweep",
		Short: "Delete the GitHub Actions caches of an organization",
		Long: `Walk every repository of a GitHub organization and delete all of its
GitHub Actions caches.

The token is read from the ` + entities.TokenEnvVar + ` environment variable
(a .env file in the working directory is honoured).

Usage modes:
  cachesweep            Sweep the organization (same as "cachesweep sweep")
  cachesweep list       Show the cache inventory without deleting anything`,
		Args: cobra.NoArgs,
		Run: func(command *cobra.Command, args []string) {
			defaultController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("org", "",
		"Organization to sweep (default: "+entities.DefaultOrganization+")")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be deleted without deleting")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}
		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	logger.SetOutput(os.Stdout)
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext := injectAppContext()
	cobraRoot := buildRootCommand(appContext.GetDefaultController())
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'cachesweep': %s", err)
	}
}
