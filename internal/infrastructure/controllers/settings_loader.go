package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

const envFile = ".env"

// loadSettings resolves the settings from the persistent flags, the config
// file (when one is found) and the environment.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	orgOverride, _ := cmd.Flags().GetString("org")

	if err := entities.LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		} else {
			logger.Debugf("No config file found, using defaults: %v", err)
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, err
	}

	if orgOverride != "" {
		settings.Organization = orgOverride
	}
	return settings, nil
}
