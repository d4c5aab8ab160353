package entities

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// TokenEnvVar is the environment variable holding the GitHub token.
	TokenEnvVar = "CACHE_CLEANUP_TOKEN"

	DefaultProvider = "github"
	DefaultRetryMax = 3
)

// DefaultOrganization is the organization swept when neither the config file
// nor the command line names one.
var DefaultOrganization = "lyric-tech" //nolint:gochecknoglobals // overridden at build time via -ldflags -X

// Settings is the runtime configuration of a sweep.
type Settings struct {
	Provider          string  `yaml:"provider"            toml:"provider"`
	Organization      string  `yaml:"organization"        toml:"organization"`
	BaseURL           string  `yaml:"base_url"            toml:"base_url"`            // empty means api.github.com
	RetryMax          int     `yaml:"retry_max"           toml:"retry_max"`           // retries on 429/5xx
	RequestsPerSecond float64 `yaml:"requests_per_second" toml:"requests_per_second"` // 0 disables pacing
	TimeoutSeconds    int     `yaml:"timeout_seconds"     toml:"timeout_seconds"`     // 0 disables the timeout

	// Token is only ever read from the environment.
	Token string `yaml:"-" toml:"-"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Provider:     DefaultProvider,
		Organization: DefaultOrganization,
		RetryMax:     DefaultRetryMax,
	}
}

// NewSettings builds the settings from the config file at path (optional, an
// empty path means defaults only) and the token from the environment.
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		if err := decodeFile(path, settings); err != nil {
			return nil, err
		}
	}

	settings.Token = strings.TrimSpace(os.Getenv(TokenEnvVar))

	if err := validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// LoadEnvFile loads variables from a dotenv file without overriding the ones
// already present in the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	logger.Debugf("Loaded environment from %q", path)
	return nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	locations := []string{
		".",
		".config",
		"configs",
		filepath.Join(xdg.ConfigHome, "cachesweep"),
		xdg.ConfigHome,
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, homeDir)
	}

	patterns := []string{
		".cachesweep.yaml",
		".cachesweep.yml",
		".cachesweep.toml",
		"cachesweep.yaml",
		"cachesweep.yml",
		"cachesweep.toml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func decodeFile(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, decodeErr := toml.Decode(string(data), settings); decodeErr != nil {
			return fmt.Errorf("failed to parse config file: %w", decodeErr)
		}
		return nil
	}

	if decodeErr := yaml.Unmarshal(data, settings); decodeErr != nil {
		return fmt.Errorf("failed to parse config file: %w", decodeErr)
	}
	return nil
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	if settings.Provider == "" {
		return errors.New("provider is required")
	}
	if settings.Organization == "" {
		return errors.New("organization is required")
	}
	if settings.Token == "" {
		return fmt.Errorf("environment variable %s is required", TokenEnvVar)
	}
	if settings.RetryMax < 0 {
		return fmt.Errorf("retry_max must not be negative, got %d", settings.RetryMax)
	}
	if settings.RequestsPerSecond < 0 {
		return fmt.Errorf(
			"requests_per_second must not be negative, got %v",
			settings.RequestsPerSecond,
		)
	}
	if settings.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", settings.TimeoutSeconds)
	}
	if settings.BaseURL != "" {
		u, err := url.Parse(settings.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base_url %q is not an absolute URL", settings.BaseURL)
		}
	}
	return nil
}
