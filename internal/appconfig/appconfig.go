// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for platform API requests.
	defaultRequestTimeout = 30 * time.Second
	// defaultPollInterval matches the dashboard's batch-progress polling cadence.
	defaultPollInterval = 2 * time.Second
	// defaultPageSize bounds one page of the puzzle list endpoint.
	defaultPageSize = 50
)

// Config represents the top-level application configuration.
type Config struct {
	APIBaseURL          string            `json:"apiBaseUrl"`
	Debug               bool              `json:"debug"`
	TimeoutSeconds      int               `json:"timeout,omitempty"`
	PollIntervalSeconds int               `json:"pollInterval,omitempty"`
	PageSize            int               `json:"pageSize,omitempty"`
	LogFile             string            `json:"logFile,omitempty"`
	PrefsPath           string            `json:"prefsPath,omitempty"`
	CachePath           string            `json:"cachePath,omitempty"`
	DatasetDirs         map[string]string `json:"datasetDirs,omitempty"`
	DefaultSort         string            `json:"defaultSort,omitempty"`
	ConfigPath          string            `json:"-"`
}

// RequestTimeout returns the timeout duration for API requests, falling back
// to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PollInterval returns the batch-progress polling cadence.
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return defaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// EffectivePageSize returns the puzzle-list page size, applying the default
// when unset.
func (c Config) EffectivePageSize() int {
	if c.PageSize <= 0 {
		return defaultPageSize
	}
	return c.PageSize
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "arcx.log"
}

// PrefsFilePath returns the preference-store path, applying a default if not set.
func (c Config) PrefsFilePath() string {
	if path := c.PrefsPath; strings.TrimSpace(path) != "" {
		return path
	}
	return "arcxData/prefs.json"
}

// CacheFilePath returns the snapshot-store database path, applying a default if not set.
func (c Config) CacheFilePath() string {
	if path := c.CachePath; strings.TrimSpace(path) != "" {
		return path
	}
	return "arcxData/arcx.db"
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if strings.TrimSpace(config.APIBaseURL) == "" {
			return Config{}, errors.New("config must set apiBaseUrl")
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}
	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
