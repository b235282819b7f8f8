// Package config loads the tool configuration and the watch list.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultInterval is used when the config file sets no interval.
const DefaultInterval = 24 * time.Hour

// Config represents the application configuration.
type Config struct {
	// Interval is how long a cached version stays fresh (e.g. "24h")
	Interval string `yaml:"interval"`
	// GitHub holds GitHub API settings
	GitHub GitHubConfig `yaml:"github"`
	// NoColor disables colored output
	NoColor bool `yaml:"no_color"`
}

// GitHubConfig holds GitHub API settings.
type GitHubConfig struct {
	// Token is a personal access token for higher rate limits
	Token string `yaml:"token"`
}

// ConfigPaths returns all possible config file paths in priority order:
// 1. $XDG_CONFIG_HOME/newver/config.yaml (XDG standard - priority)
// 2. ~/.newver/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "newver", "config.yaml"),
		filepath.Join(home, ".newver", "config.yaml"),
	}, nil
}

// Load reads the configuration from the first existing config file.
// A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return LoadFrom(path)
		}
	}

	return &Config{}, nil
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// CheckInterval returns the configured freshness interval, falling
// back to the default when unset or unparsable.
func (c *Config) CheckInterval() time.Duration {
	if c.Interval == "" {
		return DefaultInterval
	}
	d, err := time.ParseDuration(c.Interval)
	if err != nil || d <= 0 {
		return DefaultInterval
	}
	return d
}
