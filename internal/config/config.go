// Package config provides environment-based configuration for the toolkit.
//
// Configuration is loaded from environment variables with sensible
// defaults; CLI flags may override individual values.
//
// Environment Variables:
//   - RESTABLE_FRAMEWORK_DIR, RESTABLE_FRAMEWORK_TAG
//   - RESTABLE_LOG_LEVEL, RESTABLE_LOG_DEV
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all toolkit configuration.
type Config struct {
	Framework FrameworkConfig
	Logging   LogConfig
}

// FrameworkConfig holds framework cache settings.
type FrameworkConfig struct {
	Dir string `envconfig:"FRAMEWORK_DIR" default:""`
	Tag string `envconfig:"FRAMEWORK_TAG" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from RESTABLE_-prefixed environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("restable", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Framework.Dir == "" {
		cfg.Framework.Dir = defaultFrameworkDir()
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns the
// defaults when loading fails.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return &Config{
			Framework: FrameworkConfig{Dir: defaultFrameworkDir()},
			Logging:   LogConfig{Level: "info"},
		}
	}
	return cfg
}

// defaultFrameworkDir places the framework cache under the user home
// directory, falling back to the working directory when home is unknown.
func defaultFrameworkDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".restable", "framework")
	}
	return filepath.Join(home, ".restable", "framework")
}
