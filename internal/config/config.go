// Package config provides configuration management for featlint using Viper.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// AppName is the application name used for config file naming.
const AppName = "featlint"

// DefaultManifestPath is the manifest checked when no path is configured.
const DefaultManifestPath = "Cargo.toml"

// Config represents the top-level configuration structure.
type Config struct {
	Version      int      `mapstructure:"version" yaml:"version"`
	ManifestPath string   `mapstructure:"manifest_path" yaml:"manifest_path"`
	Exceptions   []string `mapstructure:"exceptions" yaml:"exceptions"`
	Format       string   `mapstructure:"format" yaml:"format"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName(AppName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	// Environment variable support
	viper.SetEnvPrefix("FEATLINT")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("manifest_path", DefaultManifestPath)
	viper.SetDefault("format", "text")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If the user specified a path, a missing file is an error.
			// Implicit loads fall back to defaults.
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the loaded configuration for unsupported values.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return errors.Newf("unsupported config version: %d", c.Version)
	}
	switch c.Format {
	case "", "text", "json", "yaml":
	default:
		return errors.Newf("unsupported output format: %q (valid: text, json, yaml)", c.Format)
	}
	return nil
}
