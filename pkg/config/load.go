package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to defaults
// when path is the default location and no file is there. Environment
// overrides apply in both cases.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		if path == DefaultPath && errors.Is(err, os.ErrNotExist) {
			cfg = Default()
		} else {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies FEKAL_* environment variables on top of the
// loaded configuration. Environment variables always win over the file.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("FEKAL_DIAG_MAX_ERRORS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Diagnostics.MaxErrors = n
		}
	}
	if val := os.Getenv("FEKAL_DIAG_MAX_WARNINGS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Diagnostics.MaxWarnings = n
		}
	}
	if val := os.Getenv("FEKAL_COLOR"); val != "" {
		cfg.Diagnostics.Color = val
	}
	if val := os.Getenv("FEKAL_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv("FEKAL_LOG_FORMAT"); val != "" {
		cfg.Log.Format = val
	}
}
