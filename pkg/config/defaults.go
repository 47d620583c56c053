package config

import "time"

// ApplyDefaults fills every unset field with its default value.
func ApplyDefaults(cfg *Config) {
	if cfg.Diagnostics.MaxErrors == 0 {
		cfg.Diagnostics.MaxErrors = 100
	}
	if cfg.Diagnostics.MaxWarnings == 0 {
		cfg.Diagnostics.MaxWarnings = 100
	}
	if cfg.Diagnostics.Color == "" {
		cfg.Diagnostics.Color = "auto"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Watch.DebounceInterval == 0 {
		cfg.Watch.DebounceInterval = 100 * time.Millisecond
	}
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
