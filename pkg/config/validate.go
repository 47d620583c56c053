package config

import "fmt"

// Validate checks a configuration for invalid values. It reports the
// first problem found.
func Validate(cfg *Config) error {
	if cfg.Diagnostics.MaxErrors < 0 {
		return fmt.Errorf("diagnostics.max_errors must not be negative, got %d", cfg.Diagnostics.MaxErrors)
	}
	if cfg.Diagnostics.MaxWarnings < 0 {
		return fmt.Errorf("diagnostics.max_warnings must not be negative, got %d", cfg.Diagnostics.MaxWarnings)
	}

	switch cfg.Diagnostics.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("diagnostics.color must be auto, always or never, got %q", cfg.Diagnostics.Color)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format)
	}

	if cfg.Watch.DebounceInterval < 0 {
		return fmt.Errorf("watch.debounce_interval must not be negative, got %s", cfg.Watch.DebounceInterval)
	}

	return nil
}
