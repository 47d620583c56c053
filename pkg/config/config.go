package config

import "time"

// DefaultPath is where LoadOrDefault looks when no --config flag is
// given. A missing file at this path is not an error.
const DefaultPath = ".fekal.yaml"

// Config is the root configuration for the fekal CLI.
type Config struct {
	// Diagnostics controls how diagnostics print.
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`

	// Log controls the structured logger.
	Log LogConfig `yaml:"log"`

	// Watch controls --watch recompilation.
	Watch WatchConfig `yaml:"watch"`
}

// DiagnosticsConfig caps and styles diagnostic output.
type DiagnosticsConfig struct {
	// MaxErrors caps printed errors. Default: 100.
	MaxErrors int `yaml:"max_errors"`

	// MaxWarnings caps printed warnings. Default: 100.
	MaxWarnings int `yaml:"max_warnings"`

	// Color selects colour output: "auto", "always" or "never".
	// "auto" colours when stdout is a colour-capable terminal.
	// Default: "auto".
	Color string `yaml:"color"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// Level is the minimum level: "debug", "info", "warn", "error".
	// Default: "warn".
	Level string `yaml:"level"`

	// Format is "text" or "json". Default: "text".
	Format string `yaml:"format"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// DebounceInterval is how long to wait after a change before
	// recompiling, so editors that write in bursts trigger one run.
	// Default: 100ms.
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}
