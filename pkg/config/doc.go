// Package config loads the optional .fekal.yaml configuration file.
//
// Loading applies defaults first, then the file, then environment
// variable overrides (FEKAL_*), and validates the final result.
// The CLI flags --max-errors, --max-warnings, --no-color and --verbose
// override the matching settings; log.format and watch.debounce_interval
// have no flag. The file exists so a project can pin its settings next
// to its policies.
package config
