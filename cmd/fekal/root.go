package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fekal-hq/fekal/pkg/config"
	"fekal-hq/fekal/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	noColor bool
)

var rootFlags struct {
	watch       bool
	maxErrors   int
	maxWarnings int
}

var rootCmd = &cobra.Command{
	Use:   "fekal <path>",
	Short: "Fekal - syscall filter policy compiler",
	Long: `Fekal compiles declarative syscall-filter policies for a seccomp-style
allow/deny engine.

Given a policy file it produces:
  - Diagnostics (errors and warnings) on standard error
  - A formatted AST dump on standard output

The exit code is 1 when the file does not parse or the diagnostics
contain errors.`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured diagnostics")

	rootCmd.Flags().BoolVarP(&rootFlags.watch, "watch", "w", false, "recompile when the file changes")
	rootCmd.Flags().IntVar(&rootFlags.maxErrors, "max-errors", 0, "cap printed errors (default from config)")
	rootCmd.Flags().IntVar(&rootFlags.maxWarnings, "max-warnings", 0, "cap printed warnings (default from config)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return compilePath(cmd, args[0])
}

// setup loads the configuration, applies flag overrides and builds the
// logger shared by all commands.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("max-errors") {
		cfg.Diagnostics.MaxErrors = rootFlags.maxErrors
	}
	if cmd.Flags().Changed("max-warnings") {
		cfg.Diagnostics.MaxWarnings = rootFlags.maxWarnings
	}
	if noColor {
		cfg.Diagnostics.Color = "never"
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
