package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fekal-hq/fekal/pkg/cli"
	"fekal-hq/fekal/pkg/config"
	"fekal-hq/fekal/pkg/fekal"
	"fekal-hq/fekal/pkg/fekal/printer"
)

// compilePath is the root command's action: compile one file, or keep
// recompiling it in watch mode.
func compilePath(cmd *cobra.Command, path string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return cli.NewCommandError("compile", err)
	}

	colorOn := cli.EnableColor(cfg.Diagnostics.Color)

	if rootFlags.watch {
		compile := func() { compileFile(path, cfg, colorOn, logger) }
		compile()
		return watchAndCompile(path, cfg.Watch.DebounceInterval, logger, compile)
	}

	if failed := compileFile(path, cfg, colorOn, logger); failed {
		return cli.NewCommandError("compile", errors.New("compilation failed"))
	}
	return nil
}

// compileFile runs the pipeline over one file: read, compile, print
// diagnostics to stderr and the AST dump to stdout. It reports whether
// the run failed (unreadable file, syntax error, or error diagnostics).
func compileFile(path string, cfg *config.Config, colorOn bool, logger *slog.Logger) bool {
	log := logger.With("run_id", uuid.NewString(), "file", path)
	start := time.Now()

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true
	}

	c := fekal.NewCompiler().
		WithColor(colorOn).
		WithLimits(cfg.Diagnostics.MaxErrors, cfg.Diagnostics.MaxWarnings)

	program, err := c.Compile(source)
	if err != nil {
		// syntactic failure: nothing to print beyond the error
		c.PrintDiagnostics(os.Stderr)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Debug("compilation aborted", "bytes", len(source), "error", err)
		return true
	}

	c.PrintDiagnostics(os.Stderr)
	printer.Print(os.Stdout, program)

	log.Debug("compilation finished",
		"bytes", len(source),
		"duration_ms", time.Since(start).Milliseconds(),
		"errors", c.Diagnostics.ErrorCount(),
		"warnings", c.Diagnostics.WarningCount(),
	)
	return c.Diagnostics.HasErrors()
}
