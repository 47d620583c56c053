package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fekal-hq/fekal/pkg/cli"
	"fekal-hq/fekal/pkg/fekal"
	"fekal-hq/fekal/pkg/fekal/diag"
)

var checkFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate policy files",
	Long: `Validate fekal policy files without printing the AST dump.

The check command compiles policy files and reports every problem:
  - Lexical errors (unrecognised bytes)
  - Syntax errors
  - Semantic errors (duplicate declarations, unresolved policies,
    invalid open/openat flags)
  - Warnings (unused trailing parameters)

Examples:
  # Check a single file
  fekal check --file policies.fkl

  # Check a directory
  fekal check --dir policies/

  # Strict mode (warnings fail the run)
  fekal check --file policies.fkl --strict

  # JSON output for CI/CD
  fekal check --file policies.fkl --format json`,
	RunE: checkPolicies,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.file, "file", "f", "", "policy file to validate")
	checkCmd.Flags().StringVarP(&checkFlags.dir, "dir", "d", "", "directory of policy files")
	checkCmd.Flags().BoolVar(&checkFlags.strict, "strict", false, "treat warnings as errors")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
}

func checkPolicies(cmd *cobra.Command, args []string) error {
	if checkFlags.file == "" && checkFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if checkFlags.file != "" {
		files = append(files, checkFlags.file)
	}
	if checkFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(checkFlags.dir, "*.fkl"))
		if err != nil {
			return fmt.Errorf("failed to list policy files: %w", err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no policy files found")
	}

	results := make([]CheckResult, 0, len(files))
	for _, file := range files {
		results = append(results, checkPolicyFile(file))
	}

	if checkFlags.format == "json" {
		if err := outputJSON(results); err != nil {
			return err
		}
		for _, r := range results {
			if !r.Valid || (checkFlags.strict && len(r.Warnings) > 0) {
				return cli.NewCommandError("check", fmt.Errorf("validation failed"))
			}
		}
		return nil
	}
	return outputText(results, checkFlags.strict)
}

// CheckResult is the validation outcome for a single policy file.
type CheckResult struct {
	File     string            `json:"file"`
	Valid    bool              `json:"valid"`
	Errors   []CheckDiagnostic `json:"errors,omitempty"`
	Warnings []CheckDiagnostic `json:"warnings,omitempty"`
}

// CheckDiagnostic is a single reported problem with its source range.
type CheckDiagnostic struct {
	Message  string     `json:"message"`
	Severity string     `json:"severity"`
	Range    diag.Range `json:"range"`
}

func checkPolicyFile(path string) CheckResult {
	result := CheckResult{File: path, Valid: true}

	source, err := os.ReadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, CheckDiagnostic{
			Message:  err.Error(),
			Severity: "error",
		})
		return result
	}

	c := fekal.NewCompiler()
	_, err = c.Compile(source)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, CheckDiagnostic{
			Message:  err.Error(),
			Severity: "error",
		})
	}

	for _, l := range c.Diagnostics.Logs {
		d := CheckDiagnostic{
			Message:  l.Message,
			Severity: l.Severity.String(),
			Range:    l.Range,
		}
		switch l.Severity {
		case diag.Error:
			result.Valid = false
			result.Errors = append(result.Errors, d)
		case diag.Warning:
			result.Warnings = append(result.Warnings, d)
		}
	}

	return result
}

func outputText(results []CheckResult, strict bool) error {
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if len(result.Errors) == 0 && len(result.Warnings) == 0 {
			fmt.Println("✓ No problems found")
		}

		for _, err := range result.Errors {
			fmt.Printf("✗ Error: %s", err.Message)
			if err.Range.Start.Line > 0 {
				fmt.Printf(" (line %d, col %d)", err.Range.Start.Line, err.Range.Start.Column)
			}
			fmt.Println()
			totalErrors++
		}

		for _, warn := range result.Warnings {
			fmt.Printf("⚠  Warning: %s", warn.Message)
			if warn.Range.Start.Line > 0 {
				fmt.Printf(" (line %d, col %d)", warn.Range.Start.Line, warn.Range.Start.Column)
			}
			fmt.Println()
			totalWarnings++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d error(s), %d warning(s)\n", totalErrors, totalWarnings)

	if strict && totalWarnings > 0 {
		fmt.Println("  Strict mode enabled: treating warnings as errors")
		return cli.NewCommandError("check", fmt.Errorf("validation failed"))
	}
	if totalErrors > 0 {
		return cli.NewCommandError("check", fmt.Errorf("validation failed"))
	}
	return nil
}

func outputJSON(results []CheckResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
