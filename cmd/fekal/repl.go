package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"fekal-hq/fekal/pkg/fekal"
	"fekal-hq/fekal/pkg/fekal/parser"
	"fekal-hq/fekal/pkg/fekal/printer"
)

const historyFile = ".fekal_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive fekal prompt",
	Long: `Start an interactive prompt for trying out fekal snippets.

Each line is parsed as a boolean filter expression first and as a full
program otherwise. The AST dump or the diagnostics print immediately.
Type :quit to exit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	fmt.Println("fekal repl - :quit to exit")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("fekal> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit", ":q":
				return nil
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		evalLine(code)
		ln.AppendHistory(code)
	}
}

// evalLine parses input as a boolean expression first, falling back to a
// whole program, and prints what it learned.
func evalLine(code string) {
	p := parser.NewParser()
	if expr, _, err := p.ParseBoolExpr([]byte(code)); err == nil {
		printer.PrintBoolExpr(os.Stdout, expr)
		return
	}

	c := fekal.NewCompiler()
	program, err := c.Compile([]byte(code))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	c.PrintDiagnostics(os.Stderr)
	printer.Print(os.Stdout, program)
}
