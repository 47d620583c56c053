// Package fekal provides parsing and checking for the fekal policy
// language, a declarative description of syscall filters grouped under
// named policies for a seccomp-style engine.
//
// # Architecture
//
// The package is organized into subpackages:
//
//   - token: the closed set of terminal symbols
//   - lexer: pull-based token reader over an in-memory buffer
//   - ast: sum-typed syntax tree with source positions
//   - peg: ordered choice and left-recursion machinery
//   - parser: the PEG grammar producing the AST
//   - diag: severity-tagged diagnostics with source ranges
//   - checker: scopes, the global semantic pass, per-syscall rules
//   - printer: human-readable AST dump
//
// # Basic Usage
//
// Compile a source buffer and inspect the outcome:
//
//	c := fekal.NewCompiler()
//	program, err := c.Compile(source)
//	if err != nil {
//	    log.Fatal(err) // syntactic failure, nothing was produced
//	}
//	c.Diagnostics.Print(os.Stderr)
//	printer.Print(os.Stdout, program)
//
// A syntactic failure (no statement matches at a non-end position) stops
// the pipeline with an error. Lexical and semantic problems accumulate in
// the diagnostics instead, so one run surfaces as many problems as
// possible.
package fekal
