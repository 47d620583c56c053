// Fekal is the compiler front-end for the fekal syscall-filter policy
// language.
//
// It parses a policy source file, checks it, prints diagnostics on
// standard error and a formatted AST dump on standard output.
//
// Usage:
//
//	# Compile a policy file
//	fekal policies.fkl
//
//	# Recompile whenever the file changes
//	fekal policies.fkl --watch
//
//	# Validate a directory of policy files
//	fekal check --dir policies/
//
//	# JSON diagnostics for CI
//	fekal check --file policies.fkl --format json
//
//	# Interactive expression prompt
//	fekal repl
//
//	# Show version information
//	fekal version
package main

func main() {
	Execute()
}
