package fekal

import (
	"io"

	"fekal-hq/fekal/pkg/fekal/ast"
	"fekal-hq/fekal/pkg/fekal/checker"
	"fekal-hq/fekal/pkg/fekal/checker/syscalls"
	"fekal-hq/fekal/pkg/fekal/diag"
	"fekal-hq/fekal/pkg/fekal/lexer"
	"fekal-hq/fekal/pkg/fekal/parser"
)

// Compiler runs the front-end pipeline: lex, parse, check, rule passes.
// Each compiler owns its Context and Diagnostics; nothing is shared
// across compilers, so concurrent compilations need one Compiler each.
type Compiler struct {
	Context     *checker.Context
	Diagnostics *diag.Diagnostics

	parser *parser.Parser
}

// NewCompiler returns a compiler with default settings.
func NewCompiler() *Compiler {
	return &Compiler{
		Context:     checker.NewContext(),
		Diagnostics: diag.New(),
		parser:      parser.NewParser(),
	}
}

// WithColor enables ANSI colour when diagnostics print.
func (c *Compiler) WithColor(on bool) *Compiler {
	c.Diagnostics.WithColor(on)
	return c
}

// WithLimits caps printed errors and warnings.
func (c *Compiler) WithLimits(maxErrors, maxWarnings int) *Compiler {
	c.Diagnostics.WithLimits(maxErrors, maxWarnings)
	return c
}

// WithMemoization toggles the parser's packrat cache.
func (c *Compiler) WithMemoization(on bool) *Compiler {
	c.parser.WithMemoization(on)
	return c
}

// Reset clears the context and diagnostics for reuse.
func (c *Compiler) Reset() {
	c.Context.Reset()
	c.Diagnostics.Reset()
}

// Compile parses and checks a complete source buffer. A syntactic
// failure returns a *parser.NoMatchError and no program. Lexical and
// semantic problems land in c.Diagnostics and the returned program is
// still valid.
func (c *Compiler) Compile(source []byte) ([]ast.ProgramStatement, error) {
	program, lexErrs, err := c.parser.Parse(source)
	c.reportLexErrors(lexErrs)
	if err != nil {
		return nil, err
	}

	checker.Check(c.Context, c.Diagnostics, program)
	c.compileRules(program)
	return program, nil
}

// compileRules runs the per-syscall rule passes over a checked program.
func (c *Compiler) compileRules(program []ast.ProgramStatement) {
	syscalls.CheckOpen(c.Context, c.Diagnostics, program)
}

func (c *Compiler) reportLexErrors(errs []lexer.LexError) {
	for _, e := range errs {
		rng := diag.Range{
			Start: diag.Position{Line: e.Line, Column: e.Column},
			End:   diag.Position{Line: e.Line, Column: e.Column + 1},
		}
		c.Diagnostics.Errorf(rng, "unrecognised byte %q", e.Byte)
	}
}

// PrintDiagnostics writes the accumulated diagnostics to w, warnings
// before errors.
func (c *Compiler) PrintDiagnostics(w io.Writer) {
	c.Diagnostics.Print(w)
}

// Compile is a convenience that compiles source with a fresh compiler and
// returns the program together with the compiler holding the diagnostics
// and scope context.
func Compile(source []byte) ([]ast.ProgramStatement, *Compiler, error) {
	c := NewCompiler()
	program, err := c.Compile(source)
	return program, c, err
}
