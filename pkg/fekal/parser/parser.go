// Package parser implements the fekal grammar as a PEG over the lexer,
// producing the ast package's tree. Expression rules are left-recursive
// and ride on the peg package's recursion context; statement rules are
// plain ordered choice.
package parser

import (
	"fmt"

	"fekal-hq/fekal/pkg/fekal/ast"
	"fekal-hq/fekal/pkg/fekal/lexer"
	"fekal-hq/fekal/pkg/fekal/peg"
	"fekal-hq/fekal/pkg/fekal/token"
)

// NoMatchError reports a syntactic failure: no program statement matches
// at a position that is not end-of-input. Parsing stops there.
type NoMatchError struct {
	Line   int
	Column int
	Got    token.Symbol
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no match at %d:%d (found %s)", e.Line, e.Column, e.Got)
}

// Parser parses fekal sources. The zero value is not usable; construct
// with NewParser.
type Parser struct {
	memoize bool
}

// NewParser returns a parser with packrat memoization enabled.
func NewParser() *Parser {
	return &Parser{memoize: true}
}

// WithMemoization toggles the packrat cache. Disabling it never changes a
// parse result, only the time it takes.
func (p *Parser) WithMemoization(on bool) *Parser {
	p.memoize = on
	return p
}

// Parse parses a complete source buffer. It returns the program, every
// lexical error the scan recorded, and a *NoMatchError when the input has
// a syntactic failure. An empty input is an empty program.
func (p *Parser) Parse(input []byte) ([]ast.ProgramStatement, []lexer.LexError, error) {
	r := lexer.New(input)
	var cache *peg.Cache[ast.Expr]
	if p.memoize {
		cache = peg.NewCache[ast.Expr]()
	}

	var program []ast.ProgramStatement
	if !r.Next() {
		return program, r.Errors(), nil
	}
	for {
		stmt, ok := p.programStmt(cache, &r)
		if !ok {
			return nil, r.Errors(), &NoMatchError{
				Line:   r.Line(),
				Column: r.Column(),
				Got:    r.Symbol(),
			}
		}
		program = append(program, stmt)
		if !r.Next() {
			return program, r.Errors(), nil
		}
	}
}

// ParseBoolExpr parses a single boolean expression spanning the whole
// input. It exists for the REPL and for tests that target the expression
// grammar directly.
func (p *Parser) ParseBoolExpr(input []byte) (ast.BoolExpr, []lexer.LexError, error) {
	r := lexer.New(input)
	var cache *peg.Cache[ast.Expr]
	if p.memoize {
		cache = peg.NewCache[ast.Expr]()
	}
	if !r.Next() {
		return nil, r.Errors(), &NoMatchError{Line: 1, Column: 0, Got: token.END}
	}
	e, ok := boolCondition(cache, &r)
	if !ok || r.Next() {
		return nil, r.Errors(), &NoMatchError{
			Line:   r.Line(),
			Column: r.Column(),
			Got:    r.Symbol(),
		}
	}
	return e, r.Errors(), nil
}

func pos(r *lexer.Reader) ast.Position {
	return ast.Position{Line: r.Line(), Column: r.Column()}
}

// asBool narrows a generic expression rule result. The grammar guarantees
// the variant; a mismatch is a parser bug.
func asBool(e ast.Expr) ast.BoolExpr {
	b, ok := e.(ast.BoolExpr)
	if !ok {
		panic(fmt.Sprintf("parser: %T where a boolean expression is required", e))
	}
	return b
}

func asInt(e ast.Expr) ast.IntExpr {
	i, ok := e.(ast.IntExpr)
	if !ok {
		panic(fmt.Sprintf("parser: %T where an integer expression is required", e))
	}
	return i
}
