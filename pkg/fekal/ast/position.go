package ast

import "fmt"

// Position is a source location. Lines are 1-based and columns 0-based,
// matching the lexer's convention.
type Position struct {
	Line   int
	Column int
}

// Pos returns the node's position. Embedding Position gives every node
// the Node interface.
func (p Position) Pos() Position { return p }

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is implemented by every AST node.
type Node interface {
	Pos() Position
}
