package checker

import (
	"fekal-hq/fekal/pkg/fekal/ast"
)

// Context is the scope stack for one check run. The bottom scope is the
// global scope and is never popped. Every node that opens a scope is
// remembered in an append-only node index, so later rule passes can
// re-enter a scope built by the global pass.
type Context struct {
	scopes     []*Scope
	nodeScopes map[ast.Node]*Scope
}

// NewContext returns a context holding only the global scope.
func NewContext() *Context {
	return &Context{
		scopes:     []*Scope{NewScope()},
		nodeScopes: make(map[ast.Node]*Scope),
	}
}

// Reset returns the context to its initial state: a fresh global scope
// and an empty node index.
func (c *Context) Reset() {
	c.scopes = []*Scope{NewScope()}
	c.nodeScopes = make(map[ast.Node]*Scope)
}

// GlobalScope returns the bottom scope.
func (c *Context) GlobalScope() *Scope { return c.scopes[0] }

// PeekScope returns the innermost scope.
func (c *Context) PeekScope() *Scope { return c.scopes[len(c.scopes)-1] }

// Depth returns the number of scopes on the stack, the global one
// included.
func (c *Context) Depth() int { return len(c.scopes) }

// PushScope opens a fresh scope for node and records the association.
func (c *Context) PushScope(node ast.Node) *Scope {
	s := NewScope()
	c.scopes = append(c.scopes, s)
	c.nodeScopes[node] = s
	return s
}

// PopScope closes the innermost scope. Popping the global scope is a
// programming error and panics.
func (c *Context) PopScope() {
	if len(c.scopes) == 1 {
		panic("checker: not allowed to pop the global scope")
	}
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// ScopeByNode returns the scope a node opened earlier in this run.
// Asking for a node that opened no scope is a programming error and
// panics.
func (c *Context) ScopeByNode(node ast.Node) *Scope {
	s, ok := c.nodeScopes[node]
	if !ok {
		panic("checker: no scope recorded for node")
	}
	return s
}

// HasSymbol walks the scope chain from the innermost scope outward and
// reports whether name is visible, inherited symbols included.
func (c *Context) HasSymbol(name string) bool {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if c.scopes[i].HasSymbol(name) {
			return true
		}
	}
	return false
}

// IncreaseReference bumps the use count of name in the nearest scope that
// declares it locally. A name visible only as an inherited symbol
// resolves there but carries no use count.
func (c *Context) IncreaseReference(name string) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if c.scopes[i].hasLocal(name) {
			c.scopes[i].IncreaseReference(name)
			return
		}
		if c.scopes[i].hasInherited(name) {
			return
		}
	}
}
