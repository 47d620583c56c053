// Package ast defines the abstract syntax tree for fekal policies.
//
// The tree is built from sealed sum types: IntExpr and BoolExpr for
// expressions, ProgramStatement and PolicyStatement for the statement
// level, and Action for seccomp actions. Every node records a source
// position: policies, use statements and syscall filters that of their
// name token, every other node that of its operator or opening token.
// The tree is immutable after
// parsing; passes share nodes freely and key per-node state by pointer
// identity.
package ast
