// Package peg provides the parsing-expression-grammar machinery shared by
// the parser: ordered choice with reader restore, and a recursion context
// that makes left-recursive rules terminate with left-associative results.
//
// The left-recursion handling follows Medeiros et al., "Left recursion in
// Parsing Expression Grammars" (2012), <http://arxiv.org/pdf/1207.0443>:
//
//  1. Limit recursion to some bound.
//  2. Try again with a greater bound.
//  3. If nothing changes (the amount of consumed input is the same), stop.
//  4. Otherwise, repeat from 2.
//
// Results are memoized per (rule, byte offset) so each pair is computed at
// most once. Memoization is a performance feature only; disabling it must
// not change any parse result.
package peg
