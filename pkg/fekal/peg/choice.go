package peg

import (
	"fekal-hq/fekal/pkg/fekal/lexer"
)

// Choice tries each alternative in order, restoring the reader before the
// next one when an alternative fails. The first match wins; accepted input
// is never backtracked across.
func Choice[T any](c *Context[T], r *lexer.Reader, alts ...RuleFn[T]) (T, bool) {
	var zero T
	for _, alt := range alts {
		backup := *r
		if v, ok := alt(c, r); ok {
			return v, ok
		}
		*r = backup
	}
	return zero, false
}
