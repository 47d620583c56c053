package peg

import (
	"fekal-hq/fekal/pkg/fekal/lexer"
)

// MaxRules bounds how many distinct rules a grammar may register with one
// Context. The fekal grammar uses well under this; Enter panics beyond it.
const MaxRules = 16

// Rule identifies a grammar rule. Values are small integers assigned by
// the grammar, below MaxRules.
type Rule int

// RuleFn is a grammar rule: it receives the recursion context for the
// current entry and a reader positioned at the rule's first token, and on
// success leaves the reader at the last token it consumed.
type RuleFn[T any] func(*Context[T], *lexer.Reader) (T, bool)

type memoKey struct {
	rule   Rule
	offset int
}

// entry is one memoized outcome. Growing a seed appends one entry per
// successful iteration, so left-recursive re-entries with budget n can
// short-circuit to the n-th iteration's result.
type entry[T any] struct {
	val   T
	ok    bool
	after lexer.Reader
}

// Cache memoizes rule results keyed by (rule, byte offset). One Cache
// serves one parse and is dropped with it.
type Cache[T any] struct {
	entries map[memoKey][]entry[T]
}

// NewCache returns an empty memoization cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[memoKey][]entry[T])}
}

type limit struct {
	set bool
	n   int
}

// Context carries the recursion state for one rule entry: the reader
// snapshot the entry was made at, the per-rule recursion budgets in force,
// and the shared memo cache. Contexts are copied, never shared, when a
// rule re-enters.
type Context[T any] struct {
	cache  *Cache[T] // nil disables memoization
	reader lexer.Reader
	limits [MaxRules]limit
}

// NewContext returns the root context for parsing an expression starting
// at r. cache may be nil to disable memoization.
func NewContext[T any](cache *Cache[T], r *lexer.Reader) *Context[T] {
	return &Context[T]{cache: cache, reader: *r}
}

// Enter invokes rule fn at the reader's position. A call at the same
// position as the context's snapshot is a left-recursive call: it runs
// under the inherited budget, failing when the budget is exhausted.
// Otherwise Enter seeds the rule with budget 0 and regrows it with budgets
// 1, 2, ... until an iteration stops consuming more input, which yields
// left-associative trees for left-recursive operator rules.
func (c *Context[T]) Enter(rule Rule, fn RuleFn[T], r *lexer.Reader) (T, bool) {
	var zero T
	if rule < 0 || rule >= MaxRules {
		panic("peg: rule out of range")
	}

	inner := &Context[T]{cache: c.cache, reader: *r}
	if c.reader.Equal(r) { // left recursion
		// inherit and enforce current limits
		*inner = *c
		if inner.limits[rule].set {
			lim := &inner.limits[rule]
			if lim.n == 0 {
				return zero, false
			}
			lim.n--

			if c.cache != nil {
				if es := c.cache.entries[memoKey{rule, r.Offset()}]; lim.n < len(es) {
					e := es[lim.n]
					*r = e.after
					return e.val, e.ok
				}
			}

			return fn(inner, r)
		}
	} else if !c.reader.Less(r) {
		panic("peg: reader moved backwards")
	}

	key := memoKey{rule, r.Offset()}
	if c.cache != nil {
		if es := c.cache.entries[key]; len(es) > 0 {
			e := es[len(es)-1]
			*r = e.after
			return e.val, e.ok
		}
	}

	inner.limits[rule] = limit{set: true, n: 0}
	backup := *r
	last, ok := fn(inner, r)
	if c.cache != nil {
		c.cache.entries[key] = append(c.cache.entries[key], entry[T]{last, ok, *r})
	}
	if !ok {
		return last, false
	}

	for n := 1; ; n++ {
		inner.limits[rule].n = n
		r2 := backup
		res, ok := fn(inner, &r2)
		if !ok {
			break
		}
		if r.Less(&r2) {
			// the deeper iteration found more tokens
			last = res
			*r = r2
			if c.cache != nil {
				c.cache.entries[key] = append(c.cache.entries[key], entry[T]{last, true, *r})
			}
		} else {
			break
		}
	}

	return last, true
}

// Right1 invokes rule fn with its recursion budget pinned to zero, so the
// left-recursive alternative inside fn fails immediately and exactly one
// right-hand operand is parsed. The outer seed loop then assembles
// operator chains left-associatively.
func (c *Context[T]) Right1(rule Rule, fn RuleFn[T], r *lexer.Reader) (T, bool) {
	if !c.reader.Less(r) {
		panic("peg: Right1 at the entry position")
	}
	inner := &Context[T]{cache: c.cache, reader: *r}
	inner.limits[rule] = limit{set: true, n: 0}
	return fn(inner, r)
}
