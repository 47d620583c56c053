package parser

import (
	"fekal-hq/fekal/pkg/fekal/ast"
	"fekal-hq/fekal/pkg/fekal/lexer"
	"fekal-hq/fekal/pkg/fekal/peg"
	"fekal-hq/fekal/pkg/fekal/token"
)

// Expression rules. Each rule receives the reader positioned at its first
// token and, on success, leaves it at the last token it consumed. The
// left-recursive rules lean on peg.Context: the left operand re-enters the
// same rule (bounded by the seed-and-grow budget) and the right operand is
// parsed through Right1, which pins the budget to zero so exactly one
// operand of the next precedence level matches.
const (
	ruleOrExpr peg.Rule = iota
	ruleAndExpr
	ruleRelOp
	ruleBitOr
	ruleBitXor
	ruleBitAnd
	ruleBitShift
	ruleSum
	ruleMul
	ruleTerm
)

// boolCondition is the expression entry point used by statement rules.
func boolCondition(cache *peg.Cache[ast.Expr], r *lexer.Reader) (ast.BoolExpr, bool) {
	c := peg.NewContext(cache, r)
	e, ok := c.Enter(ruleOrExpr, orExpr, r)
	if !ok {
		return nil, false
	}
	return asBool(e), true
}

// OrExpr <- OrExpr '||' AndExpr / AndExpr
func orExpr(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	return peg.Choice(c, r,
		func(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
			left, ok := c.Enter(ruleOrExpr, orExpr, r)
			if !ok || !r.Next() || r.Symbol() != token.OR {
				return nil, false
			}
			opPos := pos(r)
			if !r.Next() {
				return nil, false
			}
			right, ok := c.Right1(ruleOrExpr, orExpr, r)
			if !ok {
				return nil, false
			}
			return &ast.OrExpr{Position: opPos, Left: asBool(left), Right: asBool(right)}, true
		},
		func(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
			return c.Enter(ruleAndExpr, andExpr, r)
		},
	)
}

// AndExpr <- AndExpr '&&' RelOp / RelOp
func andExpr(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	return peg.Choice(c, r,
		func(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
			left, ok := c.Enter(ruleAndExpr, andExpr, r)
			if !ok || !r.Next() || r.Symbol() != token.AND {
				return nil, false
			}
			opPos := pos(r)
			if !r.Next() {
				return nil, false
			}
			right, ok := c.Right1(ruleAndExpr, andExpr, r)
			if !ok {
				return nil, false
			}
			return &ast.AndExpr{Position: opPos, Left: asBool(left), Right: asBool(right)}, true
		},
		func(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
			return c.Enter(ruleRelOp, relOp, r)
		},
	)
}

type intCtor func(p ast.Position, l, r ast.IntExpr) ast.Expr

var cmpOps = map[token.Symbol]intCtor{
	token.EQ:         func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.EqExpr{Position: p, Left: l, Right: r} },
	token.NEQ:        func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.NeqExpr{Position: p, Left: l, Right: r} },
	token.LESS:       func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.LtExpr{Position: p, Left: l, Right: r} },
	token.GREATER:    func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.GtExpr{Position: p, Left: l, Right: r} },
	token.LESS_EQ:    func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.LteExpr{Position: p, Left: l, Right: r} },
	token.GREATER_EQ: func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.GteExpr{Position: p, Left: l, Right: r} },
}

// RelOp <- BitOr ('=='|'!='|'<'|'>'|'<='|'>=') BitOr / '!'? '(' OrExpr ')'
//
// The grouped form goes through OrExpr because negation composes over
// booleans; Term's grouped form goes through BitOr instead, so
// parentheses in integer context cannot contain boolean subexpressions.
func relOp(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	return peg.Choice(c, r,
		func(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
			left, ok := c.Enter(ruleBitOr, bitOr, r)
			if !ok || !r.Next() {
				return nil, false
			}
			ctor, isCmp := cmpOps[r.Symbol()]
			if !isCmp {
				return nil, false
			}
			opPos := pos(r)
			if !r.Next() {
				return nil, false
			}
			right, ok := c.Enter(ruleBitOr, bitOr, r)
			if !ok {
				return nil, false
			}
			return ctor(opPos, asInt(left), asInt(right)), true
		},
		func(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
			negated := false
			var negPos ast.Position
			if r.Symbol() == token.NEG {
				negated = true
				negPos = pos(r)
				if !r.Next() {
					return nil, false
				}
			}
			if r.Symbol() != token.LPAREN || !r.Next() {
				return nil, false
			}
			inner, ok := c.Enter(ruleOrExpr, orExpr, r)
			if !ok || !r.Next() || r.Symbol() != token.RPAREN {
				return nil, false
			}
			if negated {
				return &ast.NegExpr{Position: negPos, Inner: asBool(inner)}, true
			}
			return inner, true
		},
	)
}

var bitOrOps = map[token.Symbol]intCtor{
	token.BOR: func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.BitOrExpr{Position: p, Left: l, Right: r} },
}

var bitXorOps = map[token.Symbol]intCtor{
	token.BXOR: func(p ast.Position, l, r ast.IntExpr) ast.Expr {
		return &ast.BitXorExpr{Position: p, Left: l, Right: r}
	},
}

var bitAndOps = map[token.Symbol]intCtor{
	token.BAND: func(p ast.Position, l, r ast.IntExpr) ast.Expr {
		return &ast.BitAndExpr{Position: p, Left: l, Right: r}
	},
}

var shiftOps = map[token.Symbol]intCtor{
	token.LSHIFT: func(p ast.Position, l, r ast.IntExpr) ast.Expr {
		return &ast.LshiftExpr{Position: p, Left: l, Right: r}
	},
	token.RSHIFT: func(p ast.Position, l, r ast.IntExpr) ast.Expr {
		return &ast.RshiftExpr{Position: p, Left: l, Right: r}
	},
}

var sumOps = map[token.Symbol]intCtor{
	token.PLUS: func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.SumExpr{Position: p, Left: l, Right: r} },
	token.MINUS: func(p ast.Position, l, r ast.IntExpr) ast.Expr {
		return &ast.SubtractExpr{Position: p, Left: l, Right: r}
	},
}

var mulOps = map[token.Symbol]intCtor{
	token.MULT: func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.MulExpr{Position: p, Left: l, Right: r} },
	token.DIV:  func(p ast.Position, l, r ast.IntExpr) ast.Expr { return &ast.DivExpr{Position: p, Left: l, Right: r} },
}

// BitOr <- BitOr '|' BitXor / BitXor
func bitOr(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	return leftBinary(c, r, ruleBitOr, bitOr, bitOrOps, ruleBitXor, bitXor)
}

// BitXor <- BitXor '^' BitAnd / BitAnd
func bitXor(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	return leftBinary(c, r, ruleBitXor, bitXor, bitXorOps, ruleBitAnd, bitAnd)
}

// BitAnd <- BitAnd '&' BitShift / BitShift
func bitAnd(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	return leftBinary(c, r, ruleBitAnd, bitAnd, bitAndOps, ruleBitShift, bitShift)
}

// BitShift <- BitShift ('<<'|'>>') Sum / Sum
func bitShift(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	return leftBinary(c, r, ruleBitShift, bitShift, shiftOps, ruleSum, sum)
}

// Sum <- Sum ('+'|'-') Mul / Mul
func sum(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	return leftBinary(c, r, ruleSum, sum, sumOps, ruleMul, mul)
}

// Mul <- Mul ('*'|'/') Term / Term
func mul(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	return leftBinary(c, r, ruleMul, mul, mulOps, ruleTerm, term)
}

// leftBinary is the shared shape of the left-recursive integer operator
// rules: Rule <- Rule op Next / Next.
func leftBinary(
	c *peg.Context[ast.Expr], r *lexer.Reader,
	rule peg.Rule, self peg.RuleFn[ast.Expr], ops map[token.Symbol]intCtor,
	next peg.Rule, nextFn peg.RuleFn[ast.Expr],
) (ast.Expr, bool) {
	return peg.Choice(c, r,
		func(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
			left, ok := c.Enter(rule, self, r)
			if !ok || !r.Next() {
				return nil, false
			}
			ctor, isOp := ops[r.Symbol()]
			if !isOp {
				return nil, false
			}
			opPos := pos(r)
			if !r.Next() {
				return nil, false
			}
			right, ok := c.Right1(rule, self, r)
			if !ok {
				return nil, false
			}
			return ctor(opPos, asInt(left), asInt(right)), true
		},
		func(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
			return c.Enter(next, nextFn, r)
		},
	)
}

// Term <- INT / IDENT / '(' BitOr ')'
func term(c *peg.Context[ast.Expr], r *lexer.Reader) (ast.Expr, bool) {
	switch {
	case r.Symbol().IsLiteral():
		return &ast.IntLit{Position: pos(r), Value: r.IntValue()}, true
	case r.Symbol() == token.IDENT:
		return &ast.Identifier{Position: pos(r), Value: r.StringValue()}, true
	case r.Symbol() == token.LPAREN:
		if !r.Next() {
			return nil, false
		}
		e, ok := c.Enter(ruleBitOr, bitOr, r)
		if !ok || !r.Next() || r.Symbol() != token.RPAREN {
			return nil, false
		}
		return e, true
	}
	return nil, false
}
