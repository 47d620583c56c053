package checker

import (
	"fekal-hq/fekal/pkg/fekal/ast"
	"fekal-hq/fekal/pkg/fekal/diag"
)

// Checker is the global semantic pass. It maintains the scope stack while
// walking the tree and emits diagnostics for duplicate declarations,
// unresolved policy references, and unused trailing parameters.
type Checker struct {
	ast.BaseVisitor

	ctx   *Context
	diags *diag.Diagnostics
}

// Check runs the global pass over a program.
//
// Policies are declared in a first pass over the top level before the
// traversal resolves anything, so a USE may reference a policy declared
// later in the file.
func Check(ctx *Context, diags *diag.Diagnostics, program []ast.ProgramStatement) {
	global := ctx.GlobalScope()
	for _, stmt := range program {
		pol, ok := stmt.(*ast.Policy)
		if !ok {
			continue
		}
		if global.HasSymbol(pol.ID()) {
			diags.Errorf(diag.RangeFromName(pol, pol.Name),
				"policy %s already declared", pol.ID())
			continue
		}
		global.DeclareSymbol(pol.ID())
	}

	c := &Checker{ctx: ctx, diags: diags}
	ast.Walk(program, c)
}

func (c *Checker) VisitPolicy(p *ast.Policy) bool {
	c.ctx.PushScope(p)
	return true
}

func (c *Checker) LeavePolicy(*ast.Policy) {
	c.ctx.PopScope()
}

func (c *Checker) VisitUseStatement(u *ast.UseStatement) {
	if !c.ctx.HasSymbol(u.ID()) {
		c.diags.Errorf(diag.RangeFromName(u, u.Policy),
			"Policy %s doesn't exist", u.ID())
	}
}

func (c *Checker) VisitActionBlock(b *ast.ActionBlock) bool {
	c.ctx.PushScope(b)
	return true
}

func (c *Checker) LeaveActionBlock(*ast.ActionBlock) {
	c.ctx.PopScope()
}

func (c *Checker) VisitSyscallFilter(f *ast.SyscallFilter) bool {
	scope := c.ctx.PeekScope()
	if scope.HasSymbol(f.Syscall) {
		c.diags.Errorf(diag.RangeFromName(f, f.Syscall),
			"Syscall filter %s already declared in this scope", f.Syscall)
	}
	scope.DeclareSymbol(f.Syscall)

	if len(f.Params) > 0 {
		paramScope := c.ctx.PushScope(f)
		for _, p := range f.Params {
			if paramScope.HasSymbol(p.Value) {
				c.diags.Errorf(diag.RangeFromName(p, p.Value),
					"syscall parameter %s already declared", p.Value)
				continue
			}
			paramScope.DeclareSymbol(p.Value)
		}
	}
	return true
}

func (c *Checker) LeaveSyscallFilter(f *ast.SyscallFilter) {
	if len(f.Params) == 0 {
		return
	}
	scope := c.ctx.PeekScope()
	// Only a trailing run of unused parameters warns: scan backwards and
	// stop at the first parameter with a reference.
	for i := len(f.Params) - 1; i >= 0; i-- {
		sym := scope.Symbol(f.Params[i].Value)
		if sym.References != 0 {
			break
		}
		c.diags.Warningf(diag.RangeFromName(f.Params[i], sym.Name),
			"Parameter %s unused", sym.Name)
	}
	c.ctx.PopScope()
}

func (c *Checker) VisitIntExpr(e ast.IntExpr) bool {
	if id, ok := e.(*ast.Identifier); ok {
		c.ctx.IncreaseReference(id.Value)
	}
	return true
}
