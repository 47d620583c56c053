// Package syscalls holds the per-syscall rule passes. Each rule reuses
// the ast.Walk skeleton, re-enters the scopes the global pass built,
// injects its vocabulary as inherited symbols, and validates identifier
// operands in the filter's conditions.
package syscalls

import (
	"fekal-hq/fekal/pkg/fekal/ast"
	"fekal-hq/fekal/pkg/fekal/checker"
	"fekal-hq/fekal/pkg/fekal/diag"
)

// OpenFlags is the closed oflag vocabulary accepted by open/openat flag
// comparisons.
var OpenFlags = []string{
	"O_ASYNC", "O_DIRECT", "O_DSYNC", "O_LARGEFILE", "O_NOATIME",
	"O_NOCTTY", "O_PATH", "O_SYNC", "O_TMPFILE", "O_RDONLY", "O_WRONLY",
	"O_RDWR", "O_NONBLOCK", "O_APPEND", "O_CREAT", "O_TRUNC", "O_EXCL",
	"O_DIRECTORY", "O_NOFOLLOW", "O_CLOEXEC",
}

// OpenRule validates the flags argument of open/openat filters: any
// identifier compared against the flags parameter must name a known
// oflag.
type OpenRule struct {
	ast.BaseVisitor

	ctx   *checker.Context
	diags *diag.Diagnostics

	// state for the filter being visited
	scope     *checker.Scope
	flagIndex int
}

// CheckOpen runs the open/openat rule pass. It must run after
// checker.Check on the same Context, which holds the filter scopes.
func CheckOpen(ctx *checker.Context, diags *diag.Diagnostics, program []ast.ProgramStatement) {
	ast.Walk(program, &OpenRule{ctx: ctx, diags: diags})
}

func (r *OpenRule) VisitSyscallFilter(f *ast.SyscallFilter) bool {
	if (f.Syscall != "open" && f.Syscall != "openat") || len(f.Params) < 2 {
		return false
	}

	r.flagIndex = 1
	// openat's oflag is the third parameter
	if f.Syscall == "openat" {
		r.flagIndex = 2
	}

	scope := r.ctx.ScopeByNode(f)
	for _, flag := range OpenFlags {
		scope.DeclareInheritSymbol(flag)
	}
	r.scope = scope
	return true
}

func (r *OpenRule) LeaveSyscallFilter(*ast.SyscallFilter) {
	r.scope = nil
}

func (r *OpenRule) VisitBoolExpr(e ast.BoolExpr) bool {
	if left, right, ok := ast.Comparison(e); ok {
		r.checkOperands(left, right)
	}
	return true
}

func (r *OpenRule) VisitIntExpr(e ast.IntExpr) bool {
	if left, right, ok := ast.IntOperands(e); ok {
		r.checkOperands(left, right)
	}
	return true
}

func (r *OpenRule) checkOperands(left, right ast.IntExpr) {
	if r.scope == nil {
		return
	}
	if id, ok := left.(*ast.Identifier); ok {
		r.checkAgainstFlagParam(id, right)
	}
	if id, ok := right.(*ast.Identifier); ok {
		r.checkAgainstFlagParam(id, left)
	}
}

// checkAgainstFlagParam fires when id is the filter's flags parameter:
// the other operand, if an identifier, must be visible in the filter
// scope, which holds the parameters plus the injected flag vocabulary.
func (r *OpenRule) checkAgainstFlagParam(id *ast.Identifier, other ast.IntExpr) {
	idx, ok := r.scope.SymbolPosition(id.Value)
	if !ok || idx != r.flagIndex {
		return
	}
	if otherID, ok := other.(*ast.Identifier); ok {
		if !r.scope.HasSymbol(otherID.Value) {
			r.diags.Errorf(diag.RangeFromName(otherID, otherID.Value),
				"Invalid oflag %s", otherID.Value)
		}
	}
}
