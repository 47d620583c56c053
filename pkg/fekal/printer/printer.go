// Package printer renders a parsed program as an indented, human-readable
// dump. Binary operators print in Lisp-like parenthesised form; the
// short-circuit operators print as AndExpr{...}/OrExpr{...} blocks.
package printer

import (
	"fmt"
	"io"
	"strings"

	"fekal-hq/fekal/pkg/fekal/ast"
)

const indentUnit = "  "

// Print writes the dump of program to w.
func Print(w io.Writer, program []ast.ProgramStatement) {
	p := &printer{w: w, level: 1}
	p.writeln("Program {\n")
	ast.Walk(program, p)
	p.writeln("}\n")
}

// PrintBoolExpr writes the dump of a single boolean expression to w,
// without the surrounding Program block. Used by the REPL.
func PrintBoolExpr(w io.Writer, e ast.BoolExpr) {
	p := &printer{w: w, level: 0}
	ast.WalkBoolExpr(e, p)
}

type printer struct {
	ast.BaseVisitor

	w     io.Writer
	level int
}

func (p *printer) VisitPolicy(pol *ast.Policy) bool {
	p.level++
	p.writeln(fmt.Sprintf("Policy %s {\n", pol.ID()))
	return true
}

func (p *printer) LeavePolicy(*ast.Policy) {
	p.writeln("},\n")
	p.level--
}

func (p *printer) VisitUseStatement(u *ast.UseStatement) {
	p.level++
	p.writeln(fmt.Sprintf("UseStatement{%s}\n", u.ID()))
	p.level--
}

func (p *printer) VisitDefaultAction(d *ast.DefaultAction) {
	p.level++
	p.writeln(fmt.Sprintf("DefaultAction{%s}\n", d.Action.Label()))
	p.level--
}

func (p *printer) VisitActionBlock(b *ast.ActionBlock) bool {
	p.level++
	p.writeln(fmt.Sprintf("%s {\n", b.Action.Label()))
	return true
}

func (p *printer) LeaveActionBlock(*ast.ActionBlock) {
	p.writeln("},\n")
	p.level--
}

func (p *printer) VisitSyscallFilter(f *ast.SyscallFilter) bool {
	p.level++
	p.writeln(f.Syscall)
	if !filterHasTail(f) {
		p.write(",\n")
		p.level--
		return true
	}
	names := make([]string, len(f.Params))
	for i, id := range f.Params {
		names[i] = id.Value
	}
	p.write(fmt.Sprintf("(%s) {\n", strings.Join(names, ", ")))
	return true
}

func (p *printer) LeaveSyscallFilter(f *ast.SyscallFilter) {
	if filterHasTail(f) {
		p.writeln("},\n")
		p.level--
	}
}

// filterHasTail reports whether the filter prints the parenthesised
// parameter list and braced body. A filter with parameters always does,
// even with an empty body, so a reparse of the dump reproduces the tree.
func filterHasTail(f *ast.SyscallFilter) bool {
	return len(f.Params) > 0 || len(f.Body) > 0
}

func (p *printer) VisitBoolExpr(e ast.BoolExpr) bool {
	p.level++
	switch e.(type) {
	case *ast.EqExpr:
		p.writeln("(==\n")
	case *ast.NeqExpr:
		p.writeln("(!=\n")
	case *ast.LtExpr:
		p.writeln("(<\n")
	case *ast.GtExpr:
		p.writeln("(>\n")
	case *ast.LteExpr:
		p.writeln("(<=\n")
	case *ast.GteExpr:
		p.writeln("(>=\n")
	case *ast.NegExpr:
		p.writeln("!(\n")
	case *ast.AndExpr:
		p.writeln("AndExpr{\n")
	case *ast.OrExpr:
		p.writeln("OrExpr{\n")
	}
	p.level++
	return true
}

func (p *printer) LeaveBoolExpr(e ast.BoolExpr) {
	p.level--
	switch e.(type) {
	case *ast.AndExpr, *ast.OrExpr:
		p.writeln("},\n")
	default:
		p.writeln("),\n")
	}
	p.level--
}

func (p *printer) VisitIntExpr(e ast.IntExpr) bool {
	switch n := e.(type) {
	case *ast.IntLit:
		p.writeln(fmt.Sprintf("%d\n", n.Value))
	case *ast.Identifier:
		p.writeln(fmt.Sprintf("%s\n", n.Value))
	case *ast.SumExpr:
		p.openIntOp("+")
	case *ast.SubtractExpr:
		p.openIntOp("-")
	case *ast.MulExpr:
		p.openIntOp("*")
	case *ast.DivExpr:
		p.openIntOp("/")
	case *ast.LshiftExpr:
		p.openIntOp("<<")
	case *ast.RshiftExpr:
		p.openIntOp(">>")
	case *ast.BitAndExpr:
		p.openIntOp("&")
	case *ast.BitXorExpr:
		p.openIntOp("^")
	case *ast.BitOrExpr:
		p.openIntOp("|")
	}
	return true
}

func (p *printer) LeaveIntExpr(e ast.IntExpr) {
	if _, _, binary := ast.IntOperands(e); binary {
		p.level--
		p.writeln("),\n")
	}
}

func (p *printer) openIntOp(op string) {
	p.writeln(fmt.Sprintf("(%s\n", op))
	p.level++
}

func (p *printer) writeln(text string) {
	p.indent()
	p.write(text)
}

func (p *printer) write(text string) {
	io.WriteString(p.w, text)
}

func (p *printer) indent() {
	for i := 0; i < p.level-1; i++ {
		io.WriteString(p.w, indentUnit)
	}
}
