package parser

import (
	"fmt"
	"testing"

	"fekal-hq/fekal/pkg/fekal/ast"
)

func parseProgram(t *testing.T, src string) []ast.ProgramStatement {
	t.Helper()
	program, lexErrs, err := NewParser().Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	if len(lexErrs) != 0 {
		t.Fatalf("Parse(%q) had lexical errors: %v", src, lexErrs)
	}
	return program
}

func parseBool(t *testing.T, src string) ast.BoolExpr {
	t.Helper()
	e, lexErrs, err := NewParser().ParseBoolExpr([]byte(src))
	if err != nil {
		t.Fatalf("ParseBoolExpr(%q) failed: %v", src, err)
	}
	if len(lexErrs) != 0 {
		t.Fatalf("ParseBoolExpr(%q) had lexical errors: %v", src, lexErrs)
	}
	return e
}

func TestParse_SimplePolicy(t *testing.T) {
	program := parseProgram(t, "POLICY Aio 0 { ALLOW { io_cancel, io_setup } }")
	if len(program) != 1 {
		t.Fatalf("len(program) = %d, want 1", len(program))
	}

	pol, ok := program[0].(*ast.Policy)
	if !ok {
		t.Fatalf("program[0] is %T, want *ast.Policy", program[0])
	}
	if pol.Name != "Aio" || pol.Version != "0" {
		t.Errorf("policy = %s %s, want Aio 0", pol.Name, pol.Version)
	}
	if len(pol.Body) != 1 {
		t.Fatalf("len(body) = %d, want 1", len(pol.Body))
	}

	block, ok := pol.Body[0].(*ast.ActionBlock)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.ActionBlock", pol.Body[0])
	}
	if _, ok := block.Action.(ast.ActionAllow); !ok {
		t.Errorf("action is %T, want ActionAllow", block.Action)
	}
	if len(block.Filters) != 2 {
		t.Fatalf("len(filters) = %d, want 2", len(block.Filters))
	}
	if block.Filters[0].Syscall != "io_cancel" || block.Filters[1].Syscall != "io_setup" {
		t.Errorf("filters = %s, %s", block.Filters[0].Syscall, block.Filters[1].Syscall)
	}
	for _, f := range block.Filters {
		if len(f.Params) != 0 || len(f.Body) != 0 {
			t.Errorf("filter %s must be bare", f.Syscall)
		}
	}
}

func TestParse_EmptyInput(t *testing.T) {
	program, lexErrs, err := NewParser().Parse(nil)
	if err != nil {
		t.Fatalf("Parse(empty) failed: %v", err)
	}
	if len(program) != 0 || len(lexErrs) != 0 {
		t.Errorf("empty input must produce an empty program")
	}
}

func TestParse_NoMatch(t *testing.T) {
	_, _, err := NewParser().Parse([]byte("POLICY {"))
	var nm *NoMatchError
	if err == nil {
		t.Fatal("Parse must fail")
	}
	var ok bool
	if nm, ok = err.(*NoMatchError); !ok {
		t.Fatalf("error is %T, want *NoMatchError", err)
	}
	if nm.Line != 1 {
		t.Errorf("error line = %d, want 1", nm.Line)
	}
}

func TestParse_DefaultAction(t *testing.T) {
	program := parseProgram(t, "DEFAULT ERRNO(5)")
	def, ok := program[0].(*ast.DefaultAction)
	if !ok {
		t.Fatalf("program[0] is %T, want *ast.DefaultAction", program[0])
	}
	errno, ok := def.Action.(ast.ActionErrno)
	if !ok {
		t.Fatalf("action is %T, want ActionErrno", def.Action)
	}
	if errno.Errnum != 5 {
		t.Errorf("errnum = %d, want 5", errno.Errnum)
	}
}

func TestParse_Actions(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Action
	}{
		{"ALLOW {}", ast.ActionAllow{}},
		{"LOG {}", ast.ActionLog{}},
		{"KILL_PROCESS {}", ast.ActionKillProcess{}},
		{"KILL_THREAD {}", ast.ActionKillThread{}},
		{"USER_NOTIF {}", ast.ActionUserNotif{}},
		{"ERRNO(1) {}", ast.ActionErrno{Errnum: 1}},
		{"TRAP(2) {}", ast.ActionTrap{Code: 2}},
		{"TRACE(0x10) {}", ast.ActionTrace{Code: 16}},
	}
	for _, tt := range tests {
		program := parseProgram(t, tt.src)
		block, ok := program[0].(*ast.ActionBlock)
		if !ok {
			t.Fatalf("%q: program[0] is %T", tt.src, program[0])
		}
		if block.Action != tt.want {
			t.Errorf("%q: action = %v, want %v", tt.src, block.Action, tt.want)
		}
	}
}

func TestParse_TopLevelUse(t *testing.T) {
	program := parseProgram(t, "USE Base 1")
	use, ok := program[0].(*ast.UseStatement)
	if !ok {
		t.Fatalf("program[0] is %T, want *ast.UseStatement", program[0])
	}
	if use.Policy != "Base" || use.Version != "1" {
		t.Errorf("use = %s %s, want Base 1", use.Policy, use.Version)
	}
	if use.ID() != "Base1" {
		t.Errorf("ID() = %q, want Base1", use.ID())
	}
}

func TestParse_TrailingCommas(t *testing.T) {
	for _, src := range []string{
		"ALLOW { read, }",
		"ALLOW { f(a) { a == 1, } }",
	} {
		parseProgram(t, src)
	}
}

func TestParse_FilterWithParamsAndBody(t *testing.T) {
	program := parseProgram(t, "ALLOW { f(a, b) { a == 1, b == 2 } }")
	block := program[0].(*ast.ActionBlock)
	f := block.Filters[0]
	if len(f.Params) != 2 || f.Params[0].Value != "a" || f.Params[1].Value != "b" {
		t.Fatalf("params = %v", f.Params)
	}
	if len(f.Body) != 2 {
		t.Fatalf("len(body) = %d, want 2", len(f.Body))
	}
}

// a - b - c must parse as (- (- a b) c), and the same for every other
// left-recursive integer operator.
func TestParse_LeftAssociativity(t *testing.T) {
	ops := []string{"+", "-", "*", "/", "<<", ">>", "&", "^", "|"}
	for _, op := range ops {
		cond := parseBool(t, fmt.Sprintf("a %s b %s c == 0", op, op))
		eq, ok := cond.(*ast.EqExpr)
		if !ok {
			t.Fatalf("%q: condition is %T, want *ast.EqExpr", op, cond)
		}
		outerL, outerR, ok := ast.IntOperands(eq.Left)
		if !ok {
			t.Fatalf("%q: left side is %T, want a binary operator", op, eq.Left)
		}
		if id, ok := outerR.(*ast.Identifier); !ok || id.Value != "c" {
			t.Errorf("%q: outer right operand = %v, want c", op, outerR)
		}
		innerL, innerR, ok := ast.IntOperands(outerL)
		if !ok {
			t.Fatalf("%q: inner node is %T, want a binary operator", op, outerL)
		}
		if id, ok := innerL.(*ast.Identifier); !ok || id.Value != "a" {
			t.Errorf("%q: inner left operand = %v, want a", op, innerL)
		}
		if id, ok := innerR.(*ast.Identifier); !ok || id.Value != "b" {
			t.Errorf("%q: inner right operand = %v, want b", op, innerR)
		}
	}
}

// S5: the short-circuit operators nest left-associatively too.
func TestParse_OrLeftAssociativity(t *testing.T) {
	cond := parseBool(t, "persona == 0 || persona == 8 || persona == 16")
	outer, ok := cond.(*ast.OrExpr)
	if !ok {
		t.Fatalf("condition is %T, want *ast.OrExpr", cond)
	}
	inner, ok := outer.Left.(*ast.OrExpr)
	if !ok {
		t.Fatalf("left is %T, want *ast.OrExpr", outer.Left)
	}
	for i, cmp := range []ast.BoolExpr{inner.Left, inner.Right, outer.Right} {
		eq, ok := cmp.(*ast.EqExpr)
		if !ok {
			t.Fatalf("comparison %d is %T, want *ast.EqExpr", i, cmp)
		}
		lit, ok := eq.Right.(*ast.IntLit)
		if !ok {
			t.Fatalf("comparison %d right is %T, want *ast.IntLit", i, eq.Right)
		}
		want := []int64{0, 8, 16}[i]
		if lit.Value != want {
			t.Errorf("comparison %d literal = %d, want %d", i, lit.Value, want)
		}
	}
}

func TestParse_AndLeftAssociativity(t *testing.T) {
	cond := parseBool(t, "a == 1 && b == 2 && c == 3")
	outer, ok := cond.(*ast.AndExpr)
	if !ok {
		t.Fatalf("condition is %T, want *ast.AndExpr", cond)
	}
	if _, ok := outer.Left.(*ast.AndExpr); !ok {
		t.Errorf("left is %T, want *ast.AndExpr", outer.Left)
	}
	if _, ok := outer.Right.(*ast.EqExpr); !ok {
		t.Errorf("right is %T, want *ast.EqExpr", outer.Right)
	}
}

// Low to high: || < && < comparisons < | < ^ < & < shifts < +- < */.
func TestParse_Precedence(t *testing.T) {
	cond := parseBool(t, "a | b ^ c & x << y + m * n == 0")
	eq := cond.(*ast.EqExpr)

	or, ok := eq.Left.(*ast.BitOrExpr)
	if !ok {
		t.Fatalf("level 1 is %T, want *ast.BitOrExpr", eq.Left)
	}
	xor, ok := or.Right.(*ast.BitXorExpr)
	if !ok {
		t.Fatalf("level 2 is %T, want *ast.BitXorExpr", or.Right)
	}
	and, ok := xor.Right.(*ast.BitAndExpr)
	if !ok {
		t.Fatalf("level 3 is %T, want *ast.BitAndExpr", xor.Right)
	}
	shift, ok := and.Right.(*ast.LshiftExpr)
	if !ok {
		t.Fatalf("level 4 is %T, want *ast.LshiftExpr", and.Right)
	}
	sum, ok := shift.Right.(*ast.SumExpr)
	if !ok {
		t.Fatalf("level 5 is %T, want *ast.SumExpr", shift.Right)
	}
	if _, ok := sum.Right.(*ast.MulExpr); !ok {
		t.Fatalf("level 6 is %T, want *ast.MulExpr", sum.Right)
	}
}

func TestParse_BoolPrecedence(t *testing.T) {
	cond := parseBool(t, "a == 1 || b == 2 && c == 3")
	or, ok := cond.(*ast.OrExpr)
	if !ok {
		t.Fatalf("condition is %T, want *ast.OrExpr", cond)
	}
	if _, ok := or.Right.(*ast.AndExpr); !ok {
		t.Errorf("|| must bind looser than &&, right is %T", or.Right)
	}
}

func TestParse_Parentheses(t *testing.T) {
	cond := parseBool(t, "(a + b) * c == 0")
	eq := cond.(*ast.EqExpr)
	mul, ok := eq.Left.(*ast.MulExpr)
	if !ok {
		t.Fatalf("left is %T, want *ast.MulExpr", eq.Left)
	}
	if _, ok := mul.Left.(*ast.SumExpr); !ok {
		t.Errorf("grouping must override precedence, left is %T", mul.Left)
	}
}

func TestParse_Negation(t *testing.T) {
	cond := parseBool(t, "!(a == 1)")
	neg, ok := cond.(*ast.NegExpr)
	if !ok {
		t.Fatalf("condition is %T, want *ast.NegExpr", cond)
	}
	if _, ok := neg.Inner.(*ast.EqExpr); !ok {
		t.Errorf("inner is %T, want *ast.EqExpr", neg.Inner)
	}
}

func TestParse_OperatorPositionRecorded(t *testing.T) {
	cond := parseBool(t, "a + b == 0")
	eq := cond.(*ast.EqExpr)
	if eq.Pos().Line != 1 || eq.Pos().Column != 6 {
		t.Errorf("== at %v, want 1:6", eq.Pos())
	}
	sum := eq.Left.(*ast.SumExpr)
	if sum.Pos().Line != 1 || sum.Pos().Column != 2 {
		t.Errorf("+ at %v, want 1:2", sum.Pos())
	}
}

func TestParse_LiteralBasesDecodeInExpressions(t *testing.T) {
	cond := parseBool(t, "0b10 + 010 + 0x10 + 10 == 36")
	eq := cond.(*ast.EqExpr)
	total := int64(0)
	var walk func(e ast.IntExpr)
	walk = func(e ast.IntExpr) {
		if lit, ok := e.(*ast.IntLit); ok {
			total += lit.Value
			return
		}
		l, r, ok := ast.IntOperands(e)
		if !ok {
			t.Fatalf("unexpected node %T", e)
		}
		walk(l)
		walk(r)
	}
	walk(eq.Left)
	if total != 2+8+16+10 {
		t.Errorf("literal sum = %d, want 36", total)
	}
}

func TestParse_TrailingTokensAfterExpression(t *testing.T) {
	if _, _, err := NewParser().ParseBoolExpr([]byte("a == 1 b")); err == nil {
		t.Fatal("trailing tokens must fail")
	}
}

// Disabling memoization never changes the parse result.
func TestParse_MemoizationIsTransparent(t *testing.T) {
	src := []byte("POLICY P 0 { ALLOW { personality(persona) { persona == 0 || persona == 8 || persona == 16 } } }")
	withMemo, _, err := NewParser().Parse(src)
	if err != nil {
		t.Fatalf("memoized parse failed: %v", err)
	}
	without, _, err := NewParser().WithMemoization(false).Parse(src)
	if err != nil {
		t.Fatalf("unmemoized parse failed: %v", err)
	}
	if !ast.EqualPrograms(withMemo, without) {
		t.Error("memoization changed the parse result")
	}
}
