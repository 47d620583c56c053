package ast

// Visitor receives nodes during a Walk. Visit hooks that return bool
// short-circuit: returning false skips the node's children and its Leave
// hook. Embed BaseVisitor to implement only the hooks a pass needs.
type Visitor interface {
	VisitPolicy(*Policy) bool
	LeavePolicy(*Policy)
	VisitUseStatement(*UseStatement)
	VisitDefaultAction(*DefaultAction)
	VisitActionBlock(*ActionBlock) bool
	LeaveActionBlock(*ActionBlock)
	VisitSyscallFilter(*SyscallFilter) bool
	LeaveSyscallFilter(*SyscallFilter)
	VisitBoolExpr(BoolExpr) bool
	LeaveBoolExpr(BoolExpr)
	VisitIntExpr(IntExpr) bool
	LeaveIntExpr(IntExpr)
}

// BaseVisitor is a Visitor that visits everything and does nothing.
type BaseVisitor struct{}

func (BaseVisitor) VisitPolicy(*Policy) bool               { return true }
func (BaseVisitor) LeavePolicy(*Policy)                    {}
func (BaseVisitor) VisitUseStatement(*UseStatement)        {}
func (BaseVisitor) VisitDefaultAction(*DefaultAction)      {}
func (BaseVisitor) VisitActionBlock(*ActionBlock) bool     { return true }
func (BaseVisitor) LeaveActionBlock(*ActionBlock)          {}
func (BaseVisitor) VisitSyscallFilter(*SyscallFilter) bool { return true }
func (BaseVisitor) LeaveSyscallFilter(*SyscallFilter)      {}
func (BaseVisitor) VisitBoolExpr(BoolExpr) bool            { return true }
func (BaseVisitor) LeaveBoolExpr(BoolExpr)                 {}
func (BaseVisitor) VisitIntExpr(IntExpr) bool              { return true }
func (BaseVisitor) LeaveIntExpr(IntExpr)                   {}

// Walk traverses a program in source order, pre-order with leave
// callbacks.
func Walk(program []ProgramStatement, v Visitor) {
	for _, stmt := range program {
		walkProgramStatement(stmt, v)
	}
}

func walkProgramStatement(stmt ProgramStatement, v Visitor) {
	switch n := stmt.(type) {
	case *Policy:
		if !v.VisitPolicy(n) {
			return
		}
		for _, s := range n.Body {
			switch b := s.(type) {
			case *UseStatement:
				v.VisitUseStatement(b)
			case *ActionBlock:
				walkActionBlock(b, v)
			}
		}
		v.LeavePolicy(n)
	case *DefaultAction:
		v.VisitDefaultAction(n)
	case *UseStatement:
		v.VisitUseStatement(n)
	case *ActionBlock:
		walkActionBlock(n, v)
	}
}

func walkActionBlock(block *ActionBlock, v Visitor) {
	if !v.VisitActionBlock(block) {
		return
	}
	for _, f := range block.Filters {
		walkSyscallFilter(f, v)
	}
	v.LeaveActionBlock(block)
}

func walkSyscallFilter(filter *SyscallFilter, v Visitor) {
	if !v.VisitSyscallFilter(filter) {
		return
	}
	for _, cond := range filter.Body {
		WalkBoolExpr(cond, v)
	}
	v.LeaveSyscallFilter(filter)
}

// WalkBoolExpr traverses a boolean expression tree.
func WalkBoolExpr(e BoolExpr, v Visitor) {
	if !v.VisitBoolExpr(e) {
		return
	}
	switch n := e.(type) {
	case *NegExpr:
		WalkBoolExpr(n.Inner, v)
	case *AndExpr:
		WalkBoolExpr(n.Left, v)
		WalkBoolExpr(n.Right, v)
	case *OrExpr:
		WalkBoolExpr(n.Left, v)
		WalkBoolExpr(n.Right, v)
	default:
		left, right, ok := Comparison(e)
		if !ok {
			panic("ast: unknown BoolExpr variant")
		}
		WalkIntExpr(left, v)
		WalkIntExpr(right, v)
	}
	v.LeaveBoolExpr(e)
}

// WalkIntExpr traverses an integer expression tree.
func WalkIntExpr(e IntExpr, v Visitor) {
	if !v.VisitIntExpr(e) {
		return
	}
	if left, right, ok := IntOperands(e); ok {
		WalkIntExpr(left, v)
		WalkIntExpr(right, v)
	}
	v.LeaveIntExpr(e)
}
