package ast

// ProgramStatement is a top-level statement: a policy declaration, the
// DEFAULT directive, or a bare use/action-block.
type ProgramStatement interface {
	Node
	programStmtNode()
}

// PolicyStatement is a statement inside a policy body.
type PolicyStatement interface {
	Node
	policyStmtNode()
}

// SyscallFilter names a syscall, binds optional parameters to argument
// positions, and lists boolean conditions. An empty body means any call to
// the syscall matches. The node's position is the syscall name's.
type SyscallFilter struct {
	Position
	Syscall string
	Params  []*Identifier
	Body    []BoolExpr
}

// ActionBlock pairs an action with the syscall filters that trigger it.
// Its position is the action keyword's.
type ActionBlock struct {
	Position
	Action  Action
	Filters []*SyscallFilter
}

// UseStatement pulls another policy, identified by name and version, into
// the surrounding scope. Its position is the referenced policy name's.
type UseStatement struct {
	Position
	Policy  string
	Version string
}

// ID returns the referenced policy identifier, name and version joined.
func (u *UseStatement) ID() string { return u.Policy + u.Version }

// Policy is a named, versioned collection of use statements and action
// blocks. Its position is the policy name's.
type Policy struct {
	Position
	Name    string
	Version string
	Body    []PolicyStatement
}

// ID returns the policy identifier, name and version joined.
func (p *Policy) ID() string { return p.Name + p.Version }

// DefaultAction is the top-level DEFAULT directive.
type DefaultAction struct {
	Position
	Action Action
}

func (*Policy) programStmtNode()        {}
func (*DefaultAction) programStmtNode() {}
func (*UseStatement) programStmtNode()  {}
func (*ActionBlock) programStmtNode()   {}

func (*UseStatement) policyStmtNode() {}
func (*ActionBlock) policyStmtNode()  {}
