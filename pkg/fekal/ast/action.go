package ast

import "fmt"

// Action is a seccomp action attached to an action block or the DEFAULT
// directive.
type Action interface {
	actionNode()
	// Label returns the action's source spelling, with the argument for
	// the parameterised variants.
	Label() string
}

type ActionAllow struct{}
type ActionLog struct{}
type ActionKillProcess struct{}
type ActionKillThread struct{}
type ActionUserNotif struct{}

// ActionErrno makes matching calls fail with the given errno.
type ActionErrno struct {
	Errnum int32
}

// ActionTrap raises SIGSYS with the given code.
type ActionTrap struct {
	Code int64
}

// ActionTrace notifies an attached tracer with the given code.
type ActionTrace struct {
	Code int64
}

func (ActionAllow) actionNode()       {}
func (ActionLog) actionNode()         {}
func (ActionKillProcess) actionNode() {}
func (ActionKillThread) actionNode()  {}
func (ActionUserNotif) actionNode()   {}
func (ActionErrno) actionNode()       {}
func (ActionTrap) actionNode()        {}
func (ActionTrace) actionNode()       {}

func (ActionAllow) Label() string       { return "ALLOW" }
func (ActionLog) Label() string         { return "LOG" }
func (ActionKillProcess) Label() string { return "KILL_PROCESS" }
func (ActionKillThread) Label() string  { return "KILL_THREAD" }
func (ActionUserNotif) Label() string   { return "USER_NOTIF" }
func (a ActionErrno) Label() string     { return fmt.Sprintf("ERRNO{%d}", a.Errnum) }
func (a ActionTrap) Label() string      { return fmt.Sprintf("TRAP{%d}", a.Code) }
func (a ActionTrace) Label() string     { return fmt.Sprintf("TRACE{%d}", a.Code) }
