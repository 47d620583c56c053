// Package diag accumulates compiler diagnostics. Producers append typed,
// range-annotated logs; printing filters and orders them for the console.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"fekal-hq/fekal/pkg/fekal/ast"
)

// Severity orders diagnostics from most to least severe.
type Severity int

const (
	Error Severity = iota + 1
	Warning
	Information
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Information:
		return "info"
	case Hint:
		return "hint"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Position is a source location: 1-based line, 0-based column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is a half-open span over the source.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Log is one diagnostic entry.
type Log struct {
	Severity Severity
	Message  string
	Range    Range
}

// Diagnostics is an ordered log of diagnostics for one compilation. The
// append order is the traversal order and is deterministic for a given
// input; Print regroups by severity.
type Diagnostics struct {
	Logs []Log

	colorize    bool
	maxErrors   int
	maxWarnings int
}

// DefaultLimit caps each severity group when printing.
const DefaultLimit = 100

// New returns an empty Diagnostics with the default print caps.
func New() *Diagnostics {
	return &Diagnostics{maxErrors: DefaultLimit, maxWarnings: DefaultLimit}
}

// WithColor enables ANSI colour on the printed severity prefixes.
func (d *Diagnostics) WithColor(on bool) *Diagnostics {
	d.colorize = on
	return d
}

// WithLimits overrides the per-severity print caps.
func (d *Diagnostics) WithLimits(maxErrors, maxWarnings int) *Diagnostics {
	d.maxErrors = maxErrors
	d.maxWarnings = maxWarnings
	return d
}

// Reset drops all accumulated logs.
func (d *Diagnostics) Reset() {
	d.Logs = d.Logs[:0]
}

// Errorf appends an error.
func (d *Diagnostics) Errorf(rng Range, format string, args ...any) {
	d.append(Error, rng, format, args...)
}

// Warningf appends a warning.
func (d *Diagnostics) Warningf(rng Range, format string, args ...any) {
	d.append(Warning, rng, format, args...)
}

// Infof appends an informational note.
func (d *Diagnostics) Infof(rng Range, format string, args ...any) {
	d.append(Information, rng, format, args...)
}

// Hintf appends a hint.
func (d *Diagnostics) Hintf(rng Range, format string, args ...any) {
	d.append(Hint, rng, format, args...)
}

func (d *Diagnostics) append(sev Severity, rng Range, format string, args ...any) {
	d.Logs = append(d.Logs, Log{Severity: sev, Message: fmt.Sprintf(format, args...), Range: rng})
}

// HasErrors reports whether any error was logged.
func (d *Diagnostics) HasErrors() bool { return d.count(Error) > 0 }

// ErrorCount returns the number of logged errors.
func (d *Diagnostics) ErrorCount() int { return d.count(Error) }

// WarningCount returns the number of logged warnings.
func (d *Diagnostics) WarningCount() int { return d.count(Warning) }

func (d *Diagnostics) count(sev Severity) int {
	n := 0
	for _, l := range d.Logs {
		if l.Severity == sev {
			n++
		}
	}
	return n
}

// Print writes the log to w, all warnings before all errors, each group
// truncated at its cap. The console format carries the message only; the
// ranges stay available to structured consumers.
func (d *Diagnostics) Print(w io.Writer) {
	d.printGroup(w, Warning, d.maxWarnings)
	d.printGroup(w, Error, d.maxErrors)
}

func (d *Diagnostics) printGroup(w io.Writer, sev Severity, max int) {
	printed := 0
	for _, l := range d.Logs {
		if l.Severity != sev {
			continue
		}
		if printed == max {
			return
		}
		fmt.Fprintf(w, "%s %s\n", d.prefix(sev), l.Message)
		printed++
	}
}

func (d *Diagnostics) prefix(sev Severity) string {
	label, attr := "Error:", color.FgRed
	if sev == Warning {
		label, attr = "Warning:", color.FgYellow
	}
	if !d.colorize {
		return label
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(label)
}

// RangeFromName builds the range of a name appearing at a node's
// position, spanning the name's length on one line.
func RangeFromName(n ast.Node, name string) Range {
	p := n.Pos()
	return Range{
		Start: Position{Line: p.Line, Column: p.Column},
		End:   Position{Line: p.Line, Column: p.Column + len(name)},
	}
}

// RangeAt builds an empty range at a node's position.
func RangeAt(n ast.Node) Range {
	p := n.Pos()
	return Range{
		Start: Position{Line: p.Line, Column: p.Column},
		End:   Position{Line: p.Line, Column: p.Column},
	}
}
