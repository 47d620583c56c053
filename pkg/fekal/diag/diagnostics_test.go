package diag

import (
	"strings"
	"testing"

	"fekal-hq/fekal/pkg/fekal/ast"
)

func TestDiagnostics_PrintOrdersWarningsBeforeErrors(t *testing.T) {
	d := New()
	d.Errorf(Range{}, "first error")
	d.Warningf(Range{}, "a warning")
	d.Errorf(Range{}, "second error")

	var sb strings.Builder
	d.Print(&sb)
	got := sb.String()
	want := "Warning: a warning\nError: first error\nError: second error\n"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestDiagnostics_PrintRespectsLimits(t *testing.T) {
	d := New().WithLimits(1, 1)
	d.Warningf(Range{}, "w1")
	d.Warningf(Range{}, "w2")
	d.Errorf(Range{}, "e1")
	d.Errorf(Range{}, "e2")

	var sb strings.Builder
	d.Print(&sb)
	got := sb.String()
	if strings.Count(got, "Warning:") != 1 || strings.Count(got, "Error:") != 1 {
		t.Errorf("Print() = %q, want one warning and one error", got)
	}
}

func TestDiagnostics_ColorWrapsPrefix(t *testing.T) {
	d := New().WithColor(true)
	d.Errorf(Range{}, "boom")
	d.Warningf(Range{}, "careful")

	var sb strings.Builder
	d.Print(&sb)
	got := sb.String()
	if !strings.Contains(got, "\033[31m") {
		t.Errorf("coloured error prefix missing SGR 31: %q", got)
	}
	if !strings.Contains(got, "\033[33m") {
		t.Errorf("coloured warning prefix missing SGR 33: %q", got)
	}
	if !strings.Contains(got, "\033[0m") {
		t.Errorf("missing SGR reset: %q", got)
	}
}

func TestDiagnostics_Counters(t *testing.T) {
	d := New()
	if d.HasErrors() {
		t.Error("fresh log must have no errors")
	}
	d.Warningf(Range{}, "w")
	d.Errorf(Range{}, "e")
	d.Infof(Range{}, "i")
	d.Hintf(Range{}, "h")
	if !d.HasErrors() || d.ErrorCount() != 1 || d.WarningCount() != 1 {
		t.Errorf("counts = %d errors, %d warnings", d.ErrorCount(), d.WarningCount())
	}
	if len(d.Logs) != 4 {
		t.Errorf("len(Logs) = %d, want 4", len(d.Logs))
	}

	d.Reset()
	if len(d.Logs) != 0 || d.HasErrors() {
		t.Error("Reset must clear the log")
	}
}

func TestRangeFromName(t *testing.T) {
	id := &ast.Identifier{Position: ast.Position{Line: 3, Column: 7}, Value: "flags"}
	rng := RangeFromName(id, id.Value)
	if rng.Start.Line != 3 || rng.Start.Column != 7 {
		t.Errorf("start = %v, want 3:7", rng.Start)
	}
	if rng.End.Line != 3 || rng.End.Column != 12 {
		t.Errorf("end = %v, want 3:12", rng.End)
	}
}
