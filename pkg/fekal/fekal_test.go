package fekal

import (
	"strings"
	"testing"

	"fekal-hq/fekal/pkg/fekal/diag"
	"fekal-hq/fekal/pkg/fekal/parser"
)

func TestCompile_CleanProgram(t *testing.T) {
	program, c, err := Compile([]byte("POLICY Aio 0 { ALLOW { io_cancel, io_setup } }"))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(program) != 1 {
		t.Fatalf("len(program) = %d, want 1", len(program))
	}
	if len(c.Diagnostics.Logs) != 0 {
		t.Fatalf("diagnostics = %v, want none", c.Diagnostics.Logs)
	}
}

func TestCompile_SyntaxErrorIsFatal(t *testing.T) {
	_, _, err := Compile([]byte("POLICY ???"))
	if err == nil {
		t.Fatal("Compile must fail on a syntax error")
	}
	if _, ok := err.(*parser.NoMatchError); !ok {
		t.Fatalf("error is %T, want *parser.NoMatchError", err)
	}
}

func TestCompile_LexicalErrorsLandInDiagnostics(t *testing.T) {
	program, c, err := Compile([]byte("POLICY P 0 { $ ALLOW { read } }"))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(program) != 1 {
		t.Fatalf("len(program) = %d, want 1", len(program))
	}
	found := false
	for _, l := range c.Diagnostics.Logs {
		if l.Severity == diag.Error && strings.Contains(l.Message, "unrecognised byte") {
			found = true
			if l.Range.Start.Line != 1 || l.Range.Start.Column != 13 {
				t.Errorf("lexical error at %v, want 1:13", l.Range.Start)
			}
		}
	}
	if !found {
		t.Fatalf("no lexical error in diagnostics: %v", c.Diagnostics.Logs)
	}
}

// The checker and the open rule both run from Compile.
func TestCompile_RunsSemanticAndRulePasses(t *testing.T) {
	src := `
POLICY P 0 {
	USE Missing 0
	ALLOW { open(fd, flags) { flags == O_BOGUS }, f(a, b) { a == 1 } }
}
`
	_, c, err := Compile([]byte(src))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	var msgs []string
	for _, l := range c.Diagnostics.Logs {
		msgs = append(msgs, l.Message)
	}
	for _, want := range []string{
		"Policy Missing0 doesn't exist",
		"Invalid oflag O_BOGUS",
		"Parameter b unused",
	} {
		found := false
		for _, m := range msgs {
			if m == want {
				found = true
			}
		}
		if !found {
			t.Errorf("diagnostics %v missing %q", msgs, want)
		}
	}
}

func TestCompiler_Reset(t *testing.T) {
	c := NewCompiler()
	if _, err := c.Compile([]byte("POLICY A 0 { }")); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	// the same policy compiles again without a duplicate error
	if _, err := c.Compile([]byte("POLICY A 0 { }")); err != nil {
		t.Fatal(err)
	}
	if c.Diagnostics.HasErrors() {
		t.Fatalf("diagnostics after reset = %v", c.Diagnostics.Logs)
	}
}

func TestCompile_EmptySource(t *testing.T) {
	program, c, err := Compile(nil)
	if err != nil {
		t.Fatalf("Compile(empty) failed: %v", err)
	}
	if len(program) != 0 || len(c.Diagnostics.Logs) != 0 {
		t.Error("empty source must compile to an empty program")
	}
}

func TestCompile_PrintDiagnostics(t *testing.T) {
	_, c, err := Compile([]byte("POLICY P 0 { ALLOW { f(a,b){ a == 1 } } USE Q 9 }"))
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	c.PrintDiagnostics(&sb)
	out := sb.String()
	wIdx := strings.Index(out, "Warning: Parameter b unused")
	eIdx := strings.Index(out, "Error: Policy Q9 doesn't exist")
	if wIdx == -1 || eIdx == -1 {
		t.Fatalf("output missing expected lines:\n%s", out)
	}
	if wIdx > eIdx {
		t.Error("warnings must print before errors")
	}
}
