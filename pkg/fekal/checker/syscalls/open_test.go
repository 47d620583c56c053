package syscalls

import (
	"testing"

	"fekal-hq/fekal/pkg/fekal/checker"
	"fekal-hq/fekal/pkg/fekal/diag"
	"fekal-hq/fekal/pkg/fekal/parser"
)

func runOpenRule(t *testing.T, src string) *diag.Diagnostics {
	t.Helper()
	program, lexErrs, err := parser.NewParser().Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	if len(lexErrs) != 0 {
		t.Fatalf("Parse(%q) had lexical errors: %v", src, lexErrs)
	}
	ctx := checker.NewContext()
	diags := diag.New()
	checker.Check(ctx, diags, program)
	CheckOpen(ctx, diags, program)
	return diags
}

func errorMessages(d *diag.Diagnostics) []string {
	var out []string
	for _, l := range d.Logs {
		if l.Severity == diag.Error {
			out = append(out, l.Message)
		}
	}
	return out
}

// S6: both flags resolve in the injected vocabulary.
func TestOpenRule_KnownFlags(t *testing.T) {
	diags := runOpenRule(t, "POLICY P 0 { ALLOW { open(fd, flags) { flags == O_RDONLY | O_CLOEXEC } } }")
	if len(diags.Logs) != 0 {
		t.Fatalf("diagnostics = %v, want none", diags.Logs)
	}
}

// S7: an unknown flag is an error at the identifier.
func TestOpenRule_UnknownFlag(t *testing.T) {
	diags := runOpenRule(t, "POLICY P 0 { ALLOW { open(fd, flags) { flags == O_BOGUS } } }")
	errs := errorMessages(diags)
	if len(errs) != 1 || errs[0] != "Invalid oflag O_BOGUS" {
		t.Fatalf("errors = %v, want [Invalid oflag O_BOGUS]", errs)
	}
}

func TestOpenRule_OpenatUsesThirdParameter(t *testing.T) {
	diags := runOpenRule(t, "POLICY P 0 { ALLOW { openat(dirfd, path, flags) { flags == O_CREAT } } }")
	if errs := errorMessages(diags); len(errs) != 0 {
		t.Fatalf("errors = %v, want none", errs)
	}

	diags = runOpenRule(t, "POLICY P 0 { ALLOW { openat(dirfd, path, flags) { flags == O_NOPE } } }")
	errs := errorMessages(diags)
	if len(errs) != 1 || errs[0] != "Invalid oflag O_NOPE" {
		t.Fatalf("errors = %v, want [Invalid oflag O_NOPE]", errs)
	}
}

// The rule also inspects identifiers inside integer operators compared
// against the flags parameter.
func TestOpenRule_FlagInsideBitwiseExpression(t *testing.T) {
	diags := runOpenRule(t, "POLICY P 0 { ALLOW { open(fd, flags) { flags & O_BOGUS == 0 } } }")
	errs := errorMessages(diags)
	if len(errs) != 1 || errs[0] != "Invalid oflag O_BOGUS" {
		t.Fatalf("errors = %v, want [Invalid oflag O_BOGUS]", errs)
	}
}

// Comparisons against other parameters are not flag-checked.
func TestOpenRule_NonFlagParameterIgnored(t *testing.T) {
	diags := runOpenRule(t, "POLICY P 0 { ALLOW { open(fd, flags) { fd == SOME_FD } } }")
	if errs := errorMessages(diags); len(errs) != 0 {
		t.Fatalf("errors = %v, want none", errs)
	}
}

// Filters for other syscalls never see the vocabulary or the checks.
func TestOpenRule_OtherSyscallsUntouched(t *testing.T) {
	diags := runOpenRule(t, "POLICY P 0 { ALLOW { read(fd, buf) { buf == O_BOGUS } } }")
	if errs := errorMessages(diags); len(errs) != 0 {
		t.Fatalf("errors = %v, want none", errs)
	}
}

// A parameter comparison on the flags side works symmetrically.
func TestOpenRule_FlagOnLeftSide(t *testing.T) {
	diags := runOpenRule(t, "POLICY P 0 { ALLOW { open(fd, flags) { O_BOGUS == flags } } }")
	errs := errorMessages(diags)
	if len(errs) != 1 || errs[0] != "Invalid oflag O_BOGUS" {
		t.Fatalf("errors = %v, want [Invalid oflag O_BOGUS]", errs)
	}
}

func TestOpenRule_TooFewParametersSkipped(t *testing.T) {
	diags := runOpenRule(t, "POLICY P 0 { ALLOW { open(fd) { fd == 1 } } }")
	if errs := errorMessages(diags); len(errs) != 0 {
		t.Fatalf("errors = %v, want none", errs)
	}
}
