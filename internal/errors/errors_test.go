package errors

import (
	"strings"
	"testing"

	"github.com/shadow-lang/shadowc/internal/source"
)

func TestCompilerError_Format(t *testing.T) {
	src := "class Hello {\n  public main() => 1 / 0;\n}\n"
	err := NewCompilerError(KindIllegalCast, source.Position{Line: 2, Column: 20}, "cannot divide int by int literal zero", src, "hello.shadow")

	out := err.Format(false)
	if !strings.Contains(out, "hello.shadow:2:20") {
		t.Errorf("expected header with file:line:col, got %q", out)
	}
	if !strings.Contains(out, "public main() => 1 / 0;") {
		t.Errorf("expected source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected caret indicator, got %q", out)
	}
}

func TestCompilerError_Severity(t *testing.T) {
	w := NewWarning(KindUnusedMethod, source.Position{Line: 1, Column: 1}, "unused private method helper", "", "")
	if !strings.HasPrefix(w.Format(false), "Warning") {
		t.Errorf("expected warning label, got %q", w.Format(false))
	}

	e := NewCompilerError(KindNoMatchingMethod, source.Position{Line: 1, Column: 1}, "no matching method f(Int)", "", "")
	if !strings.HasPrefix(e.Format(false), "Error") {
		t.Errorf("expected error label, got %q", e.Format(false))
	}
}

func TestErrorReporter_HasErrors(t *testing.T) {
	r := NewErrorReporter()
	r.Report(NewWarning(KindDeadCode, source.Position{Line: 3, Column: 1}, "unreachable statement", "", ""))
	if r.HasErrors() {
		t.Fatal("reporter with only warnings should not report HasErrors")
	}

	r.Report(NewCompilerError(KindFieldNotInit, source.Position{Line: 4, Column: 1}, "field count not initialized", "", ""))
	if !r.HasErrors() {
		t.Fatal("reporter with a fatal diagnostic should report HasErrors")
	}

	if len(r.Warnings()) != 1 || len(r.Errors()) != 1 || len(r.Diagnostics()) != 2 {
		t.Fatalf("expected 1 warning, 1 error, 2 total; got %d/%d/%d", len(r.Warnings()), len(r.Errors()), len(r.Diagnostics()))
	}
}

func TestErrorReporter_PrintAndReportErrors(t *testing.T) {
	r := NewErrorReporter()
	r.Report(NewWarning(KindUnusedField, source.Position{Line: 1, Column: 1}, "field FCache is never used", "", ""))
	if _, err := r.PrintAndReportErrors(false); err != nil {
		t.Fatalf("warnings alone must not fail the phase: %v", err)
	}

	r.Report(NewCompilerError(KindUnresolvedName, source.Position{Line: 2, Column: 1}, "unresolved name 'Foo'", "", ""))
	out, err := r.PrintAndReportErrors(false)
	if err == nil {
		t.Fatal("expected PrintAndReportErrors to fail once a fatal diagnostic was reported")
	}
	if !strings.Contains(out, "unresolved name") {
		t.Errorf("expected formatted output to contain the message, got %q", out)
	}
}
