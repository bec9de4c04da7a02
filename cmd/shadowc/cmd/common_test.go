package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/shadow-lang/shadowc/internal/source"
)

func captureStderr(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = old }()

	f()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestPrintDiagnosticsOmitsTraceWithoutInformationFlag(t *testing.T) {
	information = false
	defer func() { information = false }()

	reporter := errors.NewErrorReporter()
	reporter.Report(errors.NewCompilerError(errors.KindEmitterInvalidIR, source.Position{Line: 1, Column: 1}, "boom", "", "app.shadow").
		WithTrace(errors.StackTrace{errors.NewStackFrame("app", "app.shadow", nil)}))

	out := captureStderr(t, func() { printDiagnostics(reporter) })
	if bytes.Contains([]byte(out), []byte("in:")) {
		t.Fatalf("expected no trace output without --information, got:\n%s", out)
	}
}

func TestPrintDiagnosticsIncludesTraceWithInformationFlag(t *testing.T) {
	information = true
	defer func() { information = false }()

	reporter := errors.NewErrorReporter()
	reporter.Report(errors.NewCompilerError(errors.KindEmitterInvalidIR, source.Position{Line: 1, Column: 1}, "boom", "", "app.shadow").
		WithTrace(errors.StackTrace{errors.NewStackFrame("app", "app.shadow", nil)}))

	out := captureStderr(t, func() { printDiagnostics(reporter) })
	if !bytes.Contains([]byte(out), []byte("app")) {
		t.Fatalf("expected the attached trace to be printed with --information, got:\n%s", out)
	}
}
