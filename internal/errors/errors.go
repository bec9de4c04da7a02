// Package errors formats and accumulates the Shadow compiler's diagnostics:
// parse, type-check, flow-warning, compile, configuration, and I/O errors, all
// carrying a source position and rendered with a caret pointing at the
// offending column.
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shadow-lang/shadowc/internal/source"
)

// Severity distinguishes a fatal diagnostic from a warning that does not
// stop compilation on its own.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Kind classifies a diagnostic by the phase/rule that produced it, per the
// taxonomy of the error-handling design (parse, type-check, flow warnings,
// compile, configuration, I/O).
type Kind string

const (
	KindParse             Kind = "parse"
	KindUnresolvedName     Kind = "unresolved_name"
	KindNotASubtype        Kind = "not_a_subtype"
	KindAmbiguousOverload  Kind = "ambiguous_overload"
	KindNoMatchingMethod   Kind = "no_matching_method"
	KindDuplicateDecl      Kind = "duplicate_declaration"
	KindIllegalCast        Kind = "illegal_cast"
	KindBadGenericArity    Kind = "bad_generic_arity"
	KindFieldNotInit       Kind = "field_not_initialized"
	KindDeadCode           Kind = "dead_code"
	KindUnusedField        Kind = "unused_field"
	KindUnusedMethod       Kind = "unused_method"
	KindMissingReturn      Kind = "missing_return"
	KindEmitterInvalidIR   Kind = "emitter_invalid_ir"
	KindToolFailure        Kind = "external_tool_failure"
	KindConfigMissingLLVM  Kind = "config_missing_llvm"
	KindConfigVersionLow   Kind = "config_version_too_low"
	KindConfigMissingImport Kind = "config_missing_system_import"
	KindIOFileNotFound     Kind = "io_file_not_found"
	KindIOUnreadableDir    Kind = "io_unreadable_directory"
)

// CompilerError is a single diagnostic with enough context to render a
// source snippet and caret under the offending column.
type CompilerError struct {
	Kind     Kind
	Severity Severity
	Message  string
	Source   string
	File     string
	Pos      source.Position

	// Trace is the compiler's own unit/method processing stack at the
	// moment this diagnostic was raised, oldest frame first. Nil unless a
	// caller attaches one with WithTrace; see stack_trace.go.
	Trace StackTrace
}

// NewCompilerError creates a fatal (SeverityError) diagnostic of the given kind.
func NewCompilerError(kind Kind, pos source.Position, message, src, file string) *CompilerError {
	return &CompilerError{Kind: kind, Severity: SeverityError, Pos: pos, Message: message, Source: src, File: file}
}

// NewWarning creates a non-fatal diagnostic of the given kind.
func NewWarning(kind Kind, pos source.Position, message, src, file string) *CompilerError {
	return &CompilerError{Kind: kind, Severity: SeverityWarning, Pos: pos, Message: message, Source: src, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a source snippet and caret. If color is
// true, ANSI escapes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	label := "Error"
	if e.Severity == SeverityWarning {
		label = "Warning"
	}

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%d:%d\n", label, e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s at line %d:%d\n", label, e.Pos.Line, e.Pos.Column))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// ErrorReporter accumulates diagnostics for one compilation and decides,
// at the end of a phase, whether the phase must abort.
type ErrorReporter struct {
	diagnostics []*CompilerError
}

// NewErrorReporter creates an empty reporter.
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{}
}

// Report records a diagnostic in report order.
func (r *ErrorReporter) Report(e *CompilerError) {
	r.diagnostics = append(r.diagnostics, e)
}

// HasErrors reports whether any SeverityError diagnostic was recorded.
func (r *ErrorReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns every recorded diagnostic, in report order.
func (r *ErrorReporter) Diagnostics() []*CompilerError {
	return r.diagnostics
}

// Errors returns only the fatal diagnostics.
func (r *ErrorReporter) Errors() []*CompilerError {
	var out []*CompilerError
	for _, d := range r.diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the non-fatal diagnostics.
func (r *ErrorReporter) Warnings() []*CompilerError {
	var out []*CompilerError
	for _, d := range r.diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// PrintAndReportErrors formats every diagnostic in source order and returns
// a non-nil error if any of them was fatal, terminating the current phase.
func (r *ErrorReporter) PrintAndReportErrors(color bool) (string, error) {
	ordered := make([]*CompilerError, len(r.diagnostics))
	copy(ordered, r.diagnostics)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Pos, ordered[j].Pos
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	var sb strings.Builder
	for i, d := range ordered {
		sb.WriteString(d.Format(color))
		if i < len(ordered)-1 {
			sb.WriteString("\n\n")
		}
	}
	if r.HasErrors() {
		return sb.String(), fmt.Errorf("compilation failed with %d error(s)", len(r.Errors()))
	}
	return sb.String(), nil
}
