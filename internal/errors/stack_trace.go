package errors

import (
	"fmt"
	"strings"

	"github.com/shadow-lang/shadowc/internal/source"
)

// StackFrame is one frame of the compiler's own processing stack: which
// unit, method, or field was being lowered, analyzed, or emitted when a
// CompilerError was raised. Attached to a CompilerError via WithTrace and
// printed by the CLI's --information flag alongside the diagnostic itself.
type StackFrame struct {
	Position     *source.Position
	FunctionName string
	FileName     string
}

// String returns a formatted string representation of the stack frame.
// Format matches DWScript: "FunctionName [line: N, column: M]"
// If position is not available, returns just the function name.
func (sf StackFrame) String() string {
	if sf.Position == nil {
		return sf.FunctionName
	}
	return fmt.Sprintf("%s [line: %d, column: %d]",
		sf.FunctionName, sf.Position.Line, sf.Position.Column)
}

// StackTrace represents a complete call stack as a sequence of frames.
// Frames are ordered from oldest (bottom of stack) to newest (top of stack).
type StackTrace []StackFrame

// String returns a formatted string representation of the entire stack trace.
// Each frame is printed on a separate line.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a new StackTrace with frames in reverse order.
// This is useful when you need to display the stack with the most recent call first.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}

// Top returns the most recent (top) frame in the stack, or nil if empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Bottom returns the oldest (bottom) frame in the stack, or nil if empty.
func (st StackTrace) Bottom() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[0]
}

// Depth returns the number of frames in the stack.
func (st StackTrace) Depth() int {
	return len(st)
}

// NewStackFrame creates a new stack frame with the given function name and position.
func NewStackFrame(functionName string, fileName string, position *source.Position) StackFrame {
	return StackFrame{
		FunctionName: functionName,
		FileName:     fileName,
		Position:     position,
	}
}

// NewStackTrace creates a new empty stack trace.
func NewStackTrace() StackTrace {
	return make(StackTrace, 0)
}

// WithTrace attaches trace to e and returns e, so a pass reporting a
// diagnostic can chain it directly onto the NewCompilerError/NewWarning
// call that builds the diagnostic.
func (e *CompilerError) WithTrace(trace StackTrace) *CompilerError {
	e.Trace = trace
	return e
}

// FormatTrace renders e's attached processing stack, most recent frame
// first, one per line. Returns "" if e carries no trace, which is the
// common case for diagnostics raised directly against source text with no
// deeper unit/method chain behind them.
func (e *CompilerError) FormatTrace() string {
	if len(e.Trace) == 0 {
		return ""
	}
	return e.Trace.String()
}
