package ast

import (
	"bytes"
	"strings"

	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/types"
)

// TryStatement is a try/catch/finally block. At least one of CatchClause or
// FinallyClause is present; both may be, in which case the finally runs
// whichever of the try block or a matching catch handler completes.
type TryStatement struct {
	Token         source.Position
	TryBlock      *BlockStatement
	CatchClause   *CatchClause
	FinallyClause *FinallyClause
}

func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return "try" }
func (ts *TryStatement) Pos() source.Position { return ts.Token }
func (ts *TryStatement) String() string {
	var out bytes.Buffer

	out.WriteString("try")
	if ts.TryBlock != nil {
		out.WriteString("\n  ")
		out.WriteString(strings.ReplaceAll(ts.TryBlock.String(), "\n", "\n  "))
	}
	if ts.CatchClause != nil {
		out.WriteString("\n")
		out.WriteString(ts.CatchClause.String())
	}
	if ts.FinallyClause != nil {
		out.WriteString("\n")
		out.WriteString(ts.FinallyClause.String())
	}
	out.WriteString("\nend")

	return out.String()
}

// CatchClause holds the ordered set of catch handlers tried against a
// thrown exception, most-specific match first (the checker has already
// validated there is no unreachable handler).
type CatchClause struct {
	Token    source.Position
	Handlers []*CatchHandler
}

func (cc *CatchClause) String() string {
	var out bytes.Buffer
	out.WriteString("catch")
	for _, h := range cc.Handlers {
		out.WriteString("\n  ")
		out.WriteString(strings.ReplaceAll(h.String(), "\n", "\n  "))
	}
	return out.String()
}

// CatchHandler is one `catch (Variable: ExceptionType) Statement` clause.
type CatchHandler struct {
	Token         source.Position
	Variable      *Identifier
	ExceptionType types.Type // nil catches every exception type
	Statement     Statement
}

func (ch *CatchHandler) String() string {
	var out bytes.Buffer
	out.WriteString("catch (")
	if ch.Variable != nil {
		out.WriteString(ch.Variable.String())
	}
	if ch.ExceptionType != nil {
		out.WriteString(": ")
		out.WriteString(ch.ExceptionType.String())
	}
	out.WriteString(") ")
	if ch.Statement != nil {
		out.WriteString(ch.Statement.String())
	}
	return out.String()
}

// FinallyClause is the cleanup block that runs on every path out of the
// guarded try statement: normal completion, a caught exception, an
// unwinding (uncaught) exception, and a break/continue/return that exits
// through it.
type FinallyClause struct {
	Token source.Position
	Block *BlockStatement
}

func (fc *FinallyClause) String() string {
	var out bytes.Buffer
	out.WriteString("finally")
	if fc.Block != nil {
		out.WriteString("\n  ")
		out.WriteString(strings.ReplaceAll(fc.Block.String(), "\n", "\n  "))
	}
	return out.String()
}

// ThrowStatement raises an exception value, or (Exception == nil)
// re-raises the exception currently being handled — valid only lexically
// inside a CatchHandler's Statement, a constraint the checker enforces.
type ThrowStatement struct {
	Token     source.Position
	Exception Expression
}

func (ts *ThrowStatement) statementNode()       {}
func (ts *ThrowStatement) TokenLiteral() string { return "throw" }
func (ts *ThrowStatement) Pos() source.Position { return ts.Token }
func (ts *ThrowStatement) String() string {
	var out bytes.Buffer
	out.WriteString("throw")
	if ts.Exception != nil {
		out.WriteString(" ")
		out.WriteString(ts.Exception.String())
	}
	return out.String()
}
