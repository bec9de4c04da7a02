package ast

import (
	"strings"
	"testing"

	"github.com/shadow-lang/shadowc/internal/types"
)

func TestTryStatementString(t *testing.T) {
	ts := &TryStatement{
		TryBlock: &BlockStatement{Statements: []Statement{
			&ExpressionStatement{Expression: &Identifier{Value: "risky"}},
		}},
		CatchClause: &CatchClause{Handlers: []*CatchHandler{
			{
				Variable:      &Identifier{Value: "e"},
				ExceptionType: types.NewClassType("Exception", "Exception"),
				Statement:     &ExpressionStatement{Expression: &Identifier{Value: "handle"}},
			},
		}},
		FinallyClause: &FinallyClause{Block: &BlockStatement{Statements: []Statement{
			&ExpressionStatement{Expression: &Identifier{Value: "cleanup"}},
		}}},
	}

	got := ts.String()
	for _, want := range []string{"try", "catch (e: Exception) handle", "finally", "cleanup", "end"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestThrowStatementString(t *testing.T) {
	bare := &ThrowStatement{}
	if got, want := bare.String(), "throw"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	withValue := &ThrowStatement{Exception: &Identifier{Value: "e"}}
	if got, want := withValue.String(), "throw e"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
