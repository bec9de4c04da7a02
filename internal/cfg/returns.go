package cfg

import (
	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
)

// ReturnCoveragePass checks that every reachable path from entry to method
// exit of a non-void method passes through a value-carrying Return. A path
// that exits via an uncaught Throw or a Resume propagating an exception
// does not need one, since control never reaches the method's normal
// return convention on that path.
type ReturnCoveragePass struct{}

func (p *ReturnCoveragePass) Name() string { return "return-coverage" }

func (p *ReturnCoveragePass) Run(g *Graph, ctx *Context) error {
	if g.Method == nil || g.Method.Signature == nil {
		return nil
	}
	want := g.Method.Signature.Results.Len()
	if want == 0 {
		return nil
	}
	reached := g.Reachable()

	for _, n := range g.Nodes {
		if !reached[n] || len(n.Succs) > 0 {
			continue
		}
		tail := n.Block.Tail
		switch {
		case tail == nil:
			ctx.Reporter.Report(missingReturn(g, source.Position{}, g.Method.Signature.MethodName))
		case tail.Kind == tac.KindThrow, tail.Kind == tac.KindResume:
			// exits via exception propagation, not the return convention
		case tail.Kind == tac.KindReturn:
			if len(tail.Operands) != want {
				ctx.Reporter.Report(missingReturn(g, tail.Pos, g.Method.Signature.MethodName))
			}
		default:
			ctx.Reporter.Report(missingReturn(g, tail.Pos, g.Method.Signature.MethodName))
		}
	}
	return nil
}

func missingReturn(g *Graph, pos source.Position, method string) *errors.CompilerError {
	return errors.NewCompilerError(errors.KindMissingReturn, pos,
		"not every path through \""+method+"\" returns a value", "", "").
		WithTrace(methodTrace(g))
}
