package cfg

import (
	"github.com/shadow-lang/shadowc/internal/errors"
)

// ReachabilityPass computes reachability from entry and reports a
// DEAD_CODE warning for every non-empty block that is unreachable along
// any static edge, unless the block is inside a finally region: a cleanup
// block is always reachable via the dynamic unwind edge even when every
// normal predecessor turns out to be statically dead. A block holding no
// instructions has no code to report and is skipped.
type ReachabilityPass struct{}

func (p *ReachabilityPass) Name() string { return "reachability" }

func (p *ReachabilityPass) Run(g *Graph, ctx *Context) error {
	if g.Entry == nil {
		return nil
	}
	reached := g.Reachable()

	for _, n := range g.Nodes {
		if reached[n] || n.Block.Head == nil {
			continue
		}
		if n.Block.IsInsideCleanup() || n.Block.IsUnwindTarget() {
			continue
		}
		pos := n.Block.Head.Pos
		ctx.Reporter.Report(errors.NewWarning(errors.KindDeadCode, pos,
			"unreachable code", "", "").WithTrace(methodTrace(g)))
	}
	return nil
}
