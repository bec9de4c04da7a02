// Package cfg builds a control-flow graph from a TAC method and runs the
// reachability, field-initialization, used-field/used-method, and
// return-coverage analyses over it, reporting DEAD_CODE, FIELD_NOT_INITIALIZED,
// UNUSED_FIELD, UNUSED_METHOD, and MISSING_RETURN diagnostics. Each analysis
// is a Pass run by a Manager in a fixed order, mirroring how the checker
// that produced the AST this builds on runs its own passes over one shared
// context.
package cfg

import (
	"github.com/shadow-lang/shadowc/internal/tac"
)

// Node is one CFG node: a maximal straight-line run of TAC instructions,
// which in this IR corresponds exactly to one tac.Block, since tacbuilder
// never appends a terminator except at a Block's tail.
type Node struct {
	Block *tac.Block
	Succs []*Node
	Preds []*Node
}

// Graph is the control-flow graph of a single method.
type Graph struct {
	Method *tac.Method
	Entry  *Node
	Nodes  []*Node

	byBlock map[*tac.Block]*Node
}

// Build walks every Block reachable from m's entry (including blocks only
// reachable via a nested try/catch/finally region) and links them by their
// terminating instruction's targets.
func Build(m *tac.Method) *Graph {
	g := &Graph{Method: m, byBlock: make(map[*tac.Block]*Node)}
	if m.Entry == nil {
		return g
	}

	var collect func(*tac.Block)
	collect = func(blk *tac.Block) {
		if blk == nil {
			return
		}
		if _, ok := g.byBlock[blk]; ok {
			return
		}
		n := &Node{Block: blk}
		g.byBlock[blk] = n
		g.Nodes = append(g.Nodes, n)
		for _, nested := range blk.Nested {
			collect(nested)
		}
	}
	collect(m.Entry)
	g.Entry = g.byBlock[m.Entry]

	for _, n := range g.Nodes {
		for _, succBlk := range staticSuccessors(n.Block) {
			succ, ok := g.byBlock[succBlk]
			if !ok {
				continue
			}
			n.Succs = append(n.Succs, succ)
			succ.Preds = append(succ.Preds, n)
		}
	}
	return g
}

// staticSuccessors returns the blocks b's terminating instruction can
// transfer control to directly. A Return, Throw, or Resume has no static
// successor within the method: a Throw/Resume's actual destination is the
// dynamic unwind machinery, modeled by Block.IsUnwindTarget rather than a
// graph edge, since any instruction capable of throwing — not just the
// block's last one — can be the source of that edge.
func staticSuccessors(b *tac.Block) []*tac.Block {
	n := b.Tail
	if n == nil {
		return nil
	}
	switch n.Kind {
	case tac.KindBranch:
		var out []*tac.Block
		if n.Target1 != nil {
			out = append(out, n.Target1)
		}
		if n.Target2 != nil {
			out = append(out, n.Target2)
		}
		return out
	case tac.KindCatchSwitch:
		out := append([]*tac.Block(nil), n.Handlers...)
		if n.Unwind != nil {
			out = append(out, n.Unwind)
		}
		return out
	default:
		return nil
	}
}

// Node lookup by block, used by analyses that walk the AST/TAC in parallel
// and need the corresponding graph node.
func (g *Graph) NodeFor(b *tac.Block) *Node { return g.byBlock[b] }

// Reachable computes the set of nodes reachable from Entry by a static
// edge, shared by every pass that needs to ignore statically dead code.
func (g *Graph) Reachable() map[*Node]bool {
	reached := make(map[*Node]bool)
	if g.Entry == nil {
		return reached
	}
	queue := []*Node{g.Entry}
	reached[g.Entry] = true
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, s := range n.Succs {
			if !reached[s] {
				reached[s] = true
				queue = append(queue, s)
			}
		}
	}
	return reached
}
