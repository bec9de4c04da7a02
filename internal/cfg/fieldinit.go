package cfg

import (
	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/shadow-lang/shadowc/internal/tac"
)

// FieldInitPass runs a forward must-initialize dataflow over a
// constructor's CFG: IN[n] is the set of required fields definitely
// assigned on every path reaching n, OUT[n] = IN[n] plus whatever n's own
// Store instructions assign, and the join at a merge point is set
// intersection (a field is definitely assigned only if every predecessor
// agrees it is). The OUT set of every block ending in a Return (so
// including that block's own stores) is checked against the method's
// required-field set; anything missing is FIELD_NOT_INITIALIZED.
//
// This pass does not separately model "this escaping" (a call through the
// receiver, or storing the receiver into a field/array before every
// required field is assigned) as its own earlier check point — only the
// final Return sites are verified. A full escape analysis would need the
// TAC model to distinguish a self-receiver Value from any other object
// reference, which it does not currently do.
type FieldInitPass struct{}

func (p *FieldInitPass) Name() string { return "field-init" }

func (p *FieldInitPass) Run(g *Graph, ctx *Context) error {
	if g.Method == nil || g.Method.Signature == nil {
		return nil
	}
	required, ok := ctx.ConstructorRequiredFields[g.Method.Signature.QualifiedName()]
	if !ok || len(required) == 0 {
		return nil
	}

	in := make(map[*Node]map[string]bool)
	out := make(map[*Node]map[string]bool)
	for _, n := range g.Nodes {
		out[n] = make(map[string]bool)
	}

	changed := true
	for changed {
		changed = false
		for _, n := range g.Nodes {
			merged := mergePreds(n, out)
			in[n] = merged
			assigned := assignedFields(n.Block)
			next := unionInto(merged, assigned)
			if !setEquals(next, out[n]) {
				out[n] = next
				changed = true
			}
		}
	}

	for _, n := range g.Nodes {
		ret := n.Block.Tail
		if ret == nil || ret.Kind != tac.KindReturn {
			continue
		}
		assignedHere := out[n]
		for _, field := range required {
			if !assignedHere[field] {
				ctx.Reporter.Report(errors.NewCompilerError(errors.KindFieldNotInit, ret.Pos,
					"field \""+field+"\" is not definitely assigned before this return", "", "").
					WithTrace(methodTrace(g)))
			}
		}
	}
	return nil
}

func mergePreds(n *Node, out map[*Node]map[string]bool) map[string]bool {
	if len(n.Preds) == 0 {
		return make(map[string]bool)
	}
	var merged map[string]bool
	for i, pred := range n.Preds {
		po := out[pred]
		if i == 0 {
			merged = copySet(po)
			continue
		}
		merged = intersect(merged, po)
	}
	return merged
}

// assignedFields returns the instance fields b's own Store instructions
// definitely assign, on the implicit receiver (Field locations with no
// receiver Node, i.e. "self.field").
func assignedFields(b *tac.Block) map[string]bool {
	out := make(map[string]bool)
	for n := b.Head; n != nil; n = n.Next {
		if n.Kind != tac.KindStore {
			continue
		}
		if n.Location.Kind == tac.ValField && n.Location.Node == nil {
			out[n.Location.Name] = true
		}
	}
	return out
}

func copySet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func intersect(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func unionInto(base map[string]bool, extra map[string]bool) map[string]bool {
	out := copySet(base)
	for k := range extra {
		out[k] = true
	}
	return out
}

func setEquals(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
