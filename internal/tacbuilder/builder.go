// Package tacbuilder lowers a checked internal/ast tree to the
// internal/tac three-address-code IR: one Builder per method body, walking
// statements and expressions in source order while maintaining the
// block-stack discipline break/continue/return and try/finally routing
// need.
package tacbuilder

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// loopFrame is pushed for every while/for statement so break/continue can
// find their targets without threading them through every call.
type loopFrame struct {
	breakBlock    *tac.Block
	continueBlock *tac.Block
	// enclosingTrys is the number of tryFrames active when this loop was
	// entered, so a break/continue from inside the loop body knows how many
	// finally blocks it must route through before reaching the loop's edge.
	enclosingTrys int
}

// tryFrame is pushed for every try statement that has a finally clause, so
// break/continue/return statements lexically inside it route through the
// cleanup block instead of jumping directly to their target.
type tryFrame struct {
	cleanup *tac.Block
	phi     *tac.CleanupPhi
	// which is the synthetic local a routed break/continue/return/unwind
	// stashes its exit reason into before jumping into cleanup, so the
	// cleanup's epilogue can dispatch back to the right continuation.
	which *tac.LocalVar
}

// Builder lowers one method body. Its exported entry point is BuildMethod;
// everything else is invoked recursively as buildStatement/buildExpression
// walk the tree.
type Builder struct {
	method *tac.Method
	cur    *tac.Block

	loops []*loopFrame
	trys  []*tryFrame

	// returnLocals holds the synthetic spill locations a return statement
	// lexically inside a try/finally stashed its values into, consumed by
	// the outermost cleanup's epilogue once every enclosing finally has run.
	returnLocals []tac.Value
}

// BuildMethod lowers decl's body into a fresh tac.Method matching sig.
// decl.Body is nil for an abstract method or an interface method; the
// result's Entry block is then empty. BuildModule skips such methods, so
// none of them reaches the emitter.
func BuildMethod(decl *ast.MethodDecl, sig *types.MethodType) *tac.Method {
	m := tac.NewMethod(sig)
	b := &Builder{method: m, cur: m.Entry}

	for i, p := range sig.Params.Elements {
		name := ""
		if i < len(decl.ParamNames) {
			name = decl.ParamNames[i]
		}
		m.AddParam(name, p.Type)
	}

	if decl.Body != nil {
		b.buildBlock(decl.Body)
		b.ensureTerminated(sig)
	}
	return m
}

// ensureTerminated appends an implicit `return` to the method's last block
// if control can fall off the end — valid only for a void (zero-result)
// method; internal/cfg's return-coverage analysis is what actually rejects
// a non-void method missing a return on some path, so this is purely a
// convenience for the common "procedure with no explicit return" case.
func (b *Builder) ensureTerminated(sig *types.MethodType) {
	if b.cur.Tail != nil && isTerminator(b.cur.Tail.Kind) {
		return
	}
	if sig.Results.Len() != 0 {
		return
	}
	b.cur.Append(tac.NewNode(tac.KindReturn, source.Position{}))
}

func isTerminator(k tac.Kind) bool {
	switch k {
	case tac.KindReturn, tac.KindBranch, tac.KindThrow, tac.KindResume:
		return true
	default:
		return false
	}
}

// emit appends n to the current block and returns it, for call sites that
// want to chain off the node they just created (e.g. wrapping it in
// Register(n)).
func (b *Builder) emit(n *tac.Node) *tac.Node {
	b.cur.Append(n)
	return n
}

// newBlock creates a Block nested under the current one without switching
// the builder's cursor to it; callers that want to start appending there
// call enter.
func (b *Builder) newBlock() *tac.Block {
	return tac.NewBlock(b.cur)
}

// enter switches the builder's cursor to blk.
func (b *Builder) enter(blk *tac.Block) { b.cur = blk }
