package tac

// Block is a nested lexical region of a TACMethod: a method body, a loop
// body, a try/except/finally region, or a catch handler. Nesting mirrors
// the source structure rather than flattening straight to a CFG — the CFG
// is derived from this tree by internal/cfg, not built here.
//
// A Block accumulates a doubly linked Node list (Head/Tail) and optionally
// names up to one label per role; break/continue/return statements inside
// tacbuilder walk Parent chains to find the nearest Block that has the
// label role they target.
type Block struct {
	Parent *Block
	Nested []*Block

	Head *Node
	Tail *Node

	// Break/Continue are the jump targets for a break/continue statement
	// whose nearest enclosing loop is this Block. Only loop blocks set them.
	Break    *Block
	Continue *Block

	// Recover/Done are the post-handler/post-statement labels of a try
	// region: Recover is where a handled exception resumes, Done is where
	// control goes once the guarded statement (and any finally) completes
	// normally.
	Recover *Block
	Done    *Block

	// Catch/CatchSwitch mark a try region's except dispatch: CatchSwitch is
	// the block holding the CatchSwitch node, Catch is the first handler
	// block in source order.
	Catch       *Block
	CatchSwitch *Block

	// Cleanup is the finally-block region; CleanupUnwind is the landing
	// pad entered when an exception is already unwinding through it.
	Cleanup        *Block
	CleanupUnwind  *Block
	// CleanupPhi tracks, for a finally region reached by more than one exit
	// path (normal fall-through, break, continue, return, unwind), which
	// label each predecessor came from and what a `return` exiting through
	// this finally should resume doing once the finally body completes.
	CleanupPhi *CleanupPhi

	// unwindTarget is set by addUnwindSource when some nested try/raise
	// inside this block can unwind into it, i.e. this finally must also
	// handle the cleanup-then-resume path, not only normal completion.
	unwindTarget bool

	// labelsSet guards against re-adding a role this block already carries;
	// each role is assigned at most once per Block (one-shot).
	labelsSet map[string]bool
}

// CleanupPhi records, for a finally block with more than one way to reach
// it, which exit label each predecessor arrived from so the finally's
// epilogue can route control to the right continuation once the cleanup
// code finishes running.
type CleanupPhi struct {
	// ExitLabels maps a predecessor block's exit reason ("fallthrough",
	// "break", "continue", "return", "unwind") to the Block it should
	// resume at after the cleanup body completes.
	ExitLabels map[string]*Block
}

// NewBlock creates a Block nested under parent (nil for a method's root
// block).
func NewBlock(parent *Block) *Block {
	b := &Block{Parent: parent, labelsSet: make(map[string]bool)}
	if parent != nil {
		parent.Nested = append(parent.Nested, b)
	}
	return b
}

// setLabelOnce records that role has been assigned on this block, panicking
// if it was already set — each role is a one-shot assignment per Block by
// construction (tacbuilder never reassigns an existing break/continue/etc.
// target once a Block has one).
func (b *Block) setLabelOnce(role string) {
	if b.labelsSet[role] {
		panic("tac: block role " + role + " assigned twice")
	}
	b.labelsSet[role] = true
}

// SetBreakContinue assigns a loop block's break/continue targets.
func (b *Block) SetBreakContinue(brk, cont *Block) {
	b.setLabelOnce("break")
	b.setLabelOnce("continue")
	b.Break = brk
	b.Continue = cont
}

// SetTryLabels assigns a try region's recover/done/catch/catchSwitch targets.
func (b *Block) SetTryLabels(recover_, done, catch, catchSwitch *Block) {
	b.setLabelOnce("recover")
	b.setLabelOnce("done")
	b.Recover = recover_
	b.Done = done
	b.Catch = catch
	b.CatchSwitch = catchSwitch
}

// SetCleanup assigns a finally region's cleanup/cleanupUnwind blocks and phi.
func (b *Block) SetCleanup(cleanup, cleanupUnwind *Block, phi *CleanupPhi) {
	b.setLabelOnce("cleanup")
	b.Cleanup = cleanup
	b.CleanupUnwind = cleanupUnwind
	b.CleanupPhi = phi
}

// MarkUnwindTarget records that some nested construct can unwind an
// exception into this block's cleanup path.
func (b *Block) MarkUnwindTarget() { b.unwindTarget = true }

// IsUnwindTarget reports whether MarkUnwindTarget was ever called on this
// block — used by internal/cfg to suppress dead-code diagnostics along the
// synthetic unwind edge, which has no corresponding source statement.
func (b *Block) IsUnwindTarget() bool { return b.unwindTarget }

// IsInsideCleanup reports whether b is, or is lexically nested inside, a
// finally (cleanup) region or its cleanup-unwind landing pad — whether that
// region's owner is b's parent or a sibling nested under the same parent.
// internal/cfg suppresses unreachable-code warnings here because a finally
// body is reached along the compiler-synthesized unwind edge even when
// every normal predecessor is dead.
func (b *Block) IsInsideCleanup() bool {
	for cur := b; cur != nil; cur = cur.Parent {
		if cur.Parent == nil {
			continue
		}
		if cur.Parent.Cleanup == cur || cur.Parent.CleanupUnwind == cur {
			return true
		}
		for _, sib := range cur.Parent.Nested {
			if sib.Cleanup == cur || sib.CleanupUnwind == cur {
				return true
			}
		}
	}
	return false
}

// Append adds n to the end of b's instruction list.
func (b *Block) Append(n *Node) {
	n.Block = b
	if b.Tail == nil {
		b.Head, b.Tail = n, n
		return
	}
	b.Tail.Next = n
	n.Prev = b.Tail
	b.Tail = n
}

// InsertBefore splices n into b's list immediately before mark.
func (b *Block) InsertBefore(n, mark *Node) {
	n.Block = b
	n.Next = mark
	n.Prev = mark.Prev
	if mark.Prev != nil {
		mark.Prev.Next = n
	} else {
		b.Head = n
	}
	mark.Prev = n
}

// Remove unlinks n from b's list.
func (b *Block) Remove(n *Node) {
	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		b.Head = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else {
		b.Tail = n.Prev
	}
	n.Prev, n.Next = nil, nil
}

// Nodes returns the instruction list in order, as a slice, for consumers
// (CFG construction, the emitter) that prefer range-over-slice to walking
// Next by hand.
func (b *Block) Nodes() []*Node {
	var out []*Node
	for n := b.Head; n != nil; n = n.Next {
		out = append(out, n)
	}
	return out
}
