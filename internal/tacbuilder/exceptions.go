package tacbuilder

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// exitReasonCode maps the fixed set of cleanup exit reasons to the integer
// a try region's "which" local carries across the jump into its cleanup
// block, so the cleanup's epilogue can dispatch back to the right
// continuation once the finally body has run.
func exitReasonCode(reason string) int64 {
	switch reason {
	case "fallthrough":
		return 0
	case "break":
		return 1
	case "continue":
		return 2
	case "return":
		return 3
	case "unwind":
		return 4
	default:
		panic("tacbuilder: unknown cleanup exit reason " + reason)
	}
}

// routeExit sends control from the current block to target, running every
// finally region between the innermost active try and stopAtTryDepth along
// the way. target is nil for "return", whose actual destination (the
// method's real exit) is only known once every enclosing finally has run.
func (b *Builder) routeExit(pos source.Position, reason string, target *tac.Block, stopAtTryDepth int) {
	next := target
	for i := len(b.trys) - 1; i >= stopAtTryDepth; i-- {
		tf := b.trys[i]
		if tf.cleanup == nil {
			continue
		}
		if tf.phi.ExitLabels == nil {
			tf.phi.ExitLabels = make(map[string]*tac.Block)
		}
		tf.phi.ExitLabels[reason] = next
		if tf.which != nil {
			b.storeRaw(pos, tac.Local(tf.which.Name, tf.which.Type), tac.IntConst(exitReasonCode(reason), tf.which.Type))
		}
		n := tac.NewNode(tac.KindBranch, pos)
		n.Target1 = tf.cleanup
		n.Label = reason
		b.emit(n)
		return
	}
	// Nothing intervened: jump (or return) directly.
	if reason == "return" {
		n := tac.NewNode(tac.KindReturn, pos)
		for _, loc := range b.returnLocals {
			n.Operands = append(n.Operands, b.loadLocation(pos, loc))
		}
		b.emit(n)
		return
	}
	n := tac.NewNode(tac.KindBranch, pos)
	n.Target1 = target
	n.Label = reason
	b.emit(n)
}

func (b *Builder) buildTry(s *ast.TryStatement) {
	if s.FinallyClause == nil {
		b.buildTryCatch(s)
		return
	}
	b.buildTryFinally(s)
}

// buildTryCatch lowers a try/catch with no finally clause: the try block's
// body runs, an uncaught exception dispatches through a CatchSwitch to the
// first matching CatchPad, and both paths join at doneBlk.
func (b *Builder) buildTryCatch(s *ast.TryStatement) {
	catchSwitchBlk := b.newBlock()
	doneBlk := b.newBlock()

	tryBlk := b.newBlock()
	handlerBlks := make([]*tac.Block, len(s.CatchClause.Handlers))
	for i := range s.CatchClause.Handlers {
		handlerBlks[i] = b.newBlock()
	}
	var catch *tac.Block
	if len(handlerBlks) > 0 {
		catch = handlerBlks[0]
	}
	tryBlk.SetTryLabels(doneBlk, doneBlk, catch, catchSwitchBlk)

	b.jumpTo(s.Pos(), tryBlk)
	b.enter(tryBlk)
	b.buildBlock(s.TryBlock)
	b.jumpTo(s.Pos(), doneBlk)

	b.enter(catchSwitchBlk)
	csNode := tac.NewNode(tac.KindCatchSwitch, s.Pos())
	csNode.Handlers = handlerBlks
	b.emit(csNode)

	for i, h := range s.CatchClause.Handlers {
		b.enter(handlerBlks[i])
		padNode := tac.NewNode(tac.KindCatchPad, h.Token)
		padNode.ExceptionType = h.ExceptionType
		padNode.CatchSwitch = csNode
		padNode.Result = h.Variable != nil
		if h.Variable != nil {
			padNode.Type = h.ExceptionType
		}
		b.emit(padNode)
		if h.Variable != nil {
			b.method.AddLocal(h.Variable.Value, h.ExceptionType)
			b.storeRaw(h.Token, tac.Local(h.Variable.Value, h.ExceptionType), tac.Register(padNode))
		}
		if h.Statement != nil {
			b.buildStatement(h.Statement)
		}
		b.jumpTo(s.Pos(), doneBlk)
	}

	b.enter(doneBlk)
}

// buildTryFinally lowers a try (optionally with catch handlers) that has a
// finally clause: every normal, caught, break/continue/return, and unwind
// path out of the guarded region is rewritten to pass through one shared
// cleanup block first, recorded in a CleanupPhi so the cleanup's epilogue
// can resume the right continuation afterward.
func (b *Builder) buildTryFinally(s *ast.TryStatement) {
	cleanupBlk := b.newBlock()
	cleanupUnwindBlk := b.newBlock()
	doneBlk := b.newBlock()
	phi := &tac.CleanupPhi{ExitLabels: make(map[string]*tac.Block)}

	whichLocal := b.method.NewTemp(types.INT)
	tf := &tryFrame{cleanup: cleanupBlk, phi: phi, which: whichLocal}
	b.trys = append(b.trys, tf)

	tryBlk := b.newBlock()
	tryBlk.SetCleanup(cleanupBlk, cleanupUnwindBlk, phi)

	if s.CatchClause != nil {
		b.buildTryCatch(&ast.TryStatement{
			Token:       s.Token,
			TryBlock:    s.TryBlock,
			CatchClause: s.CatchClause,
		})
	} else {
		b.jumpTo(s.Pos(), tryBlk)
		b.enter(tryBlk)
		b.buildBlock(s.TryBlock)
	}
	phi.ExitLabels["fallthrough"] = doneBlk
	b.storeRaw(s.Pos(), tac.Local(whichLocal.Name, whichLocal.Type), tac.IntConst(exitReasonCode("fallthrough"), whichLocal.Type))
	b.jumpTo(s.Pos(), cleanupBlk)

	b.trys = b.trys[:len(b.trys)-1]

	// cleanupUnwindBlk is reached when an exception already unwinding
	// through this region arrives here instead of completing normally;
	// internal/cfg treats it, and everything inside cleanupBlk, as always
	// reachable via Block.IsInsideCleanup regardless of whether the normal
	// paths above are statically dead.
	b.enter(cleanupUnwindBlk)
	tryBlk.MarkUnwindTarget()
	lpNode := tac.NewNode(tac.KindLandingPad, s.Pos())
	b.emit(lpNode)
	b.storeRaw(s.Pos(), tac.Local(whichLocal.Name, whichLocal.Type), tac.IntConst(exitReasonCode("unwind"), whichLocal.Type))
	phi.ExitLabels["unwind"] = nil
	b.jumpTo(s.Pos(), cleanupBlk)

	b.enter(cleanupBlk)
	b.buildBlock(s.FinallyClause.Block)
	b.buildCleanupEpilogue(s.Pos(), whichLocal, phi, doneBlk)

	b.enter(doneBlk)
}

// buildCleanupEpilogue dispatches on which's stashed exit reason once a
// finally body has finished running: "fallthrough" and "break"/"continue"
// jump to their recorded continuation, "return" reloads the spilled result
// locals and actually returns, and "unwind" resumes the in-flight exception.
func (b *Builder) buildCleanupEpilogue(pos source.Position, which *tac.LocalVar, phi *tac.CleanupPhi, fallthroughBlk *tac.Block) {
	cur := tac.Local(which.Name, which.Type)
	for _, reason := range []string{"return", "unwind", "break", "continue", "fallthrough"} {
		target, ok := phi.ExitLabels[reason]
		if !ok {
			continue
		}
		nextCheck := b.newBlock()
		matchBlk := b.newBlock()

		loaded := b.loadLocation(pos, cur)
		eq := tac.NewNode(tac.KindBinary, pos)
		eq.Label = "=="
		eq.Operands = []tac.Value{loaded, tac.IntConst(exitReasonCode(reason), which.Type)}
		eq.Result = true
		eq.Type = types.BOOLEAN
		b.emit(eq)
		br := tac.NewNode(tac.KindBranch, pos)
		br.Operands = []tac.Value{tac.Register(eq)}
		br.Target1 = matchBlk
		br.Target2 = nextCheck
		b.emit(br)

		b.enter(matchBlk)
		switch reason {
		case "return":
			n := tac.NewNode(tac.KindReturn, pos)
			for _, loc := range b.returnLocals {
				n.Operands = append(n.Operands, b.loadLocation(pos, loc))
			}
			b.emit(n)
		case "unwind":
			b.emit(tac.NewNode(tac.KindResume, pos))
		default:
			if target != nil {
				b.jumpTo(pos, target)
			} else {
				b.jumpTo(pos, fallthroughBlk)
			}
		}

		b.enter(nextCheck)
	}
	b.jumpTo(pos, fallthroughBlk)
}

func (b *Builder) buildThrow(s *ast.ThrowStatement) {
	n := tac.NewNode(tac.KindThrow, s.Pos())
	if s.Exception != nil {
		n.Operands = []tac.Value{b.buildExpression(s.Exception)}
	}
	b.emit(n)
	b.addUnwindSource()
}

// addUnwindSource marks every enclosing try/finally as reachable via an
// unwind edge, so internal/cfg does not flag their cleanup blocks as dead
// when every normal predecessor happens to be statically unreachable.
func (b *Builder) addUnwindSource() {
	for _, tf := range b.trys {
		if tf.cleanup != nil {
			tf.cleanup.MarkUnwindTarget()
		}
	}
}
