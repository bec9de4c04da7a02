package tacbuilder

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
)

// buildBlock lowers every statement of blk in order into the current block.
func (b *Builder) buildBlock(blk *ast.BlockStatement) {
	if blk == nil {
		return
	}
	for _, s := range blk.Statements {
		b.buildStatement(s)
	}
}

func (b *Builder) buildStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		b.buildExpression(s.Expression)
	case *ast.VarDeclaration:
		b.buildVarDeclaration(s)
	case *ast.AssignmentStatement:
		b.buildAssignment(s)
	case *ast.IfStatement:
		b.buildIf(s)
	case *ast.WhileStatement:
		b.buildWhile(s)
	case *ast.ForStatement:
		b.buildFor(s)
	case *ast.BreakStatement:
		b.buildBreak(s)
	case *ast.ContinueStatement:
		b.buildContinue(s)
	case *ast.ReturnStatement:
		b.buildReturn(s)
	case *ast.TryStatement:
		b.buildTry(s)
	case *ast.ThrowStatement:
		b.buildThrow(s)
	case *ast.BlockStatement:
		b.buildBlock(s)
	default:
		panic("tacbuilder: unhandled statement node")
	}
}

func (b *Builder) buildVarDeclaration(s *ast.VarDeclaration) {
	b.method.AddLocal(s.Name.Value, s.Type)
	if s.Initializer == nil {
		return
	}
	val := b.buildExpression(s.Initializer)
	b.storeTo(s.Pos(), tac.Local(s.Name.Value, s.Type), val)
}

func (b *Builder) buildAssignment(s *ast.AssignmentStatement) {
	if ix, ok := s.Target.(*ast.IndexExpression); ok {
		b.buildIndexStore(s.Pos(), ix, s.Value)
		return
	}
	val := b.buildExpression(s.Value)
	loc := b.buildLocation(s.Target)
	b.storeTo(s.Pos(), loc, val)
}

// buildLocation lowers an assignable scalar or field expression to the
// Value describing its storage location, without emitting a Load. Index
// targets are handled separately by buildIndexStore since a Store into an
// array element also needs the index operands a plain Value can't carry.
func (b *Builder) buildLocation(expr ast.Expression) tac.Value {
	switch e := expr.(type) {
	case *ast.Identifier:
		if lv, ok := b.method.Lookup(e.Value); ok {
			if lv.IsParam {
				return tac.Param(lv.Name, lv.Type)
			}
			return tac.Local(lv.Name, lv.Type)
		}
		return tac.Field(e.Value, e.Type)
	case *ast.FieldAccessExpression:
		receiver := b.buildExpression(e.Receiver)
		loc := tac.Field(e.Field, e.Type)
		loc.Node = receiver.Node
		return loc
	default:
		panic("tacbuilder: expression is not an assignable location")
	}
}

func (b *Builder) buildIndexStore(pos source.Position, ix *ast.IndexExpression, value ast.Expression) {
	arr := b.buildExpression(ix.Array)
	val := b.buildExpression(value)
	if isRefCounted(ix.Type) {
		old := tac.NewNode(tac.KindLoad, pos)
		old.Location = arr
		old.Operands = indexOperands(b, ix.Indices)
		old.Result = true
		old.Type = ix.Type
		b.emit(old)
		b.decrementRef(pos, tac.Register(old))
		b.incrementRef(pos, val)
	}
	n := tac.NewNode(tac.KindStore, pos)
	n.Location = arr
	n.Operands = indexOperands(b, ix.Indices)
	n.StoreValue = val
	b.emit(n)
}

func indexOperands(b *Builder, indices []ast.Expression) []tac.Value {
	out := make([]tac.Value, len(indices))
	for i, idx := range indices {
		out[i] = b.buildExpression(idx)
	}
	return out
}

// storeTo emits a Store of val into loc, releasing the reference loc
// previously held and taking ownership of val's when loc's type is
// reference counted — the copy/move-on-assignment rule: an assignment
// always displaces one owning reference and takes on another.
func (b *Builder) storeTo(pos source.Position, loc, val tac.Value) {
	if isRefCounted(loc.Type) {
		old := tac.NewNode(tac.KindLoad, pos)
		old.Location = loc
		old.Result = true
		old.Type = loc.Type
		b.emit(old)
		b.decrementRef(pos, tac.Register(old))
		b.incrementRef(pos, val)
	}
	n := tac.NewNode(tac.KindStore, pos)
	n.Location = loc
	n.StoreValue = val
	b.emit(n)
}

// storeRaw emits a bare Store without the reference-counting bookkeeping
// storeTo performs — used for the compiler's own synthetic spill locals,
// which never alias a user-visible reference-counted field.
func (b *Builder) storeRaw(pos source.Position, loc, val tac.Value) {
	n := tac.NewNode(tac.KindStore, pos)
	n.Location = loc
	n.StoreValue = val
	b.emit(n)
}

func (b *Builder) buildIf(s *ast.IfStatement) {
	cond := b.buildExpression(s.Condition)
	thenBlk := b.newBlock()
	doneBlk := b.newBlock()
	var elseBlk *tac.Block
	target2 := doneBlk
	if s.Alternative != nil {
		elseBlk = b.newBlock()
		target2 = elseBlk
	}

	br := tac.NewNode(tac.KindBranch, s.Pos())
	br.Operands = []tac.Value{cond}
	br.Target1 = thenBlk
	br.Target2 = target2
	b.emit(br)

	b.enter(thenBlk)
	b.buildStatement(s.Consequence)
	b.jumpTo(s.Pos(), doneBlk)

	if s.Alternative != nil {
		b.enter(elseBlk)
		b.buildStatement(s.Alternative)
		b.jumpTo(s.Pos(), doneBlk)
	}

	b.enter(doneBlk)
}

// jumpTo emits an unconditional branch to target unless the current block
// already ends in a terminator (a return/throw/branch already closed it).
func (b *Builder) jumpTo(pos source.Position, target *tac.Block) {
	if b.cur.Tail != nil && isTerminator(b.cur.Tail.Kind) {
		return
	}
	n := tac.NewNode(tac.KindBranch, pos)
	n.Target1 = target
	b.emit(n)
}

func (b *Builder) buildWhile(s *ast.WhileStatement) {
	condBlk := b.newBlock()
	bodyBlk := b.newBlock()
	exitBlk := b.newBlock()

	b.jumpTo(s.Pos(), condBlk)

	b.enter(condBlk)
	cond := b.buildExpression(s.Condition)
	br := tac.NewNode(tac.KindBranch, s.Pos())
	br.Operands = []tac.Value{cond}
	br.Target1 = bodyBlk
	br.Target2 = exitBlk
	b.emit(br)

	bodyBlk.SetBreakContinue(exitBlk, condBlk)
	b.loops = append(b.loops, &loopFrame{breakBlock: exitBlk, continueBlock: condBlk, enclosingTrys: len(b.trys)})

	b.enter(bodyBlk)
	b.buildStatement(s.Body)
	b.jumpTo(s.Pos(), condBlk)

	b.loops = b.loops[:len(b.loops)-1]
	b.enter(exitBlk)
}

func (b *Builder) buildFor(s *ast.ForStatement) {
	start := b.buildExpression(s.Start)
	b.method.AddLocal(s.Variable.Value, s.Variable.Type)
	b.storeTo(s.Pos(), tac.Local(s.Variable.Value, s.Variable.Type), start)
	end := b.buildExpression(s.End)

	condBlk := b.newBlock()
	bodyBlk := b.newBlock()
	incrBlk := b.newBlock()
	exitBlk := b.newBlock()

	b.jumpTo(s.Pos(), condBlk)

	b.enter(condBlk)
	cur := b.loadLocation(s.Pos(), tac.Local(s.Variable.Value, s.Variable.Type))
	op := "<="
	if s.Direction == ast.ForDownTo {
		op = ">="
	}
	condNode := tac.NewNode(tac.KindBinary, s.Pos())
	condNode.Label = op
	condNode.Operands = []tac.Value{cur, end}
	condNode.Result = true
	condNode.Type = cur.Type
	b.emit(condNode)
	br := tac.NewNode(tac.KindBranch, s.Pos())
	br.Operands = []tac.Value{tac.Register(condNode)}
	br.Target1 = bodyBlk
	br.Target2 = exitBlk
	b.emit(br)

	bodyBlk.SetBreakContinue(exitBlk, incrBlk)
	b.loops = append(b.loops, &loopFrame{breakBlock: exitBlk, continueBlock: incrBlk, enclosingTrys: len(b.trys)})

	b.enter(bodyBlk)
	b.buildStatement(s.Body)
	b.jumpTo(s.Pos(), incrBlk)

	b.loops = b.loops[:len(b.loops)-1]

	b.enter(incrBlk)
	stepOp := "+"
	if s.Direction == ast.ForDownTo {
		stepOp = "-"
	}
	loaded := b.loadLocation(s.Pos(), tac.Local(s.Variable.Value, s.Variable.Type))
	stepNode := tac.NewNode(tac.KindBinary, s.Pos())
	stepNode.Label = stepOp
	stepNode.Operands = []tac.Value{loaded, tac.IntConst(1, loaded.Type)}
	stepNode.Result = true
	stepNode.Type = loaded.Type
	b.emit(stepNode)
	b.storeTo(s.Pos(), tac.Local(s.Variable.Value, s.Variable.Type), tac.Register(stepNode))
	b.jumpTo(s.Pos(), condBlk)

	b.enter(exitBlk)
}

func (b *Builder) buildBreak(s *ast.BreakStatement) {
	if len(b.loops) == 0 {
		panic("tacbuilder: break outside a loop")
	}
	lf := b.loops[len(b.loops)-1]
	b.routeExit(s.Pos(), "break", lf.breakBlock, lf.enclosingTrys)
}

func (b *Builder) buildContinue(s *ast.ContinueStatement) {
	if len(b.loops) == 0 {
		panic("tacbuilder: continue outside a loop")
	}
	lf := b.loops[len(b.loops)-1]
	b.routeExit(s.Pos(), "continue", lf.continueBlock, lf.enclosingTrys)
}

func (b *Builder) buildReturn(s *ast.ReturnStatement) {
	var values []tac.Value
	for _, v := range s.Values {
		values = append(values, b.buildExpression(v))
	}
	if len(b.trys) == 0 {
		n := tac.NewNode(tac.KindReturn, s.Pos())
		n.Operands = values
		b.emit(n)
		return
	}
	// A return lexically inside a try/finally must run every enclosing
	// finally before actually leaving the method, so the return value is
	// stashed in synthetic locals the outermost cleanup's epilogue reloads
	// once every nested finally has run.
	retLocals := make([]tac.Value, len(values))
	for i, v := range values {
		tmp := b.method.NewTemp(v.Type)
		loc := tac.Local(tmp.Name, tmp.Type)
		b.storeRaw(s.Pos(), loc, v)
		retLocals[i] = loc
	}
	b.returnLocals = retLocals
	b.routeExit(s.Pos(), "return", nil, 0)
}
