package tac

import (
	"testing"

	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/types"
)

func TestBlockAppendOrder(t *testing.T) {
	b := NewBlock(nil)
	n1 := NewNode(KindNoOp, source.Position{})
	n2 := NewNode(KindNoOp, source.Position{})
	n3 := NewNode(KindNoOp, source.Position{})
	b.Append(n1)
	b.Append(n2)
	b.Append(n3)

	nodes := b.Nodes()
	if len(nodes) != 3 || nodes[0] != n1 || nodes[1] != n2 || nodes[2] != n3 {
		t.Fatalf("Append must preserve insertion order, got %v", nodes)
	}
	if n1.Prev != nil || n1.Next != n2 || n2.Prev != n1 || n2.Next != n3 || n3.Prev != n2 || n3.Next != nil {
		t.Fatal("doubly linked pointers must be consistent after Append")
	}
}

func TestBlockInsertBeforeAndRemove(t *testing.T) {
	b := NewBlock(nil)
	n1 := NewNode(KindNoOp, source.Position{})
	n2 := NewNode(KindNoOp, source.Position{})
	b.Append(n1)
	b.Append(n2)

	mid := NewNode(KindNoOp, source.Position{})
	b.InsertBefore(mid, n2)
	nodes := b.Nodes()
	if len(nodes) != 3 || nodes[1] != mid {
		t.Fatalf("InsertBefore must splice the node in the right position, got %v", nodes)
	}

	b.Remove(mid)
	nodes = b.Nodes()
	if len(nodes) != 2 || nodes[0] != n1 || nodes[1] != n2 {
		t.Fatalf("Remove must unlink cleanly, got %v", nodes)
	}
	if n1.Next != n2 || n2.Prev != n1 {
		t.Fatal("Remove must relink neighbors")
	}
}

func TestBlockLabelRolesOneShot(t *testing.T) {
	loop := NewBlock(nil)
	brk := NewBlock(loop)
	cont := NewBlock(loop)
	loop.SetBreakContinue(brk, cont)

	if loop.Break != brk || loop.Continue != cont {
		t.Fatal("SetBreakContinue must record both targets")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("assigning break/continue twice on the same block must panic")
		}
	}()
	loop.SetBreakContinue(brk, cont)
}

func TestBlockIsInsideCleanup(t *testing.T) {
	try := NewBlock(nil)
	cleanup := NewBlock(try)
	try.SetCleanup(cleanup, nil, nil)

	nested := NewBlock(cleanup)

	if !cleanup.IsInsideCleanup() {
		t.Error("the cleanup block itself must report IsInsideCleanup")
	}
	if !nested.IsInsideCleanup() {
		t.Error("a block nested inside the cleanup region must report IsInsideCleanup")
	}
	if try.IsInsideCleanup() {
		t.Error("the try block itself is not inside its own cleanup region")
	}
}

func TestBlockUnwindTarget(t *testing.T) {
	b := NewBlock(nil)
	if b.IsUnwindTarget() {
		t.Error("a fresh block must not be an unwind target")
	}
	b.MarkUnwindTarget()
	if !b.IsUnwindTarget() {
		t.Error("MarkUnwindTarget must be observable via IsUnwindTarget")
	}
}

func TestValueConstructors(t *testing.T) {
	n := NewNode(KindBinary, source.Position{})
	n.Result = true
	n.Type = types.INT

	reg := Register(n)
	if reg.Kind != ValRegister || reg.Node != n || !reg.Type.Equals(types.INT) {
		t.Error("Register must wrap the defining node with its result type")
	}

	ic := IntConst(42, types.INT)
	if ic.Kind != ValConstInt || ic.Int != 42 {
		t.Error("IntConst must carry the literal value")
	}

	sc := StringConst("hi")
	if sc.Kind != ValConstString || sc.Str != "hi" {
		t.Error("StringConst must carry the literal text")
	}
}
