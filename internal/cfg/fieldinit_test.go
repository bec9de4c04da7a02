package cfg

import (
	"testing"

	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

func storeField(b *tac.Block, pos source.Position, name string, t types.Type) {
	n := tac.NewNode(tac.KindStore, pos)
	n.Location = tac.Field(name, t)
	n.StoreValue = tac.IntConst(0, t)
	b.Append(n)
}

func TestFieldInitPassAllowsFullyInitializedConstructor(t *testing.T) {
	sig := testSig("Point.create")
	m := tac.NewMethod(sig)
	storeField(m.Entry, source.Position{}, "x", types.INT)
	storeField(m.Entry, source.Position{}, "y", types.INT)
	m.Entry.Append(tac.NewNode(tac.KindReturn, source.Position{}))

	g := Build(m)
	ctx := NewContext(errors.NewErrorReporter())
	ctx.ConstructorRequiredFields[sig.QualifiedName()] = []string{"x", "y"}

	if err := (&FieldInitPass{}).Run(g, ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Reporter.Errors()) != 0 {
		t.Fatalf("expected no errors, got %d", len(ctx.Reporter.Errors()))
	}
}

func TestFieldInitPassFlagsMissingFieldOnOnePath(t *testing.T) {
	sig := testSig("Point.create")
	m := tac.NewMethod(sig)
	storeField(m.Entry, source.Position{}, "x", types.INT)

	thenBlk := tac.NewBlock(m.Entry)
	elseBlk := tac.NewBlock(m.Entry)
	br := tac.NewNode(tac.KindBranch, source.Position{})
	br.Target1 = thenBlk
	br.Target2 = elseBlk
	m.Entry.Append(br)

	storeField(thenBlk, source.Position{}, "y", types.INT)
	thenBlk.Append(tac.NewNode(tac.KindReturn, source.Position{}))
	elseBlk.Append(tac.NewNode(tac.KindReturn, source.Position{}))

	g := Build(m)
	ctx := NewContext(errors.NewErrorReporter())
	ctx.ConstructorRequiredFields[sig.QualifiedName()] = []string{"x", "y"}

	if err := (&FieldInitPass{}).Run(g, ctx); err != nil {
		t.Fatal(err)
	}
	errs := ctx.Reporter.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 field-not-initialized error, got %d", len(errs))
	}
	if errs[0].Kind != errors.KindFieldNotInit {
		t.Fatalf("expected KindFieldNotInit, got %v", errs[0].Kind)
	}
	if len(errs[0].Trace) != 1 || errs[0].Trace[0].FunctionName != sig.QualifiedName() {
		t.Fatalf("expected a 1-frame trace naming %q, got %v", sig.QualifiedName(), errs[0].Trace)
	}
}

func TestFieldInitPassSkipsMethodsWithNoRequiredFields(t *testing.T) {
	sig := testSig("Point.move")
	m := tac.NewMethod(sig)
	m.Entry.Append(tac.NewNode(tac.KindReturn, source.Position{}))

	g := Build(m)
	ctx := NewContext(errors.NewErrorReporter())

	if err := (&FieldInitPass{}).Run(g, ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Reporter.Diagnostics()) != 0 {
		t.Fatalf("expected no diagnostics for a non-constructor method")
	}
}
