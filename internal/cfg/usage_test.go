package cfg

import (
	"testing"

	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

func TestUsedFieldsPassMarksLoadedField(t *testing.T) {
	sig := testSig("Point.length")
	m := tac.NewMethod(sig)
	load := tac.NewNode(tac.KindLoad, source.Position{})
	load.Location = tac.Field("x", types.INT)
	load.Result = true
	load.Type = types.INT
	m.Entry.Append(load)
	m.Entry.Append(tac.NewNode(tac.KindReturn, source.Position{}))

	g := Build(m)
	ctx := NewContext(errors.NewErrorReporter())
	if err := (&UsedFieldsPass{}).Run(g, ctx); err != nil {
		t.Fatal(err)
	}
	if !ctx.UsedFields["Object.x"] {
		t.Fatalf("expected field x to be marked used")
	}
}

func TestUsedMethodsPassIgnoresVirtualCalls(t *testing.T) {
	sig := testSig("Point.length")
	m := tac.NewMethod(sig)
	callee := testSig("Point.helper")

	virtual := tac.NewNode(tac.KindCall, source.Position{})
	virtual.Callee = callee
	virtual.Virtual = true
	m.Entry.Append(virtual)

	direct := tac.NewNode(tac.KindCall, source.Position{})
	direct.Callee = callee
	m.Entry.Append(direct)
	m.Entry.Append(tac.NewNode(tac.KindReturn, source.Position{}))

	g := Build(m)
	ctx := NewContext(errors.NewErrorReporter())
	if err := (&UsedMethodsPass{}).Run(g, ctx); err != nil {
		t.Fatal(err)
	}
	if !ctx.UsedMethods[callee.QualifiedName()] {
		t.Fatalf("expected direct call to mark callee used")
	}
}

func TestFinalizeUsageReportsUnusedFieldAndMethod(t *testing.T) {
	ctx := NewContext(errors.NewErrorReporter())
	ctx.DeclaredFields["Object.x"] = &FieldDescriptor{Name: "x"}
	ctx.DeclaredMethods["Object.helper"] = &MethodDescriptor{
		Method: &types.MethodType{MethodName: "helper", Outer: types.ObjectType},
	}

	FinalizeUsage(ctx)

	warnings := ctx.Reporter.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 unused warnings, got %d", len(warnings))
	}
}

func TestFinalizeUsageSkipsExemptAndUsedMembers(t *testing.T) {
	ctx := NewContext(errors.NewErrorReporter())
	ctx.DeclaredFields["Object.x"] = &FieldDescriptor{Name: "x", Unused: true}
	ctx.DeclaredFields["Object.y"] = &FieldDescriptor{Name: "y"}
	ctx.UsedFields["Object.y"] = true

	ctx.DeclaredMethods["Object.destroy"] = &MethodDescriptor{
		Method: &types.MethodType{MethodName: "destroy", Outer: types.ObjectType},
	}
	ctx.DeclaredMethods["Object.copy"] = &MethodDescriptor{
		Method: &types.MethodType{MethodName: "copy", Outer: types.ObjectType},
	}

	FinalizeUsage(ctx)

	if len(ctx.Reporter.Diagnostics()) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(ctx.Reporter.Diagnostics()))
	}
}
