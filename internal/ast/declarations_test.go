package ast

import (
	"testing"

	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/types"
)

func TestClassDeclString(t *testing.T) {
	base := types.NewClassType("Animal", "Animal")
	base.Extend = types.ObjectType
	ifc := types.NewInterfaceType("Named", "Named")

	cls := types.NewClassType("Dog", "Dog")
	cls.Extend = base
	cls.Interfaces = []*types.InterfaceType{ifc}

	decl := &ClassDecl{
		Token: source.Position{Line: 1, Column: 1},
		Name:  &Identifier{Value: "Dog"},
		Type:  cls,
	}

	got := decl.String()
	if got != "class Dog extends Animal implements Named" {
		t.Errorf("String() = %q", got)
	}
}

func TestMethodDeclString(t *testing.T) {
	sig := &types.MethodType{
		MethodName: "Bark",
		Outer:      types.ObjectType,
		Params:     types.NewSequence(),
		Results:    types.NewSequence(),
	}
	decl := &MethodDecl{Name: &Identifier{Value: "Bark"}, Signature: sig}
	if decl.String() != "Bark()"+": "+"void" {
		t.Errorf("String() = %q", decl.String())
	}
}

func TestFieldDeclString(t *testing.T) {
	f := &FieldDecl{
		Name: &Identifier{Value: "count"},
		Type: types.Modified{Type: types.INT},
	}
	if got, want := f.String(), "count: int"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
