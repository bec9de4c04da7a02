package types

import "testing"

func seq(ts ...Type) *SequenceType {
	elems := make([]Modified, len(ts))
	for i, t := range ts {
		elems[i] = Modified{Type: t}
	}
	return NewSequence(elems...)
}

func addMethod(d *Declared, name string, declaredHere bool, order int, params ...Type) *MethodType {
	m := &MethodType{
		MethodName:   name,
		Outer:        ObjectType,
		Params:       seq(params...),
		Results:      seq(),
		DeclaredHere: declaredHere,
		DeclOrder:    order,
	}
	d.Methods.Add(name, m)
	return m
}

func TestGetMatchingMethodExactArity(t *testing.T) {
	d := newDeclared("Foo", "Foo")
	want := addMethod(&d, "bar", true, 0, INT)
	addMethod(&d, "bar", true, 1, INT, INT)

	got, err := GetMatchingMethod(&d, "bar", []Type{INT}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Error("resolution must pick the overload matching the call's arity")
	}
}

func TestGetMatchingMethodNotFound(t *testing.T) {
	d := newDeclared("Foo", "Foo")
	addMethod(&d, "bar", true, 0, INT)

	_, err := GetMatchingMethod(&d, "bar", []Type{BOOLEAN}, nil)
	if err == nil {
		t.Fatal("expected an error for an incompatible argument type")
	}
	re, ok := err.(*ResolutionError)
	if !ok || re.Kind != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMatchingMethodMostSpecificWins(t *testing.T) {
	sub := NewClassType("Sub", "Sub")
	sub.Extend = ObjectType

	d := newDeclared("Foo", "Foo")
	wide := addMethod(&d, "bar", true, 0, Type(ObjectType))
	narrow := addMethod(&d, "bar", true, 1, Type(sub))

	got, err := GetMatchingMethod(&d, "bar", []Type{sub}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != narrow {
		t.Error("the most specific applicable overload must win over a wider-typed one")
	}
	_ = wide
}

func TestGetMatchingMethodDeclaredHereBeatsInherited(t *testing.T) {
	d := newDeclared("Foo", "Foo")
	inherited := addMethod(&d, "bar", false, 0, INT)
	declaredHere := addMethod(&d, "bar", true, 1, INT)

	got, err := GetMatchingMethod(&d, "bar", []Type{INT}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != declaredHere {
		t.Error("a method declared here must win a tie against an equally applicable inherited one")
	}
	_ = inherited
}

func TestGetMatchingMethodDeclarationOrderTiebreak(t *testing.T) {
	d := newDeclared("Foo", "Foo")
	first := addMethod(&d, "bar", true, 0, Type(ObjectType))
	addMethod(&d, "bar", true, 1, Type(ObjectType))
	first.Outer = ObjectType

	got, err := GetMatchingMethod(&d, "bar", []Type{ObjectType}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != first {
		t.Error("two equally specific overloads from the same declaring type must resolve to the first declared")
	}
}

func TestGetMatchingMethodAmbiguousAcrossDeclaringTypes(t *testing.T) {
	ifaceA := NewInterfaceType("A", "A")
	ifaceB := NewInterfaceType("B", "B")

	d := newDeclared("Foo", "Foo")
	d.Interfaces = []*InterfaceType{ifaceA, ifaceB}

	ma := &MethodType{MethodName: "bar", Outer: ifaceA, Params: seq(INT), Results: seq(), DeclaredHere: false}
	mb := &MethodType{MethodName: "bar", Outer: ifaceB, Params: seq(INT), Results: seq(), DeclaredHere: false}
	ifaceA.Methods.Add("bar", ma)
	ifaceB.Methods.Add("bar", mb)

	_, err := GetMatchingMethod(&d, "bar", []Type{INT}, nil)
	if err == nil {
		t.Fatal("expected an ambiguous-call error")
	}
	re, ok := err.(*ResolutionError)
	if !ok || re.Kind != ErrAmbiguous {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}
}
