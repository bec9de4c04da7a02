package types

import "testing"

func TestInterfaceSubtypingReflexiveAndObject(t *testing.T) {
	i := NewInterfaceType("Comparable", "Comparable")
	if !i.IsSubtype(i) {
		t.Error("an interface must be a subtype of itself")
	}
	if !i.IsSubtype(ObjectType) {
		t.Error("every interface must be a subtype of Object")
	}
}

func TestInterfaceExtendsChain(t *testing.T) {
	grandparent := NewInterfaceType("A", "A")
	parent := NewInterfaceType("B", "B")
	parent.Interfaces = []*InterfaceType{grandparent}
	child := NewInterfaceType("C", "C")
	child.Interfaces = []*InterfaceType{parent}

	if !child.IsSubtype(grandparent) {
		t.Error("an interface must be a subtype of its transitively extended parents")
	}
}

func TestInterfaceGetAllInterfacesIncludesSelf(t *testing.T) {
	i := NewInterfaceType("Comparable", "Comparable")
	all := i.GetAllInterfaces()
	if len(all) != 1 || all[0] != i {
		t.Errorf("GetAllInterfaces on a leaf interface must return just itself, got %v", all)
	}
}

func TestInterfaceGenericIdentity(t *testing.T) {
	tp := NewTypeParameter("T")
	iterable := NewInterfaceType("Iterable", "Iterable")
	iterable.TypeParams = []*TypeParameter{tp}

	a := InstantiateInterface(iterable, []Type{INT})
	b := InstantiateInterface(iterable, []Type{INT})
	if a != b {
		t.Error("instantiating the same generic interface with the same type arguments twice must return the same pointer")
	}
}
