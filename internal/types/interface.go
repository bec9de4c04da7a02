package types

import "strings"

// InterfaceType is a nominal interface declaration: the same Declared shape
// as ClassType minus extend. It supports only constant fields (enforced by
// the checker, not here) and may itself implement (extend) zero or more
// parent interfaces, recorded in Declared.Interfaces.
type InterfaceType struct {
	Declared

	instCache map[string]*InterfaceType
}

// NewInterfaceType creates an uninstantiated (or non-generic) interface type.
func NewInterfaceType(name, qualifiedName string) *InterfaceType {
	i := &InterfaceType{Declared: newDeclared(name, qualifiedName)}
	i.instCache = make(map[string]*InterfaceType)
	return i
}

func (i *InterfaceType) TypeKind() Kind { return KindInterface }

func (i *InterfaceType) String() string {
	if len(i.typeArgs) == 0 {
		return i.name
	}
	parts := make([]string, len(i.typeArgs))
	for idx, a := range i.typeArgs {
		parts[idx] = a.String()
	}
	return i.name + "<" + strings.Join(parts, ", ") + ">"
}

func (i *InterfaceType) Equals(other Type) bool {
	o, ok := other.(*InterfaceType)
	if !ok || o.qualifiedName != i.qualifiedName || len(o.typeArgs) != len(i.typeArgs) {
		return false
	}
	for idx, a := range i.typeArgs {
		if !a.Equals(o.typeArgs[idx]) {
			return false
		}
	}
	return true
}

// IsSubtype: reflexive, true against Object, and true against any interface
// reachable through Declared.Interfaces (the extends chain, since an
// interface may extend more than one parent interface).
func (i *InterfaceType) IsSubtype(other Type) bool {
	if i.Equals(other) {
		return true
	}
	if oc, ok := other.(*ClassType); ok && oc.qualifiedName == ObjectType.qualifiedName {
		return true
	}
	for _, parent := range i.Interfaces {
		if parent.IsSubtype(other) {
			return true
		}
	}
	return false
}

// GetAllInterfaces returns the transitive closure including self.
func (i *InterfaceType) GetAllInterfaces() []*InterfaceType {
	seen := map[string]*InterfaceType{i.QualifiedName() + i.String(): i}
	var walk func(it *InterfaceType)
	walk = func(it *InterfaceType) {
		for _, p := range it.Interfaces {
			key := p.QualifiedName() + p.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = p
			walk(p)
		}
	}
	walk(i)
	out := make([]*InterfaceType, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	return out
}
