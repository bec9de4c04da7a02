package types

import "strings"

// Declared holds the fields common to ClassType and InterfaceType: name,
// modifiers, outer type, directly implemented interfaces, type parameters,
// referenced types, inner types, and the field/method maps.
type Declared struct {
	name          string
	qualifiedName string
	Modifiers     Modifier
	Outer         Type
	Interfaces    []*InterfaceType
	TypeParams    []*TypeParameter
	References    []Type
	Inner         map[string]Type
	Fields        *FieldMap
	Methods       *MethodMap

	// typeArgs is non-nil when this Declared is an instantiation of a
	// generic type (e.g. List<Int> instantiated from generic List<T>).
	typeArgs []Type
	// generic points back at the uninstantiated declaration that owns the
	// instantiation cache; nil for a type that is not itself an
	// instantiation.
	generic *Declared
}

func newDeclared(name, qualifiedName string) Declared {
	return Declared{
		name:          name,
		qualifiedName: qualifiedName,
		Inner:         make(map[string]Type),
		Fields:        NewFieldMap(),
		Methods:       NewMethodMap(),
	}
}

func (d *Declared) Name() string          { return d.name }
func (d *Declared) QualifiedName() string { return d.qualifiedName }

// TypeArguments returns the concrete type arguments this Declared was
// instantiated with, or nil if it is the generic declaration itself.
func (d *Declared) TypeArguments() []Type { return d.typeArgs }

// IsRecursivelyParameterized is true if this type, or any base/interface/
// inner type reachable from it, still contains a free type parameter.
func (d *Declared) IsRecursivelyParameterized() bool {
	for _, tp := range d.TypeParams {
		_ = tp
		return true
	}
	for _, f := range d.Fields.Ordered() {
		if _, ok := f.Modified.Type.(*TypeParameter); ok {
			return true
		}
	}
	for _, m := range d.Methods.All() {
		if len(m.TypeParams) > 0 {
			return true
		}
	}
	return false
}

// ClassType is a nominal class declaration: Declared plus an optional
// extend (base class) and the transitive closure of every type it
// references, computed once when its owning module is built.
type ClassType struct {
	Declared
	Extend *ClassType

	instCache map[string]*ClassType
}

// NewClassType creates an uninstantiated (or non-generic) class type.
func NewClassType(name, qualifiedName string) *ClassType {
	c := &ClassType{Declared: newDeclared(name, qualifiedName)}
	c.instCache = make(map[string]*ClassType)
	return c
}

// ObjectType is the root of every class hierarchy: every ClassType is a
// subtype of it, and it is a subtype of nothing but itself.
var ObjectType = NewClassType("Object", "Object")

func (c *ClassType) TypeKind() Kind { return KindClass }

func (c *ClassType) String() string {
	if len(c.typeArgs) == 0 {
		return c.name
	}
	parts := make([]string, len(c.typeArgs))
	for i, a := range c.typeArgs {
		parts[i] = a.String()
	}
	return c.name + "<" + strings.Join(parts, ", ") + ">"
}

// Equals is nominal, considering type arguments: List<Int> != List<String>,
// but two resolved instantiations of List<Int> compare equal because the
// instantiation cache guarantees they are the same pointer.
func (c *ClassType) Equals(other Type) bool {
	o, ok := other.(*ClassType)
	if !ok || o.qualifiedName != c.qualifiedName || len(o.typeArgs) != len(c.typeArgs) {
		return false
	}
	for i, a := range c.typeArgs {
		if !a.Equals(o.typeArgs[i]) {
			return false
		}
	}
	return true
}

// IsSubtype follows both the extends chain and the directly implemented
// interfaces (which contribute their own extends chains transitively).
// Object is a supertype of every class; Object is a subtype only of itself.
func (c *ClassType) IsSubtype(other Type) bool {
	if c.Equals(other) {
		return true
	}
	oc, isClass := other.(*ClassType)
	if isClass && oc.qualifiedName == ObjectType.qualifiedName {
		return true
	}
	if c.qualifiedName == ObjectType.qualifiedName {
		return false
	}
	if c.Extend != nil && c.Extend.IsSubtype(other) {
		return true
	}
	for _, iface := range c.Interfaces {
		if iface.IsSubtype(other) {
			return true
		}
	}
	return false
}

// GetAllInterfaces returns the transitive closure of every interface this
// class directly or indirectly implements, deduplicated by type equality
// including type arguments.
func (c *ClassType) GetAllInterfaces() []*InterfaceType {
	seen := map[string]*InterfaceType{}
	var walk func(cl *ClassType)
	walk = func(cl *ClassType) {
		if cl == nil {
			return
		}
		for _, iface := range cl.Interfaces {
			for _, found := range iface.GetAllInterfaces() {
				seen[found.QualifiedName()+found.String()] = found
			}
		}
		walk(cl.Extend)
	}
	walk(c)
	out := make([]*InterfaceType, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	return out
}
