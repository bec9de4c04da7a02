package types

import "strings"

// substitutionKey returns the instantiation-cache key for a sequence of type
// arguments. Two requests for the same concrete arguments produce the same
// key, so Instantiate returns the same *ClassType/*InterfaceType pointer
// both times — the identity guarantee spec §3 requires ("List<Int> returns
// the same instance").
func substitutionKey(args []Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, "\x00")
}

// Replace substitutes every occurrence of a formal type parameter with its
// corresponding actual type, recursively through interfaces, extends,
// inner types, field types, and method signatures. It is the single
// traversal every instantiation (generic classes, generic interfaces,
// generic methods) goes through.
func Replace(t Type, formals []*TypeParameter, actuals []Type) Type {
	if len(formals) != len(actuals) {
		// Malformed substitution request: arity mismatch is an internal
		// invariant breach, not a user-facing diagnosis (the checker
		// guarantees arity before TAC construction begins).
		panic("types: Replace called with mismatched formal/actual arity")
	}
	if len(formals) == 0 {
		return t
	}
	switch v := t.(type) {
	case *TypeParameter:
		for i, f := range formals {
			if f.Name() == v.Name() {
				return actuals[i]
			}
		}
		return v
	case *ArrayType:
		base := Replace(v.BaseType, formals, actuals)
		if base == v.BaseType {
			return v
		}
		return NewArrayType(base, v.Nullable, v.Dimensions)
	case *SequenceType:
		changed := false
		elems := make([]Modified, len(v.Elements))
		for i, e := range v.Elements {
			nt := Replace(e.Type, formals, actuals)
			elems[i] = Modified{Type: nt, Modifiers: e.Modifiers}
			if nt != e.Type {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return NewSequence(elems...)
	case *MethodType:
		return replaceMethod(v, formals, actuals)
	case *ClassType:
		return instantiateClass(v, formals, actuals)
	case *InterfaceType:
		return instantiateInterface(v, formals, actuals)
	default:
		return t
	}
}

func replaceMethod(m *MethodType, formals []*TypeParameter, actuals []Type) *MethodType {
	// A method's own type parameters shadow an outer formal of the same
	// name: substitution does not reach into a generic method's body for a
	// parameter it redeclares.
	var filteredFormals []*TypeParameter
	var filteredActuals []Type
	for i, f := range formals {
		shadowed := false
		for _, own := range m.TypeParams {
			if own.Name() == f.Name() {
				shadowed = true
				break
			}
		}
		if !shadowed {
			filteredFormals = append(filteredFormals, f)
			filteredActuals = append(filteredActuals, actuals[i])
		}
	}
	if len(filteredFormals) == 0 {
		return m
	}
	out := *m
	out.Params = Replace(m.Params, filteredFormals, filteredActuals).(*SequenceType)
	out.Results = Replace(m.Results, filteredFormals, filteredActuals).(*SequenceType)
	return &out
}

// instantiateClass substitutes formals/actuals throughout c. If formals are
// exactly c's own declared type parameters this is a true generic
// instantiation and the result is cached on c so identity is preserved;
// otherwise it is an inner substitution (e.g. replacing an outer class's
// parameter inside a non-generic nested type) and is not cached.
func instantiateClass(c *ClassType, formals []*TypeParameter, actuals []Type) *ClassType {
	isOwnParams := sameParams(c.TypeParams, formals)
	if isOwnParams {
		key := substitutionKey(actuals)
		if cached, ok := c.instCache[key]; ok {
			return cached
		}
	}

	out := NewClassType(c.name, c.qualifiedName)
	out.Modifiers = c.Modifiers
	out.Outer = c.Outer
	out.typeArgs = actuals
	out.generic = &c.Declared
	if isOwnParams {
		c.instCache[substitutionKey(actuals)] = out
	}

	if c.Extend != nil {
		out.Extend = Replace(c.Extend, formals, actuals).(*ClassType)
	}
	for _, iface := range c.Interfaces {
		out.Interfaces = append(out.Interfaces, Replace(iface, formals, actuals).(*InterfaceType))
	}
	for _, f := range c.Fields.Ordered() {
		out.Fields.Add(&FieldInfo{
			Name:       f.Name,
			Declarator: f.Declarator,
			Modified:   Modified{Type: Replace(f.Modified.Type, formals, actuals), Modifiers: f.Modified.Modifiers},
		})
	}
	for _, name := range c.Methods.Names() {
		for _, m := range c.Methods.Overloads(name) {
			replaced := Replace(m, formals, actuals).(*MethodType)
			replaced.Outer = out
			out.Methods.Add(name, replaced)
		}
	}
	for innerName, inner := range c.Inner {
		out.Inner[innerName] = Replace(inner, formals, actuals)
	}
	out.References = c.References
	return out
}

func instantiateInterface(ifc *InterfaceType, formals []*TypeParameter, actuals []Type) *InterfaceType {
	isOwnParams := sameParams(ifc.TypeParams, formals)
	if isOwnParams {
		key := substitutionKey(actuals)
		if cached, ok := ifc.instCache[key]; ok {
			return cached
		}
	}

	out := NewInterfaceType(ifc.name, ifc.qualifiedName)
	out.Modifiers = ifc.Modifiers
	out.Outer = ifc.Outer
	out.typeArgs = actuals
	out.generic = &ifc.Declared
	if isOwnParams {
		ifc.instCache[substitutionKey(actuals)] = out
	}

	for _, parent := range ifc.Interfaces {
		out.Interfaces = append(out.Interfaces, Replace(parent, formals, actuals).(*InterfaceType))
	}
	for _, f := range ifc.Fields.Ordered() {
		out.Fields.Add(&FieldInfo{
			Name:       f.Name,
			Declarator: f.Declarator,
			Modified:   Modified{Type: Replace(f.Modified.Type, formals, actuals), Modifiers: f.Modified.Modifiers},
		})
	}
	for _, name := range ifc.Methods.Names() {
		for _, m := range ifc.Methods.Overloads(name) {
			replaced := Replace(m, formals, actuals).(*MethodType)
			replaced.Outer = out
			out.Methods.Add(name, replaced)
		}
	}
	out.References = ifc.References
	return out
}

func sameParams(a []*TypeParameter, b []*TypeParameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Instantiate substitutes a generic ClassType's own type parameters with
// concrete type arguments, identical to Replace(c, c.TypeParams, args) but
// named for the call sites that perform a top-level "List<Int>" style
// instantiation rather than an internal substitution.
func Instantiate(c *ClassType, args []Type) *ClassType {
	return instantiateClass(c, c.TypeParams, args)
}

// InstantiateInterface is the InterfaceType counterpart of Instantiate.
func InstantiateInterface(i *InterfaceType, args []Type) *InterfaceType {
	return instantiateInterface(i, i.TypeParams, args)
}
