package types

// ResolutionErrorKind distinguishes the two ways overload resolution can
// fail to produce a single answer.
type ResolutionErrorKind int

const (
	ErrNotFound ResolutionErrorKind = iota
	ErrAmbiguous
)

// ResolutionError is returned by GetMatchingMethod when no method, or more
// than one equally applicable method, matches a call.
type ResolutionError struct {
	Kind       ResolutionErrorKind
	Name       string
	Candidates []*MethodType
}

func (e *ResolutionError) Error() string {
	if e.Kind == ErrNotFound {
		return "no matching method named " + e.Name
	}
	return "ambiguous call to " + e.Name
}

// candidateMethods collects every overload declared under name on d and its
// ancestors (Extend for a class, Interfaces for both), marking which
// declaring type each came from so later tie-breaks can compare "declared
// here" against "inherited".
func candidateMethods(d *Declared, name string) []*MethodType {
	var out []*MethodType
	for _, m := range d.Methods.Overloads(name) {
		out = append(out, m)
	}
	switch self := any(d).(type) {
	case *ClassType:
		if self.Extend != nil {
			out = append(out, candidateMethods(&self.Extend.Declared, name)...)
		}
	}
	for _, iface := range d.Interfaces {
		out = append(out, candidateMethods(&iface.Declared, name)...)
	}
	return out
}

// GetMatchingMethod performs overload resolution over every method named
// name reachable from d (declared here or inherited): filter by name and
// arity, filter by type-argument compatibility, score by the
// most-specific-applicable relation, and tie-break by declared-here versus
// inherited and then by first declaration order within the same declaring
// type. A failing match distinguishes "ambiguous" from "not found".
func GetMatchingMethod(d *Declared, name string, argTypes []Type, typeArgs []Type) (*MethodType, error) {
	all := candidateMethods(d, name)

	var applicable []*MethodType
	for _, m := range all {
		if m.Arity() != len(argTypes) {
			continue
		}
		if len(m.TypeParams) > 0 && len(typeArgs) > 0 && len(typeArgs) != len(m.TypeParams) {
			continue
		}
		if !paramsAccept(m, argTypes) {
			continue
		}
		applicable = append(applicable, m)
	}

	if len(applicable) == 0 {
		return nil, &ResolutionError{Kind: ErrNotFound, Name: name, Candidates: all}
	}
	if len(applicable) == 1 {
		return applicable[0], nil
	}

	mostSpecific := filterMostSpecific(applicable)
	if len(mostSpecific) == 1 {
		return mostSpecific[0], nil
	}

	var declaredHere []*MethodType
	for _, m := range mostSpecific {
		if m.DeclaredHere {
			declaredHere = append(declaredHere, m)
		}
	}
	if len(declaredHere) == 1 {
		return declaredHere[0], nil
	}
	pool := mostSpecific
	if len(declaredHere) > 0 {
		pool = declaredHere
	}

	if sameOuter(pool) {
		best := pool[0]
		for _, m := range pool[1:] {
			if m.DeclOrder < best.DeclOrder {
				best = m
			}
		}
		return best, nil
	}

	return nil, &ResolutionError{Kind: ErrAmbiguous, Name: name, Candidates: pool}
}

func paramsAccept(m *MethodType, argTypes []Type) bool {
	for i, p := range m.Params.Elements {
		arg := argTypes[i]
		if !arg.Equals(p.Type) && !arg.IsSubtype(p.Type) {
			return false
		}
	}
	return true
}

// isMoreSpecific reports whether a is strictly more specific than b: every
// parameter of a is a subtype-or-equal of the corresponding parameter of b,
// and at least one parameter is a strict (non-equal) subtype.
func isMoreSpecific(a, b *MethodType) bool {
	if a.Arity() != b.Arity() {
		return false
	}
	strictlyNarrower := false
	for i, pa := range a.Params.Elements {
		pb := b.Params.Elements[i].Type
		switch {
		case pa.Type.Equals(pb):
			continue
		case pa.Type.IsSubtype(pb):
			strictlyNarrower = true
		default:
			return false
		}
	}
	return strictlyNarrower
}

func filterMostSpecific(candidates []*MethodType) []*MethodType {
	var out []*MethodType
	for _, c := range candidates {
		dominated := false
		for _, o := range candidates {
			if o == c {
				continue
			}
			if isMoreSpecific(o, c) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, c)
		}
	}
	return out
}

func sameOuter(methods []*MethodType) bool {
	if len(methods) == 0 {
		return true
	}
	first := methods[0].Outer.QualifiedName()
	for _, m := range methods[1:] {
		if m.Outer.QualifiedName() != first {
			return false
		}
	}
	return true
}
