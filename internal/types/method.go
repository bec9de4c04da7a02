package types

import "strings"

// MethodType is the signature of a function, procedure, constructor, or
// operator method: an owning type, an ordered parameter sequence, an
// ordered result sequence, a modifier set, and its own type parameters (for
// generic methods on a non-generic class).
type MethodType struct {
	MethodName string
	Outer      Type
	TypeParams []*TypeParameter
	Params     *SequenceType
	Results    *SequenceType
	Modifiers  Modifier
	// DeclaredHere is true if this overload was declared directly on Outer
	// rather than inherited; used to tie-break overload resolution.
	DeclaredHere bool
	// DeclOrder is the method's position among its overloads in declaration
	// order, used for the final resolution tie-break.
	DeclOrder int
}

func (m *MethodType) Name() string          { return m.MethodName }
func (m *MethodType) QualifiedName() string { return m.Outer.QualifiedName() + "." + m.MethodName }
func (m *MethodType) TypeKind() Kind        { return KindMethod }

func (m *MethodType) String() string {
	parts := make([]string, len(m.Params.Elements))
	for i, p := range m.Params.Elements {
		parts[i] = p.Type.String()
	}
	result := m.Results.Unwrap()
	return m.MethodName + "(" + strings.Join(parts, ", ") + "): " + result.String()
}

func (m *MethodType) Equals(other Type) bool {
	o, ok := other.(*MethodType)
	if !ok || o.MethodName != m.MethodName {
		return false
	}
	return m.Params.Equals(o.Params) && m.Results.Equals(o.Results)
}

// IsSubtype for MethodType is used to check method-override compatibility:
// covariant results, contravariant parameters (invariant here, matching the
// array-invariance policy: Shadow does not support override-time parameter
// widening).
func (m *MethodType) IsSubtype(other Type) bool {
	o, ok := other.(*MethodType)
	if !ok {
		return false
	}
	return m.Params.Equals(o.Params) && m.Results.IsSubtype(o.Results)
}

// Arity returns the number of declared parameters (ignoring variadic packing,
// which the checker already expanded before handing the AST to the builder).
func (m *MethodType) Arity() int { return len(m.Params.Elements) }
