package types

import "strings"

// TypeParameter is a named generic parameter with zero or more bounds. A
// type argument substituted for this parameter must be a subtype of every
// bound.
type TypeParameter struct {
	name   string
	Bounds []Type
}

// NewTypeParameter creates a type parameter named name with the given bounds.
func NewTypeParameter(name string, bounds ...Type) *TypeParameter {
	return &TypeParameter{name: name, Bounds: bounds}
}

func (t *TypeParameter) Name() string          { return t.name }
func (t *TypeParameter) QualifiedName() string { return t.name }
func (t *TypeParameter) TypeKind() Kind        { return KindTypeParameter }

func (t *TypeParameter) String() string {
	if len(t.Bounds) == 0 {
		return t.name
	}
	parts := make([]string, len(t.Bounds))
	for i, b := range t.Bounds {
		parts[i] = b.String()
	}
	return t.name + ": " + strings.Join(parts, " & ")
}

func (t *TypeParameter) Equals(other Type) bool {
	o, ok := other.(*TypeParameter)
	return ok && o.name == t.name
}

// IsSubtype holds reflexively, and against every one of its own bounds (a
// type parameter satisfies any constraint its bounds already satisfy).
func (t *TypeParameter) IsSubtype(other Type) bool {
	if t.Equals(other) {
		return true
	}
	for _, b := range t.Bounds {
		if b.IsSubtype(other) {
			return true
		}
	}
	return false
}

// SatisfiedBy reports whether concrete type arg may be substituted for this
// parameter: arg must be a subtype of every bound.
func (t *TypeParameter) SatisfiedBy(arg Type) bool {
	for _, b := range t.Bounds {
		if !arg.IsSubtype(b) {
			return false
		}
	}
	return true
}
