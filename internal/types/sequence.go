package types

import "strings"

// SequenceType is an ordered list of modified types, used for multi-return
// values and tuple-like parameter packs. A zero-length sequence is void; a
// single-element sequence transparently unwraps to that element everywhere
// it is compared or substituted.
type SequenceType struct {
	Elements []Modified
}

// NewSequence builds a SequenceType from the given elements.
func NewSequence(elements ...Modified) *SequenceType {
	return &SequenceType{Elements: elements}
}

// Unwrap collapses a sequence per spec: 0 elements -> void, 1 element -> that
// element's Type, N elements -> the SequenceType itself.
func (s *SequenceType) Unwrap() Type {
	switch len(s.Elements) {
	case 0:
		return VOID
	case 1:
		return s.Elements[0].Type
	default:
		return s
	}
}

func (s *SequenceType) Name() string          { return s.String() }
func (s *SequenceType) QualifiedName() string { return s.String() }
func (s *SequenceType) TypeKind() Kind        { return KindSequence }

func (s *SequenceType) String() string {
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = e.Type.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (s *SequenceType) Equals(other Type) bool {
	o, ok := other.(*SequenceType)
	if !ok || len(o.Elements) != len(s.Elements) {
		return false
	}
	for i, e := range s.Elements {
		if !e.Type.Equals(o.Elements[i].Type) {
			return false
		}
	}
	return true
}

// IsSubtype holds element-wise, with matching arity: every element must be a
// subtype of the corresponding element of other.
func (s *SequenceType) IsSubtype(other Type) bool {
	o, ok := other.(*SequenceType)
	if !ok || len(o.Elements) != len(s.Elements) {
		return false
	}
	for i, e := range s.Elements {
		if !e.Type.IsSubtype(o.Elements[i].Type) {
			return false
		}
	}
	return true
}

// Len reports the number of elements.
func (s *SequenceType) Len() int { return len(s.Elements) }
