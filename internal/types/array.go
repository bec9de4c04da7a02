package types

import "strings"

// ArrayType is baseType + nullable flag + dimensions (>= 1), extending
// either the runtime's Array or ArrayNullable class depending on Nullable.
// Array subtyping is invariant over both BaseType and Nullable: Array<T> is
// never a subtype of Array<U> unless T.Equals(U), and a non-nullable array
// is never a subtype of its nullable counterpart or vice versa.
type ArrayType struct {
	BaseType   Type
	Nullable   bool
	Dimensions int
}

// NewArrayType builds an ArrayType; dims must be >= 1.
func NewArrayType(base Type, nullable bool, dims int) *ArrayType {
	if dims < 1 {
		dims = 1
	}
	return &ArrayType{BaseType: base, Nullable: nullable, Dimensions: dims}
}

func (a *ArrayType) Name() string {
	return a.String()
}

func (a *ArrayType) QualifiedName() string { return a.String() }
func (a *ArrayType) TypeKind() Kind        { return KindArray }

func (a *ArrayType) String() string {
	suffix := strings.Repeat("[]", a.Dimensions)
	if a.Nullable {
		return a.BaseType.String() + "?" + suffix
	}
	return a.BaseType.String() + suffix
}

func (a *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && o.Nullable == a.Nullable && o.Dimensions == a.Dimensions && o.BaseType.Equals(a.BaseType)
}

func (a *ArrayType) IsSubtype(other Type) bool {
	return a.Equals(other)
}

// ExtendsClassName is the runtime base class an ArrayType's descriptor
// extends, per the LLVM ABI (spec §4.5): "Array" for non-nullable arrays,
// "ArrayNullable" for nullable ones.
func (a *ArrayType) ExtendsClassName() string {
	if a.Nullable {
		return "ArrayNullable"
	}
	return "Array"
}

// ArrayOrdinal is a width sentinel used to order ArrayType instances in
// ordering contexts (e.g. deterministic emission of the _arraySet global)
// distinct from the width of any other Type variant.
const ArrayOrdinal = -1
