package types

// PrimitiveKind enumerates the closed set of primitive numeric/boolean types.
type PrimitiveKind int

const (
	Boolean PrimitiveKind = iota
	Byte
	UByte
	Short
	UShort
	Int
	UInt
	Code
	Long
	ULong
	Float
	Double
)

var primitiveNames = map[PrimitiveKind]string{
	Boolean: "boolean",
	Byte:    "byte",
	UByte:   "ubyte",
	Short:   "short",
	UShort:  "ushort",
	Int:     "int",
	UInt:    "uint",
	Code:    "code",
	Long:    "long",
	ULong:   "ulong",
	Float:   "float",
	Double:  "double",
}

// PrimitiveType is a member of the fixed enumerated primitive set. Numeric
// primitives are pairwise disjoint: no implicit widening or narrowing
// conversion exists in the Type Model, only explicit casts lowered by the
// TAC builder's Cast node.
type PrimitiveType struct {
	kind PrimitiveKind
}

// Primitive returns the canonical PrimitiveType value for kind. Since
// primitive types carry no state beyond their kind, every call for the same
// kind is interchangeable; callers needing identity should compare via
// Equals, not pointer identity.
func Primitive(kind PrimitiveKind) *PrimitiveType { return &PrimitiveType{kind: kind} }

var (
	BOOLEAN = Primitive(Boolean)
	BYTE    = Primitive(Byte)
	UBYTE   = Primitive(UByte)
	SHORT   = Primitive(Short)
	USHORT  = Primitive(UShort)
	INT     = Primitive(Int)
	UINT    = Primitive(UInt)
	CODE    = Primitive(Code)
	LONG    = Primitive(Long)
	ULONG   = Primitive(ULong)
	FLOAT   = Primitive(Float)
	DOUBLE  = Primitive(Double)
)

func (p *PrimitiveType) Kind() PrimitiveKind     { return p.kind }
func (p *PrimitiveType) Name() string            { return primitiveNames[p.kind] }
func (p *PrimitiveType) QualifiedName() string    { return primitiveNames[p.kind] }
func (p *PrimitiveType) TypeKind() Kind          { return KindPrimitive }
func (p *PrimitiveType) String() string          { return primitiveNames[p.kind] }

func (p *PrimitiveType) Equals(other Type) bool {
	o, ok := other.(*PrimitiveType)
	return ok && o.kind == p.kind
}

// IsSubtype holds only reflexively: numeric and boolean primitives are
// disjoint from each other and from every reference type.
func (p *PrimitiveType) IsSubtype(other Type) bool {
	return p.Equals(other)
}

// IsNumeric reports whether k denotes an integer or floating-point kind.
func IsNumeric(k PrimitiveKind) bool {
	return k != Boolean && k != Code
}

// IsInteger reports whether k is one of the fixed-width integer kinds.
func IsInteger(k PrimitiveKind) bool {
	switch k {
	case Byte, UByte, Short, UShort, Int, UInt, Long, ULong:
		return true
	default:
		return false
	}
}

// VoidType is the unique "no value" result type: the zero-arity SequenceType
// collapses to it (spec: "size 0 maps to void").
type VoidType struct{}

var VOID = &VoidType{}

func (v *VoidType) Name() string          { return "void" }
func (v *VoidType) QualifiedName() string { return "void" }
func (v *VoidType) TypeKind() Kind        { return KindVoid }
func (v *VoidType) String() string        { return "void" }
func (v *VoidType) Equals(other Type) bool {
	_, ok := other.(*VoidType)
	return ok
}
func (v *VoidType) IsSubtype(other Type) bool { return v.Equals(other) }

// NullType is the type of the `null` literal: a subtype of every nullable
// reference type and of every nullable array, but of nothing else.
type NullType struct{}

var NULL = &NullType{}

func (n *NullType) Name() string          { return "null" }
func (n *NullType) QualifiedName() string { return "null" }
func (n *NullType) TypeKind() Kind        { return KindNull }
func (n *NullType) String() string        { return "null" }
func (n *NullType) Equals(other Type) bool {
	_, ok := other.(*NullType)
	return ok
}

func (n *NullType) IsSubtype(other Type) bool {
	if n.Equals(other) {
		return true
	}
	switch o := other.(type) {
	case *ClassType:
		return true
	case *InterfaceType:
		return true
	case *ArrayType:
		return o.Nullable
	}
	return false
}

// UnknownType marks a position whose type could not be resolved; it is
// never itself assignable or a valid subtype, so propagating it does not
// cascade into spurious diagnostics downstream (every comparison against it
// is simply false, not an error).
type UnknownType struct{}

var UNKNOWN = &UnknownType{}

func (u *UnknownType) Name() string          { return "<unknown>" }
func (u *UnknownType) QualifiedName() string { return "<unknown>" }
func (u *UnknownType) TypeKind() Kind        { return KindUnknown }
func (u *UnknownType) String() string        { return "<unknown>" }
func (u *UnknownType) Equals(Type) bool      { return false }
func (u *UnknownType) IsSubtype(Type) bool   { return false }

// AttributeType represents a user attribute/annotation type (e.g. `@unused`).
// Attributes carry no members beyond their own name.
type AttributeType struct {
	name          string
	qualifiedName string
}

// NewAttributeType creates an attribute type with the given qualified name.
func NewAttributeType(name, qualifiedName string) *AttributeType {
	return &AttributeType{name: name, qualifiedName: qualifiedName}
}

func (a *AttributeType) Name() string          { return a.name }
func (a *AttributeType) QualifiedName() string { return a.qualifiedName }
func (a *AttributeType) TypeKind() Kind        { return KindAttribute }
func (a *AttributeType) String() string        { return "@" + a.name }
func (a *AttributeType) Equals(other Type) bool {
	o, ok := other.(*AttributeType)
	return ok && o.qualifiedName == a.qualifiedName
}
func (a *AttributeType) IsSubtype(other Type) bool { return a.Equals(other) }
