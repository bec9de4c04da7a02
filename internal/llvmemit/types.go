package llvmemit

import (
	"fmt"
	"strings"

	"github.com/shadow-lang/shadowc/internal/types"
)

// mapType renders t as the LLVM type string used for a local, parameter,
// field, or return slot. Reference types (class, interface, array) are
// always pointers to an opaque named struct; the struct body itself is
// defined once by emitTypeDeclaration/arrayStructType so every use site
// agrees on the same name.
func (e *Emitter) mapType(t types.Type) string {
	if t == nil {
		return "void"
	}
	switch tt := t.(type) {
	case *types.PrimitiveType:
		return mapPrimitive(tt.Kind())
	case *types.VoidType:
		return "void"
	case *types.NullType:
		return "i8*"
	case *types.ClassType:
		return "%class." + sanitizeName(tt.QualifiedName()) + "*"
	case *types.InterfaceType:
		return "%class." + sanitizeName(tt.QualifiedName()) + "*"
	case *types.ArrayType:
		return e.arrayStructName(tt) + "*"
	case *types.SequenceType:
		return e.sequenceStructName(tt)
	default:
		return "i8*"
	}
}

// mapPrimitive chooses the narrowest LLVM integer/float type that holds
// every value of kind, per the fixed-width primitive set the Type Model
// enumerates.
func mapPrimitive(kind types.PrimitiveKind) string {
	switch kind {
	case types.Boolean:
		return "i1"
	case types.Byte, types.UByte:
		return "i8"
	case types.Short, types.UShort:
		return "i16"
	case types.Int, types.UInt, types.Code:
		return "i32"
	case types.Long, types.ULong:
		return "i64"
	case types.Float:
		return "float"
	case types.Double:
		return "double"
	default:
		return "i64"
	}
}

// arrayStructName returns the named LLVM struct type an array value of
// type t is stored through — { data-ptr, [dim0, dim1, …] } per the ABI —
// registering it for a one-time type definition the first time it is seen.
func (e *Emitter) arrayStructName(t *types.ArrayType) string {
	name := "%array." + mangleType(t.BaseType) + fmt.Sprintf("_%dd", t.Dimensions)
	if t.Nullable {
		name += "n"
	}
	if _, ok := e.arrayTypesSeen[name]; !ok {
		e.arrayTypesSeen[name] = t
		e.arrayInstances = append(e.arrayInstances, t)
	}
	return name
}

// sequenceStructName returns the anonymous LLVM struct literal for a
// multi-element SequenceType (tuple / multi-return value); zero elements
// collapsed to void and one element unwrapped already happen in the Type
// Model itself (SequenceType.Unwrap), so this is only reached for arity >= 2.
func (e *Emitter) sequenceStructName(t *types.SequenceType) string {
	if t.Len() == 0 {
		return "void"
	}
	if t.Len() == 1 {
		return e.mapType(t.Elements[0].Type)
	}
	parts := make([]string, t.Len())
	for i, el := range t.Elements {
		parts[i] = e.mapType(el.Type)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// emitTypeDeclaration emits the named opaque struct for a class or
// interface once its body layout is known: the three-word object header
// followed by fields in declared order.
func (e *Emitter) emitTypeDeclaration(t types.Type) error {
	switch tt := t.(type) {
	case *types.ClassType:
		return e.emitClassStruct(tt)
	case *types.InterfaceType:
		// Interfaces contribute no object layout of their own; instances are
		// always a concrete class's object reinterpreted through the
		// interface's method-table slot.
		return nil
	default:
		return fmt.Errorf("llvmemit: cannot declare a type for %T", t)
	}
}

func (e *Emitter) emitClassStruct(c *types.ClassType) error {
	name := sanitizeName(c.QualifiedName())
	if e.classesEmitted[name] {
		return nil
	}
	e.classesEmitted[name] = true

	fields := []string{"i64", "%class." + name + ".Class*", "i8**"}
	for _, f := range c.Fields.Ordered() {
		fields = append(fields, e.mapType(f.Modified.Type))
	}
	e.emitf("%%class.%s = type { %s }", name, strings.Join(fields, ", "))
	return nil
}
