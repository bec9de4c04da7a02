package tacbuilder

import (
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// isRefCounted reports whether a value of type t carries a runtime object
// header with a refcount field: every class instance, every interface
// reference (interfaces are always held through a class instance), and
// every array (nullable or not, since Array/ArrayNullable are themselves
// runtime classes per the LLVM ABI). Primitives, sequences and method
// values never are.
func isRefCounted(t types.Type) bool {
	if t == nil {
		return false
	}
	switch t.TypeKind() {
	case types.KindClass, types.KindInterface, types.KindArray:
		return true
	default:
		return false
	}
}

// incrementRef emits a call to the runtime's __incrementRef on v, used
// whenever a Load materializes a new owning reference to a ref-counted
// value (a field read, an array element read, a call result).
func (b *Builder) incrementRef(pos source.Position, v tac.Value) {
	n := tac.NewNode(tac.KindCall, pos)
	n.Callee = incrementRefSignature
	n.Operands = []tac.Value{v}
	b.emit(n)
}

// decrementRef emits a call to the runtime's __decrementRef on v. It is
// used only when a store displaces the old reference a location held
// (storeTo, buildIndexStore); no decrement is emitted when a local,
// parameter, or temporary goes out of scope, or on method or try/finally
// exit paths.
func (b *Builder) decrementRef(pos source.Position, v tac.Value) {
	n := tac.NewNode(tac.KindCall, pos)
	n.Callee = decrementRefSignature
	n.Operands = []tac.Value{v}
	b.emit(n)
}

// incrementRefSignature and decrementRefSignature describe the runtime's
// reference-counting entry points well enough for the LLVM emitter to name
// and call them; they take a single Object-typed parameter and return
// void, and are never looked up through a method table.
var (
	incrementRefSignature = runtimeVoidCall("__incrementRef")
	decrementRefSignature = runtimeVoidCall("__decrementRef")
)

func runtimeVoidCall(name string) *types.MethodType {
	return &types.MethodType{
		MethodName: name,
		Outer:      types.ObjectType,
		Params:     types.NewSequence(types.Modified{Type: types.ObjectType}),
		Results:    types.NewSequence(),
	}
}
