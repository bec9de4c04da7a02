package tacbuilder

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
)

// buildExpression lowers expr to a single operand value: either a
// compile-time constant or a Register wrapping the node that computed it.
func (b *Builder) buildExpression(expr ast.Expression) tac.Value {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return tac.IntConst(e.Value, e.Type)
	case *ast.FloatLiteral:
		return tac.FloatConst(e.Value, e.Type)
	case *ast.StringLiteral:
		return tac.StringConst(e.Value)
	case *ast.BooleanLiteral:
		return tac.BoolConst(e.Value)
	case *ast.NullLiteral:
		return tac.NullConst(e.Type)
	case *ast.Identifier:
		return b.buildIdentifier(e)
	case *ast.BinaryExpression:
		return b.buildBinary(e)
	case *ast.UnaryExpression:
		return b.buildUnary(e)
	case *ast.CallExpression:
		return b.buildCall(e)
	case *ast.NewObjectExpression:
		return b.buildNewObject(e)
	case *ast.NewArrayExpression:
		return b.buildNewArray(e)
	case *ast.FieldAccessExpression:
		return b.buildFieldAccess(e)
	case *ast.IndexExpression:
		return b.buildIndex(e)
	case *ast.CastExpression:
		return b.buildCast(e)
	default:
		panic("tacbuilder: unhandled expression node")
	}
}

func (b *Builder) buildIdentifier(id *ast.Identifier) tac.Value {
	if lv, ok := b.method.Lookup(id.Value); ok {
		if lv.IsParam {
			return tac.Param(lv.Name, lv.Type)
		}
		return tac.Local(lv.Name, lv.Type)
	}
	// Not a local or parameter: a field of the implicit receiver. The
	// checker has already resolved id.Type to the field's declared type.
	return b.loadLocation(id.Pos(), tac.Field(id.Value, id.Type))
}

// loadLocation emits a Load reading loc and returns the defined register,
// inserting a reference-count increment when loc's type is reference
// counted (class, interface, or array) — every Load of such a value
// materializes a new owning reference. No matching __decrementRef is
// emitted for that reference; decrements come only from storeTo and
// buildIndexStore when a store displaces an old value.
func (b *Builder) loadLocation(pos source.Position, loc tac.Value) tac.Value {
	n := tac.NewNode(tac.KindLoad, pos)
	n.Location = loc
	n.Result = true
	n.Type = loc.Type
	b.emit(n)
	v := tac.Register(n)
	if isRefCounted(loc.Type) {
		b.incrementRef(pos, v)
	}
	return v
}

func (b *Builder) buildBinary(e *ast.BinaryExpression) tac.Value {
	left := b.buildExpression(e.Left)
	right := b.buildExpression(e.Right)
	n := tac.NewNode(tac.KindBinary, e.Pos())
	n.Label = e.Operator
	n.Operands = []tac.Value{left, right}
	n.Result = true
	n.Type = e.Type
	b.emit(n)
	return tac.Register(n)
}

func (b *Builder) buildUnary(e *ast.UnaryExpression) tac.Value {
	operand := b.buildExpression(e.Operand)
	n := tac.NewNode(tac.KindUnary, e.Pos())
	n.Label = e.Operator
	n.Operands = []tac.Value{operand}
	n.Result = true
	n.Type = e.Type
	b.emit(n)
	return tac.Register(n)
}

func (b *Builder) buildCall(e *ast.CallExpression) tac.Value {
	var operands []tac.Value
	if e.Receiver != nil {
		operands = append(operands, b.buildExpression(e.Receiver))
	}
	for _, a := range e.Args {
		operands = append(operands, b.buildExpression(a))
	}
	n := tac.NewNode(tac.KindCall, e.Pos())
	n.Callee = e.Method
	n.Operands = operands
	// A call dispatches through the method table (Virtual) unless it has no
	// receiver (a module-level or static call); no later stage turns a
	// virtual call into a direct one.
	n.Virtual = e.Receiver != nil
	n.Result = e.Method.Results.Len() != 0
	if n.Result {
		n.Type = e.Method.Results.Unwrap()
	}
	b.emit(n)
	v := tac.Register(n)
	if n.Result && isRefCounted(n.Type) {
		b.incrementRef(e.Pos(), v)
	}
	return v
}

func (b *Builder) buildNewObject(e *ast.NewObjectExpression) tac.Value {
	var operands []tac.Value
	for _, a := range e.Args {
		operands = append(operands, b.buildExpression(a))
	}
	n := tac.NewNode(tac.KindNewObject, e.Pos())
	n.ClassRef = e.Class
	n.Callee = e.Method
	n.Operands = operands
	n.Result = true
	n.Type = e.Class
	b.emit(n)
	// A freshly allocated object already carries one owning reference (the
	// allocator initializes its header's refcount to 1); no additional
	// increment is needed at the construction site.
	return tac.Register(n)
}

func (b *Builder) buildNewArray(e *ast.NewArrayExpression) tac.Value {
	var lengths []tac.Value
	for _, l := range e.Lengths {
		lengths = append(lengths, b.buildExpression(l))
	}
	n := tac.NewNode(tac.KindNewArray, e.Pos())
	n.ArrayElem = e.ArrayType.BaseType
	n.Operands = lengths
	n.Result = true
	n.Type = e.ArrayType
	b.emit(n)
	return tac.Register(n)
}

func (b *Builder) buildFieldAccess(e *ast.FieldAccessExpression) tac.Value {
	receiver := b.buildExpression(e.Receiver)
	loc := tac.Field(e.Field, e.Type)
	loc.Node = receiver.Node // carries the receiver's defining register, if any
	return b.loadLocation(e.Pos(), loc)
}

func (b *Builder) buildIndex(e *ast.IndexExpression) tac.Value {
	arr := b.buildExpression(e.Array)
	n := tac.NewNode(tac.KindLoad, e.Pos())
	n.Location = arr
	n.Operands = make([]tac.Value, len(e.Indices))
	for i, idx := range e.Indices {
		n.Operands[i] = b.buildExpression(idx)
	}
	n.Result = true
	n.Type = e.Type
	b.emit(n)
	v := tac.Register(n)
	if isRefCounted(e.Type) {
		b.incrementRef(e.Pos(), v)
	}
	return v
}

func (b *Builder) buildCast(e *ast.CastExpression) tac.Value {
	operand := b.buildExpression(e.Operand)
	n := tac.NewNode(tac.KindCast, e.Pos())
	n.Operands = []tac.Value{operand}
	n.CastTo = e.Target
	n.Result = true
	n.Type = e.Target
	b.emit(n)
	return tac.Register(n)
}
