// Package tac implements the three-address-code intermediate representation
// the AST-to-TAC builder produces and the CFG analyses and LLVM emitter
// consume. TAC nodes are a closed set of kinds discriminated by Kind, not an
// open visitor hierarchy: every consumer switches on Kind rather than
// dispatching through a Node interface method.
package tac

import (
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/types"
)

// Kind discriminates the closed set of TAC node variants.
type Kind int

const (
	KindLabel Kind = iota
	KindBranch
	KindPhi
	KindLoad
	KindStore
	KindCall
	KindReturn
	KindCast
	KindNewObject
	KindNewArray
	KindBinary
	KindUnary
	KindThrow
	KindCatchSwitch
	KindCatchPad
	KindCleanupPad
	KindResume
	KindLandingPad
	KindNoOp
)

func (k Kind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindBranch:
		return "branch"
	case KindPhi:
		return "phi"
	case KindLoad:
		return "load"
	case KindStore:
		return "store"
	case KindCall:
		return "call"
	case KindReturn:
		return "return"
	case KindCast:
		return "cast"
	case KindNewObject:
		return "new_object"
	case KindNewArray:
		return "new_array"
	case KindBinary:
		return "binary"
	case KindUnary:
		return "unary"
	case KindThrow:
		return "throw"
	case KindCatchSwitch:
		return "catchswitch"
	case KindCatchPad:
		return "catchpad"
	case KindCleanupPad:
		return "cleanuppad"
	case KindResume:
		return "resume"
	case KindLandingPad:
		return "landingpad"
	case KindNoOp:
		return "noop"
	default:
		return "unknown"
	}
}

// ValueKind discriminates the closed set of operand variants a Value carries.
type ValueKind int

const (
	ValRegister ValueKind = iota
	ValConstInt
	ValConstFloat
	ValConstString
	ValConstBool
	ValConstNull
	ValLocal
	ValParam
	ValField
	ValGlobal
)

// Value is a TAC operand: a reference to the register a prior Node defined,
// a compile-time constant, or a named storage location. It is a value type
// (not a pointer) so operand lists can be built without heap churn.
type Value struct {
	Kind  ValueKind
	Node  *Node // defining node, set when Kind == ValRegister
	Name  string // storage name, set for Local/Param/Field/Global
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Type  types.Type
}

// Register wraps a defining node's result as a use-site operand.
func Register(n *Node) Value { return Value{Kind: ValRegister, Node: n, Type: n.Type} }

// IntConst builds a constant integer operand of the given primitive type.
func IntConst(v int64, t types.Type) Value { return Value{Kind: ValConstInt, Int: v, Type: t} }

// FloatConst builds a constant floating-point operand.
func FloatConst(v float64, t types.Type) Value { return Value{Kind: ValConstFloat, Float: v, Type: t} }

// StringConst builds a constant string-literal operand.
func StringConst(v string) Value { return Value{Kind: ValConstString, Str: v, Type: types.Primitive(types.Code)} }

// BoolConst builds a constant boolean operand.
func BoolConst(v bool) Value { return Value{Kind: ValConstBool, Bool: v, Type: types.BOOLEAN} }

// NullConst builds the null-literal operand for the given (nullable) type.
func NullConst(t types.Type) Value { return Value{Kind: ValConstNull, Type: t} }

// Local, Param, Field and Global build named-storage operands.
func Local(name string, t types.Type) Value  { return Value{Kind: ValLocal, Name: name, Type: t} }
func Param(name string, t types.Type) Value  { return Value{Kind: ValParam, Name: name, Type: t} }
func Field(name string, t types.Type) Value  { return Value{Kind: ValField, Name: name, Type: t} }
func Global(name string, t types.Type) Value { return Value{Kind: ValGlobal, Name: name, Type: t} }

// PhiEdge is one incoming (predecessor block, value) pair of a Phi node.
type PhiEdge struct {
	Block *Block
	Value Value
}

// Node is one instruction of the TAC IR. It lives on the doubly linked list
// of its owning Block (Prev/Next), optionally defines a result register
// (Result true, Type set), and carries kind-specific payload in the fields
// below — only the fields relevant to Kind are meaningful for any one node.
type Node struct {
	Kind  Kind
	Pos   source.Position
	Block *Block
	Prev  *Node
	Next  *Node

	// Result is true if this node defines a value consumed via Register(n).
	Result bool
	// Type is this node's result type when Result is true, and the operand
	// type for Return/Throw/Cast where that matters.
	Type types.Type
	// Data is this node's unique name in the emitted IR (the SSA name the
	// LLVM emitter prints, e.g. "%5" or "%call12"), assigned during naming.
	Data string

	// Operands holds Binary/Unary operands, Call arguments, Return values,
	// NewArray dimension lengths, or — on a Load/Store whose Location is an
	// array — the index expressions into that array.
	Operands []Value

	// Label is the defining label text for KindLabel, the operator symbol for
	// Binary/Unary ("+", "-", "==", "!", ...), or, on a Branch that enters a
	// cleanup block, the exit reason ("fallthrough", "break", "continue",
	// "return", "unwind") a CleanupPhi keys its continuation map by.
	Label string

	// Branch/CatchSwitch targets.
	Target1  *Block
	Target2  *Block
	Handlers []*Block
	Unwind   *Block

	PhiEdges []PhiEdge

	Callee    *types.MethodType
	Virtual   bool // true if Callee is resolved through the method table, not a direct call
	ClassRef  *types.ClassType
	ArrayElem types.Type
	CastTo    types.Type

	Location   Value // Load source / Store destination
	StoreValue Value

	// ExceptionType is the catch filter on a CatchPad, nil for a catch-all.
	ExceptionType types.Type
	// CatchSwitch points a CatchPad back at the CatchSwitch node that listed
	// it among Handlers.
	CatchSwitch *Node
}

// NewNode allocates a detached node; InsertBefore/Append links it
// into a Block's instruction list.
func NewNode(kind Kind, pos source.Position) *Node {
	return &Node{Kind: kind, Pos: pos}
}
