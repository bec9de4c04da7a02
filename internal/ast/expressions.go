package ast

import (
	"bytes"
	"strings"

	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/types"
)

// CallExpression invokes Method on Receiver (nil for a call to a
// module-level or static method) with Args. The checker has already
// resolved Method to a single overload via getMatchingMethod, so no
// overload ambiguity survives into this node.
type CallExpression struct {
	Token    source.Position
	Receiver Expression // nil for a static/module-level call
	Method   *types.MethodType
	Args     []Expression
	Type     types.Type
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Method.Name() }
func (c *CallExpression) Pos() source.Position { return c.Token }
func (c *CallExpression) String() string {
	var out bytes.Buffer
	if c.Receiver != nil {
		out.WriteString(c.Receiver.String())
		out.WriteString(".")
	}
	out.WriteString(c.Method.Name())
	out.WriteString("(")
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	return out.String()
}
func (c *CallExpression) GetType() types.Type  { return c.Type }
func (c *CallExpression) SetType(t types.Type) { c.Type = t }

// NewObjectExpression constructs a new instance of Class via its
// constructor Method (nil if the class uses the implicit default
// constructor).
type NewObjectExpression struct {
	Token  source.Position
	Class  *types.ClassType
	Method *types.MethodType
	Args   []Expression
}

func (n *NewObjectExpression) expressionNode()      {}
func (n *NewObjectExpression) TokenLiteral() string { return "new" }
func (n *NewObjectExpression) Pos() source.Position { return n.Token }
func (n *NewObjectExpression) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return "new " + n.Class.String() + "(" + strings.Join(parts, ", ") + ")"
}
func (n *NewObjectExpression) GetType() types.Type  { return n.Class }
func (n *NewObjectExpression) SetType(types.Type)   {}

// NewArrayExpression allocates an array of type ArrayType with the given
// per-dimension Lengths.
type NewArrayExpression struct {
	Token       source.Position
	ArrayType   *types.ArrayType
	Lengths     []Expression
}

func (n *NewArrayExpression) expressionNode()      {}
func (n *NewArrayExpression) TokenLiteral() string { return "new" }
func (n *NewArrayExpression) Pos() source.Position { return n.Token }
func (n *NewArrayExpression) String() string {
	parts := make([]string, len(n.Lengths))
	for i, l := range n.Lengths {
		parts[i] = l.String()
	}
	return "new " + n.ArrayType.String() + "[" + strings.Join(parts, ", ") + "]"
}
func (n *NewArrayExpression) GetType() types.Type { return n.ArrayType }
func (n *NewArrayExpression) SetType(types.Type)  {}

// FieldAccessExpression reads Field off Receiver.
type FieldAccessExpression struct {
	Token    source.Position
	Receiver Expression
	Field    string
	Type     types.Type
}

func (f *FieldAccessExpression) expressionNode()      {}
func (f *FieldAccessExpression) TokenLiteral() string { return f.Field }
func (f *FieldAccessExpression) Pos() source.Position { return f.Token }
func (f *FieldAccessExpression) String() string {
	return f.Receiver.String() + "." + f.Field
}
func (f *FieldAccessExpression) GetType() types.Type  { return f.Type }
func (f *FieldAccessExpression) SetType(t types.Type) { f.Type = t }

// IndexExpression reads Array at Index (possibly multiple indices, for a
// multi-dimensional array).
type IndexExpression struct {
	Token   source.Position
	Array   Expression
	Indices []Expression
	Type    types.Type
}

func (ix *IndexExpression) expressionNode()      {}
func (ix *IndexExpression) TokenLiteral() string { return "[]" }
func (ix *IndexExpression) Pos() source.Position { return ix.Token }
func (ix *IndexExpression) String() string {
	parts := make([]string, len(ix.Indices))
	for i, idx := range ix.Indices {
		parts[i] = idx.String()
	}
	return ix.Array.String() + "[" + strings.Join(parts, ", ") + "]"
}
func (ix *IndexExpression) GetType() types.Type  { return ix.Type }
func (ix *IndexExpression) SetType(t types.Type) { ix.Type = t }

// CastExpression is an explicit conversion of Operand to Target; the
// checker has already verified the conversion is a permitted one (no
// implicit primitive widening exists, so every numeric conversion in the
// checked AST is an explicit CastExpression).
type CastExpression struct {
	Token   source.Position
	Operand Expression
	Target  types.Type
}

func (c *CastExpression) expressionNode()      {}
func (c *CastExpression) TokenLiteral() string { return "cast" }
func (c *CastExpression) Pos() source.Position { return c.Token }
func (c *CastExpression) String() string {
	return "(" + c.Target.String() + ")" + c.Operand.String()
}
func (c *CastExpression) GetType() types.Type { return c.Target }
func (c *CastExpression) SetType(types.Type)  {}
