package ast

import (
	"bytes"
	"strings"

	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/types"
)

// FieldDecl is a class or interface field declaration. Its resolved Type
// carries the modifiers (public/private/protected, nullable, readonly/
// const) the checker already validated.
type FieldDecl struct {
	Token       source.Position
	Name        *Identifier
	Type        types.Modified
	Initializer Expression // nil if the field has no initializer
}

func (f *FieldDecl) statementNode()       {}
func (f *FieldDecl) declNode()            {}
func (f *FieldDecl) TokenLiteral() string { return "field" }
func (f *FieldDecl) Pos() source.Position { return f.Token }
func (f *FieldDecl) String() string {
	if f.Initializer == nil {
		return f.Name.String() + ": " + f.Type.Type.String()
	}
	return f.Name.String() + ": " + f.Type.Type.String() + " = " + f.Initializer.String()
}

// MethodDecl is a class or interface method declaration: its resolved
// signature from the Type Model plus the formal parameter names the
// signature's Params sequence doesn't itself carry, and (for a concrete
// method) its body.
type MethodDecl struct {
	Token      source.Position
	Name       *Identifier
	Signature  *types.MethodType
	ParamNames []string
	Body       *BlockStatement // nil for an interface method or an abstract method
}

func (m *MethodDecl) statementNode()       {}
func (m *MethodDecl) declNode()            {}
func (m *MethodDecl) TokenLiteral() string { return "method" }
func (m *MethodDecl) Pos() source.Position { return m.Token }
func (m *MethodDecl) String() string {
	return m.Signature.String()
}

// ClassDecl is a class declaration: its resolved ClassType (already
// carrying its extend chain, interfaces, fields and methods from the
// checker) plus the ordered member declarations the builder walks to
// lower each method body.
type ClassDecl struct {
	Token   source.Position
	Name    *Identifier
	Type    *types.ClassType
	Fields  []*FieldDecl
	Methods []*MethodDecl
}

func (c *ClassDecl) statementNode()       {}
func (c *ClassDecl) declNode()            {}
func (c *ClassDecl) TokenLiteral() string { return "class" }
func (c *ClassDecl) Pos() source.Position { return c.Token }
func (c *ClassDecl) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(c.Name.String())
	if c.Type.Extend != nil {
		out.WriteString(" extends ")
		out.WriteString(c.Type.Extend.String())
	}
	if len(c.Type.Interfaces) > 0 {
		names := make([]string, len(c.Type.Interfaces))
		for i, ifc := range c.Type.Interfaces {
			names[i] = ifc.String()
		}
		out.WriteString(" implements " + strings.Join(names, ", "))
	}
	return out.String()
}

// InterfaceDecl is an interface declaration: its resolved InterfaceType
// plus the method declarations the checker validated against it.
type InterfaceDecl struct {
	Token   source.Position
	Name    *Identifier
	Type    *types.InterfaceType
	Methods []*MethodDecl
}

func (i *InterfaceDecl) statementNode()       {}
func (i *InterfaceDecl) declNode()            {}
func (i *InterfaceDecl) TokenLiteral() string { return "interface" }
func (i *InterfaceDecl) Pos() source.Position { return i.Token }
func (i *InterfaceDecl) String() string {
	return "interface " + i.Name.String()
}
