package ast

import (
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/types"
)

// VarDeclaration introduces a local variable inside a method body, scoped
// to the BlockStatement that contains it. Unlike FieldDecl it never carries
// visibility modifiers — locals are always private to the method.
type VarDeclaration struct {
	Token       source.Position
	Name        *Identifier
	Type        types.Type
	Initializer Expression // nil if the declaration has no initializer
}

func (v *VarDeclaration) statementNode()       {}
func (v *VarDeclaration) TokenLiteral() string { return "var" }
func (v *VarDeclaration) Pos() source.Position { return v.Token }
func (v *VarDeclaration) String() string {
	if v.Initializer == nil {
		return "var " + v.Name.String() + ": " + v.Type.String()
	}
	return "var " + v.Name.String() + ": " + v.Type.String() + " = " + v.Initializer.String()
}

// AssignmentStatement assigns Value to Target, where Target is an
// Identifier, FieldAccessExpression, or IndexExpression the checker has
// already verified is an assignable location.
type AssignmentStatement struct {
	Token  source.Position
	Target Expression
	Value  Expression
}

func (a *AssignmentStatement) statementNode()       {}
func (a *AssignmentStatement) TokenLiteral() string { return ":=" }
func (a *AssignmentStatement) Pos() source.Position { return a.Token }
func (a *AssignmentStatement) String() string {
	return a.Target.String() + " := " + a.Value.String()
}
