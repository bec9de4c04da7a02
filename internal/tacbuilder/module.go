package tacbuilder

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/tac"
)

// BuildModule lowers every class/interface declaration in prog into one
// TAC Module named name, one TypeUnit per declaration and one Method per
// concrete (non-abstract, non-interface) method body.
func BuildModule(name string, prog *ast.Program) *tac.Module {
	m := tac.NewModule(name)
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.ClassDecl:
			m.AddUnit(buildClassUnit(d))
		case *ast.InterfaceDecl:
			m.AddUnit(buildInterfaceUnit(d))
		}
	}
	return m
}

func buildClassUnit(decl *ast.ClassDecl) *tac.TypeUnit {
	unit := &tac.TypeUnit{Type: decl.Type}
	for _, md := range decl.Methods {
		if md.Body == nil {
			continue
		}
		unit.Methods = append(unit.Methods, BuildMethod(md, md.Signature))
	}
	return unit
}

func buildInterfaceUnit(decl *ast.InterfaceDecl) *tac.TypeUnit {
	// Interface methods have no body of their own; an interface contributes
	// its type to the module (so the emitter can reference its method-table
	// layout) but no lowered methods.
	return &tac.TypeUnit{Type: decl.Type}
}
