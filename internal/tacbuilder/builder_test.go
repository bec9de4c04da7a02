package tacbuilder

import (
	"testing"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

func sig(name string, params []types.Type, result types.Type) *types.MethodType {
	elems := make([]types.Modified, len(params))
	for i, p := range params {
		elems[i] = types.Modified{Type: p}
	}
	var results *types.SequenceType
	if result == nil {
		results = types.NewSequence()
	} else {
		results = types.NewSequence(types.Modified{Type: result})
	}
	return &types.MethodType{
		MethodName: name,
		Outer:      types.ObjectType,
		Params:     types.NewSequence(elems...),
		Results:    results,
	}
}

// countNodes walks every block reachable from entry and sums instruction
// counts, without assuming any particular traversal order CFG construction
// would later impose.
func countNodes(t *testing.T, entry *tac.Block) int {
	t.Helper()
	seen := make(map[*tac.Block]bool)
	var walk func(*tac.Block) int
	walk = func(blk *tac.Block) int {
		if blk == nil || seen[blk] {
			return 0
		}
		seen[blk] = true
		n := len(blk.Nodes())
		for _, nested := range blk.Nested {
			n += walk(nested)
		}
		return n
	}
	return walk(entry)
}

func TestBuildMethodEmptyVoidBody(t *testing.T) {
	s := sig("doNothing", nil, nil)
	decl := &ast.MethodDecl{
		Name:      &ast.Identifier{Value: "doNothing"},
		Signature: s,
		Body:      &ast.BlockStatement{},
	}
	m := BuildMethod(decl, s)
	if m.Entry.Tail == nil || m.Entry.Tail.Kind != tac.KindReturn {
		t.Fatalf("expected an implicit return, got tail kind %v", m.Entry.Tail)
	}
}

func TestBuildMethodIfStatement(t *testing.T) {
	s := sig("classify", []types.Type{types.INT}, types.BOOLEAN)
	decl := &ast.MethodDecl{
		Name:       &ast.Identifier{Value: "classify"},
		Signature:  s,
		ParamNames: []string{"x"},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.IfStatement{
				Condition: &ast.BinaryExpression{
					Left:     &ast.Identifier{Value: "x", Type: types.INT},
					Operator: ">",
					Right:    &ast.IntegerLiteral{Value: 0, Type: types.INT},
					Type:     types.BOOLEAN,
				},
				Consequence: &ast.ReturnStatement{Values: []ast.Expression{&ast.BooleanLiteral{Value: true}}},
				Alternative: &ast.ReturnStatement{Values: []ast.Expression{&ast.BooleanLiteral{Value: false}}},
			},
		}},
	}
	m := BuildMethod(decl, s)
	if countNodes(t, m.Entry) == 0 {
		t.Fatal("expected lowered nodes, got none")
	}
	if len(m.Entry.Nested) != 3 {
		t.Fatalf("expected then/else/done blocks nested under entry, got %d", len(m.Entry.Nested))
	}
}

func TestBuildMethodWhileLoopBreak(t *testing.T) {
	s := sig("untilFound", []types.Type{types.BOOLEAN}, nil)
	decl := &ast.MethodDecl{
		Name:       &ast.Identifier{Value: "untilFound"},
		Signature:  s,
		ParamNames: []string{"found"},
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.WhileStatement{
				Condition: &ast.BooleanLiteral{Value: true},
				Body: &ast.BlockStatement{Statements: []ast.Statement{
					&ast.IfStatement{
						Condition:   &ast.Identifier{Value: "found", Type: types.BOOLEAN},
						Consequence: &ast.BreakStatement{},
					},
				}},
			},
		}},
	}
	m := BuildMethod(decl, s)
	if countNodes(t, m.Entry) == 0 {
		t.Fatal("expected lowered nodes for a while/break body")
	}
}

func TestBuildMethodTryFinallyBreakRoutesThroughCleanup(t *testing.T) {
	s := sig("guarded", nil, nil)
	decl := &ast.MethodDecl{
		Name:      &ast.Identifier{Value: "guarded"},
		Signature: s,
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.WhileStatement{
				Condition: &ast.BooleanLiteral{Value: true},
				Body: &ast.BlockStatement{Statements: []ast.Statement{
					&ast.TryStatement{
						TryBlock: &ast.BlockStatement{Statements: []ast.Statement{
							&ast.BreakStatement{},
						}},
						FinallyClause: &ast.FinallyClause{Block: &ast.BlockStatement{Statements: []ast.Statement{
							&ast.ExpressionStatement{Expression: &ast.Identifier{Value: "cleanupMarker", Type: types.INT}},
						}}},
					},
				}},
			},
		}},
	}
	m := BuildMethod(decl, s)
	if countNodes(t, m.Entry) == 0 {
		t.Fatal("expected lowered nodes for a try/finally body")
	}
}

func TestBuildMethodThrowMarksUnwindTarget(t *testing.T) {
	s := sig("risky", nil, nil)
	decl := &ast.MethodDecl{
		Name:      &ast.Identifier{Value: "risky"},
		Signature: s,
		Body: &ast.BlockStatement{Statements: []ast.Statement{
			&ast.TryStatement{
				TryBlock: &ast.BlockStatement{Statements: []ast.Statement{
					&ast.ThrowStatement{Exception: &ast.Identifier{Value: "e", Type: types.ObjectType}},
				}},
				FinallyClause: &ast.FinallyClause{Block: &ast.BlockStatement{}},
			},
		}},
	}
	m := BuildMethod(decl, s)
	if countNodes(t, m.Entry) == 0 {
		t.Fatal("expected lowered nodes for a throw inside try/finally")
	}
}
