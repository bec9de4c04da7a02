package cfg

import (
	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/shadow-lang/shadowc/internal/tac"
)

// Pass is a single CFG analysis run over one method's graph, in the style
// of the checker's own multi-pass architecture: each pass only reads the
// graph and writes diagnostics into the shared Context, never mutating the
// TAC it analyzes.
type Pass interface {
	Name() string
	Run(g *Graph, ctx *Context) error
}

// Context is shared across every pass run against one TACModule: the
// reporter every pass writes diagnostics into, plus the cross-method
// accumulators (used fields, used methods) that only make sense unioned
// over an entire module rather than computed per method.
type Context struct {
	Reporter *errors.ErrorReporter

	// UsedFields is keyed by "QualifiedClassName.fieldName", set by
	// UsedFieldsPass for every field loaded or stored by any method in the
	// module currently being analyzed.
	UsedFields map[string]bool
	// UsedMethods is keyed by a method's QualifiedName(), set by
	// UsedMethodsPass for every non-virtual call site's callee.
	UsedMethods map[string]bool

	// DeclaredFields and DeclaredMethods list every field/private method in
	// the module under analysis, keyed the same way as UsedFields/
	// UsedMethods, populated by the caller before running any pass.
	// FinalizeUsage compares these against the Used* sets once every
	// method in the module has run.
	DeclaredFields  map[string]*FieldDescriptor
	DeclaredMethods map[string]*MethodDescriptor

	// ConstructorRequiredFields, keyed by a constructor's QualifiedName(),
	// lists the instance fields that have no source initializer and are
	// not nullable — the set FieldInitPass requires be definitely assigned
	// before the constructor returns. Populated by the caller (the driver
	// assembling TACMethods from a checked ClassDecl) since the TAC model
	// itself does not retain whether a field's value came from a source
	// initializer or an implicit zero value.
	ConstructorRequiredFields map[string][]string
}

// NewContext creates an empty analysis context reporting into r.
func NewContext(r *errors.ErrorReporter) *Context {
	return &Context{
		Reporter:                  r,
		UsedFields:                make(map[string]bool),
		UsedMethods:               make(map[string]bool),
		DeclaredFields:            make(map[string]*FieldDescriptor),
		DeclaredMethods:           make(map[string]*MethodDescriptor),
		ConstructorRequiredFields: make(map[string][]string),
	}
}

// Manager runs a fixed sequence of passes over every method's graph.
type Manager struct {
	passes []Pass
}

// NewManager creates a Manager running passes in the given order.
func NewManager(passes ...Pass) *Manager {
	return &Manager{passes: passes}
}

// RunMethod builds m's graph and runs every registered pass over it.
func (mgr *Manager) RunMethod(m *tac.Method, ctx *Context) error {
	g := Build(m)
	for _, p := range mgr.passes {
		if err := p.Run(g, ctx); err != nil {
			return err
		}
	}
	return nil
}

// methodTrace builds a one-frame processing stack naming the method whose
// graph is under analysis, for attaching to a diagnostic raised against g
// via CompilerError.WithTrace. nil if g carries no method (an empty graph).
func methodTrace(g *Graph) errors.StackTrace {
	if g == nil || g.Method == nil || g.Method.Signature == nil {
		return nil
	}
	return errors.StackTrace{errors.NewStackFrame(g.Method.Signature.QualifiedName(), "", nil)}
}

// DefaultPasses returns the standard per-method analysis sequence: dead-code
// reachability, field initialization, return coverage, and the two
// usage-collecting passes (whose warnings are only emitted once the whole
// module has been walked — see FinalizeUsage).
func DefaultPasses() []Pass {
	return []Pass{
		&ReachabilityPass{},
		&FieldInitPass{},
		&ReturnCoveragePass{},
		&UsedFieldsPass{},
		&UsedMethodsPass{},
	}
}
