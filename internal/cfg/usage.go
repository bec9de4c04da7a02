package cfg

import (
	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// FieldDescriptor is one declared field's entry for the used-field warning,
// keyed by "QualifiedClassName.fieldName" the same way UsedFields is.
type FieldDescriptor struct {
	Pos      source.Position
	Name     string
	Unused   bool // @unused annotation
}

// MethodDescriptor is one declared private method's entry for the
// used-method warning, keyed by the method's QualifiedName().
type MethodDescriptor struct {
	Method *types.MethodType
	Pos    source.Position
}

// UsedFieldsPass records, for every Load or Store in m, the
// (type, field-name) pair it touches — union across every method of the
// module is accumulated directly into ctx.UsedFields since Run is called
// once per method against the same shared Context.
type UsedFieldsPass struct{}

func (p *UsedFieldsPass) Name() string { return "used-fields" }

func (p *UsedFieldsPass) Run(g *Graph, ctx *Context) error {
	if g.Method == nil || g.Method.Signature == nil {
		return nil
	}
	owner := g.Method.Signature.Outer.QualifiedName()
	for _, n := range g.Nodes {
		for cur := n.Block.Head; cur != nil; cur = cur.Next {
			markFieldUse(ctx, owner, cur.Location)
			for _, op := range cur.Operands {
				markFieldUse(ctx, owner, op)
			}
			markFieldUse(ctx, owner, cur.StoreValue)
		}
	}
	return nil
}

func markFieldUse(ctx *Context, owner string, v tac.Value) {
	if v.Kind != tac.ValField {
		return
	}
	ctx.UsedFields[owner+"."+v.Name] = true
}

// UsedMethodsPass records every private method a direct (non-virtual) call
// site invokes. A virtual call cannot statically identify which override
// actually runs, so it is excluded — the same way the language's checker
// only tracks unused-method warnings off static call sites to avoid false
// positives against a base method only ever reached through dispatch.
type UsedMethodsPass struct{}

func (p *UsedMethodsPass) Name() string { return "used-methods" }

func (p *UsedMethodsPass) Run(g *Graph, ctx *Context) error {
	for _, n := range g.Nodes {
		for cur := n.Block.Head; cur != nil; cur = cur.Next {
			if cur.Kind != tac.KindCall || cur.Virtual || cur.Callee == nil {
				continue
			}
			ctx.UsedMethods[cur.Callee.QualifiedName()] = true
		}
	}
	return nil
}

// FinalizeUsage compares ctx.DeclaredFields/DeclaredMethods against
// ctx.UsedFields/UsedMethods once every method in the module has
// contributed to the union, reporting UNUSED_FIELD/UNUSED_METHOD warnings.
// Copy and destroy methods are never reported as unused; field uses and
// calls made inside them still count toward UsedFields/UsedMethods.
func FinalizeUsage(ctx *Context) {
	for key, f := range ctx.DeclaredFields {
		if f.Unused || ctx.UsedFields[key] {
			continue
		}
		ctx.Reporter.Report(errors.NewWarning(errors.KindUnusedField, f.Pos,
			"field \""+f.Name+"\" is never used", "", "").
			WithTrace(errors.StackTrace{errors.NewStackFrame(key, "", &f.Pos)}))
	}
	for key, m := range ctx.DeclaredMethods {
		if isExemptFromUnusedMethod(m.Method) {
			continue
		}
		if ctx.UsedMethods[key] {
			continue
		}
		ctx.Reporter.Report(errors.NewWarning(errors.KindUnusedMethod, m.Pos,
			"private method \""+m.Method.Name()+"\" is never called", "", "").
			WithTrace(errors.StackTrace{errors.NewStackFrame(key, "", &m.Pos)}))
	}
}

func isExemptFromUnusedMethod(m *types.MethodType) bool {
	if m.Modifiers.Has(types.ModUnused) || m.Modifiers.Has(types.ModImport) || m.Modifiers.Has(types.ModExport) {
		return true
	}
	switch m.MethodName {
	case "destroy", "copy":
		return true
	}
	return false
}
