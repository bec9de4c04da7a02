package tac

import (
	"strconv"

	"github.com/shadow-lang/shadowc/internal/types"
)

// LocalVar is one method-local variable or parameter slot.
type LocalVar struct {
	Name string
	Type types.Type
	// IsParam is true for the method's formal parameters, which occupy the
	// first len(Params) slots of the combined locals table the emitter
	// allocates stack space for.
	IsParam bool
}

// Method is the TAC representation of one Shadow method body: its
// signature (from the Type Model), the flattened locals table, and the
// root Block of its (still source-shaped) nested block tree.
type Method struct {
	Signature *types.MethodType
	Locals    []*LocalVar
	Entry     *Block

	// temps counts synthesized temporaries so NewTemp produces unique names
	// within this method without a separate symbol table.
	temps int
}

// NewMethod creates an empty method body for sig, with a fresh root Block.
// Callers populate the locals table with AddParam/AddLocal to match sig's
// parameter sequence.
func NewMethod(sig *types.MethodType) *Method {
	return &Method{Signature: sig, Entry: NewBlock(nil)}
}

// AddParam registers a formal parameter as a locals-table slot.
func (m *Method) AddParam(name string, t types.Type) {
	m.Locals = append(m.Locals, &LocalVar{Name: name, Type: t, IsParam: true})
}

// AddLocal registers a declared local variable.
func (m *Method) AddLocal(name string, t types.Type) {
	m.Locals = append(m.Locals, &LocalVar{Name: name, Type: t})
}

// NewTemp allocates a fresh compiler-synthesized temporary name, used for
// intermediate values the builder introduces that have no source name
// (e.g. a method-call receiver copy, a cleanup-phi merge variable).
func (m *Method) NewTemp(t types.Type) *LocalVar {
	m.temps++
	lv := &LocalVar{Name: tempName(m.temps), Type: t}
	m.Locals = append(m.Locals, lv)
	return lv
}

// tempName's double-underscore prefix matches the compiler-synthesized
// __incrementRef/__decrementRef naming convention so nothing a Shadow
// program declares can collide with it.
func tempName(n int) string {
	return "__t" + strconv.Itoa(n)
}

// Lookup finds a locals-table entry by name.
func (m *Method) Lookup(name string) (*LocalVar, bool) {
	for _, l := range m.Locals {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}
