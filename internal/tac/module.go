package tac

import "github.com/shadow-lang/shadowc/internal/types"

// Constant is one compile-time constant the emitter materializes as a
// global (a string literal's backing buffer, a class's static field
// initializer, a generic instantiation's element-type descriptor table).
type Constant struct {
	Name  string
	Type  types.Type
	Value Value
}

// TypeUnit is the TAC lowering of one declared class or interface: its
// Type Model type, a References slot for the types it mentions, and the
// lowered bodies of its own methods. tacbuilder.BuildModule does not fill
// References and the emitter does not read it.
type TypeUnit struct {
	Type       types.Type
	References []types.Type
	Methods    []*Method
	Constants  []*Constant
}

// Module is the TAC lowering of one compilation unit: the ordered set of
// types it declares, in the order the driver must emit their descriptors
// so that every reference resolves forward.
type Module struct {
	Name  string
	Units []*TypeUnit
}

// NewModule creates an empty Module named name.
func NewModule(name string) *Module { return &Module{Name: name} }

// AddUnit appends a lowered type to the module.
func (m *Module) AddUnit(u *TypeUnit) { m.Units = append(m.Units, u) }

// FindUnit looks up a lowered type by its qualified name.
func (m *Module) FindUnit(qualifiedName string) (*TypeUnit, bool) {
	for _, u := range m.Units {
		if u.Type.QualifiedName() == qualifiedName {
			return u, true
		}
	}
	return nil, false
}
