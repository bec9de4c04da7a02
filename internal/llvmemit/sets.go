package llvmemit

import (
	"fmt"
	"strings"
)

// emitGenericAndArraySets emits the module-wide _genericSet and _arraySet
// globals with their element counts. _genericSet holds a class-descriptor
// pointer for each generic class unit of this module whose descriptor was
// emitted; instantiations used but not declared in the module are not
// listed. _arraySet holds one entry per array shape recorded while emitting,
// and each entry is a null pointer of that array's struct type, not a
// class-descriptor pointer.
func (e *Emitter) emitGenericAndArraySets() {
	e.emitf("@genericSize = constant i32 %d", len(e.genericInstances))
	if len(e.genericInstances) == 0 {
		e.emit("@_genericSet = constant [0 x i8*] zeroinitializer")
	} else {
		entries := make([]string, len(e.genericInstances))
		for i, c := range e.genericInstances {
			name := sanitizeName(c.QualifiedName())
			entries[i] = fmt.Sprintf("i8* bitcast (%%class.%s.Class* @class.%s.descriptor to i8*)", name, name)
		}
		e.emitf("@_genericSet = constant [%d x i8*] [%s]", len(entries), strings.Join(entries, ", "))
	}

	e.emitf("@arraySize = constant i32 %d", len(e.arrayInstances))
	if len(e.arrayInstances) == 0 {
		e.emit("@_arraySet = constant [0 x i8*] zeroinitializer")
	} else {
		entries := make([]string, len(e.arrayInstances))
		for i, a := range e.arrayInstances {
			entries[i] = fmt.Sprintf("i8* bitcast (%s* null to i8*)", e.arrayStructName(a))
		}
		e.emitf("@_arraySet = constant [%d x i8*] [%s]", len(entries), strings.Join(entries, ", "))
	}
	e.emit("")
}
