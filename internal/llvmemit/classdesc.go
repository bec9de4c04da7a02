package llvmemit

import (
	"fmt"
	"strings"

	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// emitClassDescriptor emits a TypeUnit's class descriptor and method-table
// constants, per the ABI: { header, name:String*, parent:Class*,
// method-table-array, interface-array, flags:int, size:int }, with a
// generic class appending { type-parameter-class-array,
// type-parameter-methodtable-array }.
func (e *Emitter) emitClassDescriptor(unit *tac.TypeUnit) {
	c, ok := unit.Type.(*types.ClassType)
	if !ok {
		return
	}
	name := sanitizeName(c.QualifiedName())
	methods := c.Methods.All()

	e.emitMethodTableType(name, len(methods))
	e.emitMethodTableGlobal(name, methods)
	e.emitClassDescriptorType(name, c)
	e.emitClassDescriptorGlobal(name, c)

	if len(c.TypeArguments()) > 0 {
		e.genericInstances = append(e.genericInstances, c)
	}
}

func (e *Emitter) emitMethodTableType(name string, n int) {
	e.emitf("%%class.%s.Methods = type { [%d x i8*] }", name, n)
}

func (e *Emitter) emitMethodTableGlobal(name string, methods []*types.MethodType) {
	entries := make([]string, len(methods))
	for i, m := range methods {
		entries[i] = "i8* bitcast (void ()* @" + mangleMethod(m) + " to i8*)"
	}
	e.emitf("@class.%s.methods = constant %%class.%s.Methods { [%d x i8*] [%s] }",
		name, name, len(methods), strings.Join(entries, ", "))
}

// emitClassDescriptorType defines the class descriptor's own struct shape;
// a generic class carries two trailing arrays of its type parameters'
// class/method-table pointers so a monomorphized call site can recover the
// concrete type argument's vtable at runtime.
func (e *Emitter) emitClassDescriptorType(name string, c *types.ClassType) {
	fields := []string{
		"i64",                       // header: reference count
		"%String*",                  // name
		"%class." + name + ".Class*", // parent (self-referential pointer type)
		"%class." + name + ".Methods*",
		"i8**", // interface array
		"i32",  // flags
		"i32",  // size
	}
	if len(c.TypeArguments()) > 0 {
		fields = append(fields, "%class."+name+".Class**", "i8**")
	}
	e.emitf("%%class.%s.Class = type { %s }", name, strings.Join(fields, ", "))
}

func (e *Emitter) emitClassDescriptorGlobal(name string, c *types.ClassType) {
	parent := "null"
	if c.Extend != nil {
		parent = fmt.Sprintf("bitcast (%%class.%s.Class* @class.%s.descriptor to %%class.%s.Class*)",
			sanitizeName(c.Extend.QualifiedName()), sanitizeName(c.Extend.QualifiedName()), name)
	}

	values := []string{
		"i64 0",
		"%String* @str." + name + ".name",
		"%class." + name + ".Class* " + parent,
		"%class." + name + ".Methods* @class." + name + ".methods",
		"i8** null",
		"i32 0",
		fmt.Sprintf("i32 %d", e.classInstanceSize(c)),
	}
	if len(c.TypeArguments()) > 0 {
		values = append(values, "%class."+name+".Class** null", "i8** null")
	}
	e.emitf("@class.%s.descriptor = global %%class.%s.Class { %s }", name, name, strings.Join(values, ", "))
	e.registerNameConstant(name)
}

// classInstanceSize estimates the object's in-memory size as the three
// header words plus one pointer-sized slot per declared field. This fixed
// estimate is what the descriptor carries; nothing adjusts it for the
// target's data layout or the fields' actual sizes.
func (e *Emitter) classInstanceSize(c *types.ClassType) int {
	return 3*8 + 8*c.Fields.Len()
}

func (e *Emitter) registerNameConstant(name string) {
	global := "@str." + name + ".name"
	e.emitf("%s = private constant %%String { i64 0, i8* getelementptr inbounds ([%d x i8], [%d x i8]* @raw.%s, i32 0, i32 0), i64 %d }",
		global, len(name)+1, len(name)+1, name, len(name))
	e.emitf("@raw.%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"", name, len(name)+1, name)
}
