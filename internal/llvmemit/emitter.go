// Package llvmemit turns a lowered TAC Module into LLVM IR text: type
// declarations for every referenced class and its method table, external
// declarations for the runtime helpers, class descriptor constants, and one
// function per TAC method; no module-init function is emitted. Per-node emission is
// algebraic — each tac.Kind maps to exactly one textual template, the same
// way the mir2llvm generator this package is grounded on emits one line (or
// fixed group of lines) per MIR instruction rather than building an
// in-memory IR object graph.
package llvmemit

import (
	"fmt"
	"strings"

	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// Emitter holds the mutable state of one Module -> LLVM IR text pass: the
// output buffer, the set of class descriptors and array/sequence struct
// types already emitted (so a shared type across methods is only defined
// once), and the distinct generic/array instantiations collected along the
// way for the back-patched _genericSet/_arraySet globals.
type Emitter struct {
	sb strings.Builder

	classesEmitted map[string]bool
	arrayTypesSeen map[string]*types.ArrayType
	seqTypesSeen   map[string]*types.SequenceType

	genericInstances []*types.ClassType
	arrayInstances   []*types.ArrayType

	stringConsts   map[string]string
	stringOrder    []string

	labelCounter int
}

// New creates an empty Emitter.
func New() *Emitter {
	return &Emitter{
		classesEmitted: make(map[string]bool),
		arrayTypesSeen: make(map[string]*types.ArrayType),
		seqTypesSeen:   make(map[string]*types.SequenceType),
		stringConsts:   make(map[string]string),
	}
}

// Emit renders m as LLVM IR text. mainClass/mainMethod, when non-nil,
// select which type's constructor and which method the synthesized
// main(argc, argv) shim invokes; both nil emits a library module with no
// entry point.
func Emit(m *tac.Module, mainClass *types.ClassType, mainMethod *types.MethodType) (string, error) {
	e := New()
	return e.emitModule(m, mainClass, mainMethod)
}

func (e *Emitter) emitModule(m *tac.Module, mainClass *types.ClassType, mainMethod *types.MethodType) (string, error) {
	e.emitHeader(m.Name)
	e.emitRuntimeDeclarations()

	for _, unit := range m.Units {
		if err := e.emitTypeDeclaration(unit.Type); err != nil {
			return "", err
		}
	}
	for _, unit := range m.Units {
		e.emitClassDescriptor(unit)
	}

	for _, unit := range m.Units {
		for _, method := range unit.Methods {
			if err := e.emitMethod(method); err != nil {
				return "", fmt.Errorf("llvmemit: %s: %w", method.Signature.QualifiedName(), err)
			}
		}
	}

	e.emitGenericAndArraySets()
	e.emitStringConstants()

	if mainClass != nil {
		e.emitMainShim(mainClass, mainMethod)
	}

	return e.sb.String(), nil
}

func (e *Emitter) emit(line string) {
	e.sb.WriteString(line)
	e.sb.WriteByte('\n')
}

func (e *Emitter) emitf(format string, args ...any) {
	e.emit(fmt.Sprintf(format, args...))
}

func (e *Emitter) emitHeader(name string) {
	e.emitf("; ModuleID = '%s'", name)
	e.emitf("source_filename = \"%s\"", name)
	e.emit("target triple = \"x86_64-unknown-linux-gnu\"")
	e.emit("")
}
