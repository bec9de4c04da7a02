// Package driver orchestrates one compilation unit end to end: checked AST
// in, object-file path out. It owns the decision of whether a cached
// `.ll`/`.o` can be reused, invokes the TAC builder, the CFG analyses, and
// the LLVM emitter in sequence, and shells out to `llc`/`clang` for the
// steps this repository does not reimplement. The lexer, parser, and type
// checker that produce the `*ast.Program` this package consumes are
// external collaborators (see internal/ast's package doc).
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/cfg"
	"github.com/shadow-lang/shadowc/internal/config"
	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/shadow-lang/shadowc/internal/llvmemit"
	"github.com/shadow-lang/shadowc/internal/source"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/tacbuilder"
	"github.com/shadow-lang/shadowc/internal/types"
)

// Unit is one compilation unit handed to the driver: a checked AST plus the
// source/output paths the spec's on-disk artifact layout names.
type Unit struct {
	Name       string
	SourcePath string
	OutputDir  string
	Program    *ast.Program
}

// Options mirrors the CLI flag surface that changes how far the pipeline
// runs and what it leaves on disk.
type Options struct {
	Check          bool // type-check only: run CFG analyses, never reach the emitter
	CompileOnly    bool // emit and assemble the object file, skip linking
	NoLink         bool
	ForceRecompile bool
	HumanReadable  bool // also write the .ll text alongside the .o
}

// Result is what the driver hands back to the CLI/linker once a unit has
// been built.
type Result struct {
	ObjectPath string
	IRPath     string
	Cached     bool
}

// Phase names a pipeline stage, so a caller mapping driver errors onto the
// CLI's distinct exit codes does not have to pattern-match error text.
type Phase string

const (
	PhaseTypeCheck Phase = "type-check"
	PhaseEmit      Phase = "emit"
	PhaseAssemble  Phase = "assemble"
)

// PhaseError reports which pipeline stage failed, alongside the underlying
// error.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string { return string(e.Phase) + ": " + e.Err.Error() }
func (e *PhaseError) Unwrap() error { return e.Err }

// Compile runs unit through the full pipeline: cache check, TAC lowering,
// CFG analyses, LLVM emission, and external assembly. reporter accumulates
// every diagnostic the CFG passes produce; a HasErrors() reporter after
// this call means compilation failed for reasons already recorded there.
func Compile(unit *Unit, opts Options, reporter *errors.ErrorReporter) (*Result, error) {
	llPath := filepath.Join(unit.OutputDir, unit.Name+".ll")
	oPath := filepath.Join(unit.OutputDir, unit.Name+".o")

	if !opts.ForceRecompile && !opts.Check {
		if cached, err := isUpToDate(unit.SourcePath, oPath); err == nil && cached {
			return &Result{ObjectPath: oPath, IRPath: llPath, Cached: true}, nil
		}
	}

	module := tacbuilder.BuildModule(unit.Name, unit.Program)

	mgr := cfg.NewManager(cfg.DefaultPasses()...)
	ctx := cfg.NewContext(reporter)
	for _, u := range module.Units {
		for _, method := range u.Methods {
			if err := mgr.RunMethod(method, ctx); err != nil {
				return nil, fmt.Errorf("driver: %s: cfg analysis: %w", unit.Name, err)
			}
		}
	}
	cfg.FinalizeUsage(ctx)

	if reporter.HasErrors() {
		return nil, &PhaseError{Phase: PhaseTypeCheck, Err: fmt.Errorf("%s: %d error(s)", unit.Name, len(reporter.Errors()))}
	}
	if opts.Check {
		return nil, nil
	}

	mainClass, mainMethod := selectMain(module)

	irText, err := llvmemit.Emit(module, mainClass, mainMethod)
	if err != nil {
		reporter.Report(errors.NewCompilerError(errors.KindEmitterInvalidIR, source.Position{}, err.Error(), "", unit.SourcePath).
			WithTrace(unitTrace(unit, mainMethod)))
		return nil, &PhaseError{Phase: PhaseEmit, Err: fmt.Errorf("%s: %w", unit.Name, err)}
	}

	if err := os.MkdirAll(unit.OutputDir, 0o755); err != nil {
		return nil, &PhaseError{Phase: PhaseEmit, Err: fmt.Errorf("%s: creating output directory: %w", unit.Name, err)}
	}
	if err := os.WriteFile(llPath, []byte(irText), 0o644); err != nil {
		return nil, &PhaseError{Phase: PhaseEmit, Err: fmt.Errorf("%s: writing %s: %w", unit.Name, llPath, err)}
	}

	cfgv := config.Current()
	if err := runLLC(cfgv, llPath, oPath); err != nil {
		os.Remove(oPath)
		reporter.Report(errors.NewCompilerError(errors.KindToolFailure, source.Position{}, err.Error(), "", unit.SourcePath).
			WithTrace(unitTrace(unit, mainMethod)))
		return nil, &PhaseError{Phase: PhaseAssemble, Err: fmt.Errorf("%s: llc: %w", unit.Name, err)}
	}

	if !opts.HumanReadable {
		os.Remove(llPath)
		llPath = ""
	}

	return &Result{ObjectPath: oPath, IRPath: llPath}, nil
}

// unitTrace builds the processing stack attached to an emit/assemble
// failure: the compilation unit, and — when the emitter was asked to
// synthesize an entry point — the declared main method the emitted shim's
// uncaught-exception landing pad ultimately invokes. Printed by the CLI's
// --information flag (see cmd/shadowc/cmd/common.go) alongside the
// diagnostic itself.
func unitTrace(unit *Unit, mainMethod *types.MethodType) errors.StackTrace {
	trace := errors.StackTrace{errors.NewStackFrame(unit.Name, unit.SourcePath, nil)}
	if mainMethod != nil {
		trace = append(trace, errors.NewStackFrame(mainMethod.QualifiedName(), unit.SourcePath, nil))
	}
	return trace
}

// selectMain finds the class declaring a "main" method, the convention the
// synthesized entry-point shim looks for; a library module with no such
// class returns nil, nil and the emitter writes no main().
func selectMain(module *tac.Module) (*types.ClassType, *types.MethodType) {
	for _, unit := range module.Units {
		class, ok := unit.Type.(*types.ClassType)
		if !ok {
			continue
		}
		if overloads := class.Methods.Overloads("main"); len(overloads) > 0 {
			return class, overloads[0]
		}
	}
	return nil, nil
}

func isUpToDate(sourcePath, objectPath string) (bool, error) {
	src, err := os.Stat(sourcePath)
	if err != nil {
		return false, err
	}
	obj, err := os.Stat(objectPath)
	if err != nil {
		return false, nil
	}
	return !obj.ModTime().Before(src.ModTime()), nil
}
