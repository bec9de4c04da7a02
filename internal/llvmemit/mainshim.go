package llvmemit

import (
	"fmt"

	"github.com/shadow-lang/shadowc/internal/types"
)

// emitMainShim synthesizes the process entry point: lift argv into a Shadow
// String[] (no console object is constructed), allocate the main type and
// invoke its declared main method (with or without the argument array,
// matching whatever arity the user actually declared), and report an
// uncaught exception to stderr with exit code 1 instead of letting it
// propagate past the process boundary.
func (e *Emitter) emitMainShim(mainClass *types.ClassType, mainMethod *types.MethodType) {
	name := sanitizeName(mainClass.QualifiedName())

	e.emit("define i32 @main(i32 %argc, i8** %argv) personality i32 (...)* @__shadow_personality_v0 {")
	e.emit("entry:")

	e.emit("  %args = call %array.Code_1d* @__shadow_lift_argv(i32 %argc, i8** %argv)")

	rawSelf := "%raw.main"
	e.emitf("  %s = call i8* @__allocate(i64 ptrtoint (%%class.%s* getelementptr (%%class.%s, %%class.%s* null, i32 1) to i64))",
		rawSelf, name, name, name)
	selfReg := "%self.main"
	e.emitf("  %s = bitcast i8* %s to %%class.%s*", selfReg, rawSelf, name)
	if ctors := mainClass.Methods.Overloads("Create"); len(ctors) > 0 {
		e.emitf("  call void @%s(%%class.%s* %s)", mangleMethod(ctors[0]), name, selfReg)
	}

	invokeArgs := fmt.Sprintf("%%class.%s* %s", name, selfReg)
	if mainMethod.Arity() > 0 {
		invokeArgs += ", %array.Code_1d* %args"
	}

	e.emit("  invoke void @" + mangleMethod(mainMethod) + "(" + invokeArgs + ")")
	e.emit("          to label %ok unwind label %catch")
	e.emit("")

	e.emit("ok:")
	e.emit("  ret i32 0")
	e.emit("")

	e.emit("catch:")
	e.emit("  %ex = landingpad { i8*, i32 } cleanup")
	e.emit("  call void @__shadow_report_uncaught({ i8*, i32 } %ex)")
	e.emit("  ret i32 1")
	e.emit("}")
	e.emit("")

	e.emit("declare %array.Code_1d* @__shadow_lift_argv(i32, i8**)")
	e.emit("declare void @__shadow_report_uncaught({ i8*, i32 })")
	e.emit("")
}
