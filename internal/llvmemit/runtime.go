package llvmemit

// emitRuntimeDeclarations emits the external declarations for the runtime
// helpers every emitted method may call: allocation, reference counting,
// and the exception landing-pad machinery. These are never defined in the
// emitted module itself — they live in the Shadow runtime library the
// driver links against.
func (e *Emitter) emitRuntimeDeclarations() {
	e.emit("; Runtime function declarations")
	e.emit("%String = type { i64, i8*, i64 }")
	e.emit("")
	e.emit("declare i8* @__allocate(i64)")
	e.emit("declare i8* @__allocateArray(i64, i64)")
	e.emit("declare void @__incrementRef(i8*)")
	e.emit("declare void @__decrementRef(i8*)")
	e.emit("")
	e.emit("declare i32 @__shadow_personality_v0(...)")
	e.emit("declare i8* @__shadow_catch(i8*, i8*)")
	e.emit("declare void @__shadow_throw(i8*)")
	e.emit("")
	e.emit("declare i32 @printf(i8*, ...)")
	e.emit("")
}
