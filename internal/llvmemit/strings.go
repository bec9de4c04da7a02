package llvmemit

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// stringConstant registers s (NFC-normalized, so two literals that differ
// only by combining-character representation collapse to one global) and
// returns the name of the %String global that owns its storage, allocating
// a fresh one on first use.
func (e *Emitter) stringConstant(s string) string {
	normalized := norm.NFC.String(s)
	if name, ok := e.stringConsts[normalized]; ok {
		return name
	}
	name := fmt.Sprintf("str.const.%d", len(e.stringOrder))
	e.stringConsts[normalized] = name
	e.stringOrder = append(e.stringOrder, normalized)
	return name
}

// emitStringConstants emits every string literal collected while emitting
// method bodies, as a raw byte array plus the %String wrapper pointing at
// it, in first-use order.
func (e *Emitter) emitStringConstants() {
	if len(e.stringOrder) == 0 {
		return
	}
	e.emit("; String literal constants")
	for _, s := range e.stringOrder {
		name := e.stringConsts[s]
		raw, length := escapeStringLiteral(s)
		e.emitf("@raw.%s = private unnamed_addr constant [%d x i8] c\"%s\"", name, length, raw)
		e.emitf("@%s = private constant %%String { i64 0, i8* getelementptr inbounds ([%d x i8], [%d x i8]* @raw.%s, i32 0, i32 0), i64 %d }",
			name, length, length, name, length-1)
	}
	e.emit("")
}

// escapeStringLiteral renders s as an LLVM c"..." byte string, escaping
// every non-printable-ASCII byte as \XX, and returns the escaped text
// alongside the array length including the trailing NUL.
func escapeStringLiteral(s string) (string, int) {
	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			out = append(out, c)
			continue
		}
		out = append(out, fmt.Sprintf("\\%02X", c)...)
	}
	out = append(out, "\\00"...)
	return string(out), len(s) + 1
}
