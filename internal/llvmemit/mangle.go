package llvmemit

import (
	"strings"

	"github.com/shadow-lang/shadowc/internal/types"
)

// sanitizeName replaces every character LLVM identifiers cannot carry with
// an underscore, matching the mir2llvm generator's own sanitizeName.
func sanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	out := sb.String()
	if out == "" {
		return "_"
	}
	if out[0] >= '0' && out[0] <= '9' {
		return "_" + out
	}
	return out
}

// mangleType renders a single type as the segment mangleMethod joins
// between underscores: a class/interface by its sanitized qualified name,
// an array by its element's mangled name plus an "_A" suffix per
// dimension, a primitive by its declared name.
func mangleType(t types.Type) string {
	if t == nil {
		return "void"
	}
	switch tt := t.(type) {
	case *types.ArrayType:
		base := mangleType(tt.BaseType)
		return base + strings.Repeat("_A", tt.Dimensions)
	default:
		return sanitizeName(t.QualifiedName())
	}
}

// mangleMethod builds the method's ABI-exact linkage name:
// Type_MName_ParamType1_ParamType2…, with array parameters suffixed _A.
func mangleMethod(m *types.MethodType) string {
	parts := []string{sanitizeName(m.Outer.QualifiedName()), m.MethodName}
	for _, p := range m.Params.Elements {
		parts = append(parts, mangleType(p.Type))
	}
	return strings.Join(parts, "_")
}
