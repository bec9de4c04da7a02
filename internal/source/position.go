// Package source carries the one piece of lexer/parser state the middle end
// still needs: where a node came from. The lexer and parser themselves are
// external collaborators (see the compiler's top-level documentation) — this
// package exists only so that TAC nodes, checked AST nodes, and diagnostics
// can all agree on what a "location" is.
package source

import "fmt"

// Position identifies a single point in a source file.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

// String renders the position as "file:line:col", omitting the file when empty.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsValid reports whether the position carries real line/column information.
func (p Position) IsValid() bool {
	return p.Line > 0
}
