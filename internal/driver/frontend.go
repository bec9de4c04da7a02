package driver

import "github.com/shadow-lang/shadowc/internal/ast"

// Frontend turns Shadow source text into a checked AST: lexing, parsing,
// and full type checking. It is the named interface boundary to the
// external collaborator this repository does not implement — every
// subcommand in cmd/shadowc calls through ParseFrontend rather than
// assuming a concrete lexer/parser/checker is linked in.
type Frontend func(source []byte, filename string) (*ast.Program, error)

// ParseFrontend is the process-wide frontend hook. It is nil until an
// embedder of this package wires in a real lexer/parser/checker. The CLI
// subcommands check it before loading a unit and report a configuration
// error rather than panicking; Compile itself takes an already checked
// program and never reads this hook.
var ParseFrontend Frontend
