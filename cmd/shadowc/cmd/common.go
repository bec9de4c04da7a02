package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shadow-lang/shadowc/internal/driver"
	"github.com/shadow-lang/shadowc/internal/errors"
)

// loadUnit reads path, runs it through the configured frontend, and returns
// a driver.Unit ready for driver.Compile. Output artifacts are written
// alongside the source unless that changes in a later revision of the
// on-disk artifact layout.
func loadUnit(path string) (*driver.Unit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fail(ExitFileNotFound, fmt.Errorf("%s: no such file", path))
		}
		return nil, fail(ExitFileNotFound, err)
	}

	if driver.ParseFrontend == nil {
		return nil, fail(ExitConfigurationError, fmt.Errorf("no frontend configured: shadowc was built without a lexer/parser/checker wired into driver.ParseFrontend"))
	}

	program, err := driver.ParseFrontend(content, path)
	if err != nil {
		return nil, fail(ExitParseError, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &driver.Unit{
		Name:       name,
		SourcePath: path,
		OutputDir:  filepath.Dir(path),
		Program:    program,
	}, nil
}

// printDiagnostics writes every accumulated diagnostic to stderr in source
// order, matching the teacher's FormatErrors(..., color) call sites. When
// --information was passed, each diagnostic that carries a processing
// stack (see internal/errors/stack_trace.go) prints it underneath.
func printDiagnostics(reporter *errors.ErrorReporter) {
	text, _ := reporter.PrintAndReportErrors(true)
	if text != "" {
		fmt.Fprintln(os.Stderr, text)
	}
	if !information {
		return
	}
	for _, d := range reporter.Diagnostics() {
		if trace := d.FormatTrace(); trace != "" {
			fmt.Fprintf(os.Stderr, "  in:\n%s\n", indentLines(trace, "    "))
		}
	}
}

// indentLines prefixes every line of s with prefix.
func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// exitCodeFor maps a driver.PhaseError onto the CLI's documented exit
// codes; an error that isn't a PhaseError (an I/O or internal failure)
// falls back to the generic compile-error code.
func exitCodeFor(err error) int {
	var pe *driver.PhaseError
	if e, ok := err.(*driver.PhaseError); ok {
		pe = e
	} else {
		return ExitCompileError
	}
	switch pe.Phase {
	case driver.PhaseTypeCheck:
		return ExitTypeCheckError
	default:
		return ExitCompileError
	}
}
