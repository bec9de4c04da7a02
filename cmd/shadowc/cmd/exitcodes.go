package cmd

// Exit codes per the CLI surface's documented contract: 0 success, then one
// negative code per failing phase so a build script can distinguish "the
// source doesn't exist" from "the source doesn't type-check" without
// scraping stderr.
const (
	ExitSuccess           = 0
	ExitFileNotFound      = -1
	ExitParseError        = -2
	ExitTypeCheckError    = -3
	ExitCompileError      = -4
	ExitCommandLineError  = -5
	ExitConfigurationError = -6
)

// phaseError pairs a failure with the exit code its phase maps to, so
// Execute can report the right code without every subcommand calling
// os.Exit itself (which would skip cobra's own usage/help printing).
type phaseError struct {
	code int
	err  error
}

func (e *phaseError) Error() string { return e.err.Error() }
func (e *phaseError) Unwrap() error { return e.err }

func fail(code int, err error) error {
	return &phaseError{code: code, err: err}
}
