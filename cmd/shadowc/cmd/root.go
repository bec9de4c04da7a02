package cmd

import (
	"fmt"
	"os"

	"github.com/shadow-lang/shadowc/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configPath  string
	information bool
)

var rootCmd = &cobra.Command{
	Use:     "shadowc",
	Short:   "Shadow compiler",
	Version: Version,
	Long: `shadowc compiles Shadow, a statically typed, reference-counted,
object-oriented language with generics, interfaces, and exceptions, to
native code via LLVM.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "XML configuration file (default: OS-selected built-in, or $SHADOW_SYSTEM_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&information, "information", false, "print each diagnostic's compiler stack trace beneath it")
}

// Execute runs the root command and returns the process exit code, mapping
// any phaseError a subcommand returned to its documented negative code and
// everything else (cobra's own flag/argument errors) to ExitCommandLineError.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var pe *phaseError
	if asPhaseError(err, &pe) {
		fmt.Fprintln(os.Stderr, pe.err)
		return pe.code
	}

	fmt.Fprintln(os.Stderr, err)
	return ExitCommandLineError
}

func asPhaseError(err error, target **phaseError) bool {
	for err != nil {
		if pe, ok := err.(*phaseError); ok {
			*target = pe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// loadConfiguration resolves and loads the Configuration singleton from
// --config, falling back to config.BuiltinPath()'s SHADOW_SYSTEM_CONFIG /
// OS-selection rule.
func loadConfiguration() error {
	path := configPath
	if path == "" {
		path = config.BuiltinPath()
	}
	if _, err := config.Load(path); err != nil {
		return fail(ExitConfigurationError, err)
	}
	return nil
}
