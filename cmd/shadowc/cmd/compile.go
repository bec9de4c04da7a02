package cmd

import (
	"fmt"
	"os"

	"github.com/shadow-lang/shadowc/internal/driver"
	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/spf13/cobra"
)

var (
	forceRecompile bool
	humanReadable  bool
	noLink         bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a Shadow source file to an object file, without linking",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	addCompileFlags(compileCmd)
}

func addCompileFlags(c *cobra.Command) {
	c.Flags().BoolVar(&forceRecompile, "force-recompile", false, "ignore the .o cache and recompile unconditionally")
	c.Flags().BoolVar(&humanReadable, "human-readable", false, "also keep the emitted .ll text alongside the .o")
	c.Flags().BoolVar(&noLink, "no-link", false, "stop after compiling, even from the build subcommand")
}

func runCompile(_ *cobra.Command, args []string) error {
	result, err := compileOne(args[0])
	if err != nil {
		return err
	}
	if result.Cached {
		fmt.Fprintf(os.Stderr, "%s: up to date\n", result.ObjectPath)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", result.ObjectPath)
	}
	return nil
}

func compileOne(path string) (*driver.Result, error) {
	if err := loadConfiguration(); err != nil {
		return nil, err
	}

	unit, err := loadUnit(path)
	if err != nil {
		return nil, err
	}

	reporter := errors.NewErrorReporter()
	result, err := driver.Compile(unit, driver.Options{
		CompileOnly:    true,
		NoLink:         true,
		ForceRecompile: forceRecompile,
		HumanReadable:  humanReadable,
	}, reporter)
	printDiagnostics(reporter)
	if err != nil {
		return nil, fail(exitCodeFor(err), err)
	}
	return result, nil
}
