package cmd

import (
	"fmt"
	"os"

	"github.com/shadow-lang/shadowc/internal/driver"
	"github.com/shadow-lang/shadowc/internal/errors"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check a Shadow source file without compiling it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	if err := loadConfiguration(); err != nil {
		return err
	}

	unit, err := loadUnit(args[0])
	if err != nil {
		return err
	}

	reporter := errors.NewErrorReporter()
	_, err = driver.Compile(unit, driver.Options{Check: true}, reporter)
	printDiagnostics(reporter)
	if err != nil {
		return fail(exitCodeFor(err), err)
	}
	fmt.Fprintf(os.Stderr, "%s: no errors\n", unit.SourcePath)
	return nil
}
