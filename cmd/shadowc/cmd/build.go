package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/shadow-lang/shadowc/internal/config"
	"github.com/shadow-lang/shadowc/internal/driver"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a Shadow source file and link it into an executable",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addCompileFlags(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	result, err := compileOne(args[0])
	if err != nil {
		return err
	}

	if noLink {
		fmt.Fprintf(os.Stderr, "%s\n", result.ObjectPath)
		return nil
	}

	exePath := strings.TrimSuffix(result.ObjectPath, ".o")
	if err := driver.Link(config.Current(), []string{result.ObjectPath}, exePath); err != nil {
		return fail(ExitCompileError, err)
	}
	fmt.Fprintf(os.Stderr, "%s\n", exePath)
	return nil
}
