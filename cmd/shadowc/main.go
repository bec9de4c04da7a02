// Command shadowc is the Shadow compiler's CLI entry point.
package main

import (
	"os"

	"github.com/shadow-lang/shadowc/cmd/shadowc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
