// Command satcalc adds int32 values with saturation and hosts a few small
// text helpers. Run "satcalc --help" for the command list.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/satcalc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
