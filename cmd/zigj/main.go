// Command zigj runs declarative test suites.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/zigj/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
