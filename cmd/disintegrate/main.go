// Command disintegrate runs decision scenarios and executes decisions
// against a SQLite event log.
package main

import (
	"fmt"
	"os"

	"github.com/gmkumar2005/disintegrate/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
