// Command studentctl inspects and migrates the student-records database
// from a terminal.
//
//	studentctl --config=config/local.yaml students list
package main

import (
	"fmt"
	"os"

	"github.com/sakif/student-records/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
