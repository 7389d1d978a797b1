// Command emplode is a standalone CLI for running, lexing, and parsing
// Emplode configuration scripts outside of a host simulation.
package main

import (
	"fmt"
	"os"

	"github.com/mercere99/MABE2-sub002/cmd/emplode/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
