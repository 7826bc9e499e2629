// Command cppscan is the CLI front end for the static analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/cppscan/cppscan/cmd/cppscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
