package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cppscan",
	Short: "Static analyzer for C and C++ source",
	Long: `cppscan is a static analyzer for C and C++ source code.

It expands a translation unit's preprocessor configurations, tokenizes and
simplifies each one, and runs a battery of checkers over the result --
memory leaks, buffer overruns, uninitialized reads, suspicious STL usage
and more -- reporting findings as cppcheck-compatible text or XML.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "cppscan: "+msg+"\n", args...)
	os.Exit(1)
}
