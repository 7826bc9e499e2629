package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/fileio"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/cppscan"
)

var (
	defines        []string
	undefines      []string
	includePaths   []string
	enable         []string
	inconclusive   bool
	force          bool
	maxConfigs     int
	platformFlag   string
	stdFlag        string
	suppressFlags  []string
	xmlOut         bool
	xmlVersion     int
	jobCount       int
	recursive      bool
	projectFile    string
	dumpSettings   bool
	inlineSuppress bool
)

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Run the static analysis checks over one or more files or directories",
	Long: `check runs cppscan's full pipeline -- preprocessor configuration
enumeration, tokenization, simplification, and the registered checkers --
over every path given, reporting findings as text or XML.

A directory argument is expanded to every contained C/C++ source file
(add --recursive to descend into subdirectories).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "define a preprocessor symbol, name[=value]")
	checkCmd.Flags().StringArrayVarP(&undefines, "undefine", "U", nil, "force a preprocessor symbol undefined")
	checkCmd.Flags().StringArrayVarP(&includePaths, "include", "I", nil, "add an include-file search path")
	checkCmd.Flags().StringArrayVar(&enable, "enable", nil, "enable additional diagnostic severities (all,style,warning,performance,portability,information,unusedFunction,missingInclude)")
	checkCmd.Flags().BoolVar(&inconclusive, "inconclusive", false, "also report findings the checkers flag as inconclusive")
	checkCmd.Flags().BoolVar(&force, "force", false, "check every preprocessor configuration regardless of --max-configs")
	checkCmd.Flags().IntVar(&maxConfigs, "max-configs", 12, "maximum number of preprocessor configurations to check per file")
	checkCmd.Flags().StringVar(&platformFlag, "platform", "", "target platform (unix32,unix64,win32A,win32W,win64)")
	checkCmd.Flags().StringVar(&stdFlag, "std", "", "language standard (c89,c99,c11,c++03,c++11,c++17,...)")
	checkCmd.Flags().StringArrayVar(&suppressFlags, "suppress", nil, "suppress a diagnostic id[:file[:line]]")
	checkCmd.Flags().BoolVar(&xmlOut, "xml", false, "write findings as XML instead of text")
	checkCmd.Flags().IntVar(&xmlVersion, "xml-version", 2, "XML schema version (1 or 2)")
	checkCmd.Flags().IntVarP(&jobCount, "jobs", "j", 1, "number of files to check concurrently")
	checkCmd.Flags().BoolVar(&recursive, "recursive", false, "descend into subdirectories of directory arguments")
	checkCmd.Flags().StringVar(&projectFile, "project", "", "load defines/include paths from a compile_commands.json or cppscan project file")
	checkCmd.Flags().BoolVar(&dumpSettings, "dump-settings", false, "print the resolved settings as JSON and exit")
	checkCmd.Flags().BoolVar(&inlineSuppress, "inline-suppressions", true, "honor // cppcheck-suppress inline comments")
}

func runCheck(cmd *cobra.Command, args []string) error {
	builder := settings.NewBuilder().
		WithDefines(defines...).
		WithUndefines(undefines...).
		WithIncludePaths(includePaths...).
		WithInconclusive(inconclusive).
		WithForce(force).
		WithMaxConfigs(maxConfigs).
		WithJobCount(jobCount).
		WithInlineSuppressions(inlineSuppress)

	var sevs []settings.Severity
	for _, e := range enable {
		sevs = append(sevs, settings.Severity(e))
	}
	builder.Enable(sevs...)

	if platformFlag != "" {
		p, err := parsePlatform(platformFlag)
		if err != nil {
			return err
		}
		builder.WithPlatform(p)
	}
	if stdFlag != "" {
		builder.WithStandards(settings.Standard(stdFlag))
	}

	supps, err := parseSuppressions(suppressFlags)
	if err != nil {
		return err
	}
	builder.WithSuppressions(supps...)

	if projectFile != "" {
		data, err := os.ReadFile(projectFile)
		if err != nil {
			return fmt.Errorf("reading project file: %w", err)
		}
		if err := builder.LoadProject(data); err != nil {
			return fmt.Errorf("loading project file: %w", err)
		}
	}

	st := builder.Build()

	if dumpSettings {
		doc, err := settings.DumpJSON(st)
		if err != nil {
			return err
		}
		fmt.Println(doc)
		return nil
	}

	if xmlVersion != 1 && xmlVersion != 2 {
		return fmt.Errorf("--xml-version must be 1 or 2")
	}

	lister := fileio.NewFSLister()
	res, err := cppscan.Run(context.Background(), lister, args, recursive, st, nil)
	if err != nil {
		return err
	}

	if xmlOut {
		sink := diag.NewXMLSinkVersion(os.Stdout, xmlVersion)
		if err := sink.WriteAll(res.Messages); err != nil {
			return err
		}
	} else {
		quiet, _ := cmd.Flags().GetBool("quiet")
		sink := diag.NewTextSink(os.Stdout, !quiet)
		sink.WriteAll(res.Messages)
	}

	if res.ExitCode != 0 {
		os.Exit(res.ExitCode)
	}
	return nil
}

func parsePlatform(name string) (settings.Platform, error) {
	switch strings.ToLower(name) {
	case "unix32":
		return settings.PlatformUnix32, nil
	case "unix64":
		return settings.PlatformUnix64, nil
	case "win32a":
		return settings.PlatformWin32A, nil
	case "win32w":
		return settings.PlatformWin32W, nil
	case "win64":
		return settings.PlatformWin64, nil
	default:
		return settings.PlatformUnspecified, fmt.Errorf("unknown platform %q", name)
	}
}

// parseSuppressions parses --suppress=<id>[:file[:line]] entries.
func parseSuppressions(flags []string) ([]settings.Suppression, error) {
	var out []settings.Suppression
	for _, f := range flags {
		parts := strings.Split(f, ":")
		s := settings.Suppression{ID: parts[0]}
		if len(parts) >= 2 {
			s.File = parts[1]
		}
		if len(parts) >= 3 {
			line, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid --suppress line in %q: %w", f, err)
			}
			s.Line = line
		}
		out = append(out, s)
	}
	return out, nil
}
