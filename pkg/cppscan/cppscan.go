// Package cppscan is the public facade: it wires internal/fileio,
// internal/fileset and internal/orchestrator together behind the one
// entry point spec.md §6 describes the core as offering to any caller
// (the CLI being just the first one). A caller that wants to embed
// cppscan in another tool never needs to import an internal package.
package cppscan

import (
	"context"
	"io"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/checks"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/fileio"
	"github.com/cppscan/cppscan/internal/fileset"
	"github.com/cppscan/cppscan/internal/lexer"
	"github.com/cppscan/cppscan/internal/orchestrator"
	"github.com/cppscan/cppscan/internal/settings"
)

// Re-exported so callers never need to import internal/settings directly.
type (
	Settings    = settings.Settings
	Builder     = settings.Builder
	Severity    = settings.Severity
	Platform    = settings.Platform
	Standard    = settings.Standard
	Suppression = settings.Suppression
)

// NewBuilder re-exports settings.NewBuilder.
func NewBuilder() *Builder { return settings.NewBuilder() }

const (
	SeverityError       = settings.SeverityError
	SeverityWarning     = settings.SeverityWarning
	SeverityStyle       = settings.SeverityStyle
	SeverityPerformance = settings.SeverityPerformance
	SeverityPortability = settings.SeverityPortability
	SeverityInformation = settings.SeverityInformation
	SeverityUnusedFunc  = settings.SeverityUnusedFunc
	SeverityMissingInc  = settings.SeverityMissingInc
	SeverityDebug       = settings.SeverityDebug
)

const (
	PlatformUnspecified = settings.PlatformUnspecified
	PlatformUnix32      = settings.PlatformUnix32
	PlatformUnix64      = settings.PlatformUnix64
	PlatformWin32A      = settings.PlatformWin32A
	PlatformWin32W      = settings.PlatformWin32W
	PlatformWin64       = settings.PlatformWin64
)

// Message is one finding. It mirrors diag.ErrorMessage; callers outside this
// module never need to import internal/diag to read a Result.
type Message = diag.ErrorMessage

// Location is one call-stack frame of a Message.
type Location = diag.Location

// Result summarizes one Run: every retained diagnostic plus the derived
// exit code spec.md §6 defines as "the number of files for which at least
// one error-severity diagnostic was emitted, capped at 255".
type Result struct {
	Messages []Message
	ExitCode int
}

// DefaultRegistry returns a Registry carrying every built-in checker, in the
// order the CLI registers them by default. Callers that want a subset build
// their own *check.Registry and pass it to Run instead.
func DefaultRegistry() *check.Registry {
	return check.NewRegistry().Register(
		checks.ObsoleteFunctionsCheck{},
		checks.MemoryLeakCheck{},
		checks.UninitializedVariableCheck{},
		checks.BufferOverrunCheck{},
		checks.VirtualDestructorCheck{},
		checks.ConstructorInitCheck{},
		checks.SizeZeroCheck{},
		checks.IteratorAfterEraseCheck{},
		checks.AutoVariableCheck{},
		checks.NewUnusedFunctionsCheck(),
	)
}

// Run lists every source file under roots (each expanded via lister,
// recursively when recursive is true), decodes each one's raw bytes with
// lexer.DecodeSource (so a BOM-marked or UTF-16 translation unit is promoted
// to UTF-8 before a single token is cut from it), preprocesses, simplifies,
// and checks every one with registry, and returns the accumulated Result. A
// nil registry defaults to DefaultRegistry().
func Run(ctx context.Context, lister fileio.Lister, roots []string, recursive bool, st *settings.Settings, registry *check.Registry) (*Result, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}

	fs := fileset.New()
	var paths []string
	for _, root := range roots {
		expanded, err := lister.List(root, recursive)
		if err != nil {
			return nil, err
		}
		for _, p := range expanded {
			rc, err := lister.Open(p)
			if err != nil {
				return nil, err
			}
			raw, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, err
			}
			contents, err := lexer.DecodeSource(raw)
			if err != nil {
				return nil, err
			}
			fs.Add(p, contents)
			paths = append(paths, p)
		}
	}

	o := orchestrator.New(st, registry)
	collector, err := o.Run(ctx, fs, paths)
	if err != nil {
		return nil, err
	}

	return &Result{Messages: collector.Messages(), ExitCode: exitCode(collector)}, nil
}

// exitCode implements spec.md §6's exit-code rule: one per file carrying at
// least one error-severity diagnostic, capped at 255.
func exitCode(collector *diag.Collector) int {
	withError := map[string]bool{}
	for _, m := range collector.Messages() {
		if m.Severity == settings.SeverityError {
			withError[m.Primary().File] = true
		}
	}
	if len(withError) > 255 {
		return 255
	}
	return len(withError)
}
