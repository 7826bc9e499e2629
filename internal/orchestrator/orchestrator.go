// Package orchestrator drives the full pipeline -- preprocess, simplify,
// check -- across every file and every preprocessor configuration of a run,
// per spec.md §4.I. It is the one package in this module allowed to
// parallelize (spec.md §5: "the core runs single-threaded... parallelism
// lives entirely in the orchestrator"), using golang.org/x/sync/errgroup and
// golang.org/x/sync/semaphore for its worker pool, the same combination the
// teacher's own CLI avoids needing only because DWScript compiles one script
// at a time.
package orchestrator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/fileset"
	"github.com/cppscan/cppscan/internal/preprocessor"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/internal/simplifier"
)

// Orchestrator owns the check registry and settings for one run and fans
// preprocessing + checking out across files.
type Orchestrator struct {
	Registry *check.Registry
	Settings *settings.Settings
}

// New returns an Orchestrator ready to Run over a file set.
func New(st *settings.Settings, registry *check.Registry) *Orchestrator {
	return &Orchestrator{Registry: registry, Settings: st}
}

// Run preprocesses, simplifies, and checks every path in paths (already
// registered in fs), honoring Settings.JobCount for cross-file parallelism,
// and returns the collector holding every retained diagnostic across the
// whole run plus the first unrecoverable error encountered, if any.
func (o *Orchestrator) Run(ctx context.Context, fs *fileset.Set, paths []string) (*diag.Collector, error) {
	suppressor := diag.NewSuppressor()
	if o.Settings.InlineSuppressions {
		for _, p := range paths {
			if src, ok := fs.Contents(p); ok {
				suppressor.AddFile(p, src)
			}
		}
	}

	collector := diag.NewCollector(o.Settings, suppressor)
	logger := &syncLogger{next: collector}

	sem := semaphore.NewWeighted(int64(jobCount(o.Settings)))
	group, gctx := errgroup.WithContext(ctx)

	for _, p := range paths {
		p := p
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		group.Go(func() error {
			defer sem.Release(1)
			return o.runFile(gctx, fs, p, logger)
		})
	}

	err := group.Wait()
	o.Registry.FinalizeAll(logger)
	return collector, err
}

func jobCount(st *settings.Settings) int {
	if st.JobCount < 1 {
		return 1
	}
	return st.JobCount
}

// runFile preprocesses one file into its configurations, then simplifies and
// checks each independently, per spec.md §4.I.
func (o *Orchestrator) runFile(ctx context.Context, fs *fileset.Set, path string, logger diag.Logger) error {
	if o.Settings.ShouldTerminate() {
		return nil
	}

	configs, ppDiags, err := preprocessor.Expand(fs, path, o.Settings)
	for _, d := range ppDiags {
		logger.Report(diag.ErrorMessage{
			Severity:  d.Severity,
			ID:        d.ID,
			Message:   d.Message,
			Locations: []diag.Location{{File: d.File, Line: d.Line}},
		})
	}
	if err != nil {
		if err == preprocessor.ErrTerminated {
			return nil
		}
		logger.Report(diag.ErrorMessage{
			Severity:  settings.SeverityInformation,
			ID:        "fileNotFound",
			Message:   "could not read " + path,
			Locations: []diag.Location{{File: path}},
		})
		return nil
	}

	fileID, ok := fs.ID(path)
	if !ok {
		fileID = fs.Add(path, "")
	}

	for _, cfg := range configs {
		if ctx.Err() != nil || o.Settings.ShouldTerminate() {
			return nil
		}
		list, _ := simplifier.Simplify(cfg.Source, fileID, o.Settings)
		cctx := &check.Context{File: path, Config: cfg.Name, Settings: o.Settings}
		o.Registry.RunAll(list, nil, cctx, logger)
	}
	return nil
}

// syncLogger makes a diag.Logger safe for concurrent use by the
// orchestrator's worker goroutines; diag.Collector itself assumes a single
// writer, matching the core's single-threaded-per-file contract.
type syncLogger struct {
	mu   sync.Mutex
	next diag.Logger
}

func (s *syncLogger) Report(msg diag.ErrorMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next.Report(msg)
}
