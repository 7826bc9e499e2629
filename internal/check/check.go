// Package check defines the polymorphic check interface and the registry
// that the orchestrator dispatches through, per spec.md §4.F. Registration
// is an explicit caller-built list (spec.md §9's design note), not a
// process-wide global-constructor side effect: a test builds its own
// Registry with exactly the checks it wants to exercise.
package check

import (
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// Context is the per-(file, configuration) information every check gets
// alongside the token list: the source file's path (so a check can build a
// diag.Location without depending on internal/fileset itself) and the
// resolved settings.
type Context struct {
	File     string
	Config   string
	Settings *settings.Settings
}

// Check is the capability set every analysis implements. Most checks only
// need RunOnSimplified; a few (documentation dumps, the rare raw-token
// check) also implement the optional interfaces below.
type Check interface {
	// Name is the check's stable identifier. Suppressions do not consult
	// it: --suppress and inline suppressions match a diagnostic's own ID.
	Name() string

	// RunOnSimplified walks the fully simplified token list for one
	// (file, configuration) pass and reports findings through logger. It
	// must never panic through its own boundary and must degrade to
	// silence on malformed input (spec.md §4.H).
	RunOnSimplified(list *token.List, ctx *Context, logger diag.Logger)
}

// RawRunner is the rare capability of a check that also wants to see the
// raw (pre-simplification) token stream -- e.g. a check whose pattern
// depends on exact original spelling the simplifier has since canonicalized.
type RawRunner interface {
	RunOnRaw(list *token.List, ctx *Context, logger diag.Logger)
}

// MessageLister is the capability used by the documentation dump: a check
// that can describe every diagnostic id/severity pair it is capable of
// producing, independent of any particular run.
type MessageLister interface {
	ErrorMessages() []ErrorMessageSpec
}

// ErrorMessageSpec documents one diagnostic a check can produce, for
// `--errorlist`-style output.
type ErrorMessageSpec struct {
	ID       string
	Severity settings.Severity
	Message  string
}

// Finalizer is the capability used by cross-file checks (most notably
// unused-function analysis): a check that accumulates state across every
// file in a run and only has something to report once the whole run is
// done. The orchestrator calls Finalize once, after the last file's
// RunOnSimplified call, and is itself responsible for serializing that
// call across workers (spec.md §5).
type Finalizer interface {
	Finalize(logger diag.Logger)
}

// Registry holds an ordered, append-only list of checks. Order matters only
// for diagnostic emission order on ties; checks never interact with each
// other's state.
type Registry struct {
	checks []Check
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends one or more checks to the registry.
func (r *Registry) Register(checks ...Check) *Registry {
	r.checks = append(r.checks, checks...)
	return r
}

// All returns every registered check, in registration order.
func (r *Registry) All() []Check {
	return r.checks
}

// RunAll dispatches every registered check's RunOnSimplified (and
// RunOnRaw, where implemented) over one (file, configuration)'s token
// list, per spec.md §4.I's "orchestrator enumerates the list for every
// tokenization". simplified is the canonicalized stream every check
// normally reads; raw, if non-nil, is the pre-simplification stream for
// the few checks that implement RawRunner.
func (r *Registry) RunAll(simplified, raw *token.List, ctx *Context, logger diag.Logger) {
	for _, c := range r.checks {
		if ctx.Settings.ShouldTerminate() {
			return
		}
		c.RunOnSimplified(simplified, ctx, logger)
		if rr, ok := c.(RawRunner); ok && raw != nil {
			rr.RunOnRaw(raw, ctx, logger)
		}
	}
}

// FinalizeAll calls Finalize on every registered check that implements
// Finalizer, once the entire run (every file, every configuration) has
// completed.
func (r *Registry) FinalizeAll(logger diag.Logger) {
	for _, c := range r.checks {
		if f, ok := c.(Finalizer); ok {
			f.Finalize(logger)
		}
	}
}
