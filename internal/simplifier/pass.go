// Package simplifier turns one preprocessor configuration's raw token list
// into the canonicalized form checkers operate on: brackets linked, typedefs
// resolved, templates instantiated, syntactic sugar collapsed, constants
// folded, and variables assigned dense scope-unique ids.
package simplifier

import (
	"fmt"

	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// Pass is one phase of the simplification pipeline. A pass may mutate the
// list in place (insert/delete/relink tokens) but must never panic through
// its own boundary -- failures are recorded on ctx as debug diagnostics and
// the pass simply stops early, leaving a best-effort result, matching
// spec.md §4.D's failure semantics.
type Pass interface {
	Name() string
	Run(list *token.List, ctx *Context) error
}

// PassManager runs a fixed sequence of passes, the same shape as the
// teacher's semantic.PassManager, generalized from an AST-annotation
// pipeline to a token-list-rewriting one.
type PassManager struct {
	passes []Pass
}

// NewPassManager returns a manager that will run passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// RunAll executes every registered pass in order. A pass's own internal
// errors never abort the pipeline; only a programmer error (nil list) does.
func (pm *PassManager) RunAll(list *token.List, ctx *Context) {
	for _, p := range pm.passes {
		if err := p.Run(list, ctx); err != nil {
			ctx.Debugf("pass %q failed: %v", p.Name(), err)
		}
	}
}

// Context carries the shared state passes read and write: the active
// platform/standard settings, a running sequence for variable ids, and the
// diagnostic sink every phase reports into instead of returning an error for
// anything short of a true programming bug.
type Context struct {
	Settings *settings.Settings
	FileID   int

	Diagnostics []Diagnostic

	nextVarID int
}

// Diagnostic is a debug-level note about a best-effort simplification
// decision (an unresolved template, a bailout, a phase that gave up). These
// never block checking. They stay on Context.Diagnostics; the orchestrator
// does not report them.
type Diagnostic struct {
	Phase   string
	Message string
	Line    int
}

// Debugf records a diagnostic for the currently running pass.
func (c *Context) Debugf(format string, args ...any) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Message: fmt.Sprintf(format, args...)})
}

// NewVarID returns the next dense variable id, starting at 1 (0 means
// "not a variable" on an un-annotated token).
func (c *Context) NewVarID() int {
	c.nextVarID++
	return c.nextVarID
}
