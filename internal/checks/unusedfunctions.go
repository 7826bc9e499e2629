package checks

import (
	"fmt"
	"sync"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// UnusedFunctionsCheck is the one cross-file checker spec.md §4.H describes:
// it accumulates the set of defined non-static functions and the set of
// called names across every file in the run, and reports the difference
// (minus main) once, from Finalize. The orchestrator is responsible for
// serializing calls into one instance across its worker pool (spec.md §5);
// the mutex here is the defensive minimum for that contract, not a
// substitute for it.
type UnusedFunctionsCheck struct {
	mu      sync.Mutex
	defined map[string]diag.Location
	called  map[string]bool
}

// NewUnusedFunctionsCheck returns a ready-to-register checker instance. One
// instance must be shared across every file in a run -- registering a fresh
// instance per file would make every function look unused.
func NewUnusedFunctionsCheck() *UnusedFunctionsCheck {
	return &UnusedFunctionsCheck{
		defined: make(map[string]diag.Location),
		called:  make(map[string]bool),
	}
}

// Name implements check.Check.
func (c *UnusedFunctionsCheck) Name() string { return "unusedFunction" }

// RunOnSimplified implements check.Check.
func (c *UnusedFunctionsCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, fb := range FindFunctionBodies(list) {
		name := functionNameOf(fb.Open)
		if name == nil || isStaticDefinition(fb.Open) {
			continue
		}
		if _, known := c.defined[name.Lexeme]; !known {
			c.defined[name.Lexeme] = diag.Location{File: ctx.File, Line: name.Line}
		}
	}

	for t := list.Front(); t != nil; t = t.Next() {
		if t.Kind != token.KindIdent {
			continue
		}
		open := t.Next()
		if open == nil || !open.Is("(") || open.Link == nil {
			continue
		}
		if isFunctionHeader(open) {
			continue // this is the definition's own name, not a call
		}
		c.called[t.Lexeme] = true
	}
}

// Finalize implements check.Finalizer.
func (c *UnusedFunctionsCheck) Finalize(logger diag.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, loc := range c.defined {
		if name == "main" || c.called[name] {
			continue
		}
		logger.Report(diag.ErrorMessage{
			Severity:  settings.SeverityUnusedFunc,
			ID:        "unusedFunction",
			Message:   fmt.Sprintf("The function %q is never used.", name),
			Locations: []diag.Location{loc},
		})
	}
}

func isFunctionHeader(open *token.Token) bool {
	return open.Link != nil && open.Link.Next() != nil && open.Link.Next().Is("{")
}

func isStaticDefinition(bodyOpen *token.Token) bool {
	for p := bodyOpen.Prev(); p != nil; p = p.Prev() {
		if p.Is("static") {
			return true
		}
		if p.IsOneOf(";", "}", "{") {
			return false
		}
	}
	return false
}
