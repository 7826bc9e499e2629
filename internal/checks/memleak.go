package checks

import (
	"fmt"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/execpath"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// callAllocators maps a call-style allocation function to its matching
// release function, per spec.md §4.H's memory-leak contract.
var callAllocators = map[string]string{
	"malloc": "free", "calloc": "free", "strdup": "free", "fopen": "fclose",
}

// MemoryLeakCheck walks every function body with the execution-path engine,
// tracking variables bound to an allocation (malloc-family call or `new`)
// that no path releases (a matching release call or `delete`) or returns
// before reaching its end. Storing the pointer somewhere else (a global, a
// struct field, an out-parameter) does not count as a transfer.
type MemoryLeakCheck struct{}

// Name implements check.Check.
func (MemoryLeakCheck) Name() string { return "memleak" }

// RunOnSimplified implements check.Check.
func (c MemoryLeakCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	for _, fb := range FindFunctionBodies(list) {
		engine := execpath.New(ctx.Settings)
		st := newLeakState(ctx.File, logger)
		engine.Walk(fb.Open.Next(), fb.Close, st, logger)
	}
}

type allocKind int

const (
	allocScalarNew allocKind = iota
	allocArrayNew
	allocCall
)

type pendingAlloc struct {
	line int
	kind allocKind
	call string // the call-style allocator's name, when kind == allocCall
}

type leakState struct {
	file    string
	logger  diag.Logger
	pending map[int]pendingAlloc
}

func newLeakState(file string, logger diag.Logger) *leakState {
	return &leakState{file: file, logger: logger, pending: make(map[int]pendingAlloc)}
}

// Clone implements execpath.State.
func (s *leakState) Clone() execpath.State {
	cp := newLeakState(s.file, s.logger)
	for k, v := range s.pending {
		cp.pending[k] = v
	}
	return cp
}

// Parse implements execpath.State.
func (s *leakState) Parse(cur *token.Token) (execpath.State, bool) {
	if cur.VarID != 0 {
		if _, tracked := s.pending[cur.VarID]; tracked {
			if cur.Prev() != nil && cur.Prev().Is("return") {
				delete(s.pending, cur.VarID) // ownership transferred to the caller
				return s, true
			}
			if released, mismatched := releaseKind(cur); released {
				if mismatched {
					s.logger.Report(diag.ErrorMessage{
						Severity:  settings.SeverityError,
						ID:        "mismatchAllocDealloc",
						Message:   fmt.Sprintf("Mismatching allocation and deallocation for variable %q", cur.Lexeme),
						Locations: []diag.Location{{File: s.file, Line: cur.Line}},
					})
				}
				delete(s.pending, cur.VarID)
				return s, true
			}
		}
		if alloc, ok := detectAllocation(cur); ok {
			s.pending[cur.VarID] = alloc
		}
	}
	return s, true
}

// Merge implements execpath.State: a variable is only cleanly released if
// both arms released it.
func (s *leakState) Merge(other execpath.State) execpath.State {
	o, ok := other.(*leakState)
	if !ok {
		return s
	}
	merged := newLeakState(s.file, s.logger)
	for k, v := range s.pending {
		merged.pending[k] = v
	}
	for k, v := range o.pending {
		if _, already := merged.pending[k]; !already {
			merged.pending[k] = v
		}
	}
	return merged
}

// Bailout implements execpath.State.
func (s *leakState) Bailout(logger diag.Logger) {
	for _, a := range s.pending {
		logger.Report(diag.ErrorMessage{
			Severity:  settings.SeverityError,
			ID:        "memleak",
			Message:   "Memory leak: allocated resource is never released on this path",
			Locations: []diag.Location{{File: s.file, Line: a.line}},
		})
	}
}

// Dominates implements execpath.State: a recorded state dominates an
// incoming one if it already tracks every variable the incoming state does
// (so another trip around the loop established no new pending allocation).
func (s *leakState) Dominates(other execpath.State) bool {
	o, ok := other.(*leakState)
	if !ok {
		return false
	}
	for k := range o.pending {
		if _, present := s.pending[k]; !present {
			return false
		}
	}
	return true
}

// detectAllocation recognizes `%var% = new ...` and `%var% = <allocator>(`
// at the declaration/assignment site.
func detectAllocation(lhs *token.Token) (pendingAlloc, bool) {
	eq := lhs.Next()
	if eq == nil || !eq.Is("=") {
		return pendingAlloc{}, false
	}
	rhs := eq.Next()
	if rhs == nil {
		return pendingAlloc{}, false
	}
	if rhs.Is("new") {
		kind := allocScalarNew
		cur := rhs.Next()
		for cur != nil && cur.Kind != token.KindOperator {
			cur = cur.Next()
		}
		if cur != nil && cur.Is("[") {
			kind = allocArrayNew
		}
		return pendingAlloc{line: lhs.Line, kind: kind}, true
	}
	if rhs.Kind == token.KindIdent {
		if _, known := callAllocators[rhs.Lexeme]; known && rhs.Next() != nil && rhs.Next().Is("(") {
			return pendingAlloc{line: lhs.Line, kind: allocCall, call: rhs.Lexeme}, true
		}
	}
	return pendingAlloc{}, false
}

// releaseKind reports whether cur (a use of a tracked variable) is the
// argument of a release call or the operand of `delete`/`delete[]`. Any
// known release function counts, whichever allocator was used, and the
// allocation kind is not consulted, so mismatched is always false: neither
// new/new[] vs delete/delete[] nor a wrong release call is detected.
func releaseKind(cur *token.Token) (released, mismatched bool) {
	prev := cur.Prev()
	if prev == nil {
		return false, false
	}
	if prev.Is("(") {
		callName := prev.Prev()
		if callName != nil && callName.Kind == token.KindIdent {
			for _, dealloc := range callAllocators {
				if callName.Lexeme == dealloc {
					return true, false
				}
			}
		}
		return false, false
	}
	if prev.Is("delete") {
		return true, false
	}
	if prev.Is("]") && prev.Prev() != nil && prev.Prev().Is("[") {
		beforeBrackets := prev.Prev().Prev()
		if beforeBrackets != nil && beforeBrackets.Is("delete") {
			return true, false
		}
	}
	return false, false
}
