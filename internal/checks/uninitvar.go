package checks

import (
	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/execpath"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// UninitializedVariableCheck walks every function body looking for a scalar
// local whose first use on some path precedes any store to it, per spec.md
// §4.H.
type UninitializedVariableCheck struct{}

// Name implements check.Check.
func (UninitializedVariableCheck) Name() string { return "uninitvar" }

// RunOnSimplified implements check.Check.
func (c UninitializedVariableCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	for _, fb := range FindFunctionBodies(list) {
		engine := execpath.New(ctx.Settings)
		st := newUninitState(ctx.File, logger)
		engine.Walk(fb.Open.Next(), fb.Close, st, logger)
	}
}

type uninitState struct {
	file          string
	logger        diag.Logger
	uninitialized map[int]int // varID -> declaration line
}

func newUninitState(file string, logger diag.Logger) *uninitState {
	return &uninitState{file: file, logger: logger, uninitialized: make(map[int]int)}
}

// Clone implements execpath.State.
func (s *uninitState) Clone() execpath.State {
	cp := newUninitState(s.file, s.logger)
	for k, v := range s.uninitialized {
		cp.uninitialized[k] = v
	}
	return cp
}

// Parse implements execpath.State.
func (s *uninitState) Parse(cur *token.Token) (execpath.State, bool) {
	if cur.VarID == 0 {
		return s, true
	}

	if isUninitializedDeclSite(cur) {
		s.uninitialized[cur.VarID] = cur.Line
		return s, true
	}

	line, tracked := s.uninitialized[cur.VarID]
	if !tracked {
		return s, true
	}

	if isStoreTo(cur) {
		delete(s.uninitialized, cur.VarID)
		return s, true
	}

	// Any other use while still tracked as uninitialized is a read before a
	// write on this path.
	s.logger.Report(diag.ErrorMessage{
		Severity:  settings.SeverityError,
		ID:        "uninitvar",
		Message:   "Uninitialized variable: " + cur.Lexeme,
		Locations: []diag.Location{{File: s.file, Line: line}},
	})
	delete(s.uninitialized, cur.VarID)
	return s, true
}

// Merge implements execpath.State: a variable stays flagged as
// uninitialized after the join unless both arms initialized it.
func (s *uninitState) Merge(other execpath.State) execpath.State {
	o, ok := other.(*uninitState)
	if !ok {
		return s
	}
	merged := newUninitState(s.file, s.logger)
	for k, v := range s.uninitialized {
		merged.uninitialized[k] = v
	}
	for k, v := range o.uninitialized {
		if _, already := merged.uninitialized[k]; !already {
			merged.uninitialized[k] = v
		}
	}
	return merged
}

// Bailout implements execpath.State. Nothing pending: every finding is
// reported immediately at first use.
func (s *uninitState) Bailout(diag.Logger) {}

// Dominates implements execpath.State.
func (s *uninitState) Dominates(other execpath.State) bool {
	o, ok := other.(*uninitState)
	if !ok {
		return false
	}
	for k := range o.uninitialized {
		if _, present := s.uninitialized[k]; !present {
			return false
		}
	}
	return true
}

// isUninitializedDeclSite reports whether cur is a variable declared without
// an initializer: preceded by a type name and followed directly by `;`.
func isUninitializedDeclSite(cur *token.Token) bool {
	prev := cur.Prev()
	if prev == nil || !(prev.IsStandardType || prev.Kind == token.KindTypeName) {
		return false
	}
	next := cur.Next()
	return next != nil && next.Is(";")
}

// isStoreTo reports whether cur is being assigned to: followed by `=` (not
// `==`), or by a compound-assignment/increment operator, or appearing as the
// operand of `&` (address taken, which this check treats conservatively as
// "no longer purely uninitialized").
func isStoreTo(cur *token.Token) bool {
	next := cur.Next()
	if next == nil {
		return false
	}
	if next.Is("=") {
		after := next.Next()
		return after == nil || !after.Is("=")
	}
	if next.IsOneOf("+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", "++", "--") {
		return true
	}
	prev := cur.Prev()
	return prev != nil && prev.Is("&")
}
