// Package execpath implements the generic forward symbolic walker spec.md
// §4.G calls the "execution-path engine": a check-agnostic traversal of one
// function body that clones a per-check State at every branch, merges
// clones back at the join, and fires the state's Bailout on every path that
// reaches a function return. The flow-sensitive checks (memory leaks,
// uninitialized variables) each implement State; they never write their own
// traversal loop.
package execpath

import (
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/pkg/token"
)

// State is a capability interface implemented once per stateful checker,
// replacing the virtual copy()/parse() dispatch spec.md §9 describes in the
// source with an explicit Go interface (also per §9's design note).
type State interface {
	// Parse is called once per token on the path. It returns the state to
	// continue the path with (usually the receiver, mutated or not) and
	// true, or (nil, false) to prune this path entirely -- e.g. because the
	// tracked object has definitively gone out of scope clean.
	Parse(cur *token.Token) (State, bool)

	// Clone returns an independent copy, taken at every branch point so the
	// two arms of an if/while/for can diverge without aliasing.
	Clone() State

	// Merge folds other (the sibling arm's end state) into the receiver at
	// a branch join point, returning the merged state the walk continues
	// with.
	Merge(other State) State

	// Bailout fires any pending end-of-path diagnostics (e.g. "allocated
	// but never freed on this path") when a path reaches a function return
	// or falls off the end of the body.
	Bailout(logger diag.Logger)

	// Dominates reports whether the receiver (a previously recorded state
	// at a loop head) already covers other -- i.e. another pass around the
	// loop established no strictly new facts. The engine uses this for
	// cycle detection: a dominated back-edge terminates its path instead of
	// looping forever.
	Dominates(other State) bool
}

// branchKeywords are the tokens the engine treats as introducing two
// divergent arms it must explore independently.
var branchKeywords = map[string]bool{
	"if": true, "while": true, "for": true, "switch": true,
}

const maxVisitedStates = 10000

// Engine walks one function body (the token range [start, end), where end
// is the function's closing brace) forward, recursing into each branch arm
// with its own cloned state. Settings' terminate flag and the 10000-state
// bound from spec.md §4.G are both enforced here, not by individual checks.
type Engine struct {
	st      terminator
	visited int
	loopHeads map[*token.Token][]State
	bodyEnd   *token.Token // the end passed to Walk; reaching it fires Bailout
}

// terminator is the subset of *settings.Settings the engine needs, kept
// narrow so tests can supply a stub without depending on internal/settings.
type terminator interface {
	ShouldTerminate() bool
}

// New returns an Engine that cooperatively cancels via st.
func New(st terminator) *Engine {
	return &Engine{st: st, loopHeads: make(map[*token.Token][]State)}
}

// Walk explores every path from start (inclusive) to end (exclusive,
// typically a function's closing brace) starting from initial, reporting
// through logger. It returns early, silently, if the visited-state bound or
// the terminate flag fires -- both are advisory best-effort limits per
// spec.md §5 and §4.G.
func (e *Engine) Walk(start, end *token.Token, initial State, logger diag.Logger) {
	e.bodyEnd = end
	e.walk(start, end, initial, logger)
}

func (e *Engine) walk(cur, end *token.Token, st State, logger diag.Logger) {
	for {
		if e.st != nil && e.st.ShouldTerminate() {
			return
		}
		e.visited++
		if e.visited > maxVisitedStates {
			return
		}
		if cur == nil || cur == end || st == nil {
			// Only the end of the whole body is an end of path; the end of a
			// branch arm hands its state back to walkBranch for merging.
			if st != nil && (cur == nil || cur == e.bodyEnd) {
				st.Bailout(logger)
			}
			return
		}

		if cur.Is("return") {
			// Feed the returned expression through Parse before bailing
			// out, so a state can recognize "return p" as transferring
			// ownership of p out of the function instead of leaking it.
			cur = cur.Next()
			for cur != nil && !cur.Is(";") {
				newSt, ok := st.Parse(cur)
				if !ok {
					return
				}
				st = newSt
				cur = cur.Next()
			}
			st.Bailout(logger)
			return
		}

		if branchKeywords[cur.Lexeme] {
			next := e.walkBranch(cur, end, st, logger)
			if next == nil {
				return
			}
			cur, st = next.cursor, next.state
			continue
		}

		newSt, ok := st.Parse(cur)
		if !ok {
			return
		}
		st = newSt
		cur = cur.Next()
	}
}

type branchResult struct {
	cursor *token.Token
	state  State
}

// walkBranch handles one if/while/for/switch construct: it locates the
// condition's parens and the body's braces via their cached Link, explores
// the "taken" and "not taken" arms independently (heuristically -- the
// engine does not evaluate the condition, it simply explores both), merges
// their end states, and returns the point to resume linear walking from
// (the token just past the whole construct).
func (e *Engine) walkBranch(kw, end *token.Token, st State, logger diag.Logger) *branchResult {
	openParen := kw.Next()
	if openParen == nil || !openParen.Is("(") || openParen.Link == nil {
		// Malformed or already-simplified-away condition; treat as a no-op
		// so the walk degrades to silence rather than panicking, per
		// spec.md §4.H's safety contract.
		return &branchResult{cursor: kw.Next(), state: st}
	}
	closeParen := openParen.Link

	bodyStart := closeParen.Next()
	bodyEnd, after := bodyRange(bodyStart)
	if bodyEnd == nil {
		return &branchResult{cursor: after, state: st}
	}

	if e.dominatedByLoopHead(kw, st) {
		return &branchResult{cursor: after, state: st}
	}

	taken := st.Clone()
	e.walk(bodyStart, bodyEnd, taken, logger)

	notTaken := st.Clone()

	elseStart, elseEnd, elseAfter := elseRange(after)
	after = elseAfter
	if elseStart != nil {
		e.walk(elseStart, elseEnd, notTaken, logger)
	}

	merged := taken.Merge(notTaken)
	return &branchResult{cursor: after, state: merged}
}

// bodyRange returns the [start, end) range of a braced or single-statement
// body beginning at start, plus the token to resume from after it.
func bodyRange(start *token.Token) (end, after *token.Token) {
	if start == nil {
		return nil, nil
	}
	if start.Is("{") && start.Link != nil {
		return start.Link, start.Link.Next()
	}
	// Single statement body: walk to the next top-level ';'.
	cur := start
	for cur != nil && !cur.Is(";") {
		if cur.IsOpenBracket() && cur.Link != nil {
			cur = cur.Link
		}
		cur = cur.Next()
	}
	if cur == nil {
		return nil, nil
	}
	return cur, cur.Next()
}

func elseRange(after *token.Token) (start, end, resume *token.Token) {
	if after == nil || !after.Is("else") {
		return nil, nil, after
	}
	bodyStart := after.Next()
	bodyEnd, resume := bodyRange(bodyStart)
	return bodyStart, bodyEnd, resume
}

// dominatedByLoopHead implements spec.md §4.G's cycle detection: compare
// the incoming state against every state previously recorded at this exact
// token (a loop head revisited on a back-edge); if any recorded state
// dominates the incoming one (no strictly new facts), the back-edge is
// pruned instead of walked again. Non-loop branches (if/switch) are only
// ever visited once per call so this is a no-op for them in practice, but
// applying it uniformly keeps the bookkeeping in one place.
func (e *Engine) dominatedByLoopHead(head *token.Token, incoming State) bool {
	recorded := e.loopHeads[head]
	for _, r := range recorded {
		if r.Dominates(incoming) {
			return true
		}
	}
	e.loopHeads[head] = append(recorded, incoming.Clone())
	return false
}
