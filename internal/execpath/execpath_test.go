package execpath

import (
	"testing"

	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/pkg/token"
)

// recordingState appends every lexeme it sees to a shared log and fires a
// "bailout" marker on Bailout, enough to assert branch-then-merge shape
// without needing a real checker's semantics.
type recordingState struct {
	log *[]string
}

func (s *recordingState) Parse(cur *token.Token) (State, bool) {
	*s.log = append(*s.log, cur.Lexeme)
	return s, true
}

func (s *recordingState) Clone() State {
	return &recordingState{log: s.log}
}

func (s *recordingState) Merge(other State) State {
	return s
}

func (s *recordingState) Bailout(logger diag.Logger) {
	*s.log = append(*s.log, "<bailout>")
}

func (s *recordingState) Dominates(other State) bool {
	return false
}

type noTerminate struct{}

func (noTerminate) ShouldTerminate() bool { return false }

func buildList(lexemes ...string) (*token.List, []*token.Token) {
	list := token.New()
	toks := make([]*token.Token, len(lexemes))
	for i, lx := range lexemes {
		t := &token.Token{Lexeme: lx, Line: i + 1}
		list.PushBack(t)
		toks[i] = t
	}
	return list, toks
}

func link(a, b *token.Token) {
	token.Link(a, b)
}

func TestWalkLinearPath(t *testing.T) {
	_, toks := buildList("x", "=", "1", ";", "return", ";")
	var log []string
	e := New(noTerminate{})
	e.Walk(toks[0], nil, &recordingState{log: &log}, nil)

	want := []string{"x", "=", "1", ";", "<bailout>"}
	if !equal(log, want) {
		t.Fatalf("got %v, want %v", log, want)
	}
}

func TestWalkExploresBothBranches(t *testing.T) {
	// if ( cond ) { a ; } else { b ; } tail ;
	lexemes := []string{"if", "(", "cond", ")", "{", "a", ";", "}", "else", "{", "b", ";", "}", "tail", ";"}
	_, toks := buildList(lexemes...)
	link(toks[1], toks[3])  // ( )
	link(toks[4], toks[7])  // { }
	link(toks[9], toks[12]) // { }

	var log []string
	e := New(noTerminate{})
	e.Walk(toks[0], nil, &recordingState{log: &log}, nil)

	hasA, hasB, hasTail := false, false, false
	for _, l := range log {
		switch l {
		case "a":
			hasA = true
		case "b":
			hasB = true
		case "tail":
			hasTail = true
		}
	}
	if !hasA || !hasB {
		t.Fatalf("expected both branches explored, got %v", log)
	}
	if !hasTail {
		t.Fatalf("expected walk to resume after the if/else, got %v", log)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
