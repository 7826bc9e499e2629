package simplifier

import "github.com/cppscan/cppscan/pkg/token"

// LinkPass matches every (, [, { with its closing partner, then -- as a
// second, heuristic pass -- matches < with > for template argument lists,
// per spec.md §4.D phase 2. It is always the first pass in the pipeline:
// every later phase (typedef substitution, template instantiation, sugar
// removal) relies on Link already being populated to know where a
// construct ends.
type LinkPass struct{}

// Name implements Pass.
func (LinkPass) Name() string { return "link" }

// Run implements Pass.
func (LinkPass) Run(list *token.List, ctx *Context) error {
	linkPairs(list, "(", ")")
	linkPairs(list, "[", "]")
	linkPairs(list, "{", "}")
	linkAngleBrackets(list)
	return nil
}

// linkPairs does a single left-to-right stack-based match of open/close,
// the standard bracket-matching algorithm; an unmatched close is ignored
// (left unlinked) and any opens still on the stack at the end are likewise
// left unlinked -- malformed input degrades to "fewer links", never a panic,
// per spec.md §4.H's safety contract.
func linkPairs(list *token.List, open, close string) {
	var stack []*token.Token
	for t := list.Front(); t != nil; t = t.Next() {
		switch t.Lexeme {
		case open:
			stack = append(stack, t)
		case close:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			token.Link(top, t)
		}
	}
}

// linkAngleBrackets links '<' with '>' heuristically: a '<' opens a template
// argument list when the token before it is the `template` keyword or any
// identifier or type name (it does not check against known template names, so
// `a < b` is also treated as an opener). Each '>' (or each half of a '>>')
// closes the most recent open '<' while one is pending; parens and brackets
// between the two are not checked.
func linkAngleBrackets(list *token.List) {
	var stack []*token.Token
	t := list.Front()
	for t != nil {
		next := t.Next()
		switch {
		case t.Is("<") && looksLikeTemplateOpen(t):
			stack = append(stack, t)
		case t.Is(">>") && len(stack) > 0:
			// Split eagerly so each half links to exactly one opener,
			// preserving invariant (1)'s symmetric link requirement; the
			// later sugar-removal pass is then a no-op on any '>>' this
			// phase has already split (idempotent per spec.md §4.D).
			first, second := splitShiftRight(list, t)
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			token.Link(top, first)
			if len(stack) > 0 {
				top2 := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				token.Link(top2, second)
			}
			next = second.Next()
		case t.Is(">") && len(stack) > 0:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			token.Link(top, t)
		}
		t = next
	}
}

// splitShiftRight replaces a single ">>" token with two adjacent ">"
// tokens carrying the same file/line, returning both halves.
func splitShiftRight(list *token.List, t *token.Token) (first, second *token.Token) {
	first = &token.Token{Lexeme: ">", Kind: t.Kind, File: t.File, Line: t.Line}
	second = &token.Token{Lexeme: ">", Kind: t.Kind, File: t.File, Line: t.Line}
	list.InsertBefore(t, first)
	list.InsertBefore(t, second)
	list.Delete(t)
	return first, second
}

func looksLikeTemplateOpen(t *token.Token) bool {
	prev := t.Prev()
	if prev == nil {
		return false
	}
	if prev.Is("template") {
		return true
	}
	return prev.Kind.String() == "ident" || prev.Kind.String() == "type"
}
