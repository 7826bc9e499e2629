package simplifier

import "github.com/cppscan/cppscan/pkg/token"

// SugarPass implements spec.md §4.D phase 5: split combined declarations
// (`int a, b;` -> `int a; int b;`), rewrite `else if` as nested
// `else { if ... }`, and (a no-op here, since LinkPass already split any
// `>>` it needed to link) collapse template-argument `>>`. Both
// transformations are conservative: anything that doesn't cleanly match the
// simple shape they look for is left untouched rather than guessed at.
type SugarPass struct{}

// Name implements Pass.
func (SugarPass) Name() string { return "sugar" }

// Run implements Pass.
func (SugarPass) Run(list *token.List, ctx *Context) error {
	splitCombinedDeclarations(list)
	rewriteElseIf(list)
	return nil
}

// splitCombinedDeclarations scans every statement (a run of tokens ending
// in a top-level ';') and, when it cleanly matches `type ident (, ident)+`
// with nothing else in between, rewrites it as one declaration per
// identifier. Anything with an initializer, pointer star, array suffix, or
// other punctuation is left alone -- the simplifier degrades to "didn't
// simplify this one" rather than mis-rewriting it.
func splitCombinedDeclarations(list *token.List) {
	t := list.Front()
	for t != nil {
		next := t.Next()
		if t.Is(";") {
			next = trySplitDeclaration(list, t)
		}
		t = next
	}
}

func trySplitDeclaration(list *token.List, semi *token.Token) *token.Token {
	start := semi.Prev()
	for start != nil && !start.IsOneOf(";", "{", "}") {
		start = start.Prev()
	}
	var first *token.Token
	if start == nil {
		first = list.Front()
	} else {
		first = start.Next()
	}
	if first == nil || first == semi {
		return semi.Next()
	}

	if !(first.IsStandardType || first.Kind == token.KindTypeName) {
		return semi.Next()
	}

	typeEnd := first
	for typeEnd.Next() != nil && typeEnd.Next() != semi && typeEnd.Next().IsStandardType {
		typeEnd = typeEnd.Next()
	}

	var idents []*token.Token
	for c := typeEnd.Next(); c != nil && c != semi; c = c.Next() {
		switch {
		case c.Kind == token.KindIdent:
			idents = append(idents, c)
		case c.Is(","):
		default:
			return semi.Next() // anything else (init, *, [, =) -- leave alone
		}
	}
	if len(idents) < 2 {
		return semi.Next()
	}

	var typeSnap []templateTok
	for c := first; ; c = c.Next() {
		typeSnap = append(typeSnap, templateTok{lexeme: c.Lexeme, kind: c.Kind, flags: *c})
		if c == typeEnd {
			break
		}
	}

	cursor := semi
	var firstNew *token.Token
	for _, id := range idents {
		for _, ts := range typeSnap {
			nt := &token.Token{
				Lexeme: ts.lexeme, Kind: ts.kind, File: id.File, Line: id.Line,
				IsUnsigned: ts.flags.IsUnsigned, IsLong: ts.flags.IsLong, IsStandardType: ts.flags.IsStandardType,
			}
			list.InsertAfter(cursor, nt)
			cursor = nt
			if firstNew == nil {
				firstNew = nt
			}
		}
		idTok := &token.Token{Lexeme: id.Lexeme, Kind: token.KindIdent, File: id.File, Line: id.Line}
		list.InsertAfter(cursor, idTok)
		cursor = idTok

		semiTok := &token.Token{Lexeme: ";", Kind: token.KindOperator, File: id.File, Line: id.Line}
		list.InsertAfter(cursor, semiTok)
		cursor = semiTok
	}

	resume := cursor.Next()
	list.DeleteRange(first, semi)
	return resume
}

// rewriteElseIf turns every `else if` into `else { if ... }`, wrapping the
// entire remainder of the if/else-if/else chain in braces. Processing the
// list front-to-back and re-discovering inner `else if` occurrences inside
// the newly wrapped region (the insertion doesn't remove or reorder any
// existing token) naturally produces full nesting: each wrap's closing
// brace lands immediately before the previous wrap's, which is exactly
// where it needs to be.
func rewriteElseIf(list *token.List) {
	for t := list.Front(); t != nil; t = t.Next() {
		if !t.Is("else") {
			continue
		}
		ifTok := t.Next()
		if ifTok == nil || !ifTok.Is("if") {
			continue
		}
		end := ifChainEnd(ifTok)
		if end == nil {
			continue
		}
		open := &token.Token{Lexeme: "{", Kind: token.KindOperator, File: t.File, Line: t.Line}
		closeT := &token.Token{Lexeme: "}", Kind: token.KindOperator, File: t.File, Line: t.Line}
		list.InsertAfter(t, open)
		list.InsertAfter(end, closeT)
		token.Link(open, closeT)
	}
}

// statementEnd returns the last token of the statement beginning at start:
// its matching '}' if start is a brace block, or the next top-level ';'.
func statementEnd(start *token.Token) *token.Token {
	if start == nil {
		return nil
	}
	if start.Is("{") && start.Link != nil {
		return start.Link
	}
	for c := start; c != nil; c = c.Next() {
		if c.IsOpenBracket() && c.Link != nil {
			c = c.Link
			continue
		}
		if c.Is(";") {
			return c
		}
	}
	return nil
}

func bodyEndForIf(ifTok *token.Token) *token.Token {
	openParen := ifTok.Next()
	if openParen == nil || !openParen.Is("(") || openParen.Link == nil {
		return nil
	}
	return statementEnd(openParen.Link.Next())
}

// ifChainEnd returns the last token of the entire if/else-if/else chain
// rooted at ifTok.
func ifChainEnd(ifTok *token.Token) *token.Token {
	end := bodyEndForIf(ifTok)
	for end != nil && end.Next() != nil && end.Next().Is("else") {
		elseTok := end.Next()
		next := elseTok.Next()
		if next != nil && next.Is("if") {
			nEnd := bodyEndForIf(next)
			if nEnd == nil {
				break
			}
			end = nEnd
			continue
		}
		if e := statementEnd(next); e != nil {
			end = e
		}
		break
	}
	return end
}
