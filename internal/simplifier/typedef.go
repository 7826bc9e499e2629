package simplifier

import "github.com/cppscan/cppscan/pkg/token"

// TypedefPass implements spec.md §4.D phase 3: for each `typedef T N;` at
// file or namespace scope, every subsequent use of N as a type is replaced
// by a fresh copy of T's token sequence. Shadowing in an inner ({}) scope
// is honored by keeping one map of typedef names per nesting depth, chained
// to its parent so an inner lookup that misses falls through to an outer
// definition.
type TypedefPass struct{}

// Name implements Pass.
func (TypedefPass) Name() string { return "typedef" }

type typedefScope struct {
	names  map[string][]templateTok
	parent *typedefScope
}

// templateTok is a lightweight, link-free snapshot of one token in a
// typedef's replacement sequence; Run clones fresh *token.Token values from
// it at each substitution site so no two substitutions ever alias the same
// token, preserving the data model's "tokens are owned by exactly one
// List at a time" rule.
type templateTok struct {
	lexeme string
	kind   token.Kind
	flags  token.Token
}

func (s *typedefScope) lookup(name string) ([]templateTok, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if toks, ok := sc.names[name]; ok {
			return toks, true
		}
	}
	return nil, false
}

// Run implements Pass.
func (TypedefPass) Run(list *token.List, ctx *Context) error {
	scope := &typedefScope{names: map[string][]templateTok{}}

	t := list.Front()
	for t != nil {
		switch {
		case t.Is("{"):
			scope = &typedefScope{names: map[string][]templateTok{}, parent: scope}
			t = t.Next()

		case t.Is("}"):
			if scope.parent != nil {
				scope = scope.parent
			}
			t = t.Next()

		case t.Is("typedef"):
			next := consumeTypedef(list, scope, t)
			t = next

		default:
			if toks, ok := scope.lookup(t.Lexeme); ok && t.Kind != token.KindKeyword {
				t = substitute(list, t, toks)
			} else {
				t = t.Next()
			}
		}
	}
	return nil
}

// consumeTypedef parses `typedef <T...> <N> ;` starting at the `typedef`
// keyword, records scope[N] = T, removes the declaration from the list, and
// returns the token to resume scanning from.
func consumeTypedef(list *token.List, scope *typedefScope, kw *token.Token) *token.Token {
	semi := kw.Next()
	for semi != nil && !semi.Is(";") {
		semi = semi.Next()
	}
	if semi == nil {
		return kw.Next()
	}

	var body []*token.Token
	for c := kw.Next(); c != nil && c != semi; c = c.Next() {
		body = append(body, c)
	}

	name := lastIdent(body)
	after := semi.Next()
	if name != "" {
		typeTokens := body
		if len(body) > 0 && body[len(body)-1].Lexeme == name {
			typeTokens = body[:len(body)-1]
		}
		scope.names[name] = snapshot(typeTokens)
	}

	list.DeleteRange(kw, semi)
	return after
}

func lastIdent(toks []*token.Token) string {
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Kind == token.KindIdent || toks[i].Kind == token.KindTypeName {
			return toks[i].Lexeme
		}
	}
	return ""
}

func snapshot(toks []*token.Token) []templateTok {
	out := make([]templateTok, len(toks))
	for i, tk := range toks {
		out[i] = templateTok{lexeme: tk.Lexeme, kind: tk.Kind, flags: *tk}
	}
	return out
}

// substitute replaces the single token at with fresh clones of toks,
// returning the token to resume scanning from (the first clone, so a
// typedef-to-typedef chain re-resolves on the same pass).
func substitute(list *token.List, at *token.Token, toks []templateTok) *token.Token {
	if len(toks) == 0 {
		nxt := at.Next()
		list.Delete(at)
		return nxt
	}
	var first *token.Token
	for _, tt := range toks {
		clone := &token.Token{
			Lexeme:         tt.lexeme,
			Kind:           tt.kind,
			File:           at.File,
			Line:           at.Line,
			IsUnsigned:     tt.flags.IsUnsigned,
			IsLong:         tt.flags.IsLong,
			IsStandardType: tt.flags.IsStandardType,
			IsName:         tt.flags.IsName,
		}
		list.InsertBefore(at, clone)
		if first == nil {
			first = clone
		}
	}
	list.Delete(at)
	return first
}
