package simplifier

import "github.com/cppscan/cppscan/pkg/token"

// VarIDPass implements spec.md §4.D phase 7: walk scopes and assign a dense
// integer id to every declared local variable, annotating every use token
// with that id (pattern matcher's %var% class relies on this). Shadowing in
// an inner scope gets a distinct id, per the data model's invariant 2
// ("variable ids within a scope are pairwise distinct") and spec.md §4.D's
// shadowing note.
type VarIDPass struct{}

// Name implements Pass.
func (VarIDPass) Name() string { return "varid" }

type varScope struct {
	ids    map[string]int
	parent *varScope
}

func (s *varScope) lookup(name string) (int, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if id, ok := sc.ids[name]; ok {
			return id, true
		}
	}
	return 0, false
}

// Run implements Pass.
func (VarIDPass) Run(list *token.List, ctx *Context) error {
	scope := &varScope{ids: map[string]int{}}

	for t := list.Front(); t != nil; t = t.Next() {
		switch {
		case t.Is("{"):
			scope = &varScope{ids: map[string]int{}, parent: scope}

		case t.Is("}"):
			if scope.parent != nil {
				scope = scope.parent
			}

		case t.Kind == token.KindIdent:
			if isDeclarationSite(t) {
				id := ctx.NewVarID()
				t.VarID = id
				scope.ids[t.Lexeme] = id
			} else if id, ok := scope.lookup(t.Lexeme); ok {
				t.VarID = id
			}
		}
	}
	return nil
}

// isDeclarationSite reports whether t is the declared name in
// `<type> name (;|=|,|\[|\))`, the shapes the simplifier's earlier phases
// (typedef resolution, sugar's declaration split) normalize every
// declaration down to.
func isDeclarationSite(t *token.Token) bool {
	prev := t.Prev()
	for prev != nil && prev.IsOneOf("*", "&") {
		prev = prev.Prev()
	}
	if prev == nil || !(prev.IsStandardType || prev.Kind == token.KindTypeName) {
		return false
	}
	next := t.Next()
	if next == nil {
		return false
	}
	return next.IsOneOf(";", "=", ",", "[", ")")
}
