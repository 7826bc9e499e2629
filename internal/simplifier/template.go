package simplifier

import (
	"strings"

	"github.com/cppscan/cppscan/pkg/token"
)

// TemplatePass implements spec.md §4.D phase 4: for every `template<...>
// class|struct` and every instantiation point found elsewhere in the stream,
// it emits a new, substituted copy of the body and appends it to the token
// list, then rewrites the instantiation site to name the new, mangled symbol
// so later phases see an ordinary (already-monomorphized) declaration.
// Function templates are not collected. Only the instantiation sites present
// when the pass starts are handled: emitted bodies are not rescanned, so an
// instantiation inside a template body stays as written. At most
// maxTemplateDepth sites are rewritten per run; any beyond that are left
// untouched.
type TemplatePass struct{}

// Name implements Pass.
func (TemplatePass) Name() string { return "template" }

const maxTemplateDepth = 100

type templateDef struct {
	name   string
	params []string
	body   []templateTok // the token range strictly inside the class/struct's braces, or a function's braces
}

// Run implements Pass.
func (TemplatePass) Run(list *token.List, ctx *Context) error {
	defs := collectTemplateDefs(list)
	if len(defs) == 0 {
		return nil
	}

	seen := map[string]bool{} // mangled names already instantiated, so repeats reuse rather than re-emit
	pending := findInstantiationSites(list, defs)
	depth := 0

	for len(pending) > 0 && depth < maxTemplateDepth {
		depth++
		site := pending[0]
		pending = pending[1:]

		mangled := mangle(site.def.name, site.args)
		if !seen[mangled] {
			seen[mangled] = true
			emitInstantiation(list, site.def, site.args, mangled)
		}
		rewriteSite(list, site, mangled)

		// Re-scan for any new instantiation points the just-rewritten site
		// may have exposed won't happen automatically since the site is
		// now a plain identifier; further sites already present in the
		// original stream were all captured by the initial scan.
	}

	return nil
}

type instantiationSite struct {
	def       *templateDef
	nameTok   *token.Token
	openAngle *token.Token
	closeAngle *token.Token
	args      [][]templateTok
}

// collectTemplateDefs scans for `template < params > class|struct Name {
// ... }` and records each one. The template header and its defining class
// body are left in place in the list (later phases, and a reader debugging
// the analyzer, still see the generic definition); only instantiation sites
// elsewhere are rewritten.
func collectTemplateDefs(list *token.List) []*templateDef {
	var defs []*templateDef
	for t := list.Front(); t != nil; t = t.Next() {
		if !t.Is("template") {
			continue
		}
		lt := t.Next()
		if lt == nil || !lt.Is("<") || lt.Link == nil {
			continue
		}
		gt := lt.Link
		params := paramNames(lt, gt)

		kw := gt.Next()
		if kw == nil || !kw.IsOneOf("class", "struct") {
			continue
		}
		nameTok := kw.Next()
		if nameTok == nil || nameTok.Kind != token.KindIdent {
			continue
		}

		brace := nameTok.Next()
		for brace != nil && !brace.Is("{") {
			if brace.Is(";") {
				brace = nil
				break
			}
			brace = brace.Next()
		}
		if brace == nil || brace.Link == nil {
			continue
		}

		var body []templateTok
		for c := brace.Next(); c != nil && c != brace.Link; c = c.Next() {
			body = append(body, templateTok{lexeme: c.Lexeme, kind: c.Kind, flags: *c})
		}

		defs = append(defs, &templateDef{name: nameTok.Lexeme, params: params, body: body})
	}
	return defs
}

// paramNames extracts the bare formal-parameter identifiers from a
// `<typename T, typename U>` style list, ignoring the `typename`/`class`
// keyword each one is introduced with.
func paramNames(lt, gt *token.Token) []string {
	var names []string
	for c := lt.Next(); c != nil && c != gt; c = c.Next() {
		if c.Kind == token.KindIdent && !c.IsOneOf("typename", "class") {
			names = append(names, c.Lexeme)
		}
	}
	return names
}

// findInstantiationSites scans the whole list for `Name < args >` where
// Name matches a known template definition's name and the angle brackets
// are already linked (by LinkPass's heuristic, since this phase runs after
// it).
func findInstantiationSites(list *token.List, defs []*templateDef) []instantiationSite {
	byName := map[string]*templateDef{}
	for _, d := range defs {
		byName[d.name] = d
	}

	var sites []instantiationSite
	for t := list.Front(); t != nil; t = t.Next() {
		def, ok := byName[t.Lexeme]
		if !ok || t.Kind != token.KindIdent {
			continue
		}
		lt := t.Next()
		if lt == nil || !lt.Is("<") || lt.Link == nil {
			continue
		}
		gt := lt.Link
		args := splitArgs(lt, gt)
		if len(args) == 0 {
			continue
		}
		sites = append(sites, instantiationSite{def: def, nameTok: t, openAngle: lt, closeAngle: gt, args: args})
	}
	return sites
}

// splitArgs splits the token range strictly between lt and gt on top-level
// commas, returning each argument's token snapshot.
func splitArgs(lt, gt *token.Token) [][]templateTok {
	var args [][]templateTok
	var cur []templateTok
	depth := 0
	for c := lt.Next(); c != nil && c != gt; c = c.Next() {
		switch {
		case c.IsOpenBracket():
			depth++
		case c.IsCloseBracket():
			depth--
		}
		if depth == 0 && c.Is(",") {
			args = append(args, cur)
			cur = nil
			continue
		}
		cur = append(cur, templateTok{lexeme: c.Lexeme, kind: c.Kind, flags: *c})
	}
	if len(cur) > 0 {
		args = append(args, cur)
	}
	return args
}

func mangle(name string, args [][]templateTok) string {
	var b strings.Builder
	b.WriteString(name)
	for _, arg := range args {
		b.WriteByte('_')
		for _, a := range arg {
			b.WriteString(a.lexeme)
		}
	}
	return b.String()
}

// emitInstantiation clones def's body with every formal parameter replaced
// by its actual argument's tokens and the template name itself replaced by
// mangled (so a constructor `Stack() {}` inside the body becomes
// `Stack_int() {}`), then appends the clone to the end of list.
func emitInstantiation(list *token.List, def *templateDef, args [][]templateTok, mangled string) {
	subst := map[string][]templateTok{}
	for i, p := range def.params {
		if i < len(args) {
			subst[p] = args[i]
		}
	}
	subst[def.name] = []templateTok{{lexeme: mangled, kind: token.KindIdent}}

	open := &token.Token{Lexeme: "{", Kind: token.KindOperator}
	list.PushBack(open)
	for _, bt := range def.body {
		repl, ok := subst[bt.lexeme]
		if !ok {
			repl = []templateTok{bt}
		}
		for _, r := range repl {
			list.PushBack(&token.Token{
				Lexeme: r.lexeme, Kind: r.kind,
				IsUnsigned: r.flags.IsUnsigned, IsLong: r.flags.IsLong,
				IsStandardType: r.flags.IsStandardType, IsName: r.flags.IsName,
			})
		}
	}
	closeTok := &token.Token{Lexeme: "}", Kind: token.KindOperator}
	list.PushBack(closeTok)
	token.Link(open, closeTok)
}

// rewriteSite replaces `Name < args >` at the instantiation point with a
// single identifier token carrying the mangled name, so every later phase
// (and every checker) sees an ordinary, already-monomorphized type name.
func rewriteSite(list *token.List, site instantiationSite, mangled string) {
	repl := &token.Token{
		Lexeme: mangled,
		Kind:   token.KindIdent,
		File:   site.nameTok.File,
		Line:   site.nameTok.Line,
	}
	list.InsertBefore(site.nameTok, repl)
	list.DeleteRange(site.nameTok, site.closeAngle)
}
