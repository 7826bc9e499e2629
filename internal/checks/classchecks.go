package checks

import (
	"fmt"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// VirtualDestructorCheck flags a class with at least one virtual method
// whose destructor is missing or not itself virtual, per spec.md §4.H's
// class-invariant contract.
type VirtualDestructorCheck struct{}

// Name implements check.Check.
func (VirtualDestructorCheck) Name() string { return "virtualDestructor" }

// RunOnSimplified implements check.Check.
func (c VirtualDestructorCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	for _, cb := range FindClassBodies(list) {
		hasVirtual, hasDestructor, destructorVirtual := scanVirtuals(cb)
		if !hasVirtual {
			continue
		}
		switch {
		case !hasDestructor:
			logger.Report(diag.ErrorMessage{
				Severity:  settings.SeverityStyle,
				ID:        "virtualDestructor",
				Message:   fmt.Sprintf("Class %q has virtual methods but no destructor", cb.Name.Lexeme),
				Locations: []diag.Location{{File: ctx.File, Line: cb.Name.Line}},
			})
		case !destructorVirtual:
			logger.Report(diag.ErrorMessage{
				Severity:  settings.SeverityStyle,
				ID:        "virtualDestructor",
				Message:   fmt.Sprintf("Class %q has virtual methods but a non-virtual destructor", cb.Name.Lexeme),
				Locations: []diag.Location{{File: ctx.File, Line: cb.Name.Line}},
			})
		}
	}
}

func scanVirtuals(cb ClassBody) (hasVirtual, hasDestructor, destructorVirtual bool) {
	end := cb.Open.Link
	for cur := cb.Open.Next(); cur != nil && cur != end; cur = cur.Next() {
		if cur.Is("virtual") {
			hasVirtual = true
			if next := cur.Next(); next != nil && next.Is("~") {
				destructorVirtual = true
			}
		}
		if cur.Is("~") && cur.Next() != nil && cur.Next().Is(cb.Name.Lexeme) {
			hasDestructor = true
		}
	}
	return hasVirtual, hasDestructor, destructorVirtual
}

// ConstructorInitCheck flags a class whose constructor body never assigns a
// member field that the class declares, per spec.md §4.H's "constructor
// failing to initialize a member" contract. It is conservative: only
// `name = ...` assignments inside a constructor body count, and a constructor
// with a member-initializer list (`Foo(int x) : field(x) {}`) is not checked
// at all, since constructorsOf requires `{` right after the parameter list.
type ConstructorInitCheck struct{}

// Name implements check.Check.
func (ConstructorInitCheck) Name() string { return "uninitMemberVar" }

// RunOnSimplified implements check.Check.
func (c ConstructorInitCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	for _, cb := range FindClassBodies(list) {
		members := collectMembers(cb)
		if len(members) == 0 {
			continue
		}
		for _, ctor := range constructorsOf(cb, list) {
			assigned := assignedNames(ctor)
			for _, m := range members {
				if assigned[m.Lexeme] {
					continue
				}
				logger.Report(diag.ErrorMessage{
					Severity: settings.SeverityWarning,
					ID:       "uninitMemberVar",
					Message:  fmt.Sprintf("Member variable %q is not initialized in constructor", m.Lexeme),
					Locations: []diag.Location{
						{File: ctx.File, Line: functionNameOf(ctor.Open).Line},
					},
				})
			}
		}
	}
}

// collectMembers returns every field declared directly at class scope: a
// `%type% ident ;` not immediately followed by `(` (which would make it a
// method declaration instead).
func collectMembers(cb ClassBody) []*token.Token {
	var out []*token.Token
	end := cb.Open.Link
	depth := 0
	for cur := cb.Open.Next(); cur != nil && cur != end; cur = cur.Next() {
		if cur.IsOpenBracket() {
			depth++
			continue
		}
		if cur.IsCloseBracket() {
			depth--
			continue
		}
		if depth != 0 || cur.Kind != token.KindIdent {
			continue
		}
		prev := cur.Prev()
		next := cur.Next()
		if prev == nil || next == nil {
			continue
		}
		if (prev.IsStandardType || prev.Kind == token.KindTypeName) && next.Is(";") {
			out = append(out, cur)
		}
	}
	return out
}

// constructorsOf finds every `NAME ( ... ) { ... }` body whose name matches
// the class and that lies within the class body.
func constructorsOf(cb ClassBody, list *token.List) []FuncBody {
	var out []FuncBody
	end := cb.Open.Link
	for cur := cb.Open.Next(); cur != nil && cur != end; cur = cur.Next() {
		if cur.Kind != token.KindIdent || cur.Lexeme != cb.Name.Lexeme {
			continue
		}
		open := cur.Next()
		if open == nil || !open.Is("(") || open.Link == nil {
			continue
		}
		body := open.Link.Next()
		if body == nil || !body.Is("{") || body.Link == nil {
			continue
		}
		out = append(out, FuncBody{Open: body, Close: body.Link})
	}
	return out
}

func assignedNames(fb FuncBody) map[string]bool {
	out := make(map[string]bool)
	for cur := fb.Open.Next(); cur != nil && cur != fb.Close; cur = cur.Next() {
		if cur.Kind != token.KindIdent {
			continue
		}
		next := cur.Next()
		if next != nil && next.Is("=") && (next.Next() == nil || !next.Next().Is("=")) {
			out[cur.Lexeme] = true
		}
	}
	return out
}
