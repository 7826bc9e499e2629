package checks

import "github.com/cppscan/cppscan/pkg/token"

// FuncBody is one function or method definition's body, located by its
// opening and closing brace (both already Link-paired by the simplifier's
// LinkPass).
type FuncBody struct {
	Open  *token.Token
	Close *token.Token
}

// FindFunctionBodies scans list for function/method definitions: a `{` whose
// preceding token is a `)` that itself closes a parameter list opened right
// after an identifier. This excludes `if`/`while`/`for`/`switch` bodies,
// whose condition parens are preceded by a keyword rather than an
// identifier. Nested matches inside an already-found body are skipped, since
// the caller walks one function at a time.
func FindFunctionBodies(list *token.List) []FuncBody {
	var out []FuncBody
	for t := list.Front(); t != nil; {
		if close := functionBodyClose(t); close != nil {
			out = append(out, FuncBody{Open: t, Close: close})
			t = close.Next()
			continue
		}
		t = t.Next()
	}
	return out
}

func functionBodyClose(open *token.Token) *token.Token {
	if !open.Is("{") || open.Link == nil {
		return nil
	}
	closeParen := open.Prev()
	if closeParen == nil || !closeParen.Is(")") || closeParen.Link == nil {
		return nil
	}
	openParen := closeParen.Link
	name := openParen.Prev()
	if name == nil || name.Kind != token.KindIdent {
		return nil
	}
	return open.Link
}

// functionNameOf returns the identifier token naming the function whose body
// begins at open, or nil if open isn't a recognized function body (see
// FindFunctionBodies).
func functionNameOf(open *token.Token) *token.Token {
	closeParen := open.Prev()
	if closeParen == nil || closeParen.Link == nil {
		return nil
	}
	return closeParen.Link.Prev()
}

// ClassBody is a class/struct definition's body.
type ClassBody struct {
	Name *token.Token
	Open *token.Token
}

// FindClassBodies scans list for `class`/`struct` NAME `{` definitions,
// skipping forward declarations (`class Foo;`, no body).
func FindClassBodies(list *token.List) []ClassBody {
	var out []ClassBody
	for t := list.Front(); t != nil; t = t.Next() {
		if !t.IsOneOf("class", "struct") {
			continue
		}
		name := t.Next()
		if name == nil || name.Kind != token.KindIdent {
			continue
		}
		cur := name.Next()
		for cur != nil && !cur.Is("{") && !cur.Is(";") {
			cur = cur.Next()
		}
		if cur == nil || !cur.Is("{") || cur.Link == nil {
			continue
		}
		out = append(out, ClassBody{Name: name, Open: cur})
	}
	return out
}
