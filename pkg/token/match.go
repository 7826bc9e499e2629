package token

import "strings"

// Pattern is a compiled space-separated pattern, the mini-language every
// checker uses instead of writing raw traversal loops. Compile once, Match
// many times — re-parsing the pattern string on every call would put a
// string split on every checker's hot path.
//
// Supported elements (each consumes exactly one token):
//
//	foo        literal lexeme match
//	%any%      any single token
//	%var%      an identifier with VarID != 0
//	%num%      a numeric literal
//	%str%      a string literal
//	%type%     a built-in or standard type name (IsStandardType or KindTypeName)
//	!!foo      the current token is NOT foo
//	a|b|c      the current token matches any of the literal alternatives
//	[a|b]      same as a|b, bracket form
//
// Match returns the number of tokens consumed if the whole pattern matched
// starting at cursor, or 0 if it didn't.
type Pattern struct {
	elems []elemMatcher
}

type elemMatcher struct {
	negate bool
	alts   []string
	class  class
}

type class int

const (
	classLiteral class = iota
	classAny
	classVar
	classNum
	classStr
	classType
)

// Compile parses pattern once into a reusable matcher.
func Compile(pattern string) *Pattern {
	fields := strings.Fields(pattern)
	p := &Pattern{elems: make([]elemMatcher, 0, len(fields))}
	for _, f := range fields {
		p.elems = append(p.elems, compileElem(f))
	}
	return p
}

func compileElem(f string) elemMatcher {
	negate := false
	if strings.HasPrefix(f, "!!") {
		negate = true
		f = f[2:]
	}

	// Only a bracketed group is unwrapped; a lone "[" or "]" is a literal.
	if len(f) > 2 && strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]") {
		f = f[1 : len(f)-1]
	}

	if strings.Contains(f, "|") {
		return elemMatcher{negate: negate, alts: strings.Split(f, "|")}
	}

	switch f {
	case "%any%":
		return elemMatcher{negate: negate, class: classAny}
	case "%var%":
		return elemMatcher{negate: negate, class: classVar}
	case "%num%":
		return elemMatcher{negate: negate, class: classNum}
	case "%str%":
		return elemMatcher{negate: negate, class: classStr}
	case "%type%":
		return elemMatcher{negate: negate, class: classType}
	default:
		return elemMatcher{negate: negate, class: classLiteral, alts: []string{f}}
	}
}

func (e elemMatcher) matches(t *Token) bool {
	if t == nil {
		return false
	}
	var ok bool
	switch e.class {
	case classAny:
		ok = true
	case classVar:
		ok = t.VarID != 0
	case classNum:
		ok = t.Kind == KindNumber
	case classStr:
		ok = t.Kind == KindString
	case classType:
		ok = t.IsStandardType || t.Kind == KindTypeName
	default:
		ok = t.IsOneOf(e.alts...)
	}
	if e.negate {
		return !ok
	}
	return ok
}

// Match walks from cursor, returning the number of tokens consumed if every
// element of the pattern matched in order, or 0 on the first mismatch.
func (p *Pattern) Match(cursor *Token) int {
	cur := cursor
	for i, e := range p.elems {
		if !e.matches(cur) {
			return 0
		}
		cur = cur.Next()
		if cur == nil && i != len(p.elems)-1 {
			return 0
		}
	}
	return len(p.elems)
}

// Match compiles pattern and matches it at cursor in one call. Checkers on a
// hot path should call Compile once and reuse the Pattern instead.
func Match(cursor *Token, pattern string) int {
	return Compile(pattern).Match(cursor)
}
