package preprocessor

import (
	"strconv"
	"strings"

	"github.com/cppscan/cppscan/internal/mathlib"
)

// ifExprEval evaluates a #if/#elif constant expression after macro
// expansion and defined(...) substitution. It is a small precedence-climbing
// parser over ppTokens, structured the way directives.go's evalIfExpression
// walks a {$IF} expression frame by frame, generalized from DWScript's
// boolean-only {$IFDEF} grammar to full C: defined(), unary +/-/!/~, the
// complete binary operator ladder, and the ternary ?: operator.
type ifExprEval struct {
	toks []ppToken
	pos  int
	err  error
}

// evalIfExpression evaluates raw (the text following #if or #elif) and
// reports whether it is truthy. It first resolves "defined(X)"/"defined X"
// against mt, then macro-expands the rest. A malformed expression yields
// ErrSyntax.
func evalIfExpression(raw string, mt *table) (bool, error) {
	substituted := resolveDefined(raw, mt)
	expanded := mt.expandLine(substituted)
	toks := ppScan(expanded)

	e := &ifExprEval{toks: toks}
	v := e.parseTernary()
	if e.err != nil {
		return false, e.err
	}
	if e.pos != len(e.toks) {
		return false, ErrSyntax
	}
	return v.Truthy(), nil
}

// resolveDefined replaces every "defined(X)" or "defined X" occurrence with
// 1 or 0 before macro expansion runs, so that defined() always sees the
// macro table as it stood at the #if/#elif line rather than after nested
// object-like expansion could rewrite the identifier out from under it.
func resolveDefined(raw string, mt *table) string {
	toks := ppScan(raw)
	var out []ppToken
	for i := 0; i < len(toks); i++ {
		if toks[i].isIdent && toks[i].text == "defined" {
			if i+1 < len(toks) && toks[i+1].text == "(" && i+2 < len(toks) && toks[i+2].isIdent {
				name := toks[i+2].text
				if i+3 < len(toks) && toks[i+3].text == ")" {
					out = append(out, boolToken(mt.isDefined(name)))
					i += 3
					continue
				}
			}
			if i+1 < len(toks) && toks[i+1].isIdent {
				out = append(out, boolToken(mt.isDefined(toks[i+1].text)))
				i++
				continue
			}
		}
		out = append(out, toks[i])
	}
	return joinTokens(out)
}

func boolToken(b bool) ppToken {
	if b {
		return ppToken{text: "1", isNum: true}
	}
	return ppToken{text: "0", isNum: true}
}

func (e *ifExprEval) peek() (ppToken, bool) {
	if e.pos >= len(e.toks) {
		return ppToken{}, false
	}
	return e.toks[e.pos], true
}

func (e *ifExprEval) next() (ppToken, bool) {
	t, ok := e.peek()
	if ok {
		e.pos++
	}
	return t, ok
}

func (e *ifExprEval) fail() {
	if e.err == nil {
		e.err = ErrSyntax
	}
}

func (e *ifExprEval) parseTernary() mathlib.Value {
	cond := e.parseBinary(0)
	if e.err != nil {
		return cond
	}
	t, ok := e.peek()
	if !ok || t.text != "?" {
		return cond
	}
	e.next()
	ifTrue := e.parseTernary()
	colon, ok := e.next()
	if !ok || colon.text != ":" {
		e.fail()
		return ifTrue
	}
	ifFalse := e.parseTernary()
	if cond.Truthy() {
		return ifTrue
	}
	return ifFalse
}

// precedence table, low to high; entries at the same level are
// left-associative and evaluated together.
var binaryPrecedence = []map[string]bool{
	{"||": true},
	{"&&": true},
	{"|": true},
	{"^": true},
	{"&": true},
	{"==": true, "!=": true},
	{"<": true, "<=": true, ">": true, ">=": true},
	{"<<": true, ">>": true},
	{"+": true, "-": true},
	{"*": true, "/": true, "%": true},
}

func (e *ifExprEval) parseBinary(level int) mathlib.Value {
	if level >= len(binaryPrecedence) {
		return e.parseUnary()
	}
	lhs := e.parseBinary(level + 1)
	for e.err == nil {
		t, ok := e.peek()
		if !ok || !binaryPrecedence[level][t.text] {
			break
		}
		e.next()
		rhs := e.parseBinary(level + 1)
		folded, ok := mathlib.FoldBinary(t.text, lhs, rhs)
		if !ok {
			e.fail()
			return lhs
		}
		lhs = folded
	}
	return lhs
}

func (e *ifExprEval) parseUnary() mathlib.Value {
	t, ok := e.peek()
	if ok && (t.text == "+" || t.text == "-" || t.text == "!" || t.text == "~") {
		e.next()
		operand := e.parseUnary()
		folded, ok := mathlib.FoldUnary(t.text, operand)
		if !ok {
			e.fail()
			return operand
		}
		return folded
	}
	return e.parsePrimary()
}

func (e *ifExprEval) parsePrimary() mathlib.Value {
	t, ok := e.next()
	if !ok {
		e.fail()
		return mathlib.Value{}
	}

	switch {
	case t.text == "(":
		v := e.parseTernary()
		closing, ok := e.next()
		if !ok || closing.text != ")" {
			e.fail()
		}
		return v
	case t.isNum:
		v, err := mathlib.ParseLiteral(t.text)
		if err != nil {
			e.fail()
			return mathlib.Value{}
		}
		return v
	case t.isIdent:
		// An identifier surviving to here is an undefined macro in a
		// constant-expression context; the C standard says it evaluates to 0.
		return mathlib.Value{Kind: mathlib.KindInt, I: 0}
	case t.isStr:
		// Character constants fold to their ordinal value; plain strings have
		// no meaning in a constant expression and evaluate to 0.
		unquoted := strings.Trim(t.text, "'\"")
		if len(unquoted) == 1 {
			return mathlib.Value{Kind: mathlib.KindInt, I: int64(unquoted[0])}
		}
		return mathlib.Value{Kind: mathlib.KindInt, I: 0}
	default:
		if n, err := strconv.ParseInt(t.text, 10, 64); err == nil {
			return mathlib.Value{Kind: mathlib.KindInt, I: n}
		}
		e.fail()
		return mathlib.Value{}
	}
}

