package preprocessor

import "strings"

// stripComments removes // and /* */ comments from src, replacing each
// comment with a single space (or, for multi-line block comments, with
// newlines preserved so downstream line numbers stay correct). String and
// character literals are respected so a "//" inside a string isn't mistaken
// for a comment.
func stripComments(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	runes := []rune(src)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(runes) && runes[j] != c {
				if runes[j] == '\\' && j+1 < len(runes) {
					j++
				}
				j++
			}
			if j < len(runes) {
				j++
			}
			out.WriteString(string(runes[i:j]))
			i = j
		case c == '/' && i+1 < len(runes) && runes[i+1] == '/':
			j := i
			for j < len(runes) && runes[j] != '\n' {
				j++
			}
			out.WriteByte(' ')
			i = j
		case c == '/' && i+1 < len(runes) && runes[i+1] == '*':
			j := i + 2
			for j+1 < len(runes) && !(runes[j] == '*' && runes[j+1] == '/') {
				if runes[j] == '\n' {
					out.WriteByte('\n')
				}
				j++
			}
			j += 2
			if j > len(runes) {
				j = len(runes)
			}
			out.WriteByte(' ')
			i = j
		default:
			out.WriteRune(c)
			i++
		}
	}
	return out.String()
}

// joinContinuations merges a trailing backslash-newline into the following
// line so a macro or directive can span physical lines. The removed newline
// is replaced with a space, so each joined continuation makes every later
// line count one lower than its physical line number.
func joinContinuations(src string) string {
	src = strings.ReplaceAll(src, "\\\r\n", " ")
	src = strings.ReplaceAll(src, "\\\n", " ")
	return src
}

// isIdentStart / isIdentCont classify characters for the lightweight
// preprocessor-token scanner used by macro expansion and #if evaluation.
func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// ppToken is a minimal preprocessing-token: just enough for macro expansion
// and #if evaluation, which both work on raw text rather than the final
// Token stream the lexer produces.
type ppToken struct {
	text   string
	isIdent bool
	isNum   bool
	isStr   bool
}

// ppScan splits a logical line (or expression fragment) into ppTokens.
// Whitespace is a separator, not a token.
func ppScan(s string) []ppToken {
	var out []ppToken
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(runes) && runes[j] != c {
				if runes[j] == '\\' && j+1 < len(runes) {
					j++
				}
				j++
			}
			if j < len(runes) {
				j++
			}
			out = append(out, ppToken{text: string(runes[i:j]), isStr: true})
			i = j
		case isDigit(c):
			j := i
			for j < len(runes) && (isIdentCont(runes[j]) || runes[j] == '.') {
				j++
			}
			out = append(out, ppToken{text: string(runes[i:j]), isNum: true})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(runes) && isIdentCont(runes[j]) {
				j++
			}
			out = append(out, ppToken{text: string(runes[i:j]), isIdent: true})
			i = j
		case c == '#' && i+1 < len(runes) && runes[i+1] == '#':
			out = append(out, ppToken{text: "##"})
			i += 2
		default:
			// Multi-character punctuation the #if evaluator and macro
			// substitution logic care about.
			for _, op := range []string{"<<", ">>", "<=", ">=", "==", "!=", "&&", "||"} {
				if strings.HasPrefix(string(runes[i:]), op) {
					out = append(out, ppToken{text: op})
					i += len(op)
					goto next
				}
			}
			out = append(out, ppToken{text: string(c)})
			i++
		next:
		}
	}
	return out
}

func joinTokens(toks []ppToken) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.text)
	}
	return b.String()
}
