// Package lexer turns one preprocessor Configuration's expanded source text
// into a pkg/token.List. It classifies each lexeme (identifier, number,
// string, char, operator, comment) but does not yet know which identifiers
// are variables or types -- that's the simplifier's job, several phases
// later.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/cppscan/cppscan/internal/fileset"
	"github.com/cppscan/cppscan/pkg/token"
	"golang.org/x/text/unicode/norm"
)

// Lexer scans one file's text into tokens on demand. Column positions are
// not tracked (pkg/token.Token carries only file + line); byte/line
// bookkeeping mirrors the teacher's rune-counting readChar/peekChar pair.
type Lexer struct {
	input  string
	fileID fileset.ID
	line   int

	pos     int
	readPos int
	ch      rune

	preserveComments bool
	errors           []Error
}

// Error is a lexical-analysis problem: an unterminated string/comment or an
// illegal byte sequence. Lexing never aborts; Errors returns them. The `lex`
// subcommand prints them, while simplifier.Simplify does not read them, so
// the check pipeline reports none of them.
type Error struct {
	Message string
	Line    int
}

// Option configures a Lexer at construction, the same functional-option
// shape as the teacher's LexerOption.
type Option func(*Lexer)

// WithPreserveComments makes the lexer emit KindComment tokens instead of
// silently discarding comment text. Off by default since the preprocessor
// has already stripped comments from the text checkers normally see; a tool
// that re-lexes raw, unpreprocessed text can turn it on (the `lex` debug
// subcommand leaves it off).
func WithPreserveComments(v bool) Option {
	return func(l *Lexer) { l.preserveComments = v }
}

// New returns a Lexer over src, attributing every token to fileID.
func New(src string, fileID fileset.ID, opts ...Option) *Lexer {
	l := &Lexer{input: src, fileID: fileID, line: 1}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Errors returns every lexical problem encountered so far.
func (l *Lexer) Errors() []Error { return l.errors }

func (l *Lexer) addError(msg string) {
	l.errors = append(l.errors, Error{Message: msg, Line: l.line})
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	if r == utf8.RuneError && size == 1 {
		l.addError("invalid UTF-8 encoding")
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// Tokenize consumes the entire input and returns it as a token.List.
func (l *Lexer) Tokenize() *token.List {
	list := token.New()
	for {
		tok, ok := l.next()
		if !ok {
			break
		}
		list.PushBack(tok)
	}
	return list
}

func (l *Lexer) next() (*token.Token, bool) {
	l.skipWhitespace()
	line := l.line

	switch {
	case l.ch == 0:
		return nil, false
	case l.ch == '/' && l.peekChar() == '/':
		text := l.readLineComment()
		if l.preserveComments {
			return l.make(token.KindComment, text, line), true
		}
		return l.next()
	case l.ch == '/' && l.peekChar() == '*':
		text, ok := l.readBlockComment()
		if !ok {
			l.addError("unterminated block comment")
		}
		if l.preserveComments {
			return l.make(token.KindComment, text, line), true
		}
		return l.next()
	case l.ch == '"':
		return l.make(token.KindString, l.readQuoted('"'), line), true
	case l.ch == '\'':
		return l.make(token.KindChar, l.readQuoted('\''), line), true
	case isIdentStart(l.ch):
		lex := l.readIdentifier()
		kind := token.KindIdent
		if isKeyword(lex) {
			kind = token.KindKeyword
		} else if isStandardTypeName(lex) {
			kind = token.KindTypeName
		}
		tok := l.make(kind, lex, line)
		tok.IsStandardType = isStandardTypeName(lex)
		return tok, true
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.make(token.KindNumber, l.readNumber(), line), true
	default:
		return l.make(token.KindOperator, l.readOperator(), line), true
	}
}

func (l *Lexer) make(kind token.Kind, lexeme string, line int) *token.Token {
	return &token.Token{Lexeme: lexeme, Kind: kind, File: int(l.fileID), Line: line}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		if l.ch == '\n' {
			l.line++
		}
		l.readChar()
	}
}

func (l *Lexer) readLineComment() string {
	start := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readBlockComment() (string, bool) {
	start := l.pos
	l.readChar()
	l.readChar()
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return l.input[start:l.pos], true
		}
		if l.ch == '\n' {
			l.line++
		}
		l.readChar()
	}
	return l.input[start:l.pos], false
}

// readQuoted reads a string or character literal delimited by quote,
// honoring backslash escapes, and normalizes its content to NFC -- the same
// normalization internal/interp/string_helpers.go applies before comparing
// DWScript string values, relocated here since checkers compare literal
// text directly (e.g. matching a format-string argument against %str%).
func (l *Lexer) readQuoted(quote rune) string {
	start := l.pos
	l.readChar()
	for l.ch != 0 && l.ch != quote {
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		if l.ch == '\n' {
			break
		}
		l.readChar()
	}
	if l.ch != quote {
		l.addError("unterminated string or character literal")
		return norm.NFC.String(l.input[start:l.pos])
	}
	l.readChar()
	return norm.NFC.String(l.input[start:l.pos])
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentCont(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) || l.ch == '\'' {
			l.readChar()
		}
	} else if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		l.readChar()
		l.readChar()
		for l.ch == '0' || l.ch == '1' || l.ch == '\'' {
			l.readChar()
		}
	} else {
		for isDigit(l.ch) || l.ch == '\'' {
			l.readChar()
		}
		if l.ch == '.' {
			l.readChar()
			for isDigit(l.ch) || l.ch == '\'' {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	for isSuffixLetter(l.ch) {
		l.readChar()
	}

	return l.input[start:l.pos]
}

func isSuffixLetter(r rune) bool {
	switch r {
	case 'u', 'U', 'l', 'L', 'f', 'F':
		return true
	default:
		return false
	}
}

// operators lists every multi-character C/C++ punctuator, longest first so
// the greedy scan in readOperator never stops short (e.g. "<<=" before "<<"
// before "<").
var operators = []string{
	"<<=", ">>=", "...", "->*", "::*",
	"<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"->", "::", ".*",
}

func (l *Lexer) readOperator() string {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) >= len(op) && rest[:len(op)] == op {
			for range op {
				l.readChar()
			}
			return op
		}
	}
	ch := l.ch
	l.readChar()
	return string(ch)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
