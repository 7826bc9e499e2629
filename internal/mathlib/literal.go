// Package mathlib parses the full range of C/C++ numeric literal forms and
// folds constant expressions over them. It is the "J" component of the
// pipeline: every other component that needs to know what "123" or "0x7fU"
// actually mean calls into here instead of re-deriving radix and suffix
// rules itself.
package mathlib

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind distinguishes an integer constant from a floating-point one.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
)

// Value is a folded numeric constant. Integers are carried in I; floats in F.
// Unsigned/Long mirror the C suffix (or promotion) that produced the value,
// the same two flags Token itself carries once simplification resolves a
// literal into a token.
type Value struct {
	Kind     Kind
	I        int64
	F        float64
	Unsigned bool
	Long     bool
}

// AsFloat returns the value widened to float64 regardless of Kind.
func (v Value) AsFloat() float64 {
	if v.Kind == KindFloat {
		return v.F
	}
	return float64(v.I)
}

// Truthy reports whether v is nonzero, the rule #if/#elif and && / || / !
// use to treat a folded constant as a boolean.
func (v Value) Truthy() bool {
	if v.Kind == KindFloat {
		return v.F != 0
	}
	return v.I != 0
}

// ErrNotALiteral is returned by ParseLiteral when the lexeme isn't a
// recognized numeric literal at all.
var ErrNotALiteral = errors.New("mathlib: not a numeric literal")

// ParseLiteral parses any C/C++ integer or floating literal: decimal, octal
// (leading 0), hexadecimal (0x/0X), binary (0b/0B, a GNU/C++14 extension),
// digit separators ('), and the usual u/U, l/L, ll/LL, f/F suffixes.
func ParseLiteral(lexeme string) (Value, error) {
	s := strings.ReplaceAll(lexeme, "'", "")
	if s == "" {
		return Value{}, ErrNotALiteral
	}

	if looksLikeFloat(s) {
		return parseFloatLiteral(s)
	}
	return parseIntLiteral(s)
}

func looksLikeFloat(s string) bool {
	body := s
	for _, suf := range []string{"f", "F", "l", "L"} {
		body = strings.TrimSuffix(body, suf)
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		// Hex floats carry a binary exponent introduced by 'p'/'P'.
		return strings.ContainsAny(body, "pP")
	}
	return strings.ContainsAny(body, ".") || hasDecimalExponent(body)
}

func hasDecimalExponent(s string) bool {
	idx := strings.IndexAny(s, "eE")
	if idx <= 0 {
		return false
	}
	// Reject hex literals like 0xE, whose 'E' is a digit, not an exponent.
	return !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X")
}

func parseIntLiteral(s string) (Value, error) {
	body := s
	unsigned := false
	long := false

	for {
		switch {
		case strings.HasSuffix(body, "u"), strings.HasSuffix(body, "U"):
			unsigned = true
			body = body[:len(body)-1]
		case strings.HasSuffix(body, "l"), strings.HasSuffix(body, "L"):
			long = true
			body = body[:len(body)-1]
		default:
			goto suffixesDone
		}
	}
suffixesDone:

	base := 10
	digits := body
	switch {
	case strings.HasPrefix(body, "0x"), strings.HasPrefix(body, "0X"):
		base = 16
		digits = body[2:]
	case strings.HasPrefix(body, "0b"), strings.HasPrefix(body, "0B"):
		base = 2
		digits = body[2:]
	case len(body) > 1 && body[0] == '0':
		base = 8
		digits = body[1:]
	}

	if digits == "" {
		return Value{}, ErrNotALiteral
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return Value{}, errors.Wrapf(ErrNotALiteral, "parsing %q: %v", s, err)
	}

	return Value{Kind: KindInt, I: int64(v), Unsigned: unsigned, Long: long}, nil
}

func parseFloatLiteral(s string) (Value, error) {
	body := strings.TrimSuffix(strings.TrimSuffix(s, "f"), "F")
	body = strings.TrimSuffix(strings.TrimSuffix(body, "l"), "L")

	v, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return Value{}, errors.Wrapf(ErrNotALiteral, "parsing %q: %v", s, err)
	}
	return Value{Kind: KindFloat, F: v}, nil
}
