package simplifier

import (
	"strconv"

	"github.com/cppscan/cppscan/internal/mathlib"
	"github.com/cppscan/cppscan/pkg/token"
)

// ConstFoldPass implements spec.md §4.D phase 6: fold integer and
// floating-point literals across arithmetic/comparison/shift/bitwise
// operators, fold simple unary expressions, and resolve `sizeof(T)` for the
// platform's built-in type table. It repeats to a local fixpoint within one
// call (`a + b * c` folds `b * c` first, then the outer `+`) since a single
// left-to-right sweep would leave the outer operator unfolded the first
// time through.
type ConstFoldPass struct{}

// Name implements Pass.
func (ConstFoldPass) Name() string { return "constfold" }

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"<<": true, ">>": true, "&": true, "|": true, "^": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"&&": true, "||": true,
}

// binaryPrec ranks binary operators from loosest to tightest binding.
var binaryPrec = map[string]int{
	"||": 1, "&&": 2, "|": 3, "^": 4, "&": 5, "==": 6, "!=": 6,
	"<": 7, "<=": 7, ">": 7, ">=": 7, "<<": 8, ">>": 8,
	"+": 9, "-": 9, "*": 10, "/": 10, "%": 10,
}

var unaryOps = map[string]bool{"+": true, "-": true, "!": true, "~": true}

// Run implements Pass.
func (p ConstFoldPass) Run(list *token.List, ctx *Context) error {
	platform := mathlib.PlatformUnspecified
	if ctx.Settings != nil {
		platform = ctx.Settings.Platform.ToMathlib()
	}

	for pass := 0; pass < 1000; pass++ {
		changed := false
		for t := list.Front(); t != nil; t = t.Next() {
			if ctx.Settings != nil && ctx.Settings.ShouldTerminate() {
				return nil
			}
			if foldSizeof(list, t, platform) {
				changed = true
				continue
			}
			if foldBinaryAt(list, t) {
				changed = true
				continue
			}
			if foldUnaryAt(list, t) {
				changed = true
				continue
			}
		}
		if !changed {
			break
		}
	}
	return nil
}

func isLiteralNumber(t *token.Token) bool {
	return t != nil && t.Kind == token.KindNumber
}

func foldBinaryAt(list *token.List, op *token.Token) bool {
	if op.Kind != token.KindOperator || !binaryOps[op.Lexeme] {
		return false
	}
	a, b := op.Prev(), op.Next()
	if !isLiteralNumber(a) || !isLiteralNumber(b) {
		return false
	}
	// A neighbour that binds a or b more tightly is folded first.
	if p := a.Prev(); p != nil && p.Kind == token.KindOperator && binaryPrec[p.Lexeme] >= binaryPrec[op.Lexeme] {
		return false
	}
	if n := b.Next(); n != nil && n.Kind == token.KindOperator && binaryPrec[n.Lexeme] > binaryPrec[op.Lexeme] {
		return false
	}
	av, err := mathlib.ParseLiteral(a.Lexeme)
	if err != nil {
		return false
	}
	bv, err := mathlib.ParseLiteral(b.Lexeme)
	if err != nil {
		return false
	}
	result, ok := mathlib.FoldBinary(op.Lexeme, av, bv)
	if !ok {
		return false
	}
	replace(list, a, b, []*token.Token{newNumberToken(a, result)})
	return true
}

func foldUnaryAt(list *token.List, op *token.Token) bool {
	if op.Kind != token.KindOperator || !unaryOps[op.Lexeme] {
		return false
	}
	if !startsExpression(op.Prev()) {
		return false
	}
	operand := op.Next()
	if !isLiteralNumber(operand) {
		return false
	}
	v, err := mathlib.ParseLiteral(operand.Lexeme)
	if err != nil {
		return false
	}
	result, ok := mathlib.FoldUnary(op.Lexeme, v)
	if !ok {
		return false
	}
	replace(list, op, operand, []*token.Token{newNumberToken(op, result)})
	return true
}

// startsExpression reports whether prev (the token before a candidate
// unary operator) indicates we're at the start of a sub-expression rather
// than looking at a binary operator's right-hand minus, etc.
func startsExpression(prev *token.Token) bool {
	if prev == nil {
		return true
	}
	if prev.Kind == token.KindOperator {
		return !prev.IsOneOf(")", "]")
	}
	if prev.Kind == token.KindKeyword {
		return true
	}
	return false
}

func foldSizeof(list *token.List, kw *token.Token, platform mathlib.Platform) bool {
	if !kw.Is("sizeof") {
		return false
	}
	open := kw.Next()
	if open == nil || !open.Is("(") {
		return false
	}
	typeTok := open.Next()
	if typeTok == nil {
		return false
	}
	close := typeTok.Next()
	if close == nil || !close.Is(")") {
		return false
	}
	n, ok := mathlib.SizeOf(typeTok.Lexeme, platform)
	if !ok {
		return false
	}
	replace(list, kw, close, []*token.Token{{
		Lexeme: strconv.Itoa(n), Kind: token.KindNumber, File: kw.File, Line: kw.Line,
	}})
	return true
}

// replace deletes the inclusive range [from, to] and inserts withToks in
// its place, preserving file/line provenance from the first deleted token.
func replace(list *token.List, from, to *token.Token, withToks []*token.Token) {
	cursor := to
	for _, nt := range withToks {
		list.InsertAfter(cursor, nt)
		cursor = nt
	}
	list.DeleteRange(from, to)
}

func newNumberToken(like *token.Token, v mathlib.Value) *token.Token {
	lexeme := formatValue(v)
	return &token.Token{
		Lexeme: lexeme, Kind: token.KindNumber, File: like.File, Line: like.Line,
		IsUnsigned: v.Unsigned, IsLong: v.Long,
	}
}

func formatValue(v mathlib.Value) string {
	if v.Kind == mathlib.KindFloat {
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	}
	s := strconv.FormatInt(v.I, 10)
	if v.Unsigned {
		s += "U"
	}
	if v.Long {
		s += "L"
	}
	return s
}
