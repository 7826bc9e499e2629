package checks

import (
	"fmt"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/mathlib"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// BufferOverrunCheck reports constant-size arrays indexed by a constant
// outside [0, N), per spec.md §4.H. It is pattern-based and does not use the
// execution-path engine, so an index that is a loop variable (a loop-bound
// overrun) is not checked.
type BufferOverrunCheck struct{}

// Name implements check.Check.
func (BufferOverrunCheck) Name() string { return "bufferOverrun" }

var indexPattern = token.Compile("%var% [ %num% ]")

// RunOnSimplified implements check.Check.
func (c BufferOverrunCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	arraySize := make(map[int]int64)

	for t := list.Front(); t != nil; t = t.Next() {
		if indexPattern.Match(t) == 0 {
			continue
		}
		numTok := t.Next().Next()
		n, err := mathlib.ParseLiteral(numTok.Lexeme)
		if err != nil || n.Kind != mathlib.KindInt {
			continue
		}

		if prev := t.Prev(); prev != nil && (prev.IsStandardType || prev.Kind == token.KindTypeName) {
			arraySize[t.VarID] = n.I
			continue
		}

		size, known := arraySize[t.VarID]
		if !known {
			continue
		}
		if n.I < 0 || n.I >= size {
			logger.Report(diag.ErrorMessage{
				Severity:  settings.SeverityError,
				ID:        "arrayIndexOutOfBounds",
				Message:   fmt.Sprintf("Array %q index %d is out of bounds (size %d)", t.Lexeme, n.I, size),
				Locations: []diag.Location{{File: ctx.File, Line: t.Line}},
			})
		}
	}
}
