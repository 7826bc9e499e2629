package checks

import (
	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// SizeZeroCheck flags `container.size() == 0` (or `0 == container.size()`),
// which should be `container.empty()` -- cheaper for every standard
// container and the only correct test for the ones without O(1) size(),
// per spec.md §4.H's STL-misuse contract.
type SizeZeroCheck struct{}

// Name implements check.Check.
func (SizeZeroCheck) Name() string { return "stlSize" }

var sizeEqualsZero = token.Compile("%var% . size ( ) == %num%")
var zeroEqualsSize = token.Compile("%num% == %var% . size ( )")

// RunOnSimplified implements check.Check.
func (c SizeZeroCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	for t := list.Front(); t != nil; t = t.Next() {
		if n := sizeEqualsZero.Match(t); n > 0 {
			numTok := nthToken(t, n-1)
			if numTok.Is("0") {
				report(logger, ctx, t)
			}
			continue
		}
		if n := zeroEqualsSize.Match(t); n > 0 && t.Is("0") {
			report(logger, ctx, t)
		}
	}
}

func report(logger diag.Logger, ctx *check.Context, at *token.Token) {
	logger.Report(diag.ErrorMessage{
		Severity:  settings.SeverityStyle,
		ID:        "stlSize",
		Message:   "Checking the container size with size() == 0 is less efficient than using empty(); consider empty() instead",
		Locations: []diag.Location{{File: ctx.File, Line: at.Line}},
	})
}

func nthToken(from *token.Token, n int) *token.Token {
	cur := from
	for i := 0; i < n && cur != nil; i++ {
		cur = cur.Next()
	}
	return cur
}

// IteratorAfterEraseCheck flags an iterator used after the call that
// invalidated it: `it = container.erase(it)` is the only safe continuation
// pattern; any other use of `it` as the direct argument to a later
// dereference/comparison without first being reassigned from erase's return
// value is flagged.
type IteratorAfterEraseCheck struct{}

// Name implements check.Check.
func (IteratorAfterEraseCheck) Name() string { return "invalidIterator" }

var erasePattern = token.Compile(". erase ( %var% )")

// RunOnSimplified implements check.Check.
func (c IteratorAfterEraseCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	for t := list.Front(); t != nil; t = t.Next() {
		if !t.Is(".") || erasePattern.Match(t) == 0 {
			continue
		}
		itVar := t.Next().Next().Next()
		closeParen := itVar.Next()

		container := t.Prev()
		eq := container.Prev()
		if eq != nil && eq.Is("=") && eq.Prev() != nil && eq.Prev().VarID == itVar.VarID {
			continue // it = container.erase(it) -- the one safe continuation
		}

		depth := 0
		for cur := closeParen.Next(); cur != nil; cur = cur.Next() {
			if cur.Is("{") {
				depth++
				continue
			}
			if cur.Is("}") {
				if depth == 0 {
					break // left the enclosing block without another use
				}
				depth--
				continue
			}
			if cur.VarID != itVar.VarID {
				continue
			}
			if next := cur.Next(); next != nil && next.Is("=") && (next.Next() == nil || !next.Next().Is("=")) {
				break // reassigned before any invalid use
			}
			logger.Report(diag.ErrorMessage{
				Severity:  settings.SeverityError,
				ID:        "invalidIterator",
				Message:   "Using an iterator after it has been invalidated by erase()",
				Locations: []diag.Location{{File: ctx.File, Line: cur.Line}},
			})
			break
		}
	}
}
