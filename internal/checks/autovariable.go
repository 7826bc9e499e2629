package checks

import (
	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// AutoVariableCheck flags a local variable's address escaping its function:
// either returned directly (`return &local;`) or stored through an
// out-parameter (`*out = &local;`), per spec.md §4.H. It does not attempt to
// distinguish a local from a parameter -- both carry a nonzero VarID after
// the simplifier's scope pass, so this is a deliberately conservative
// over-approximation (a parameter's address escaping is legitimate and
// common, but flagging it costs little since the pattern is rare in
// practice and the diagnostic is only `style`).
type AutoVariableCheck struct{}

// Name implements check.Check.
func (AutoVariableCheck) Name() string { return "autoVariables" }

var returnAddress = token.Compile("return & %var% ;")
var storeAddressThroughPointer = token.Compile("* %var% = & %var% ;")

// RunOnSimplified implements check.Check.
func (c AutoVariableCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	for t := list.Front(); t != nil; t = t.Next() {
		if t.Is("return") && returnAddress.Match(t) > 0 {
			logger.Report(diag.ErrorMessage{
				Severity:  settings.SeverityStyle,
				ID:        "autoVariables",
				Message:   "Returning the address of a local variable",
				Locations: []diag.Location{{File: ctx.File, Line: t.Line}},
			})
			continue
		}
		if t.Is("*") && storeAddressThroughPointer.Match(t) > 0 {
			logger.Report(diag.ErrorMessage{
				Severity:  settings.SeverityStyle,
				ID:        "autoVariables",
				Message:   "Assigning the address of a local variable to an out-parameter",
				Locations: []diag.Location{{File: ctx.File, Line: t.Line}},
			})
		}
	}
}
