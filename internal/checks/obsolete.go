// Package checks holds the individual analyses spec.md §4.H contracts:
// memory leaks, buffer overruns, uninitialized variables, class invariants,
// STL misuse, obsolete functions, unused functions, and autovariable
// misuse. Every check implements internal/check.Check and reports through
// the diag.Logger it's handed; none of them write their own traversal loop
// over raw tokens where the pattern matcher (pkg/token.Pattern) suffices.
package checks

import (
	"fmt"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// obsoleteFunctions maps a banned libc call to the one-line rationale
// spec.md §4.H's "pure pattern match" contract asks for.
var obsoleteFunctions = map[string]string{
	"gets":     "gets() does not check the destination buffer size, use fgets() instead",
	"mktemp":   "mktemp() has a race condition, use mkstemp() instead",
	"tmpnam":   "tmpnam() is not thread-safe, use mkstemp() instead",
	"strcpy":   "strcpy() does not check the destination buffer size, consider strncpy()",
	"strcat":   "strcat() does not check the destination buffer size, consider strncat()",
	"sprintf":  "sprintf() does not check the destination buffer size, consider snprintf()",
	"vsprintf": "vsprintf() does not check the destination buffer size, consider vsnprintf()",
	"scanf":    "scanf() without a field width can overflow its destination buffer",
	"bcopy":    "bcopy() is obsolete, use memmove() instead",
	"bzero":    "bzero() is obsolete, use memset() instead",
}

// ObsoleteFunctionsCheck flags calls to a fixed set of unsafe/obsolete libc
// functions, per spec.md §4.H and testable scenario S4.
type ObsoleteFunctionsCheck struct{}

// Name implements check.Check.
func (ObsoleteFunctionsCheck) Name() string { return "obsoleteFunctions" }

// RunOnSimplified implements check.Check.
func (c ObsoleteFunctionsCheck) RunOnSimplified(list *token.List, ctx *check.Context, logger diag.Logger) {
	for t := list.Front(); t != nil; t = t.Next() {
		if t.Kind != token.KindIdent {
			continue
		}
		reason, known := obsoleteFunctions[t.Lexeme]
		if !known {
			continue
		}
		next := t.Next()
		if next == nil || !next.Is("(") {
			continue
		}
		logger.Report(diag.ErrorMessage{
			Severity: settings.SeverityStyle,
			ID:       "obsoleteFunctions" + t.Lexeme,
			Message:  fmt.Sprintf("Obsolete function %q called. %s", t.Lexeme, reason),
			Locations: []diag.Location{{File: ctx.File, Line: t.Line}},
		})
	}
}
