// Package preprocessor implements conditional-compilation expansion: it
// enumerates the set of interesting configurations of a translation unit,
// expands object-like and function-like macros, and resolves #include
// directives. Its only output is plain text — tokenization of that text is
// the lexer's job (internal/lexer), one layer up.
package preprocessor

import "github.com/pkg/errors"

// Configuration is one (name -> expanded source) pair. Name is the
// conjunction of #ifdef/#ifndef/#if symbols that distinguish this slice of
// the translation unit from the others, e.g. "WIN32;DEBUG". The empty
// configuration ("") is the one where no varying symbol is defined.
type Configuration struct {
	Name   string
	Source string
}

// macroDef is one #define'd symbol. Params is nil for an object-like macro
// and a (possibly empty) slice for a function-like one.
type macroDef struct {
	name     string
	params   []string
	variadic bool
	body     string
	funcLike bool
}

// ErrSyntax marks a per-configuration fatal preprocessor error: unbalanced
// #if/#endif or #include nesting deeper than maxIncludeDepth. Expand maps
// this to a syntaxError diagnostic and abandons only the configuration that
// produced it. evalIfExpression also returns it for a malformed expression,
// which pushIf and handleElif treat as false.
var ErrSyntax = errors.New("preprocessor: unbalanced conditional directive")

// ErrTerminated is returned when Settings.ShouldTerminate() fired mid-run.
var ErrTerminated = errors.New("preprocessor: terminated")
