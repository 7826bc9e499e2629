package simplifier

import (
	"github.com/cppscan/cppscan/internal/fileset"
	"github.com/cppscan/cppscan/internal/lexer"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/pkg/token"
)

// DefaultPasses returns the fixed phase order spec.md §4.D specifies:
// link brackets, resolve typedefs, instantiate templates, remove sugar,
// fold constants, assign variable ids. Each phase is idempotent against its
// own output, so calling Simplify twice on already-simplified input is a
// no-op fixpoint (testable property 6).
func DefaultPasses() []Pass {
	return []Pass{
		LinkPass{},
		TypedefPass{},
		TemplatePass{},
		SugarPass{},
		ConstFoldPass{},
		VarIDPass{},
	}
}

// Simplify lexes src (one preprocessor configuration's expanded text) and
// runs the default pass pipeline over it, returning the canonicalized token
// list the check registry reads. The returned Context carries any
// best-effort diagnostics recorded along the way.
func Simplify(src string, fileID fileset.ID, st *settings.Settings) (*token.List, *Context) {
	list := lexer.New(src, fileID).Tokenize()
	ctx := &Context{Settings: st, FileID: int(fileID)}
	NewPassManager(DefaultPasses()...).RunAll(list, ctx)
	return list, ctx
}
