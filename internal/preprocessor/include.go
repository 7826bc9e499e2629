package preprocessor

import (
	"path"
	"strings"
)

// includeResolver resolves #include directives against an in-memory file
// source, mirroring the two C search orders: quote-form ("foo.h") checks the
// including file's own directory, then the target path as written, before
// the -I path list; angle-form (<foo.h>) checks only the -I path list.
type includeResolver struct {
	// read returns the contents of path and whether it exists. Callers
	// normally back this with internal/fileset.Set, but tests can supply an
	// in-memory map directly.
	read         func(path string) (string, bool)
	includePaths []string
}

func newIncludeResolver(read func(string) (string, bool), includePaths []string) *includeResolver {
	return &includeResolver{read: read, includePaths: includePaths}
}

// parseIncludeDirective splits the text following #include into the target
// name and whether it used quote form (as opposed to angle-bracket form).
// ok is false if the directive isn't a recognized #include (e.g. a macro
// expanding to one, which callers must expand before calling this).
func parseIncludeDirective(raw string) (target string, quoted bool, ok bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return "", false, false
	}
	switch {
	case raw[0] == '"':
		end := strings.IndexByte(raw[1:], '"')
		if end < 0 {
			return "", false, false
		}
		return raw[1 : 1+end], true, true
	case raw[0] == '<':
		end := strings.IndexByte(raw, '>')
		if end < 0 {
			return "", false, false
		}
		return raw[1:end], false, true
	default:
		return "", false, false
	}
}

// resolve finds the file referenced by an #include directive. fromDir is
// the directory of the file doing the including, used only for quote-form
// lookups. ok is false when the header cannot be found anywhere, which
// handleInclude reports as a missingInclude diagnostic rather than a fatal
// error.
func (r *includeResolver) resolve(target string, quoted bool, fromDir string) (resolvedPath, contents string, ok bool) {
	if quoted && fromDir != "" {
		candidate := path.Join(fromDir, target)
		if c, ok := r.read(candidate); ok {
			return candidate, c, true
		}
	}
	if quoted {
		if c, ok := r.read(target); ok {
			return target, c, true
		}
	}
	for _, dir := range r.includePaths {
		candidate := path.Join(dir, target)
		if c, ok := r.read(candidate); ok {
			return candidate, c, true
		}
	}
	return "", "", false
}
