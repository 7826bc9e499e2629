// Package fileio implements the file-lister abstraction spec.md §6 states as
// the core's one external I/O boundary: `list(path, recursive) -> seq<path>`
// and `open(path) -> stream`. Two implementations are provided: FSLister,
// backed by the real filesystem, and MemLister, backed by an in-memory map
// for tests -- the same split the teacher's own test fixtures use between
// real script files and inline source strings.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Lister is the abstract source of translation units a run checks.
type Lister interface {
	// List expands root into the source paths it denotes. If root is itself
	// a file, List returns just that path. If root is a directory, List
	// returns every contained file matching a recognized C/C++ source or
	// header extension, recursing into subdirectories when recursive is
	// true.
	List(root string, recursive bool) ([]string, error)

	// Open returns a stream over path's contents.
	Open(path string) (io.ReadCloser, error)
}

// sourcePatterns are the doublestar glob patterns List treats as translation
// units or headers worth checking.
var sourcePatterns = []string{"*.c", "*.cc", "*.cpp", "*.cxx", "*.h", "*.hh", "*.hpp", "*.hxx"}

func hasSourceExtension(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, pattern := range sourcePatterns {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// MatchIncludeCandidate reports whether candidate (a path under one of the
// -I search roots, slash-normalized) matches pattern, a doublestar glob such
// as "vendor/**/*.h". It is independent of internal/preprocessor's own
// path.Join-based include resolution, which does not call it.
func MatchIncludeCandidate(pattern, candidate string) bool {
	ok, err := doublestar.Match(pattern, filepath.ToSlash(candidate))
	return err == nil && ok
}

// FSLister lists and opens files against the real filesystem.
type FSLister struct{}

// NewFSLister returns a Lister backed by the OS filesystem.
func NewFSLister() FSLister { return FSLister{} }

// List implements Lister. Matching against the recognized source
// extensions uses doublestar.Match rather than a plain suffix compare so
// the same glob engine that matches a -I candidate against an #include
// target also governs which files a directory argument contributes.
func (FSLister) List(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var out []string
	err = filepath.Walk(root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if !recursive && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if hasSourceExtension(p) {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fileio: listing %q: %w", root, err)
	}
	sort.Strings(out)
	return out, nil
}

// Open implements Lister.
func (FSLister) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// MemLister is an in-memory Lister for tests: paths map directly to
// contents, with no directory structure to walk.
type MemLister struct {
	files map[string]string
}

// NewMemLister returns a Lister over the given path->contents map.
func NewMemLister(files map[string]string) *MemLister {
	cp := make(map[string]string, len(files))
	for k, v := range files {
		cp[k] = v
	}
	return &MemLister{files: cp}
}

// List implements Lister: every known path whose prefix matches root (or
// every path, if root is "").
func (m *MemLister) List(root string, recursive bool) ([]string, error) {
	var out []string
	for p := range m.files {
		if root == "" || root == p || strings.HasPrefix(p, strings.TrimSuffix(root, "/")+"/") {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Open implements Lister.
func (m *MemLister) Open(path string) (io.ReadCloser, error) {
	c, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("fileio: %q not found", path)
	}
	return io.NopCloser(strings.NewReader(c)), nil
}
