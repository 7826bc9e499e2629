package diag

import (
	"regexp"
	"strings"
)

// suppressComment matches a `// cppcheck-suppress <id>` line, spec.md §6's
// inline-suppression form. AddFile splits the captured tail on whitespace,
// so "// cppcheck-suppress memleak uninitvar" suppresses both ids; a
// comma-separated list is treated as one id.
var suppressComment = regexp.MustCompile(`//\s*cppcheck-suppress\s+(.+)`)

// Suppressor answers whether a diagnostic is covered by an inline
// `// cppcheck-suppress <id>` comment on the line immediately before it.
// It is built once per file from that file's raw (pre-preprocessing) text,
// since suppression comments live in source, not in the macro-expanded
// stream the simplifier actually walks.
type Suppressor struct {
	// byFile[file][line] is the set of ids suppressed for a diagnostic
	// reported at that line (the line right after the comment).
	byFile map[string]map[int]map[string]bool
	all    bool
}

// NewSuppressor returns an empty Suppressor. Call AddFile once per source
// file whose raw text should be scanned for suppression comments.
func NewSuppressor() *Suppressor {
	return &Suppressor{byFile: make(map[string]map[int]map[string]bool)}
}

// AddFile scans one file's raw text and records every inline suppression
// comment found, keyed by the line of the diagnostic it covers (one past
// the comment's own line).
func (s *Suppressor) AddFile(file, contents string) {
	lines := strings.Split(contents, "\n")
	tags := make(map[int]map[string]bool)
	for i, line := range lines {
		m := suppressComment.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ids := tags[i+2] // 1-based line numbers; comment is on line i+1, covers i+2
		if ids == nil {
			ids = make(map[string]bool)
			tags[i+2] = ids
		}
		for _, id := range strings.Fields(m[1]) {
			if id == "*" {
				ids["*"] = true
				continue
			}
			ids[id] = true
		}
	}
	if len(tags) > 0 {
		s.byFile[file] = tags
	}
}

// Suppressed reports whether msg's primary location is covered by an
// inline suppression for its id (or the wildcard "*").
func (s *Suppressor) Suppressed(msg ErrorMessage) bool {
	if s == nil {
		return false
	}
	loc := msg.Primary()
	byLine, ok := s.byFile[loc.File]
	if !ok {
		return false
	}
	ids, ok := byLine[loc.Line]
	if !ok {
		return false
	}
	return ids[msg.ID] || ids["*"]
}
