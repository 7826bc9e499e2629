// Package diag defines the analyzer-wide diagnostic type and the sinks that
// serialize it. spec.md §3 calls this "ErrorMessage" and §4.E calls the
// abstract destination an "error logger interface"; internal/check and
// internal/checks never format text themselves, they only ever build and
// report an ErrorMessage through a Logger.
package diag

import (
	"sort"

	"github.com/cppscan/cppscan/internal/settings"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newPathCollator orders file paths the way CompareLocaleStr orders locale
// text in internal/interp/builtins_strings_compare.go: a collate.Collator
// over a fixed language tag rather than Go's raw byte-wise string "<", so a
// batch of diagnostics spanning files with accented or non-ASCII names sorts
// the way a person reading the report would expect, not by UTF-8 byte value.
// A Collator isn't safe for concurrent use, so Messages builds its own
// instead of sharing one across calls.
func newPathCollator() *collate.Collator {
	return collate.New(language.English)
}

// Location is one call-stack frame of a diagnostic: where it happened, or
// (for a multi-location diagnostic like a leak whose allocation and
// end-of-life happen on different lines) one of the frames that led to it.
type Location struct {
	File string
	Line int
}

// ErrorMessage is one diagnostic: a severity, a stable id ("memleak",
// "uninitvar", ...), human-readable text, and an ordered list of
// call-stack locations, newest first, per spec.md §3.
type ErrorMessage struct {
	Severity  settings.Severity
	ID        string
	Message   string
	Locations []Location
}

// Primary returns the newest (first) location, or the zero Location if the
// diagnostic carries none.
func (e ErrorMessage) Primary() Location {
	if len(e.Locations) == 0 {
		return Location{}
	}
	return e.Locations[0]
}

// Logger is the abstract sink every checker reports into. Implementations
// format text or XML, or (in tests) simply collect.
type Logger interface {
	Report(msg ErrorMessage)
}

// Collector is a Logger that filters by settings (severity enablement and
// suppressions) before retaining a diagnostic, and exposes the final,
// source-ordered list for a sink to render. It is the one concrete Logger
// every checker is handed; Text/XML formatting happens after a run
// completes, not interleaved with checking, so ordering (spec.md §5's
// "diagnostics from a single file are emitted in source order") is a
// property of Collector.Messages, not of emission order.
type Collector struct {
	settings *settings.Settings
	suppress *Suppressor
	messages []ErrorMessage
}

// NewCollector returns a Collector that filters through st and supp.
// supp may be nil, in which case no inline suppressions are honored.
func NewCollector(st *settings.Settings, supp *Suppressor) *Collector {
	return &Collector{settings: st, suppress: supp}
}

// Report implements Logger. A diagnostic whose severity isn't enabled, or
// that's covered by a --suppress entry or an inline suppression comment, is
// dropped silently -- testable property 4 requires that the emitted count
// for a filtered-out severity be exactly zero, not "filtered at render
// time".
func (c *Collector) Report(msg ErrorMessage) {
	if c.settings != nil && !c.settings.Enabled(msg.Severity) {
		return
	}
	if c.settings != nil && suppressedBySetting(c.settings.Suppressions, msg) {
		return
	}
	if c.suppress != nil && c.suppress.Suppressed(msg) {
		return
	}
	c.messages = append(c.messages, msg)
}

// Messages returns every retained diagnostic, sorted by (file, line) per
// spec.md §5's single-file ordering guarantee. The sort is stable so
// same-location diagnostics keep their report order.
func (c *Collector) Messages() []ErrorMessage {
	out := append([]ErrorMessage(nil), c.messages...)
	col := newPathCollator()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Primary(), out[j].Primary()
		if a.File != b.File {
			return col.CompareString(a.File, b.File) < 0
		}
		return a.Line < b.Line
	})
	return out
}

// ErrorCount returns the number of retained diagnostics whose severity is
// "error" -- the CLI's exit-code source per spec.md §6.
func (c *Collector) ErrorCount() int {
	n := 0
	for _, m := range c.messages {
		if m.Severity == settings.SeverityError {
			n++
		}
	}
	return n
}

func suppressedBySetting(supps []settings.Suppression, msg ErrorMessage) bool {
	loc := msg.Primary()
	for _, s := range supps {
		if s.ID != msg.ID {
			continue
		}
		if s.File != "" && s.File != loc.File {
			continue
		}
		if s.Line != 0 && s.Line != loc.Line {
			continue
		}
		return true
	}
	return false
}
