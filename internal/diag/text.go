package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// TextSink renders diagnostics in cppcheck's classic one-line text form:
// "[file:line]: (severity) message", matching spec.md §6. Color replaces
// the teacher's hand-rolled ANSI escapes (internal/errors.CompilerError.Format)
// with github.com/fatih/color so severities are visually distinct on a
// terminal and plain on a redirected pipe (color auto-detects that for us).
type TextSink struct {
	w      io.Writer
	colors bool
}

// NewTextSink returns a sink writing to w. When colors is true, severities
// are colorized (error/red, warning/yellow, style/cyan, everything else
// plain) the way the teacher's CLI colors its own error output.
func NewTextSink(w io.Writer, colors bool) *TextSink {
	return &TextSink{w: w, colors: colors}
}

// WriteAll renders every message in msgs, one line per message, in the
// order given -- callers pass Collector.Messages(), which is already
// source-ordered.
func (s *TextSink) WriteAll(msgs []ErrorMessage) {
	for _, m := range msgs {
		fmt.Fprintln(s.w, s.line(m))
	}
}

func (s *TextSink) line(m ErrorMessage) string {
	loc := m.Primary()
	var b strings.Builder
	fmt.Fprintf(&b, "[%s:%d]: (", loc.File, loc.Line)
	b.WriteString(s.severityText(m))
	fmt.Fprintf(&b, ") %s", m.Message)
	if len(m.Locations) > 1 {
		b.WriteString(" [")
		for i, l := range m.Locations[1:] {
			if i > 0 {
				b.WriteString(" <- ")
			}
			fmt.Fprintf(&b, "%s:%d", l.File, l.Line)
		}
		b.WriteString("]")
	}
	return b.String()
}

func (s *TextSink) severityText(m ErrorMessage) string {
	text := fmt.Sprintf("%s", m.Severity)
	if !s.colors {
		return text
	}
	switch m.Severity {
	case "error":
		return color.New(color.FgRed, color.Bold).Sprint(text)
	case "warning":
		return color.New(color.FgYellow).Sprint(text)
	case "style":
		return color.New(color.FgCyan).Sprint(text)
	default:
		return text
	}
}
