package diag

import (
	"bytes"
	"testing"

	"github.com/cppscan/cppscan/internal/settings"
	"github.com/gkampitakis/go-snaps/snaps"
)

// sampleMessages is a small, representative run's worth of diagnostics,
// covering a single-location finding, a multi-location one (the shape a
// leak's allocation-then-end-of-life trace produces), and each severity the
// sinks render distinctly.
func sampleMessages() []ErrorMessage {
	return []ErrorMessage{
		{
			Severity:  settings.SeverityError,
			ID:        "memleak",
			Message:   "Memory leak: p",
			Locations: []Location{{File: "a.c", Line: 4}, {File: "a.c", Line: 2}},
		},
		{
			Severity:  settings.SeverityStyle,
			ID:        "stlSize",
			Message:   "Checking container size with size()==0 is inefficient, use empty() instead",
			Locations: []Location{{File: "b.c", Line: 10}},
		},
		{
			Severity:  settings.SeverityWarning,
			ID:        "uninitMemberVar",
			Message:   "Member variable not initialized in constructor",
			Locations: []Location{{File: "c.cpp", Line: 7}},
		},
	}
}

func TestTextSinkRendersAccumulatedDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	NewTextSink(&buf, false).WriteAll(sampleMessages())
	snaps.MatchSnapshot(t, "text_sink_output", buf.String())
}

func TestXMLSinkRendersAccumulatedDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	if err := NewXMLSink(&buf).WriteAll(sampleMessages()); err != nil {
		t.Fatalf("WriteAll returned error: %v", err)
	}
	snaps.MatchSnapshot(t, "xml_sink_output", buf.String())
}
