package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cppscan/cppscan/internal/settings"
)

func newTestSettings(enable ...settings.Severity) *settings.Settings {
	b := settings.NewBuilder()
	if len(enable) > 0 {
		b.Enable(enable...)
	}
	return b.Build()
}

func TestCollectorFiltersDisabledSeverity(t *testing.T) {
	c := NewCollector(newTestSettings(), nil)
	c.Report(ErrorMessage{Severity: settings.SeverityStyle, ID: "x", Locations: []Location{{File: "a.c", Line: 1}}})
	if len(c.Messages()) != 0 {
		t.Fatalf("expected style diagnostic to be filtered, got %v", c.Messages())
	}

	c.Report(ErrorMessage{Severity: settings.SeverityError, ID: "memleak", Locations: []Location{{File: "a.c", Line: 1}}})
	if len(c.Messages()) != 1 {
		t.Fatalf("expected error diagnostic to pass through, got %v", c.Messages())
	}
}

func TestCollectorOrdersBySourceLocation(t *testing.T) {
	c := NewCollector(newTestSettings(), nil)
	c.Report(ErrorMessage{Severity: settings.SeverityError, ID: "a", Locations: []Location{{File: "b.c", Line: 5}}})
	c.Report(ErrorMessage{Severity: settings.SeverityError, ID: "b", Locations: []Location{{File: "a.c", Line: 9}}})
	c.Report(ErrorMessage{Severity: settings.SeverityError, ID: "c", Locations: []Location{{File: "a.c", Line: 1}}})

	msgs := c.Messages()
	if msgs[0].ID != "c" || msgs[1].ID != "b" || msgs[2].ID != "a" {
		t.Fatalf("unexpected order: %+v", msgs)
	}
}

func TestCollectorHonorsSuppressSetting(t *testing.T) {
	st := newTestSettings()
	st.Suppressions = []settings.Suppression{{ID: "memleak"}}
	c := NewCollector(st, nil)
	c.Report(ErrorMessage{Severity: settings.SeverityError, ID: "memleak", Locations: []Location{{File: "a.c", Line: 1}}})
	if len(c.Messages()) != 0 {
		t.Fatalf("expected suppressed diagnostic to be dropped")
	}
}

func TestSuppressorInlineComment(t *testing.T) {
	src := "void f(){\n  // cppcheck-suppress memleak\n  char* p = malloc(10);\n}\n"
	s := NewSuppressor()
	s.AddFile("a.c", src)

	msg := ErrorMessage{ID: "memleak", Locations: []Location{{File: "a.c", Line: 3}}}
	if !s.Suppressed(msg) {
		t.Fatalf("expected line 3 to be suppressed")
	}

	other := ErrorMessage{ID: "uninitvar", Locations: []Location{{File: "a.c", Line: 3}}}
	if s.Suppressed(other) {
		t.Fatalf("did not expect a different id to be suppressed")
	}
}

func TestTextSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTextSink(&buf, false)
	sink.WriteAll([]ErrorMessage{
		{Severity: settings.SeverityError, ID: "memleak", Message: "memory leak: p", Locations: []Location{{File: "a.c", Line: 1}}},
	})
	got := buf.String()
	if !strings.Contains(got, "[a.c:1]: (error) memory leak: p") {
		t.Fatalf("unexpected text output: %q", got)
	}
}

func TestXMLSinkVersion1UsesFlatAttributes(t *testing.T) {
	var buf bytes.Buffer
	sink := NewXMLSinkVersion(&buf, 1)
	if err := sink.WriteAll([]ErrorMessage{
		{Severity: settings.SeverityError, ID: "memleak", Message: "leak", Locations: []Location{{File: "a.c", Line: 1}}},
	}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got := buf.String()
	for _, want := range []string{`<results version="1">`, `file="a.c"`, `line="1"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected XML output to contain %q, got %s", want, got)
		}
	}
	if strings.Contains(got, "<location") {
		t.Fatalf("did not expect nested <location> elements in version 1, got %s", got)
	}
}

func TestXMLSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewXMLSink(&buf)
	if err := sink.WriteAll([]ErrorMessage{
		{Severity: settings.SeverityError, ID: "memleak", Message: "leak", Locations: []Location{{File: "a.c", Line: 1}}},
	}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got := buf.String()
	for _, want := range []string{`<results version="2">`, `id="memleak"`, `file="a.c"`, `line="1"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected XML output to contain %q, got %s", want, got)
		}
	}
}
