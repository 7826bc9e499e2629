package settings

import (
	"strings"
	"testing"
)

func TestLoadProjectCompileCommands(t *testing.T) {
	data := []byte(`[
		{"directory": "/src", "file": "a.c", "arguments": ["cc", "-DFOO", "-Iinclude", "a.c"]},
		{"directory": "/src", "file": "b.c", "command": "cc -DBAR -Ivendor b.c"}
	]`)

	b := NewBuilder()
	if err := b.LoadProject(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := b.Build()

	if !contains(s.UserDefines, "FOO") || !contains(s.UserDefines, "BAR") {
		t.Fatalf("expected FOO and BAR defines, got %v", s.UserDefines)
	}
	if !contains(s.IncludePaths, "include") || !contains(s.IncludePaths, "vendor") {
		t.Fatalf("expected include and vendor paths, got %v", s.IncludePaths)
	}
}

func TestLoadProjectPlainObject(t *testing.T) {
	data := []byte(`{"defines": ["DEBUG"], "includePaths": ["include"], "suppressions": [{"id": "memleak", "file": "a.c", "line": 3}]}`)

	b := NewBuilder()
	if err := b.LoadProject(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := b.Build()

	if !contains(s.UserDefines, "DEBUG") {
		t.Fatalf("expected DEBUG define, got %v", s.UserDefines)
	}
	if len(s.Suppressions) != 1 || s.Suppressions[0].ID != "memleak" {
		t.Fatalf("expected one memleak suppression, got %v", s.Suppressions)
	}
}

func TestLoadProjectRejectsInvalidJSON(t *testing.T) {
	b := NewBuilder()
	if err := b.LoadProject([]byte("not json")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestDumpJSONRoundTripsKeyFields(t *testing.T) {
	s := NewBuilder().WithMaxConfigs(5).WithJobCount(4).Enable(SeverityStyle).Build()
	doc, err := DumpJSON(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, `"maxConfigs":5`) {
		t.Fatalf("expected maxConfigs in dump, got %s", doc)
	}
	if !strings.Contains(doc, `"jobCount":4`) {
		t.Fatalf("expected jobCount in dump, got %s", doc)
	}
	if !strings.Contains(doc, `"style"`) {
		t.Fatalf("expected style severity in dump, got %s", doc)
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
