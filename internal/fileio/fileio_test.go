package fileio

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestMemListerListFiltersByPrefix(t *testing.T) {
	m := NewMemLister(map[string]string{
		"src/a.c":   "a",
		"src/b.c":   "b",
		"other/c.c": "c",
	})

	got, err := m.List("src", true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 || got[0] != "src/a.c" || got[1] != "src/b.c" {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestMemListerOpenReturnsContents(t *testing.T) {
	m := NewMemLister(map[string]string{"a.c": "hello"})

	rc, err := m.Open("a.c")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected hello, got %q", data)
	}
}

func TestMemListerOpenMissingIsError(t *testing.T) {
	m := NewMemLister(nil)
	if _, err := m.Open("missing.c"); err == nil {
		t.Fatalf("expected error opening unknown path")
	}
}

func TestFSListerListsSourceFilesRecursively(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.c"), []byte("void f(){}"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.hpp"), []byte("struct B{};"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	l := NewFSLister()
	got, err := l.List(dir, true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 source files, got %+v", got)
	}
}

func TestFSListerNonRecursiveSkipsNested(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.c"), []byte("void f(){}"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.c"), []byte("void g(){}"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	l := NewFSLister()
	got, err := l.List(dir, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 top-level source file, got %+v", got)
	}
}

func TestMatchIncludeCandidateGlob(t *testing.T) {
	if !MatchIncludeCandidate("*.h", "foo.h") {
		t.Fatalf("expected foo.h to match *.h")
	}
	if MatchIncludeCandidate("*.h", "foo.cpp") {
		t.Fatalf("expected foo.cpp not to match *.h")
	}
	if !MatchIncludeCandidate("vendor/**/*.h", "vendor/lib/foo.h") {
		t.Fatalf("expected nested header to match vendor/**/*.h")
	}
}

func TestFSListerSingleFileArgument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.c")
	if err := os.WriteFile(path, []byte("void f(){}"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	l := NewFSLister()
	got, err := l.List(path, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0] != path {
		t.Fatalf("expected single file path, got %+v", got)
	}
}
