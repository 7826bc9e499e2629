package cppscan

import (
	"context"
	"testing"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/checks"
	"github.com/cppscan/cppscan/internal/fileio"
)

func TestRunReportsLeakAndExitCode(t *testing.T) {
	lister := fileio.NewMemLister(map[string]string{
		"a.c": "void f(){ char* p = malloc(10); }",
		"b.c": "void g(){ char* q = malloc(10); free(q); }",
	})

	st := NewBuilder().Build()
	registry := check.NewRegistry().Register(checks.MemoryLeakCheck{})

	res, err := Run(context.Background(), lister, []string{""}, true, st, registry)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(res.Messages) != 1 {
		t.Fatalf("expected one message, got %+v", res.Messages)
	}
	if res.ExitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", res.ExitCode)
	}
}

func TestRunCleanFileHasZeroExitCode(t *testing.T) {
	lister := fileio.NewMemLister(map[string]string{
		"a.c": "void f(){ char* p = malloc(10); free(p); }",
	})

	st := NewBuilder().Build()
	registry := check.NewRegistry().Register(checks.MemoryLeakCheck{})

	res, err := Run(context.Background(), lister, []string{""}, true, st, registry)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", res.ExitCode)
	}
}

func TestRunDecodesUTF8BOMSource(t *testing.T) {
	const bom = "\xEF\xBB\xBF"
	lister := fileio.NewMemLister(map[string]string{
		"a.c": bom + "void f(){ char* p = malloc(10); }",
	})

	st := NewBuilder().Build()
	registry := check.NewRegistry().Register(checks.MemoryLeakCheck{})

	res, err := Run(context.Background(), lister, []string{""}, true, st, registry)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(res.Messages) != 1 {
		t.Fatalf("expected the BOM-prefixed file to tokenize and report one leak, got %+v", res.Messages)
	}
}

func TestDefaultRegistryRunsWithoutError(t *testing.T) {
	lister := fileio.NewMemLister(map[string]string{"a.c": "int main(){ return 0; }"})
	st := NewBuilder().Build()

	if _, err := Run(context.Background(), lister, []string{""}, true, st, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
