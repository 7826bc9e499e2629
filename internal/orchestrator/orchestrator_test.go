package orchestrator

import (
	"context"
	"testing"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/checks"
	"github.com/cppscan/cppscan/internal/fileset"
	"github.com/cppscan/cppscan/internal/settings"
)

func TestRunReportsMemoryLeakAcrossFiles(t *testing.T) {
	fs := fileset.New()
	fs.Add("a.c", "void f(){ char* p = malloc(10); }")
	fs.Add("b.c", "void g(){ char* q = malloc(10); free(q); }")

	st := settings.NewBuilder().Build()
	registry := check.NewRegistry().Register(checks.MemoryLeakCheck{})
	o := New(st, registry)

	collector, err := o.Run(context.Background(), fs, []string{"a.c", "b.c"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	msgs := collector.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected one leak diagnostic, got %+v", msgs)
	}
	if msgs[0].Primary().File != "a.c" {
		t.Fatalf("expected leak reported in a.c, got %+v", msgs[0])
	}
}

func TestRunHonorsJobCountOfOne(t *testing.T) {
	fs := fileset.New()
	fs.Add("a.c", "void f(){}")

	st := settings.NewBuilder().WithJobCount(1).Build()
	registry := check.NewRegistry()
	o := New(st, registry)

	if _, err := o.Run(context.Background(), fs, []string{"a.c"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunUnusedFunctionsFinalizesOnce(t *testing.T) {
	fs := fileset.New()
	fs.Add("a.c", "void helper(){}")
	fs.Add("b.c", "int main(){ helper(); return 0; }")

	st := settings.NewBuilder().Enable(settings.SeverityUnusedFunc).Build()
	registry := check.NewRegistry().Register(checks.NewUnusedFunctionsCheck())
	o := New(st, registry)

	collector, err := o.Run(context.Background(), fs, []string{"a.c", "b.c"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if msgs := collector.Messages(); len(msgs) != 0 {
		t.Fatalf("expected helper (declared in a.c, called from b.c) to count as used, got %+v", msgs)
	}
}
