package checks

import (
	"testing"

	"github.com/cppscan/cppscan/internal/check"
	"github.com/cppscan/cppscan/internal/diag"
	"github.com/cppscan/cppscan/internal/settings"
	"github.com/cppscan/cppscan/internal/simplifier"
)

func runCheck(t *testing.T, c check.Check, src string, st *settings.Settings) []diag.ErrorMessage {
	t.Helper()
	list, _ := simplifier.Simplify(src, 0, st)
	collector := diag.NewCollector(st, nil)
	ctx := &check.Context{File: "test.cpp", Settings: st}
	c.RunOnSimplified(list, ctx, collector)
	return collector.Messages()
}

func TestObsoleteFunctionsFlagsGets(t *testing.T) {
	st := settings.NewBuilder().Enable(settings.SeverityStyle).Build()
	msgs := runCheck(t, ObsoleteFunctionsCheck{}, "void f(char*b){ gets(b); }", st)
	if len(msgs) != 1 || msgs[0].ID != "obsoleteFunctionsgets" {
		t.Fatalf("expected one obsoleteFunctionsgets diagnostic, got %+v", msgs)
	}
}

func TestMemoryLeakScenarioS1(t *testing.T) {
	st := settings.NewBuilder().Build()
	msgs := runCheck(t, MemoryLeakCheck{}, "void f(){ char* p = malloc(10); }", st)
	if len(msgs) != 1 || msgs[0].ID != "memleak" {
		t.Fatalf("expected one memleak diagnostic, got %+v", msgs)
	}
}

func TestMemoryLeakFreedIsClean(t *testing.T) {
	st := settings.NewBuilder().Build()
	msgs := runCheck(t, MemoryLeakCheck{}, "void f(){ char* p = malloc(10); free(p); }", st)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", msgs)
	}
}

func TestMemoryLeakReturnedIsClean(t *testing.T) {
	st := settings.NewBuilder().Build()
	msgs := runCheck(t, MemoryLeakCheck{}, "char* f(){ char* p = malloc(10); return p; }", st)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics for returned allocation, got %+v", msgs)
	}
}

func TestBufferOverrunScenarioS2(t *testing.T) {
	st := settings.NewBuilder().Build()
	msgs := runCheck(t, BufferOverrunCheck{}, "void f(){ int a[10]; a[10]=0; }", st)
	if len(msgs) != 1 || msgs[0].ID != "arrayIndexOutOfBounds" {
		t.Fatalf("expected one arrayIndexOutOfBounds diagnostic, got %+v", msgs)
	}
}

func TestBufferOverrunInBoundsIsClean(t *testing.T) {
	st := settings.NewBuilder().Build()
	msgs := runCheck(t, BufferOverrunCheck{}, "void f(){ int a[10]; a[9]=0; }", st)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", msgs)
	}
}

func TestUninitializedVariableScenarioS3(t *testing.T) {
	st := settings.NewBuilder().Build()
	msgs := runCheck(t, UninitializedVariableCheck{}, "int f(){ int x; return x; }", st)
	if len(msgs) != 1 || msgs[0].ID != "uninitvar" {
		t.Fatalf("expected one uninitvar diagnostic, got %+v", msgs)
	}
}

func TestUninitializedVariableInitializedIsClean(t *testing.T) {
	st := settings.NewBuilder().Build()
	msgs := runCheck(t, UninitializedVariableCheck{}, "int f(){ int x = 1; return x; }", st)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", msgs)
	}
}

func TestVirtualDestructorMissing(t *testing.T) {
	st := settings.NewBuilder().Enable(settings.SeverityStyle).Build()
	msgs := runCheck(t, VirtualDestructorCheck{}, "class A { virtual void f(); };", st)
	if len(msgs) != 1 || msgs[0].ID != "virtualDestructor" {
		t.Fatalf("expected one virtualDestructor diagnostic, got %+v", msgs)
	}
}

func TestVirtualDestructorPresentIsClean(t *testing.T) {
	st := settings.NewBuilder().Enable(settings.SeverityStyle).Build()
	msgs := runCheck(t, VirtualDestructorCheck{}, "class A { virtual void f(); virtual ~A(); };", st)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", msgs)
	}
}

func TestSizeZeroCheck(t *testing.T) {
	st := settings.NewBuilder().Enable(settings.SeverityStyle).Build()
	msgs := runCheck(t, SizeZeroCheck{}, "void f(){ int v; if(v.size()==0){} }", st)
	if len(msgs) != 1 || msgs[0].ID != "stlSize" {
		t.Fatalf("expected one stlSize diagnostic, got %+v", msgs)
	}
}

func TestAutoVariableReturnsAddressOfLocal(t *testing.T) {
	st := settings.NewBuilder().Enable(settings.SeverityStyle).Build()
	msgs := runCheck(t, AutoVariableCheck{}, "int* f(){ int x; return &x; }", st)
	if len(msgs) != 1 || msgs[0].ID != "autoVariables" {
		t.Fatalf("expected one autoVariables diagnostic, got %+v", msgs)
	}
}

func TestUnusedFunctionsReportsUncalledDefinition(t *testing.T) {
	st := settings.NewBuilder().Enable(settings.SeverityUnusedFunc).Build()
	list, _ := simplifier.Simplify("void helper(){} int main(){ return 0; }", 0, st)
	collector := diag.NewCollector(st, nil)
	ctx := &check.Context{File: "test.cpp", Settings: st}

	uf := NewUnusedFunctionsCheck()
	uf.RunOnSimplified(list, ctx, collector)
	uf.Finalize(collector)

	msgs := collector.Messages()
	if len(msgs) != 1 || msgs[0].ID != "unusedFunction" {
		t.Fatalf("expected one unusedFunction diagnostic, got %+v", msgs)
	}
}

func TestUnusedFunctionsCalledIsClean(t *testing.T) {
	st := settings.NewBuilder().Enable(settings.SeverityUnusedFunc).Build()
	list, _ := simplifier.Simplify("void helper(){} int main(){ helper(); return 0; }", 0, st)
	collector := diag.NewCollector(st, nil)
	ctx := &check.Context{File: "test.cpp", Settings: st}

	uf := NewUnusedFunctionsCheck()
	uf.RunOnSimplified(list, ctx, collector)
	uf.Finalize(collector)

	if msgs := collector.Messages(); len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", msgs)
	}
}
