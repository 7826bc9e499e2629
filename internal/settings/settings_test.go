package settings

import "testing"

func TestBuilderDefaults(t *testing.T) {
	s := NewBuilder().Build()
	if !s.Enabled(SeverityError) {
		t.Fatalf("error severity should always be enabled")
	}
	if s.Enabled(SeverityStyle) {
		t.Fatalf("style should be disabled by default")
	}
	if s.MaxConfigs != 12 {
		t.Fatalf("expected default max-configs 12, got %d", s.MaxConfigs)
	}
}

func TestBuilderEnableAll(t *testing.T) {
	s := NewBuilder().Enable("all").Build()
	for _, sev := range []Severity{SeverityWarning, SeverityStyle, SeverityPerformance,
		SeverityPortability, SeverityInformation, SeverityUnusedFunc, SeverityMissingInc} {
		if !s.Enabled(sev) {
			t.Fatalf("expected %s enabled by --enable=all", sev)
		}
	}
}

func TestBuilderIsolatesSlicesFromLaterMutation(t *testing.T) {
	b := NewBuilder().WithDefines("FOO")
	s1 := b.Build()
	b.WithDefines("BAR")
	if len(s1.UserDefines) != 1 {
		t.Fatalf("Build() snapshot should not see defines added afterward, got %v", s1.UserDefines)
	}
}

func TestShouldTerminate(t *testing.T) {
	s := NewBuilder().Build()
	if s.ShouldTerminate() {
		t.Fatalf("expected terminate flag unset initially")
	}
	s.Terminate.Store(true)
	if !s.ShouldTerminate() {
		t.Fatalf("expected terminate flag observed once set")
	}
}

func TestPlatformToMathlib(t *testing.T) {
	cases := map[Platform]bool{
		PlatformUnspecified: true,
		PlatformUnix32:      true,
		PlatformUnix64:      true,
		PlatformWin32A:      true,
		PlatformWin32W:      true,
		PlatformWin64:       true,
	}
	for p := range cases {
		_ = p.ToMathlib()
	}
}
