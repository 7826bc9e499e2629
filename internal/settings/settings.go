// Package settings defines the immutable configuration the rest of the
// analyzer is built from. A Settings value is constructed once — by the CLI
// front end or by a test — and never mutated afterward; every component that
// needs it receives a pointer and only ever reads through it.
package settings

import "sync/atomic"

// Severity is one of the diagnostic kinds a checker can emit. It doubles as
// the vocabulary for the --enable flag.
type Severity string

const (
	SeverityError       Severity = "error"
	SeverityWarning     Severity = "warning"
	SeverityStyle       Severity = "style"
	SeverityPerformance Severity = "performance"
	SeverityPortability Severity = "portability"
	SeverityInformation Severity = "information"
	SeverityUnusedFunc  Severity = "unusedFunction"
	SeverityMissingInc  Severity = "missingInclude"
	SeverityDebug       Severity = "debug"
)

// Platform selects the integer/long/pointer width table constant folding and
// sizeof() resolution use.
type Platform int

const (
	PlatformUnspecified Platform = iota
	PlatformUnix32
	PlatformUnix64
	PlatformWin32A
	PlatformWin32W
	PlatformWin64
)

// Standard selects which header/library surface is considered "known" for
// purposes of obsolete-function and missing-include checks.
type Standard string

const (
	StandardC     Standard = "C"
	StandardCpp   Standard = "C++"
	StandardPosix Standard = "Posix"
)

// Settings is the recognized option set from spec.md §3. Every field here is
// set once at construction; Settings itself never exposes a mutator.
type Settings struct {
	SeverityEnabled     map[Severity]bool
	Inconclusive        bool
	InlineSuppressions  bool
	Force               bool
	MaxConfigs          int
	UserDefines         []string
	ForcedUndefines     []string
	IncludePaths        []string
	Standards           []Standard
	Platform            Platform
	JobCount            int
	Suppressions        []Suppression
	Terminate           *atomic.Bool
}

// Suppression is one --suppress=<id>[:file[:line]] entry.
type Suppression struct {
	ID   string
	File string // empty means "any file"
	Line int    // zero means "any line"
}

// Builder accumulates options before producing an immutable Settings. This
// mirrors the teacher's evaluator.Config construction: a plain struct filled
// in by the caller, then handed off and never written to again.
type Builder struct {
	s Settings
}

// NewBuilder returns a Builder seeded with the documented defaults: no
// severities enabled beyond "error" (which is always implicitly on), no
// inconclusive findings, a max-configs cap of 12, and the host-equivalent
// platform left unspecified.
func NewBuilder() *Builder {
	return &Builder{
		s: Settings{
			SeverityEnabled: map[Severity]bool{SeverityError: true},
			MaxConfigs:      12,
			JobCount:        1,
			Terminate:       &atomic.Bool{},
		},
	}
}

// Enable turns on one or more diagnostic severities. "all" enables every
// severity except debug, matching --enable=all.
func (b *Builder) Enable(kinds ...Severity) *Builder {
	for _, k := range kinds {
		if k == "all" {
			for _, s := range []Severity{SeverityWarning, SeverityStyle, SeverityPerformance,
				SeverityPortability, SeverityInformation, SeverityUnusedFunc, SeverityMissingInc} {
				b.s.SeverityEnabled[s] = true
			}
			continue
		}
		b.s.SeverityEnabled[k] = true
	}
	return b
}

// WithInconclusive sets the inconclusive flag.
func (b *Builder) WithInconclusive(v bool) *Builder { b.s.Inconclusive = v; return b }

// WithInlineSuppressions sets the inline-suppressions flag.
func (b *Builder) WithInlineSuppressions(v bool) *Builder { b.s.InlineSuppressions = v; return b }

// WithForce sets the force flag (check all configurations regardless of
// combinatorial size).
func (b *Builder) WithForce(v bool) *Builder { b.s.Force = v; return b }

// WithMaxConfigs caps the number of preprocessor configurations enumerated
// per file. A value <= 0 means "no cap" only when Force is also set.
func (b *Builder) WithMaxConfigs(n int) *Builder { b.s.MaxConfigs = n; return b }

// WithDefines appends -D<name>[=<value>] symbols.
func (b *Builder) WithDefines(defs ...string) *Builder {
	b.s.UserDefines = append(b.s.UserDefines, defs...)
	return b
}

// WithUndefines appends -U<name> symbols: the preprocessor never varies
// these across configurations and always treats them as undefined, even if
// the file's own #ifdef set would otherwise have enumerated a branch where
// they are defined.
func (b *Builder) WithUndefines(names ...string) *Builder {
	b.s.ForcedUndefines = append(b.s.ForcedUndefines, names...)
	return b
}

// WithIncludePaths appends -I<path> search roots.
func (b *Builder) WithIncludePaths(paths ...string) *Builder {
	b.s.IncludePaths = append(b.s.IncludePaths, paths...)
	return b
}

// WithStandards sets the recognized header/library standards.
func (b *Builder) WithStandards(std ...Standard) *Builder {
	b.s.Standards = append(b.s.Standards, std...)
	return b
}

// WithPlatform sets the integer/pointer width table.
func (b *Builder) WithPlatform(p Platform) *Builder { b.s.Platform = p; return b }

// WithJobCount sets the orchestrator's worker-process count.
func (b *Builder) WithJobCount(n int) *Builder {
	if n < 1 {
		n = 1
	}
	b.s.JobCount = n
	return b
}

// WithSuppressions appends --suppress entries.
func (b *Builder) WithSuppressions(supps ...Suppression) *Builder {
	b.s.Suppressions = append(b.s.Suppressions, supps...)
	return b
}

// Build freezes the accumulated options into a Settings value. The returned
// Settings shares no mutable slice backing arrays with the Builder: further
// calls on the Builder after Build do not affect it.
func (b *Builder) Build() *Settings {
	out := b.s
	out.SeverityEnabled = cloneSeverityMap(b.s.SeverityEnabled)
	out.UserDefines = append([]string(nil), b.s.UserDefines...)
	out.ForcedUndefines = append([]string(nil), b.s.ForcedUndefines...)
	out.IncludePaths = append([]string(nil), b.s.IncludePaths...)
	out.Standards = append([]Standard(nil), b.s.Standards...)
	out.Suppressions = append([]Suppression(nil), b.s.Suppressions...)
	return &out
}

func cloneSeverityMap(m map[Severity]bool) map[Severity]bool {
	out := make(map[Severity]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Enabled reports whether a severity should be emitted. Error is always
// enabled; it isn't gated by --enable.
func (s *Settings) Enabled(sev Severity) bool {
	if sev == SeverityError {
		return true
	}
	return s.SeverityEnabled[sev]
}

// ShouldTerminate reports whether cooperative cancellation has been
// requested. It is advisory: callers poll it between iterations of any
// long-running loop (preprocessor enumeration, simplifier phases, the
// execution-path engine) and return a no-result shortcut when set.
func (s *Settings) ShouldTerminate() bool {
	return s.Terminate != nil && s.Terminate.Load()
}
