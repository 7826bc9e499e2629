package preprocessor

import (
	"fmt"
	"path"
	"strings"

	"github.com/cppscan/cppscan/internal/fileset"
	"github.com/cppscan/cppscan/internal/settings"
)

// Diagnostic is the preprocessor's own, minimal notion of a reported
// problem. The orchestrator converts these into diag.ErrorMessage values;
// the preprocessor itself has no dependency on diag so it can be exercised
// standalone.
type Diagnostic struct {
	Severity settings.Severity
	ID       string
	File     string
	Line     int
	Message  string
}

const maxIncludeDepth = 200

// Expand enumerates the configurations of the file at rootPath (already
// registered in fs) and fully macro-expands + conditionally-prunes each one,
// per spec.md §4.C. Each returned Configuration's Source is plain text;
// tokenizing it is internal/lexer's job.
func Expand(fs *fileset.Set, rootPath string, st *settings.Settings) ([]Configuration, []Diagnostic, error) {
	raw, ok := fs.Contents(rootPath)
	if !ok {
		return nil, nil, fmt.Errorf("preprocessor: unknown file %q", rootPath)
	}

	src := stripComments(joinContinuations(raw))
	symbols := excludeForcedUndefines(collectVariableSymbols(src), st.ForcedUndefines)
	configs, truncated := enumerateConfigurations(symbols, st.MaxConfigs, st.Force)

	var diags []Diagnostic
	if truncated {
		diags = append(diags, Diagnostic{
			Severity: settings.SeverityInformation,
			ID:       "toomanyconfigs",
			File:     rootPath,
			Message:  fmt.Sprintf("%q has more preprocessor configurations than max-configs; some were not checked", rootPath),
		})
	}

	var out []Configuration
	dir := path.Dir(rootPath)

	for _, cs := range configs {
		if st.ShouldTerminate() {
			return out, diags, ErrTerminated
		}

		mt := newTable()
		mt.seed(st.UserDefines)
		for _, d := range cs.defined {
			mt.define(d, nil, false, false, "1")
		}

		p := &processor{
			mt:       mt,
			resolver: newIncludeResolver(fs.Contents, st.IncludePaths),
			st:       st,
		}

		if err := p.run(rootPath, dir, strings.Split(src, "\n"), 0); err != nil {
			if err == ErrTerminated {
				return out, append(diags, p.diags...), err
			}
			diags = append(diags, p.diags...)
			diags = append(diags, Diagnostic{
				Severity: settings.SeverityError,
				ID:       "syntaxError",
				File:     rootPath,
				Message:  fmt.Sprintf("configuration %q: unbalanced #if/#endif", cs.name),
			})
			continue
		}

		out = append(out, Configuration{Name: cs.name, Source: p.out.String()})
		diags = append(diags, p.diags...)
	}

	return out, diags, nil
}

// excludeForcedUndefines drops every -U'd symbol from the variability set so
// enumerateConfigurations never produces a branch where it's defined.
func excludeForcedUndefines(symbols, forced []string) []string {
	if len(forced) == 0 {
		return symbols
	}
	drop := make(map[string]bool, len(forced))
	for _, f := range forced {
		drop[f] = true
	}
	out := symbols[:0:0]
	for _, s := range symbols {
		if !drop[s] {
			out = append(out, s)
		}
	}
	return out
}

// conditionalFrame tracks one nested #if/#elif/#else/#endif block, the same
// three-bit state (is an ancestor active, has this frame already taken a
// branch, is this exact branch active) that drives which physical lines
// make it into the expanded output.
type conditionalFrame struct {
	parentActive bool
	everTaken    bool
	active       bool
}

type processor struct {
	mt       *table
	resolver *includeResolver
	st       *settings.Settings
	out      strings.Builder
	frames   []conditionalFrame
	diags    []Diagnostic
}

func (p *processor) currentlyActive() bool {
	if len(p.frames) == 0 {
		return true
	}
	return p.frames[len(p.frames)-1].active
}

func (p *processor) run(file, dir string, lines []string, depth int) error {
	if depth > maxIncludeDepth {
		return ErrSyntax
	}

	for _, line := range lines {
		if p.st.ShouldTerminate() {
			return ErrTerminated
		}

		directive, arg, isDirective := parseDirectiveLine(line)
		if !isDirective {
			if p.currentlyActive() {
				p.out.WriteString(p.mt.expandLine(line))
			}
			p.out.WriteByte('\n')
			continue
		}

		switch directive {
		case "if":
			p.pushIf(arg)
		case "ifdef":
			p.pushIf("defined(" + strings.TrimSpace(arg) + ")")
		case "ifndef":
			p.pushIf("!defined(" + strings.TrimSpace(arg) + ")")
		case "elif":
			if err := p.handleElif(arg); err != nil {
				return err
			}
		case "else":
			p.handleElse()
		case "endif":
			if len(p.frames) == 0 {
				return ErrSyntax
			}
			p.frames = p.frames[:len(p.frames)-1]
		case "define":
			if p.currentlyActive() {
				if def := parseDefineDirective(arg); def != nil {
					p.mt.macros[def.name] = def
				}
			}
		case "undef":
			if p.currentlyActive() {
				p.mt.undefine(firstIdentifier(arg))
			}
		case "include":
			if p.currentlyActive() {
				if err := p.handleInclude(file, dir, arg, depth); err != nil {
					return err
				}
			}
		case "error":
			if p.currentlyActive() {
				p.diags = append(p.diags, Diagnostic{
					Severity: settings.SeverityError,
					ID:       "preprocessorErrorDirective",
					File:     file,
					Message:  strings.TrimSpace(arg),
				})
			}
		default:
			// pragma, warning, line, and anything unrecognized: ignored.
		}
		p.out.WriteByte('\n')
	}

	if len(p.frames) != 0 {
		return ErrSyntax
	}
	return nil
}

func (p *processor) pushIf(expr string) {
	parentActive := p.currentlyActive()
	cond := false
	if parentActive {
		v, err := evalIfExpression(expr, p.mt)
		cond = err == nil && v
	}
	p.frames = append(p.frames, conditionalFrame{
		parentActive: parentActive,
		everTaken:    cond,
		active:       cond,
	})
}

func (p *processor) handleElif(expr string) error {
	if len(p.frames) == 0 {
		return ErrSyntax
	}
	f := &p.frames[len(p.frames)-1]
	if !f.parentActive || f.everTaken {
		f.active = false
		return nil
	}
	v, err := evalIfExpression(expr, p.mt)
	f.active = err == nil && v
	if f.active {
		f.everTaken = true
	}
	return nil
}

func (p *processor) handleElse() {
	if len(p.frames) == 0 {
		return
	}
	f := &p.frames[len(p.frames)-1]
	if !f.parentActive || f.everTaken {
		f.active = false
		return
	}
	f.active = true
	f.everTaken = true
}

func (p *processor) handleInclude(file, dir, arg string, depth int) error {
	expanded := p.mt.expandLine(arg)
	target, quoted, ok := parseIncludeDirective(expanded)
	if !ok {
		target, quoted, ok = parseIncludeDirective(arg)
	}
	if !ok {
		return nil
	}

	resolvedPath, contents, found := p.resolver.resolve(target, quoted, dir)
	if !found {
		p.diags = append(p.diags, Diagnostic{
			Severity: settings.SeverityMissingInc,
			ID:       "missingInclude",
			File:     file,
			Message:  fmt.Sprintf("%q: not found", target),
		})
		return nil
	}

	cleaned := stripComments(joinContinuations(contents))
	return p.run(resolvedPath, path.Dir(resolvedPath), strings.Split(cleaned, "\n"), depth+1)
}
