package settings

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// LoadProject reads a cppcheck-style project file: either a compile_commands
// database (an array of {"directory","command"|"arguments","file"} objects,
// from which -D/-I flags are extracted) or a plain JSON object of the form
// {"defines": [...], "includePaths": [...]}. The project file is never
// mutated; gjson only ever reads it.
func (b *Builder) LoadProject(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("settings: project file is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if root.IsArray() {
		return b.loadCompileCommands(root)
	}
	return b.loadPlainProject(root)
}

func (b *Builder) loadCompileCommands(root gjson.Result) error {
	for _, entry := range root.Array() {
		args := entry.Get("arguments")
		cmd := entry.Get("command")
		switch {
		case args.Exists():
			for _, a := range args.Array() {
				b.applyCompilerFlag(a.String())
			}
		case cmd.Exists():
			for _, tok := range splitCommandLine(cmd.String()) {
				b.applyCompilerFlag(tok)
			}
		}
	}
	return nil
}

func (b *Builder) loadPlainProject(root gjson.Result) error {
	for _, d := range root.Get("defines").Array() {
		b.WithDefines(d.String())
	}
	for _, p := range root.Get("includePaths").Array() {
		b.WithIncludePaths(p.String())
	}
	for _, s := range root.Get("suppressions").Array() {
		b.WithSuppressions(Suppression{
			ID:   s.Get("id").String(),
			File: s.Get("file").String(),
			Line: int(s.Get("line").Int()),
		})
	}
	return nil
}

func (b *Builder) applyCompilerFlag(flag string) {
	switch {
	case len(flag) > 2 && flag[:2] == "-D":
		b.WithDefines(flag[2:])
	case len(flag) > 2 && flag[:2] == "-I":
		b.WithIncludePaths(flag[2:])
	}
}

func splitCommandLine(cmd string) []string {
	var out []string
	var cur []rune
	inQuote := rune(0)
	for _, r := range cmd {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				cur = append(cur, r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case r == ' ' || r == '\t':
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
		default:
			cur = append(cur, r)
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// DumpJSON serializes a resolved Settings back to JSON for the CLI's
// --dump-settings debug flag, building the document incrementally with
// sjson rather than a struct tag-driven marshaler so the two tidwall
// packages used to read a project file are also exercised on the write side.
func DumpJSON(s *Settings) (string, error) {
	doc := "{}"
	var err error

	doc, err = sjson.Set(doc, "maxConfigs", s.MaxConfigs)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "jobCount", s.JobCount)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "inconclusive", s.Inconclusive)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "force", s.Force)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "defines", s.UserDefines)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "includePaths", s.IncludePaths)
	if err != nil {
		return "", err
	}

	var severities []string
	for sev, on := range s.SeverityEnabled {
		if on {
			severities = append(severities, string(sev))
		}
	}
	doc, err = sjson.Set(doc, "severities", severities)
	if err != nil {
		return "", err
	}

	return doc, nil
}
