package preprocessor

import "strings"

// collectVariableSymbols scans the raw (pre-expansion) source for every
// symbol tested by an #ifdef/#ifndef, or named as the operand of `defined`
// in an #if/#elif, that the file itself has not #defined before that use
// (other identifiers in an #if expression are not collected). These are the
// symbols whose
// definedness actually distinguishes one build configuration from another;
// spec.md §4.C(b) calls enumerating their power set "the central hard
// problem" the rest of this package exists to solve.
//
// Encounter order is preserved (not sorted) because configuration names are
// built by joining defined members in the order S was discovered, and
// enumeration later assigns configuration identity by binary counting over
// that same order.
func collectVariableSymbols(src string) []string {
	seen := map[string]bool{}
	locallyDefined := map[string]bool{}
	var order []string

	noteCandidate := func(name string) {
		if name == "" || locallyDefined[name] || seen[name] {
			return
		}
		seen[name] = true
		order = append(order, name)
	}

	for _, line := range splitDirectiveLines(src) {
		directive, arg, ok := parseDirectiveLine(line)
		if !ok {
			continue
		}
		switch directive {
		case "define":
			name := firstIdentifier(arg)
			locallyDefined[name] = true
		case "undef":
			name := firstIdentifier(arg)
			delete(locallyDefined, name)
		case "ifdef", "ifndef":
			noteCandidate(firstIdentifier(arg))
		case "if", "elif":
			for _, name := range identifiersAfterDefined(arg) {
				noteCandidate(name)
			}
		}
	}

	return order
}

// identifiersAfterDefined extracts every X in a "defined(X)" or "defined X"
// occurrence within a #if/#elif expression.
func identifiersAfterDefined(expr string) []string {
	toks := ppScan(expr)
	var out []string
	for i := 0; i < len(toks); i++ {
		if toks[i].isIdent && toks[i].text == "defined" {
			if i+1 < len(toks) && toks[i+1].text == "(" && i+2 < len(toks) && toks[i+2].isIdent {
				out = append(out, toks[i+2].text)
				i += 2
				continue
			}
			if i+1 < len(toks) && toks[i+1].isIdent {
				out = append(out, toks[i+1].text)
				i++
			}
		}
	}
	return out
}

func firstIdentifier(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if !isIdentCont(r) {
			return s[:i]
		}
	}
	return s
}

// splitDirectiveLines returns every physical line of src; callers filter to
// directive lines themselves via parseDirectiveLine.
func splitDirectiveLines(src string) []string {
	return strings.Split(src, "\n")
}

// parseDirectiveLine reports whether line (after trimming leading
// whitespace) is a preprocessor directive, and if so, its keyword and the
// remaining text.
func parseDirectiveLine(line string) (directive, arg string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	rest := strings.TrimLeft(trimmed[1:], " \t")
	for i, r := range rest {
		if !isIdentCont(r) {
			return rest[:i], strings.TrimSpace(rest[i:]), true
		}
	}
	return rest, "", true
}

// configSet is one enumerated configuration: the subset of the variable
// symbols treated as defined (with value "1") for this pass, plus the
// display name spec.md §8's scenarios expect (members joined by ";", in
// discovery order; the empty set is named "").
type configSet struct {
	name    string
	defined []string
}

// enumerateConfigurations produces the power set of symbols, ordered by
// binary counting over symbols' discovery order so that, e.g., S=[A,B]
// yields "", "A", "B", "A;B" in that order. If the full power set would
// exceed maxConfigs and force is false, enumeration stops after maxConfigs
// configurations; truncated is then true so the caller can surface it as an
// information diagnostic rather than silently under-covering the file. With
// force set the cap is lifted, but a hard ceiling still applies so a file
// with dozens of variability symbols can't exhaust memory.
func enumerateConfigurations(symbols []string, maxConfigs int, force bool) (configs []configSet, truncated bool) {
	if maxConfigs <= 0 {
		maxConfigs = 1
	}
	const hardCeiling = 1 << 16

	limit := maxConfigs
	if force {
		limit = hardCeiling
	}

	total := 1 << uint(len(symbols))
	count := total
	if count > limit {
		count = limit
		truncated = true
	}
	if count > hardCeiling {
		count = hardCeiling
		truncated = true
	}

	for i := 0; i < count; i++ {
		var members []string
		for j, s := range symbols {
			if i&(1<<uint(j)) != 0 {
				members = append(members, s)
			}
		}
		configs = append(configs, configSet{name: strings.Join(members, ";"), defined: members})
	}
	return configs, truncated
}
