// Package typechecker is a best-effort static pre-pass over raw source
// text. It collects declared parameter types from function headers and
// flags call sites whose literal arguments disagree with them. Arguments
// that are not literals (variables, nested expressions) are never flagged:
// their types are only known at runtime.
package typechecker

import (
	"fmt"
	"strings"
)

// Finding is one diagnostic: a 1-based source line and a message.
type Finding struct {
	Line    int
	Message string
}

// CheckSource scans the whole script and returns all findings in source
// order. An empty result means the script passed.
func CheckSource(source string) []Finding {
	lines := strings.Split(source, "\n")

	type signature struct {
		name  string
		types []string
	}
	var sigs []signature

	// Pass 1: collect parameter type annotations from function headers.
	// Unannotated parameters contribute nothing.
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "function ") {
			continue
		}
		rest := line[len("function "):]
		nameEnd := identEnd(rest, 0)
		name := rest[:nameEnd]
		if name == "" {
			continue
		}
		open := strings.Index(rest[nameEnd:], "(")
		if open < 0 {
			continue
		}
		open += nameEnd
		end := strings.Index(rest[open:], ")")
		if end < 0 {
			continue
		}
		end += open

		var types []string
		for _, param := range strings.Split(rest[open+1:end], ",") {
			if colon := strings.Index(param, ":"); colon >= 0 {
				types = append(types, strings.TrimSpace(param[colon+1:]))
			}
		}
		sigs = append(sigs, signature{name: name, types: types})
	}

	// Pass 2: check the first call site of each known function per line.
	var findings []Finding
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		for _, sig := range sigs {
			call := strings.Index(line, sig.name+"(")
			if call < 0 {
				continue
			}
			argStart := call + len(sig.name) + 1
			argEnd := strings.Index(line[argStart:], ")")
			if argEnd < 0 {
				continue
			}
			args := strings.Split(line[argStart:argStart+argEnd], ",")
			for ai, arg := range args {
				if ai >= len(sig.types) {
					break
				}
				arg = strings.TrimSpace(arg)
				shape, literal := literalShape(arg)
				if !literal {
					continue
				}
				if expected := sig.types[ai]; expected != shape &&
					(expected == "number" || expected == "string" || expected == "boolean") {
					findings = append(findings, Finding{
						Line:    i + 1,
						Message: fmt.Sprintf("Argument %d to %s should be a %s", ai+1, sig.name, expected),
					})
				}
			}
		}
	}
	return findings
}

// literalShape classifies an argument's lexical shape. The second result is
// false when the argument is not a literal at all.
func literalShape(arg string) (string, bool) {
	if arg == "true" || arg == "false" {
		return "boolean", true
	}
	if len(arg) >= 2 {
		if (arg[0] == '"' && arg[len(arg)-1] == '"') ||
			(arg[0] == '\'' && arg[len(arg)-1] == '\'') {
			return "string", true
		}
	}
	if len(arg) > 0 && (arg[0] >= '0' && arg[0] <= '9' || arg[0] == '.') {
		return "number", true
	}
	return "", false
}

// identEnd returns the end of the identifier starting at pos.
func identEnd(s string, pos int) int {
	for pos < len(s) {
		c := s[pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			c >= '0' && c <= '9' || c == '_' {
			pos++
			continue
		}
		break
	}
	return pos
}
