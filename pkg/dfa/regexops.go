package dfa

import (
	"strings"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// Helpers that combine regex strings while eliminating states. The empty
// string means "no path" and absorbs concatenation; fa.EpsilonMarker is the
// empty word and is the identity of concatenation.

const eps = fa.EpsilonMarker

// enclosed reports whether s is wrapped by a single matching pair of
// parentheses.
func enclosed(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return true
}

// bracket wraps s in parentheses unless it is a single character or
// already parenthesised.
func bracket(s string) string {
	if len(s) <= 1 || enclosed(s) {
		return s
	}
	return "(" + s + ")"
}

// alternatives splits s on '+' at nesting depth zero.
func alternatives(s string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '+':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

func concatRegex(a, b string) string {
	if a == "" || b == "" {
		return ""
	}
	if a == eps {
		return b
	}
	if b == eps {
		return a
	}
	if len(alternatives(a)) > 1 {
		a = "(" + a + ")"
	}
	if len(alternatives(b)) > 1 {
		b = "(" + b + ")"
	}
	return a + b
}

func starRegex(s string) string {
	if s == "" || s == eps {
		return eps
	}
	return bracket(s) + "*"
}

// unionRegex merges the top-level alternatives of a and b, keeping the
// first occurrence of each and dropping empty ones.
func unionRegex(a, b string) string {
	seen := make(map[string]bool)
	var alts []string
	for _, part := range append(alternatives(a), alternatives(b)...) {
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		alts = append(alts, part)
	}
	return strings.Join(alts, "+")
}
