// Package codegen generates table driven acceptors for a DFA in Go, C and
// Rust.
package codegen

import (
	"strings"
	"unicode"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// model is a DFA flattened to indices: states and symbols are numbered in
// natural order and delta[s][i] is the target of state s on symbol i, or -1.
type model struct {
	states    []string
	symbols   []string
	delta     [][]int
	initial   int
	accepting []bool
}

func newModel(d *dfa.DFA) *model {
	states := d.States()
	alphabet := d.Alphabet()
	index := make(map[fa.State]int, len(states))
	for i, s := range states {
		index[s] = i
	}

	m := &model{
		states:    make([]string, len(states)),
		symbols:   alphabet.Strings(),
		delta:     make([][]int, len(states)),
		initial:   index[d.Initial()],
		accepting: make([]bool, len(states)),
	}
	for i, s := range states {
		m.states[i] = s.String()
		m.accepting[i] = d.IsFinal(s)
		row := make([]int, len(alphabet))
		for j, sym := range alphabet {
			row[j] = -1
			if to, ok := d.Next(s, sym); ok {
				row[j] = index[to]
			}
		}
		m.delta[i] = row
	}
	return m
}

// Helper functions

func sanitizeName(s string) string {
	if s == "" {
		return "unnamed"
	}
	var result strings.Builder
	for i, r := range s {
		if unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) || r == '_' {
			result.WriteRune(r)
		} else if r == ' ' || r == '-' {
			result.WriteRune('_')
		}
	}
	name := result.String()
	if name == "" {
		return "unnamed"
	}
	return name
}

func toPascalCase(s string) string {
	words := splitWords(s)
	var result strings.Builder
	for _, word := range words {
		r := []rune(word)
		result.WriteString(strings.ToUpper(string(r[:1])))
		result.WriteString(strings.ToLower(string(r[1:])))
	}
	if result.Len() == 0 {
		return "Unknown"
	}
	return result.String()
}

func toSnakeCase(s string) string {
	words := splitWords(s)
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, "_")
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
}
