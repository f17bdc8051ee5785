package fa

import (
	"sort"
	"strings"
)

// Symbol is one atomic input of an automaton.
type Symbol string

// Epsilon labels an NFA transition that consumes no input. It is never part
// of an Alphabet.
const Epsilon Symbol = ""

// EpsilonMarker is how epsilon is spelled inside regex strings.
const EpsilonMarker = "$"

func (s Symbol) String() string {
	if s == Epsilon {
		return "ε"
	}
	return string(s)
}

// Alphabet is a sorted, duplicate free list of symbols.
type Alphabet []Symbol

// NewAlphabet builds an alphabet from symbols, dropping Epsilon.
func NewAlphabet(symbols ...Symbol) Alphabet {
	seen := make(map[Symbol]bool, len(symbols))
	a := make(Alphabet, 0, len(symbols))
	for _, s := range symbols {
		if s == Epsilon || seen[s] {
			continue
		}
		seen[s] = true
		a = append(a, s)
	}
	sort.Slice(a, func(i, j int) bool {
		return naturalCompare(string(a[i]), string(a[j])) < 0
	})
	return a
}

// Contains reports whether s is in a.
func (a Alphabet) Contains(s Symbol) bool {
	i := sort.Search(len(a), func(i int) bool {
		return naturalCompare(string(a[i]), string(s)) >= 0
	})
	return i < len(a) && a[i] == s
}

// Equal reports whether a and b hold the same symbols.
func (a Alphabet) Equal(b Alphabet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Union returns the symbols of a and b.
func (a Alphabet) Union(b Alphabet) Alphabet {
	all := make([]Symbol, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return NewAlphabet(all...)
}

// Strings returns the symbols as plain strings.
func (a Alphabet) Strings() []string {
	out := make([]string, len(a))
	for i, s := range a {
		out[i] = string(s)
	}
	return out
}

func (a Alphabet) String() string {
	return "{" + strings.Join(a.Strings(), ", ") + "}"
}

// SymbolsOf splits a word into one symbol per rune.
func SymbolsOf(word string) []Symbol {
	out := make([]Symbol, 0, len(word))
	for _, r := range word {
		out = append(out, Symbol(string(r)))
	}
	return out
}

// Join concatenates a word back into a string.
func Join(word []Symbol) string {
	var sb strings.Builder
	for _, s := range word {
		sb.WriteString(string(s))
	}
	return sb.String()
}

// Words returns every word over a with length at most maxLen, shortest
// first and in alphabet order within a length.
func Words(a Alphabet, maxLen int) [][]Symbol {
	words := [][]Symbol{{}}
	level := [][]Symbol{{}}
	for n := 1; n <= maxLen && len(a) > 0; n++ {
		next := make([][]Symbol, 0, len(level)*len(a))
		for _, w := range level {
			for _, s := range a {
				nw := make([]Symbol, len(w)+1)
				copy(nw, w)
				nw[len(w)] = s
				next = append(next, nw)
			}
		}
		words = append(words, next...)
		level = next
	}
	return words
}
