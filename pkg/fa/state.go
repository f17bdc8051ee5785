// Package fa provides the primitives shared by every automaton in the
// toolkit: symbols, alphabets, state identities and the error taxonomy.
package fa

import (
	"strconv"
	"strings"
)

// Kind reports how a State was constructed.
type Kind int

const (
	KindNone Kind = iota
	KindAtom
	KindSet
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindSet:
		return "set"
	case KindTuple:
		return "tuple"
	}
	return "none"
}

// State identifies an automaton state.
//
// A state is either an atom (a user supplied name or a fresh integer), a set
// of other states (subset construction, minimization) or an ordered tuple of
// other states (product construction). States are compared structurally:
// two sets holding the same members are the same state regardless of the
// order the members were given in. State values are comparable and may be
// used as map keys.
//
// The zero State means "no state".
type State struct {
	key string
}

// Atom returns the state named name. Atom("") is the zero State.
func Atom(name string) State {
	if name == "" {
		return State{}
	}
	return State{key: escape(name)}
}

// Int returns the atom named by the decimal form of n.
func Int(n int) State {
	return State{key: strconv.Itoa(n)}
}

// Set returns the composite state holding members. Zero members are ignored
// and duplicates collapse.
func Set(members ...State) State {
	keys := make([]string, 0, len(members))
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if m.key == "" || seen[m.key] {
			continue
		}
		seen[m.key] = true
		keys = append(keys, m.key)
	}
	sortKeys(keys)
	return State{key: "{" + strings.Join(keys, ",") + "}"}
}

// Tuple returns the ordered composite of members. A zero member is kept in
// its position.
func Tuple(members ...State) State {
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = m.key
	}
	return State{key: "(" + strings.Join(keys, ",") + ")"}
}

// Pair is Tuple(p, q).
func Pair(p, q State) State {
	return Tuple(p, q)
}

// IsZero reports whether s is the zero State.
func (s State) IsZero() bool { return s.key == "" }

// Kind reports how s was built.
func (s State) Kind() Kind {
	switch {
	case s.key == "":
		return KindNone
	case s.key[0] == '{':
		return KindSet
	case s.key[0] == '(':
		return KindTuple
	}
	return KindAtom
}

// Members returns the components of a set or tuple state, or nil for atoms.
// Set members come back in canonical order.
func (s State) Members() []State {
	k := s.Kind()
	if k != KindSet && k != KindTuple {
		return nil
	}
	inner := s.key[1 : len(s.key)-1]
	if inner == "" {
		if k == KindTuple && s.key == "()" {
			return []State{}
		}
		return nil
	}
	parts := splitTop(inner)
	out := make([]State, len(parts))
	for i, p := range parts {
		out[i] = State{key: p}
	}
	return out
}

// Name returns the unescaped name of an atom, or the canonical form of a
// composite state.
func (s State) Name() string {
	if s.Kind() == KindAtom {
		return unescape(s.key)
	}
	return s.key
}

// String returns the canonical form of s.
func (s State) String() string {
	if s.Kind() == KindAtom {
		return unescape(s.key)
	}
	return s.key
}

// Key returns the canonical encoding of s. Two states are equal exactly when
// their keys are equal.
func (s State) Key() string { return s.key }

// Compare orders states naturally: runs of digits compare by numeric value,
// so q2 sorts before q10.
func Compare(a, b State) int {
	return naturalCompare(a.key, b.key)
}

// Less reports whether a sorts before b under Compare.
func Less(a, b State) bool {
	return Compare(a, b) < 0
}

const special = `\{}(),`

func escape(name string) string {
	if !strings.ContainsAny(name, special) {
		return name
	}
	var sb strings.Builder
	for _, r := range name {
		if strings.ContainsRune(special, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func unescape(key string) string {
	if !strings.ContainsRune(key, '\\') {
		return key
	}
	var sb strings.Builder
	escaped := false
	for _, r := range key {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// splitTop splits a composite body on commas that are not nested or escaped.
func splitTop(body string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{', '(':
			depth++
		case '}', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, body[start:])
}

func sortKeys(keys []string) {
	// insertion sort; composite states are small
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && naturalCompare(keys[j], keys[j-1]) < 0; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func naturalCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				if len(na) < len(nb) {
					return -1
				}
				return 1
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			// 07 and 7 are different keys
			if c := (i - si) - (j - sj); c != 0 {
				if c < 0 {
					return -1
				}
				return 1
			}
			continue
		}
		if a[i] != b[j] {
			if a[i] < b[j] {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return 0
}
