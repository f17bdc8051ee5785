package fa

import (
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// StateSet is an unordered set of states.
type StateSet map[State]struct{}

// NewStateSet returns a set holding states.
func NewStateSet(states ...State) StateSet {
	s := make(StateSet, len(states))
	s.Add(states...)
	return s
}

// Add inserts states into s.
func (s StateSet) Add(states ...State) {
	for _, st := range states {
		s[st] = struct{}{}
	}
}

// Has reports whether st is in s.
func (s StateSet) Has(st State) bool {
	_, ok := s[st]
	return ok
}

// Len returns the number of states in s.
func (s StateSet) Len() int { return len(s) }

// Sorted returns the members of s in natural order.
func (s StateSet) Sorted() []State {
	out := maps.Keys(s)
	slices.SortFunc(out, Compare)
	return out
}

// Clone returns a copy of s.
func (s StateSet) Clone() StateSet {
	return maps.Clone(s)
}

// Equal reports whether s and o hold the same states.
func (s StateSet) Equal(o StateSet) bool {
	if len(s) != len(o) {
		return false
	}
	for st := range s {
		if !o.Has(st) {
			return false
		}
	}
	return true
}

// Intersects reports whether s and o share at least one state.
func (s StateSet) Intersects(o StateSet) bool {
	small, large := s, o
	if len(small) > len(large) {
		small, large = large, small
	}
	for st := range small {
		if large.Has(st) {
			return true
		}
	}
	return false
}

// Union returns a new set holding the members of s and o.
func (s StateSet) Union(o StateSet) StateSet {
	out := s.Clone()
	for st := range o {
		out.Add(st)
	}
	return out
}

// Minus returns the members of s not in o.
func (s StateSet) Minus(o StateSet) StateSet {
	out := make(StateSet, len(s))
	for st := range s {
		if !o.Has(st) {
			out.Add(st)
		}
	}
	return out
}

// State returns the composite state whose members are s.
func (s StateSet) State() State {
	return Set(s.Sorted()...)
}

func (s StateSet) String() string {
	parts := make([]string, 0, len(s))
	for _, st := range s.Sorted() {
		parts = append(parts, st.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Fresh returns a state named base, or base followed by enough primes to
// avoid every state in taken.
func Fresh(base string, taken StateSet) State {
	name := base
	for taken.Has(Atom(name)) {
		name += "'"
	}
	return Atom(name)
}
