package dfa

import (
	"fmt"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// acceptPredicate decides whether a product pair is accepting from the
// acceptance of its two components.
type acceptPredicate func(inA, inB bool) bool

// next follows sym from s, treating the zero State as a dead state that
// every symbol keeps in place.
func (d *DFA) next(s fa.State, sym fa.Symbol) fa.State {
	if s.IsZero() {
		return s
	}
	to, _ := d.Next(s, sym)
	return to
}

// product builds the pair automaton of a and b, exploring only pairs
// reachable from (a.initial, b.initial). A missing transition moves that
// component to the zero State, which never accepts.
func product(a, b *DFA, accept acceptPredicate) (*DFA, error) {
	if !a.alphabet.Equal(b.alphabet) {
		return nil, fmt.Errorf("%w: %v and %v", fa.ErrSymbolMismatch, a.alphabet, b.alphabet)
	}

	pb := NewBuilder(a.alphabet...)
	type pair struct{ p, q fa.State }
	start := pair{a.initial, b.initial}
	seen := map[pair]bool{start: true}
	queue := []pair{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		from := fa.Pair(cur.p, cur.q)
		pb.AddState(from)
		if accept(a.IsFinal(cur.p), b.IsFinal(cur.q)) {
			pb.AddFinal(from)
		}
		for _, sym := range a.alphabet {
			to := pair{a.next(cur.p, sym), b.next(cur.q, sym)}
			if to.p.IsZero() && to.q.IsZero() {
				continue
			}
			pb.AddTransition(from, sym, fa.Pair(to.p, to.q))
			if !seen[to] {
				seen[to] = true
				queue = append(queue, to)
			}
		}
	}
	pb.SetInitial(fa.Pair(start.p, start.q))
	return pb.Build()
}

// Union returns a DFA accepting the words accepted by a or b.
func Union(a, b *DFA) (*DFA, error) {
	return product(a, b, func(x, y bool) bool { return x || y })
}

// Intersection returns a DFA accepting the words accepted by both a and b.
func Intersection(a, b *DFA) (*DFA, error) {
	return product(a, b, func(x, y bool) bool { return x && y })
}

// Difference returns a DFA accepting the words accepted by a but not b.
func Difference(a, b *DFA) (*DFA, error) {
	return product(a, b, func(x, y bool) bool { return x && !y })
}

// SymmetricDifference returns a DFA accepting the words accepted by
// exactly one of a and b.
func SymmetricDifference(a, b *DFA) (*DFA, error) {
	return product(a, b, func(x, y bool) bool { return x != y })
}

// IsSubset reports whether every word accepted by a is accepted by b.
func IsSubset(a, b *DFA) (bool, error) {
	diff, err := Difference(a, b)
	if err != nil {
		return false, err
	}
	return diff.final.Len() == 0, nil
}

// IsDisjoint reports whether no word is accepted by both a and b.
func IsDisjoint(a, b *DFA) (bool, error) {
	inter, err := Intersection(a, b)
	if err != nil {
		return false, err
	}
	return inter.final.Len() == 0, nil
}

// Equivalent reports whether a and b accept the same language.
func Equivalent(a, b *DFA) (bool, error) {
	sym, err := SymmetricDifference(a, b)
	if err != nil {
		return false, err
	}
	return sym.final.Len() == 0, nil
}

// Union is the method form of Union.
func (d *DFA) Union(other *DFA) (*DFA, error) { return Union(d, other) }

// Intersection is the method form of Intersection.
func (d *DFA) Intersection(other *DFA) (*DFA, error) { return Intersection(d, other) }

// Difference is the method form of Difference.
func (d *DFA) Difference(other *DFA) (*DFA, error) { return Difference(d, other) }

// IsSubset is the method form of IsSubset.
func (d *DFA) IsSubset(other *DFA) (bool, error) { return IsSubset(d, other) }

// IsDisjoint is the method form of IsDisjoint.
func (d *DFA) IsDisjoint(other *DFA) (bool, error) { return IsDisjoint(d, other) }

// Equivalent is the method form of Equivalent.
func (d *DFA) Equivalent(other *DFA) (bool, error) { return Equivalent(d, other) }

// Complement returns a DFA accepting exactly the words over d's alphabet
// that d rejects. d is completed with a sink first.
func (d *DFA) Complement() *DFA {
	c := d.Complete()
	b := NewBuilder(c.alphabet...)
	b.AddState(c.states...)
	for _, t := range c.Transitions() {
		b.AddTransition(t.From, t.Symbol, t.To)
	}
	b.SetInitial(c.initial)
	for _, s := range c.states {
		if !c.final.Has(s) {
			b.AddFinal(s)
		}
	}
	return b.MustBuild()
}
