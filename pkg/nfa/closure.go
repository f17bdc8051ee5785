package nfa

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// closure grows set along epsilon edges until a full pass adds nothing.
// Epsilon cycles terminate because the set only grows.
func (n *NFA) closure(set *bitset.BitSet) *bitset.BitSet {
	c := set.Clone()
	for {
		before := c.Count()
		for i, ok := c.NextSet(0); ok; i, ok = c.NextSet(i + 1) {
			if eps := n.delta[i][fa.Epsilon]; eps != nil {
				c.InPlaceUnion(eps)
			}
		}
		if c.Count() == before {
			return c
		}
	}
}

// move collects the direct sym successors of every state in set.
func (n *NFA) move(set *bitset.BitSet, sym fa.Symbol) *bitset.BitSet {
	out := bitset.New(uint(len(n.states)))
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if targets := n.delta[i][sym]; targets != nil {
			out.InPlaceUnion(targets)
		}
	}
	return out
}

// EpsilonClosure returns the states reachable from states using only
// epsilon edges, including states themselves. Unknown states are ignored.
func (n *NFA) EpsilonClosure(states ...fa.State) []fa.State {
	return n.members(n.closure(n.bits(fa.NewStateSet(states...))))
}

// Move returns the direct successors on sym of every state in states.
func (n *NFA) Move(states []fa.State, sym fa.Symbol) []fa.State {
	return n.members(n.move(n.bits(fa.NewStateSet(states...)), sym))
}

// EliminateEpsilon returns an equivalent NFA without epsilon edges over the
// same states. The edge s -a-> t exists when t is in the closure of the a
// successors of the closure of s, and s is accepting when its closure
// meets the accepting states.
func (n *NFA) EliminateEpsilon() *NFA {
	out := &NFA{
		states:   n.states,
		index:    n.index,
		alphabet: n.alphabet,
		delta:    make([]map[fa.Symbol]*bitset.BitSet, len(n.states)),
		initial:  n.initial.Clone(),
		final:    bitset.New(uint(len(n.states))),
	}
	for i := range n.states {
		single := bitset.New(uint(len(n.states)))
		single.Set(uint(i))
		cl := n.closure(single)
		if cl.IntersectionCardinality(n.final) > 0 {
			out.final.Set(uint(i))
		}
		row := make(map[fa.Symbol]*bitset.BitSet, len(n.alphabet))
		for _, sym := range n.alphabet {
			targets := n.closure(n.move(cl, sym))
			if targets.Any() {
				row[sym] = targets
			}
		}
		out.delta[i] = row
	}
	return out
}

// ToDFA determinizes n by the subset construction.
//
// Exploration is breadth first from the closure of the initial states, so
// only reachable subsets become DFA states. Each subset is named by the set
// of its members; subsets are memoized by content. A symbol whose move is
// empty contributes no transition, so the result may be partial.
func (n *NFA) ToDFA() (*dfa.DFA, error) {
	b := dfa.NewBuilder(n.alphabet...)

	start := n.closure(n.initial)
	names := map[string]fa.State{}
	name := func(bs *bitset.BitSet) (fa.State, bool) {
		key := bs.String()
		if s, ok := names[key]; ok {
			return s, false
		}
		s := fa.Set(n.members(bs)...)
		names[key] = s
		return s, true
	}

	startName, _ := name(start)
	b.SetInitial(startName)
	queue := []*bitset.BitSet{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		from, _ := name(cur)
		b.AddState(from)
		if cur.IntersectionCardinality(n.final) > 0 {
			b.AddFinal(from)
		}
		for _, sym := range n.alphabet {
			next := n.move(cur, sym)
			if next.None() {
				continue
			}
			next = n.closure(next)
			to, fresh := name(next)
			b.AddTransition(from, sym, to)
			if fresh {
				queue = append(queue, next)
			}
		}
	}
	return b.Build()
}
