package nfa

import "github.com/ha1tch/fa-toolkit/pkg/fa"

// Edge is a transition inside a Fragment, between numbered states.
type Edge struct {
	From   int
	Symbol fa.Symbol
	To     int
}

// Fragment is a piece of a Thompson construction: states numbered 1..Size
// with one entry and one exit. Combinators renumber their operands so that
// the pieces never share a number, and never modify them.
type Fragment struct {
	size    int
	initial int
	final   int
	edges   []Edge
}

// Size returns the number of states.
func (f Fragment) Size() int { return f.size }

// Initial returns the number of the entry state.
func (f Fragment) Initial() int { return f.initial }

// Final returns the number of the exit state.
func (f Fragment) Final() int { return f.final }

// Edges returns the fragment's transitions.
func (f Fragment) Edges() []Edge { return append([]Edge(nil), f.edges...) }

// shifted returns f's edges with every state number increased by off.
func (f Fragment) shifted(off int) []Edge {
	out := make([]Edge, len(f.edges))
	for i, e := range f.edges {
		out[i] = Edge{e.From + off, e.Symbol, e.To + off}
	}
	return out
}

// Base is the two state fragment 1 -sym-> 2. Base(fa.Epsilon) accepts the
// empty word.
func Base(sym fa.Symbol) Fragment {
	return Fragment{
		size:    2,
		initial: 1,
		final:   2,
		edges:   []Edge{{1, sym, 2}},
	}
}

// Concat links a's exit to b's entry. b is renumbered after a.
func Concat(a, b Fragment) Fragment {
	off := a.size
	edges := make([]Edge, 0, len(a.edges)+len(b.edges)+1)
	edges = append(edges, a.edges...)
	edges = append(edges, b.shifted(off)...)
	edges = append(edges, Edge{a.final, fa.Epsilon, b.initial + off})
	return Fragment{
		size:    a.size + b.size,
		initial: a.initial,
		final:   b.final + off,
		edges:   edges,
	}
}

// Union adds a new entry with epsilon edges to both operands and a new exit
// reached by epsilon edges from both. The new entry is 1, a follows it,
// then b, then the new exit.
func Union(a, b Fragment) Fragment {
	offA, offB := 1, 1+a.size
	final := a.size + b.size + 2
	edges := make([]Edge, 0, len(a.edges)+len(b.edges)+4)
	edges = append(edges, a.shifted(offA)...)
	edges = append(edges, b.shifted(offB)...)
	edges = append(edges,
		Edge{1, fa.Epsilon, a.initial + offA},
		Edge{1, fa.Epsilon, b.initial + offB},
		Edge{a.final + offA, fa.Epsilon, final},
		Edge{b.final + offB, fa.Epsilon, final},
	)
	return Fragment{size: final, initial: 1, final: final, edges: edges}
}

// Star adds a new entry and exit around a, with epsilon edges entry to a,
// entry to exit, a's exit to exit and a's exit back to a's entry.
func Star(a Fragment) Fragment {
	off := 1
	final := a.size + 2
	edges := make([]Edge, 0, len(a.edges)+4)
	edges = append(edges, a.shifted(off)...)
	edges = append(edges,
		Edge{1, fa.Epsilon, a.initial + off},
		Edge{1, fa.Epsilon, final},
		Edge{a.final + off, fa.Epsilon, final},
		Edge{a.final + off, fa.Epsilon, a.initial + off},
	)
	return Fragment{size: final, initial: 1, final: final, edges: edges}
}

// NFA turns f into an automaton over alphabet whose states are the integers
// 1..Size. Symbols used by edges are added to the alphabet.
func (f Fragment) NFA(alphabet fa.Alphabet) *NFA {
	b := NewBuilder(alphabet...)
	for i := 1; i <= f.size; i++ {
		b.AddState(fa.Int(i))
	}
	for _, e := range f.edges {
		b.AddTransition(fa.Int(e.From), e.Symbol, fa.Int(e.To))
	}
	b.AddInitial(fa.Int(f.initial))
	b.AddFinal(fa.Int(f.final))
	return b.MustBuild()
}
