// Package nfa implements nondeterministic finite automata with epsilon
// transitions, the Thompson fragments the regex compiler assembles, epsilon
// elimination and the subset construction into a DFA.
package nfa

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// Transition is one edge of an NFA. Symbol is fa.Epsilon for an epsilon
// edge.
type Transition struct {
	From   fa.State
	Symbol fa.Symbol
	To     []fa.State
}

// NFA is an immutable nondeterministic automaton. States are numbered by
// their position in natural order and state sets are bitsets over those
// numbers.
type NFA struct {
	states   []fa.State
	index    map[fa.State]uint
	alphabet fa.Alphabet
	delta    []map[fa.Symbol]*bitset.BitSet
	initial  *bitset.BitSet
	final    *bitset.BitSet
}

// Builder assembles an NFA.
type Builder struct {
	states  fa.StateSet
	symbols []fa.Symbol
	delta   map[fa.State]map[fa.Symbol]fa.StateSet
	initial fa.StateSet
	final   fa.StateSet
	err     error
}

// NewBuilder returns a builder whose alphabet starts out as alphabet.
func NewBuilder(alphabet ...fa.Symbol) *Builder {
	return &Builder{
		states:  fa.NewStateSet(),
		symbols: append([]fa.Symbol(nil), alphabet...),
		delta:   make(map[fa.State]map[fa.Symbol]fa.StateSet),
		initial: fa.NewStateSet(),
		final:   fa.NewStateSet(),
	}
}

// AddState declares states.
func (b *Builder) AddState(states ...fa.State) *Builder {
	for _, s := range states {
		if s.IsZero() {
			if b.err == nil {
				b.err = fmt.Errorf("nfa: empty state name")
			}
			continue
		}
		b.states.Add(s)
	}
	return b
}

// AddSymbol widens the alphabet. Epsilon is ignored.
func (b *Builder) AddSymbol(symbols ...fa.Symbol) *Builder {
	b.symbols = append(b.symbols, symbols...)
	return b
}

// AddTransition adds edges from -sym-> t for every t in to. Use fa.Epsilon
// for an epsilon edge.
func (b *Builder) AddTransition(from fa.State, sym fa.Symbol, to ...fa.State) *Builder {
	b.AddState(from)
	b.AddState(to...)
	if sym != fa.Epsilon {
		b.symbols = append(b.symbols, sym)
	}
	row := b.delta[from]
	if row == nil {
		row = make(map[fa.Symbol]fa.StateSet)
		b.delta[from] = row
	}
	set := row[sym]
	if set == nil {
		set = fa.NewStateSet()
		row[sym] = set
	}
	set.Add(to...)
	return b
}

// AddInitial adds start states.
func (b *Builder) AddInitial(states ...fa.State) *Builder {
	b.AddState(states...)
	b.initial.Add(states...)
	return b
}

// AddFinal marks states as accepting.
func (b *Builder) AddFinal(states ...fa.State) *Builder {
	b.AddState(states...)
	b.final.Add(states...)
	return b
}

// Build freezes the builder into an NFA.
func (b *Builder) Build() (*NFA, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.initial.Len() == 0 {
		return nil, fmt.Errorf("nfa: %w", fa.ErrNoInitial)
	}

	n := &NFA{
		states:   b.states.Sorted(),
		alphabet: fa.NewAlphabet(b.symbols...),
	}
	n.index = make(map[fa.State]uint, len(n.states))
	for i, s := range n.states {
		n.index[s] = uint(i)
	}
	n.delta = make([]map[fa.Symbol]*bitset.BitSet, len(n.states))
	for i, s := range n.states {
		row := make(map[fa.Symbol]*bitset.BitSet, len(b.delta[s]))
		for sym, targets := range b.delta[s] {
			row[sym] = n.bits(targets)
		}
		n.delta[i] = row
	}
	n.initial = n.bits(b.initial)
	n.final = n.bits(b.final)
	return n, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *NFA {
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}

func (n *NFA) bits(set fa.StateSet) *bitset.BitSet {
	bs := bitset.New(uint(len(n.states)))
	for s := range set {
		if i, ok := n.index[s]; ok {
			bs.Set(i)
		}
	}
	return bs
}

// members lists the states of bs in natural order.
func (n *NFA) members(bs *bitset.BitSet) []fa.State {
	out := make([]fa.State, 0, bs.Count())
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		out = append(out, n.states[i])
	}
	return out
}

// States returns every state in natural order.
func (n *NFA) States() []fa.State { return slices.Clone(n.states) }

// NumStates returns the number of states.
func (n *NFA) NumStates() int { return len(n.states) }

// Alphabet returns the input alphabet. It never contains fa.Epsilon.
func (n *NFA) Alphabet() fa.Alphabet { return slices.Clone(n.alphabet) }

// Initial returns the start states.
func (n *NFA) Initial() []fa.State { return n.members(n.initial) }

// Final returns the accepting states.
func (n *NFA) Final() []fa.State { return n.members(n.final) }

// IsFinal reports whether s is accepting.
func (n *NFA) IsFinal(s fa.State) bool {
	i, ok := n.index[s]
	return ok && n.final.Test(i)
}

// Targets returns the direct successors of s on sym.
func (n *NFA) Targets(s fa.State, sym fa.Symbol) []fa.State {
	i, ok := n.index[s]
	if !ok {
		return nil
	}
	bs := n.delta[i][sym]
	if bs == nil {
		return nil
	}
	return n.members(bs)
}

// HasEpsilon reports whether any transition is an epsilon edge.
func (n *NFA) HasEpsilon() bool {
	for _, row := range n.delta {
		if bs := row[fa.Epsilon]; bs != nil && bs.Any() {
			return true
		}
	}
	return false
}

// Transitions returns every edge grouped by source and symbol, ordered by
// source then symbol with epsilon first.
func (n *NFA) Transitions() []Transition {
	var out []Transition
	syms := append([]fa.Symbol{fa.Epsilon}, n.alphabet...)
	for i, s := range n.states {
		for _, sym := range syms {
			if bs := n.delta[i][sym]; bs != nil && bs.Any() {
				out = append(out, Transition{From: s, Symbol: sym, To: n.members(bs)})
			}
		}
	}
	return out
}

// Accepts reports whether n accepts word. Symbols outside the alphabet
// reject.
func (n *NFA) Accepts(word []fa.Symbol) bool {
	cur := n.closure(n.initial)
	for _, sym := range word {
		if sym == fa.Epsilon {
			continue
		}
		cur = n.closure(n.move(cur, sym))
		if cur.None() {
			return false
		}
	}
	return cur.IntersectionCardinality(n.final) > 0
}

// AcceptsString is Accepts with one symbol per rune of word.
func (n *NFA) AcceptsString(word string) bool {
	return n.Accepts(fa.SymbolsOf(word))
}
