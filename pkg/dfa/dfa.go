// Package dfa implements deterministic finite automata: construction,
// acceptance, graph analysis, product algebra, minimization and conversion
// back to a regular expression.
//
// A DFA is immutable once built. Every operation that changes the machine
// returns a new value.
package dfa

import (
	"fmt"
	"slices"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// Transition is one edge of a DFA.
type Transition struct {
	From   fa.State
	Symbol fa.Symbol
	To     fa.State
}

// DFA is a deterministic finite automaton. Transitions may be partial: a
// state without an edge for a symbol rejects any word continuing with it.
type DFA struct {
	states   []fa.State
	index    map[fa.State]int
	alphabet fa.Alphabet
	delta    []map[fa.Symbol]fa.State
	initial  fa.State
	final    fa.StateSet
}

// Builder assembles a DFA. The first error encountered is kept and
// returned by Build.
type Builder struct {
	states  fa.StateSet
	symbols []fa.Symbol
	delta   map[fa.State]map[fa.Symbol]fa.State
	initial fa.State
	final   fa.StateSet
	err     error
}

// NewBuilder returns a builder whose alphabet starts out as alphabet.
func NewBuilder(alphabet ...fa.Symbol) *Builder {
	return &Builder{
		states:  fa.NewStateSet(),
		symbols: append([]fa.Symbol(nil), alphabet...),
		delta:   make(map[fa.State]map[fa.Symbol]fa.State),
		final:   fa.NewStateSet(),
	}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// AddState declares states. States mentioned by transitions, the initial
// state or final states are declared implicitly.
func (b *Builder) AddState(states ...fa.State) *Builder {
	for _, s := range states {
		if s.IsZero() {
			b.fail(fmt.Errorf("dfa: empty state name"))
			continue
		}
		b.states.Add(s)
	}
	return b
}

// AddSymbol widens the alphabet.
func (b *Builder) AddSymbol(symbols ...fa.Symbol) *Builder {
	b.symbols = append(b.symbols, symbols...)
	return b
}

// AddTransition adds the edge from -sym-> to. A second, different target
// for the same state and symbol is an error.
func (b *Builder) AddTransition(from fa.State, sym fa.Symbol, to fa.State) *Builder {
	if sym == fa.Epsilon {
		b.fail(fmt.Errorf("dfa: epsilon transition from %s", from))
		return b
	}
	b.AddState(from, to)
	b.symbols = append(b.symbols, sym)
	row := b.delta[from]
	if row == nil {
		row = make(map[fa.Symbol]fa.State)
		b.delta[from] = row
	}
	if old, ok := row[sym]; ok && old != to {
		b.fail(fmt.Errorf("%w: %s on %q goes to both %s and %s",
			fa.ErrNondeterministic, from, sym, old, to))
		return b
	}
	row[sym] = to
	return b
}

// SetInitial sets the start state.
func (b *Builder) SetInitial(s fa.State) *Builder {
	b.AddState(s)
	b.initial = s
	return b
}

// AddFinal marks states as accepting.
func (b *Builder) AddFinal(states ...fa.State) *Builder {
	b.AddState(states...)
	b.final.Add(states...)
	return b
}

// Build freezes the builder into a DFA.
func (b *Builder) Build() (*DFA, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.initial.IsZero() {
		return nil, fmt.Errorf("dfa: %w", fa.ErrNoInitial)
	}

	d := &DFA{
		states:   b.states.Sorted(),
		alphabet: fa.NewAlphabet(b.symbols...),
		initial:  b.initial,
		final:    b.final.Clone(),
	}
	d.index = make(map[fa.State]int, len(d.states))
	d.delta = make([]map[fa.Symbol]fa.State, len(d.states))
	for i, s := range d.states {
		d.index[s] = i
		row := make(map[fa.Symbol]fa.State, len(b.delta[s]))
		for sym, to := range b.delta[s] {
			row[sym] = to
		}
		d.delta[i] = row
	}
	return d, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *DFA {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

// FromTable builds a DFA over named atom states. table maps a state to its
// outgoing edges keyed by symbol.
func FromTable(alphabet []string, table map[string]map[string]string, initial string, final ...string) (*DFA, error) {
	b := NewBuilder()
	for _, s := range alphabet {
		b.AddSymbol(fa.Symbol(s))
	}
	for from, row := range table {
		b.AddState(fa.Atom(from))
		for sym, to := range row {
			b.AddTransition(fa.Atom(from), fa.Symbol(sym), fa.Atom(to))
		}
	}
	b.SetInitial(fa.Atom(initial))
	for _, f := range final {
		b.AddFinal(fa.Atom(f))
	}
	return b.Build()
}

// States returns every state in natural order.
func (d *DFA) States() []fa.State { return slices.Clone(d.states) }

// NumStates returns the number of states.
func (d *DFA) NumStates() int { return len(d.states) }

// Alphabet returns the input alphabet.
func (d *DFA) Alphabet() fa.Alphabet { return slices.Clone(d.alphabet) }

// Initial returns the start state.
func (d *DFA) Initial() fa.State { return d.initial }

// Final returns the accepting states in natural order.
func (d *DFA) Final() []fa.State { return d.final.Sorted() }

// IsFinal reports whether s is accepting.
func (d *DFA) IsFinal(s fa.State) bool { return d.final.Has(s) }

// HasState reports whether s belongs to d.
func (d *DFA) HasState(s fa.State) bool {
	_, ok := d.index[s]
	return ok
}

// Next returns the target of s on sym.
func (d *DFA) Next(s fa.State, sym fa.Symbol) (fa.State, bool) {
	i, ok := d.index[s]
	if !ok {
		return fa.State{}, false
	}
	to, ok := d.delta[i][sym]
	return to, ok
}

// Transitions returns every edge, ordered by source state then symbol.
func (d *DFA) Transitions() []Transition {
	var out []Transition
	for i, s := range d.states {
		for _, sym := range d.alphabet {
			if to, ok := d.delta[i][sym]; ok {
				out = append(out, Transition{From: s, Symbol: sym, To: to})
			}
		}
	}
	return out
}

// Run feeds word from the initial state and returns the state reached. ok is
// false if some symbol has no transition.
func (d *DFA) Run(word []fa.Symbol) (fa.State, bool) {
	cur := d.initial
	for _, sym := range word {
		next, ok := d.Next(cur, sym)
		if !ok {
			return fa.State{}, false
		}
		cur = next
	}
	return cur, true
}

// Accepts reports whether d accepts word.
func (d *DFA) Accepts(word []fa.Symbol) bool {
	s, ok := d.Run(word)
	return ok && d.IsFinal(s)
}

// AcceptsString is Accepts with one symbol per rune of word.
func (d *DFA) AcceptsString(word string) bool {
	return d.Accepts(fa.SymbolsOf(word))
}

// IsComplete reports whether every state has a transition on every symbol.
func (d *DFA) IsComplete() bool {
	for i := range d.states {
		if len(d.delta[i]) < len(d.alphabet) {
			return false
		}
	}
	return true
}

// rebuild returns a builder preloaded with d.
func (d *DFA) rebuild() *Builder {
	b := NewBuilder(d.alphabet...)
	b.AddState(d.states...)
	for _, t := range d.Transitions() {
		b.AddTransition(t.From, t.Symbol, t.To)
	}
	b.SetInitial(d.initial)
	b.AddFinal(d.final.Sorted()...)
	return b
}

// Complete returns d with a fresh non-accepting sink absorbing every missing
// transition. A DFA that is already complete is returned unchanged.
func (d *DFA) Complete() *DFA {
	if d.IsComplete() {
		return d
	}
	sink := fa.Fresh("sink", fa.NewStateSet(d.states...))
	b := d.rebuild()
	for i, s := range d.states {
		for _, sym := range d.alphabet {
			if _, ok := d.delta[i][sym]; !ok {
				b.AddTransition(s, sym, sink)
			}
		}
	}
	for _, sym := range d.alphabet {
		b.AddTransition(sink, sym, sink)
	}
	return b.MustBuild()
}

// Extend returns d with symbols added to its alphabet. No transitions are
// added, so the result is partial on the new symbols.
func (d *DFA) Extend(symbols ...fa.Symbol) *DFA {
	return d.rebuild().AddSymbol(symbols...).MustBuild()
}

// Trim returns d without its unreachable states.
func (d *DFA) Trim() *DFA {
	reach := d.ReachableStates()
	b := NewBuilder(d.alphabet...)
	for _, s := range d.states {
		if reach.Has(s) {
			b.AddState(s)
		}
	}
	for _, t := range d.Transitions() {
		if reach.Has(t.From) {
			b.AddTransition(t.From, t.Symbol, t.To)
		}
	}
	b.SetInitial(d.initial)
	for _, f := range d.final.Sorted() {
		if reach.Has(f) {
			b.AddFinal(f)
		}
	}
	return b.MustBuild()
}

// Renumber returns d with states renamed 0, 1, ... in breadth-first order
// from the initial state, exploring symbols in alphabet order. Unreachable
// states are numbered last in natural order.
func (d *DFA) Renumber() *DFA {
	names := make(map[fa.State]fa.State, len(d.states))
	queue := []fa.State{d.initial}
	names[d.initial] = fa.Int(0)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range d.alphabet {
			if to, ok := d.Next(cur, sym); ok {
				if _, seen := names[to]; !seen {
					names[to] = fa.Int(len(names))
					queue = append(queue, to)
				}
			}
		}
	}
	for _, s := range d.states {
		if _, seen := names[s]; !seen {
			names[s] = fa.Int(len(names))
		}
	}

	b := NewBuilder(d.alphabet...)
	for _, s := range d.states {
		b.AddState(names[s])
	}
	for _, t := range d.Transitions() {
		b.AddTransition(names[t.From], t.Symbol, names[t.To])
	}
	b.SetInitial(names[d.initial])
	for _, f := range d.final.Sorted() {
		b.AddFinal(names[f])
	}
	return b.MustBuild()
}
