// Package fafile reads and writes automaton definitions: JSON, YAML and a
// small text format, plus Graphviz DOT, transition tables and PNG diagrams.
package fafile

import (
	"fmt"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
	"github.com/ha1tch/fa-toolkit/pkg/fa"
	"github.com/ha1tch/fa-toolkit/pkg/nfa"
)

// Type is the kind of automaton a Definition describes.
type Type string

const (
	TypeDFA Type = "dfa"
	TypeNFA Type = "nfa"
)

// Transition is one edge list of a Definition.
type Transition struct {
	From  string
	Input *string // nil for epsilon
	To    []string
}

// Definition is the interchange form of an automaton. States and symbols
// are plain strings.
type Definition struct {
	Type        Type
	Name        string
	Description string
	States      []string
	Alphabet    []string
	Initial     []string
	Accepting   []string
	Transitions []Transition
}

// Validate checks that the definition is well formed: every referenced
// state is declared, every input is in the alphabet, and a DFA has one
// initial state, no epsilon edges and at most one target per state and
// input.
func (d *Definition) Validate() error {
	if d.Type != TypeDFA && d.Type != TypeNFA {
		return fmt.Errorf("unknown automaton type %q", d.Type)
	}
	if len(d.States) == 0 {
		return fmt.Errorf("automaton has no states")
	}
	if len(d.Initial) == 0 {
		return fmt.Errorf("automaton has no initial state")
	}
	if d.Type == TypeDFA && len(d.Initial) != 1 {
		return fmt.Errorf("dfa must have exactly one initial state, has %d", len(d.Initial))
	}

	states := make(map[string]bool, len(d.States))
	for _, s := range d.States {
		if s == "" {
			return fmt.Errorf("empty state name")
		}
		states[s] = true
	}
	symbols := make(map[string]bool, len(d.Alphabet))
	for _, a := range d.Alphabet {
		if a == "" {
			return fmt.Errorf("empty input symbol")
		}
		symbols[a] = true
	}

	for _, s := range d.Initial {
		if !states[s] {
			return fmt.Errorf("initial state %q not in states", s)
		}
	}
	for _, s := range d.Accepting {
		if !states[s] {
			return fmt.Errorf("accepting state %q not in states", s)
		}
	}

	seen := make(map[[2]string]bool)
	for i, t := range d.Transitions {
		if !states[t.From] {
			return fmt.Errorf("transition %d: from state %q not in states", i, t.From)
		}
		if len(t.To) == 0 {
			return fmt.Errorf("transition %d: no target state", i)
		}
		for _, to := range t.To {
			if !states[to] {
				return fmt.Errorf("transition %d: to state %q not in states", i, to)
			}
		}
		if t.Input == nil {
			if d.Type == TypeDFA {
				return fmt.Errorf("transition %d: epsilon transition in dfa", i)
			}
			continue
		}
		if !symbols[*t.Input] {
			return fmt.Errorf("transition %d: input %q not in alphabet", i, *t.Input)
		}
		if d.Type == TypeDFA {
			if len(t.To) != 1 {
				return fmt.Errorf("transition %d: dfa transition has %d targets", i, len(t.To))
			}
			key := [2]string{t.From, *t.Input}
			if seen[key] {
				return fmt.Errorf("transition %d: %w: state %q already has input %q",
					i, fa.ErrNondeterministic, t.From, *t.Input)
			}
			seen[key] = true
		}
	}
	return nil
}

func symbols(names []string) []fa.Symbol {
	out := make([]fa.Symbol, len(names))
	for i, n := range names {
		out[i] = fa.Symbol(n)
	}
	return out
}

// ToNFA builds an NFA from the definition. A DFA definition yields the
// equivalent NFA.
func (d *Definition) ToNFA() (*nfa.NFA, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	b := nfa.NewBuilder(symbols(d.Alphabet)...)
	for _, s := range d.States {
		b.AddState(fa.Atom(s))
	}
	for _, t := range d.Transitions {
		sym := fa.Epsilon
		if t.Input != nil {
			sym = fa.Symbol(*t.Input)
		}
		for _, to := range t.To {
			b.AddTransition(fa.Atom(t.From), sym, fa.Atom(to))
		}
	}
	for _, s := range d.Initial {
		b.AddInitial(fa.Atom(s))
	}
	for _, s := range d.Accepting {
		b.AddFinal(fa.Atom(s))
	}
	return b.Build()
}

// ToDFA builds a DFA from the definition. An NFA definition is
// determinized by subset construction.
func (d *Definition) ToDFA() (*dfa.DFA, error) {
	if d.Type == TypeNFA {
		n, err := d.ToNFA()
		if err != nil {
			return nil, err
		}
		return n.ToDFA()
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	b := dfa.NewBuilder(symbols(d.Alphabet)...)
	for _, s := range d.States {
		b.AddState(fa.Atom(s))
	}
	for _, t := range d.Transitions {
		b.AddTransition(fa.Atom(t.From), fa.Symbol(*t.Input), fa.Atom(t.To[0]))
	}
	b.SetInitial(fa.Atom(d.Initial[0]))
	for _, s := range d.Accepting {
		b.AddFinal(fa.Atom(s))
	}
	return b.Build()
}

func names(states []fa.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.String()
	}
	return out
}

// FromDFA returns the definition of m.
func FromDFA(m *dfa.DFA, name string) *Definition {
	def := &Definition{
		Type:      TypeDFA,
		Name:      name,
		States:    names(m.States()),
		Alphabet:  m.Alphabet().Strings(),
		Initial:   []string{m.Initial().String()},
		Accepting: names(m.Final()),
	}
	for _, t := range m.Transitions() {
		in := string(t.Symbol)
		def.Transitions = append(def.Transitions, Transition{
			From:  t.From.String(),
			Input: &in,
			To:    []string{t.To.String()},
		})
	}
	return def
}

// FromNFA returns the definition of n.
func FromNFA(n *nfa.NFA, name string) *Definition {
	def := &Definition{
		Type:      TypeNFA,
		Name:      name,
		States:    names(n.States()),
		Alphabet:  n.Alphabet().Strings(),
		Initial:   names(n.Initial()),
		Accepting: names(n.Final()),
	}
	for _, t := range n.Transitions() {
		tr := Transition{From: t.From.String(), To: names(t.To)}
		if t.Symbol != fa.Epsilon {
			in := string(t.Symbol)
			tr.Input = &in
		}
		def.Transitions = append(def.Transitions, tr)
	}
	return def
}

// IsAccepting reports whether state is listed as accepting.
func (d *Definition) IsAccepting(state string) bool {
	for _, s := range d.Accepting {
		if s == state {
			return true
		}
	}
	return false
}

// IsInitial reports whether state is listed as initial.
func (d *Definition) IsInitial(state string) bool {
	for _, s := range d.Initial {
		if s == state {
			return true
		}
	}
	return false
}
