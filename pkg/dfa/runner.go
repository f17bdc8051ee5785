package dfa

import (
	"fmt"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// Step records one move of a Runner.
type Step struct {
	From   fa.State
	Symbol fa.Symbol
	To     fa.State
}

// Runner feeds a DFA one symbol at a time.
type Runner struct {
	dfa     *DFA
	current fa.State
	history []Step
}

// NewRunner returns a runner positioned at d's initial state.
func NewRunner(d *DFA) *Runner {
	return &Runner{dfa: d, current: d.initial}
}

// DFA returns the automaton being run.
func (r *Runner) DFA() *DFA { return r.dfa }

// Current returns the state the runner is in.
func (r *Runner) Current() fa.State { return r.current }

// IsAccepting reports whether the input consumed so far is accepted.
func (r *Runner) IsAccepting() bool { return r.dfa.IsFinal(r.current) }

// AvailableInputs returns the symbols with a transition from the current
// state.
func (r *Runner) AvailableInputs() []fa.Symbol {
	var out []fa.Symbol
	for _, sym := range r.dfa.alphabet {
		if _, ok := r.dfa.Next(r.current, sym); ok {
			out = append(out, sym)
		}
	}
	return out
}

// Step consumes sym. It fails, leaving the runner unchanged, when the
// current state has no transition on sym.
func (r *Runner) Step(sym fa.Symbol) error {
	to, ok := r.dfa.Next(r.current, sym)
	if !ok {
		return fmt.Errorf("no transition from state %s on input %q", r.current, sym)
	}
	r.history = append(r.history, Step{From: r.current, Symbol: sym, To: to})
	r.current = to
	return nil
}

// Undo reverts the last step. It reports false when there is nothing to
// undo.
func (r *Runner) Undo() bool {
	if len(r.history) == 0 {
		return false
	}
	last := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.current = last.From
	return true
}

// Reset returns the runner to the initial state and clears its history.
func (r *Runner) Reset() {
	r.current = r.dfa.initial
	r.history = nil
}

// History returns the steps taken since the last reset.
func (r *Runner) History() []Step {
	return append([]Step(nil), r.history...)
}

// Input returns the symbols consumed since the last reset.
func (r *Runner) Input() []fa.Symbol {
	out := make([]fa.Symbol, len(r.history))
	for i, s := range r.history {
		out[i] = s.Symbol
	}
	return out
}

// RunString steps through one symbol per rune of input and stops at the
// first symbol without a transition.
func (r *Runner) RunString(input string) error {
	for _, sym := range fa.SymbolsOf(input) {
		if err := r.Step(sym); err != nil {
			return err
		}
	}
	return nil
}

// Status returns a one line description of the current state.
func (r *Runner) Status() string {
	status := fmt.Sprintf("State: %s", r.current)
	if r.IsAccepting() {
		status += " [accepting]"
	}
	return status
}
