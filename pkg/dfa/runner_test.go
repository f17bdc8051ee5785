package dfa

import (
	"strings"
	"testing"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// TestRunnerStepUndo walks forward and back through the chain
func TestRunnerStepUndo(t *testing.T) {
	r := NewRunner(chain(t))

	if err := r.Step("a"); err != nil {
		t.Fatalf("Step(a): %v", err)
	}
	if err := r.Step("b"); err != nil {
		t.Fatalf("Step(b): %v", err)
	}
	if r.Current() != fa.Atom("q2") || !r.IsAccepting() {
		t.Errorf("after ab: state %s, accepting %v", r.Current(), r.IsAccepting())
	}
	if got := fa.Join(r.Input()); got != "ab" {
		t.Errorf("Input = %q, want ab", got)
	}

	if !r.Undo() {
		t.Fatal("Undo returned false with history")
	}
	if r.Current() != fa.Atom("q1") {
		t.Errorf("after undo: state %s, want q1", r.Current())
	}
	if len(r.History()) != 1 {
		t.Errorf("History has %d steps, want 1", len(r.History()))
	}

	r.Undo()
	if r.Undo() {
		t.Error("Undo at the initial state should return false")
	}
}

// TestRunnerMissingTransition leaves the runner where it was
func TestRunnerMissingTransition(t *testing.T) {
	r := NewRunner(chain(t))
	if err := r.RunString("aa"); err != nil {
		t.Fatalf("RunString(aa): %v", err)
	}
	err := r.Step("a")
	if err == nil {
		t.Fatal("expected an error stepping past q2")
	}
	if !strings.Contains(err.Error(), "q2") {
		t.Errorf("error should name the state, got: %v", err)
	}
	if r.Current() != fa.Atom("q2") || len(r.History()) != 2 {
		t.Errorf("failed step changed the runner: %s, %d steps", r.Current(), len(r.History()))
	}
	if len(r.AvailableInputs()) != 0 {
		t.Errorf("q2 has no inputs, got %v", r.AvailableInputs())
	}
}

// TestRunnerReset clears history
func TestRunnerReset(t *testing.T) {
	r := NewRunner(tenState(t))
	if err := r.RunString("abaaa"); err != nil {
		t.Fatal(err)
	}
	if !r.IsAccepting() {
		t.Error("abaaa should be accepted")
	}
	r.Reset()
	if r.Current() != fa.Atom("q0") || len(r.History()) != 0 {
		t.Errorf("after reset: %s with %d steps", r.Current(), len(r.History()))
	}
	if r.DFA().NumStates() != 10 {
		t.Error("DFA accessor returned the wrong machine")
	}
}

// TestRunnerHistoryIsACopy checks callers cannot rewrite history
func TestRunnerHistoryIsACopy(t *testing.T) {
	r := NewRunner(chain(t))
	r.Step("b")
	h := r.History()
	h[0].To = fa.Atom("q9")
	if r.History()[0].To != fa.Atom("q1") {
		t.Error("History shares storage with the runner")
	}
}

func TestRunnerStatus(t *testing.T) {
	r := NewRunner(chain(t))
	if got := r.Status(); got != "State: q0" {
		t.Errorf("Status = %q", got)
	}
	r.RunString("ba")
	if got := r.Status(); got != "State: q2 [accepting]" {
		t.Errorf("Status = %q", got)
	}
	if got := NewRunner(evenA(t)).AvailableInputs(); len(got) != 2 {
		t.Errorf("AvailableInputs = %v", got)
	}
}
