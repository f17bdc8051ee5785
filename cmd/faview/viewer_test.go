package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

func newTestViewer(t *testing.T, d *dfa.DFA) *Viewer {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return newViewer(screen, d, "test")
}

func evenA(t *testing.T) *dfa.DFA {
	t.Helper()
	d, err := dfa.FromTable([]string{"a", "b"}, map[string]map[string]string{
		"q0": {"a": "q1", "b": "q0"},
		"q1": {"a": "q0"},
	}, "q0", "q0")
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	return d
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func screenLine(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteString(string(cells[y*w+x].Runes))
	}
	return sb.String()
}

func TestViewerStepsAndUndo(t *testing.T) {
	v := newTestViewer(t, evenA(t))

	v.handleKey(key('a'))
	if got := v.runner.Current(); got != fa.Atom("q1") {
		t.Fatalf("after a: got %s, want q1", got)
	}
	if v.runner.IsAccepting() {
		t.Error("q1 should not accept")
	}

	v.handleKey(key('a'))
	if !v.runner.IsAccepting() {
		t.Error("aa should be accepted")
	}
	if v.message != "Accepted" {
		t.Errorf("message = %q, want Accepted", v.message)
	}

	v.handleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if got := v.runner.Current(); got != fa.Atom("q1") {
		t.Errorf("after undo: got %s, want q1", got)
	}

	v.handleKey(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModNone))
	if got := v.runner.Current(); got != fa.Atom("q0") {
		t.Errorf("after reset: got %s, want q0", got)
	}
	if len(v.runner.History()) != 0 {
		t.Error("reset should clear history")
	}
}

func TestViewerMissingTransition(t *testing.T) {
	v := newTestViewer(t, evenA(t))
	v.handleKey(key('a'))
	v.handleKey(key('b'))

	if got := v.runner.Current(); got != fa.Atom("q1") {
		t.Errorf("failed step moved the runner to %s", got)
	}
	if v.messageType != MsgError {
		t.Errorf("messageType = %v, want MsgError", v.messageType)
	}
}

func TestViewerUnknownSymbol(t *testing.T) {
	v := newTestViewer(t, evenA(t))
	v.handleKey(key('z'))
	if v.messageType != MsgError || !strings.Contains(v.message, "z") {
		t.Errorf("message = %q (%v)", v.message, v.messageType)
	}
	if v.pending != "" {
		t.Errorf("pending = %q, want empty", v.pending)
	}
}

func TestViewerMultiCharacterSymbols(t *testing.T) {
	d, err := dfa.FromTable([]string{"go", "stop"}, map[string]map[string]string{
		"idle":    {"go": "running"},
		"running": {"stop": "idle"},
	}, "idle", "idle")
	if err != nil {
		t.Fatal(err)
	}
	v := newTestViewer(t, d)

	v.handleKey(key('g'))
	if v.pending != "g" {
		t.Fatalf("pending = %q, want g", v.pending)
	}
	v.handleKey(key('o'))
	if got := v.runner.Current(); got != fa.Atom("running") {
		t.Errorf("got %s, want running", got)
	}

	v.handleKey(key('s'))
	v.handleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if v.pending != "" {
		t.Errorf("backspace should edit pending text, got %q", v.pending)
	}
	if got := v.runner.Current(); got != fa.Atom("running") {
		t.Errorf("backspace on pending text undid a step: %s", got)
	}
}

func TestViewerQuit(t *testing.T) {
	v := newTestViewer(t, evenA(t))
	if v.handleKey(key('a')) {
		t.Error("a rune should not quit")
	}
	if !v.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
}

func TestViewerDraw(t *testing.T) {
	v := newTestViewer(t, evenA(t))
	v.handleKey(key('a'))
	v.draw()
	v.screen.Show()

	s := v.screen.(tcell.SimulationScreen)
	if line := screenLine(s, 0); !strings.Contains(line, "test: 2 states") {
		t.Errorf("title line = %q", line)
	}
	if line := screenLine(s, 2); !strings.Contains(line, "state") {
		t.Errorf("header line = %q", line)
	}
	if line := screenLine(s, 23); !strings.Contains(line, "State: q1") {
		t.Errorf("status line = %q", line)
	}
}

// TestFlashPhaseCalculation verifies the phase logic for message flashing
func TestFlashPhaseCalculation(t *testing.T) {
	tests := []struct {
		elapsed      int64
		wantInverted bool
	}{
		{-1, false},
		{0, false},
		{124, false},
		{125, true},
		{249, true},
		{250, false},
		{374, false},
		{375, true},
		{499, true},
		{500, false},
		{1000, false},
	}
	for _, tt := range tests {
		if got := shouldInvert(tt.elapsed); got != tt.wantInverted {
			t.Errorf("elapsed=%d: got inverted=%v, want %v", tt.elapsed, got, tt.wantInverted)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 5); got != "ab..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Errorf("truncate = %q", got)
	}
}
