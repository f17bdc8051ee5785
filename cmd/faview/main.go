// Command faview steps words through a DFA in the terminal.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
	"github.com/ha1tch/fa-toolkit/pkg/fa"
	"github.com/ha1tch/fa-toolkit/pkg/fafile"
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo    MessageType = iota // Informative, no flash
	MsgError                      // Errors, flash
	MsgSuccess                    // Acceptance changes, flash
)

// Viewer holds the automaton, the runner and the screen.
type Viewer struct {
	screen   tcell.Screen
	name     string
	dfa      *dfa.DFA
	runner   *dfa.Runner
	header   []string
	rows     [][]string
	symbols  map[string]fa.Symbol
	maxWidth int // longest symbol, in runes

	// Multi-character symbol being typed
	pending string

	message           string
	messageType       MessageType
	messageFlashStart int64 // Unix milliseconds when message was shown
}

func newViewer(screen tcell.Screen, d *dfa.DFA, name string) *Viewer {
	header, rows := fafile.TableRows(fafile.FromDFA(d, name))
	v := &Viewer{
		screen:  screen,
		name:    name,
		dfa:     d,
		runner:  dfa.NewRunner(d),
		header:  header,
		rows:    rows,
		symbols: make(map[string]fa.Symbol),
	}
	for _, sym := range d.Alphabet() {
		v.symbols[string(sym)] = sym
		if n := len([]rune(string(sym))); n > v.maxWidth {
			v.maxWidth = n
		}
	}
	return v
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: faview <input>")
		fmt.Fprintln(os.Stderr, "  <input> is a definition file (.json, .yaml, .fa) or re:<regex>")
		os.Exit(1)
	}

	d, err := fafile.LoadDFA(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.Clear()

	v := newViewer(screen, d, os.Args[1])
	v.run()

	screen.Fini()
}

func (v *Viewer) run() {
	// Refresh while a message is flashing
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			if v.message != "" && v.messageFlashStart > 0 {
				elapsed := time.Now().UnixMilli() - v.messageFlashStart
				if elapsed >= 0 && elapsed < 700 {
					v.screen.PostEvent(tcell.NewEventInterrupt(nil))
				}
			}
		}
	}()

	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case nil:
			return
		}
	}
}

// handleKey applies one key press and reports whether to quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlR:
		v.runner.Reset()
		v.pending = ""
		v.showMessage("Reset to initial state", MsgInfo)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if v.pending != "" {
			r := []rune(v.pending)
			v.pending = string(r[:len(r)-1])
		} else if !v.runner.Undo() {
			v.showMessage("Nothing to undo", MsgInfo)
		} else {
			v.showMessage("", MsgInfo)
		}
	case tcell.KeyEnter:
		if v.pending != "" {
			v.showMessage(fmt.Sprintf("Not a symbol: %s", v.pending), MsgError)
			v.pending = ""
		}
	case tcell.KeyRune:
		v.typeRune(ev.Rune())
	}
	return false
}

func (v *Viewer) typeRune(r rune) {
	text := v.pending + string(r)
	if sym, ok := v.symbols[text]; ok {
		v.pending = ""
		v.step(sym)
		return
	}
	if len([]rune(text)) >= v.maxWidth || !v.hasPrefix(text) {
		v.pending = ""
		v.showMessage(fmt.Sprintf("Not a symbol: %s", text), MsgError)
		return
	}
	v.pending = text
}

func (v *Viewer) hasPrefix(text string) bool {
	for s := range v.symbols {
		if strings.HasPrefix(s, text) {
			return true
		}
	}
	return false
}

func (v *Viewer) step(sym fa.Symbol) {
	was := v.runner.IsAccepting()
	if err := v.runner.Step(sym); err != nil {
		v.showMessage(err.Error(), MsgError)
		return
	}
	switch now := v.runner.IsAccepting(); {
	case now && !was:
		v.showMessage("Accepted", MsgSuccess)
	case !now && was:
		v.showMessage("Rejected", MsgSuccess)
	default:
		v.showMessage("", MsgInfo)
	}
}

func (v *Viewer) showMessage(msg string, msgType MessageType) {
	v.message = msg
	v.messageType = msgType
	if msgType == MsgInfo || msg == "" {
		v.messageFlashStart = 0
	} else {
		v.messageFlashStart = time.Now().UnixMilli()
	}
}
