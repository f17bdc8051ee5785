package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
)

var (
	styleInfo   = promptui.Styler(promptui.FGCyan)
	styleOK     = promptui.Styler(promptui.FGGreen)
	styleFail   = promptui.Styler(promptui.FGRed)
	styleWarn   = promptui.Styler(promptui.FGYellow)
	styleDivide = promptui.Styler(promptui.FGMagenta)
)

// runInteractive steps d through symbols typed at a prompt. Each entry is
// fed from the current state; "check <word>" tests a whole word instead.
func runInteractive(d *dfa.DFA, name string) error {
	runner := dfa.NewRunner(d)

	fmt.Printf("Automaton: %s (%d states, alphabet %s)\n", name, d.NumStates(), d.Alphabet())
	fmt.Println("Commands: <symbols>, check <word>, undo, reset, status, history, inputs, quit")
	fmt.Println()
	printStatus(runner)

	for {
		prompt := promptui.Prompt{Label: runner.Current().String()}
		line, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		cmd := strings.TrimSpace(line)
		switch {
		case cmd == "":
			continue
		case cmd == "quit" || cmd == "exit" || cmd == "q":
			return nil
		case cmd == "reset":
			runner.Reset()
			fmt.Println(styleInfo("Reset to initial state"))
			printStatus(runner)
		case cmd == "undo":
			if !runner.Undo() {
				fmt.Println(styleWarn("Nothing to undo"))
			}
			printStatus(runner)
		case cmd == "status":
			printStatus(runner)
		case cmd == "history":
			printHistory(runner)
		case cmd == "inputs":
			inputs := runner.AvailableInputs()
			if len(inputs) == 0 {
				fmt.Println("No inputs available from current state")
			} else {
				fmt.Printf("Available inputs: %v\n", inputs)
			}
		case strings.HasPrefix(cmd, "check "):
			word := parseWord(d, strings.TrimSpace(strings.TrimPrefix(cmd, "check ")))
			if d.Accepts(word) {
				fmt.Println(styleOK(formatWord(word) + ": accepted"))
			} else {
				fmt.Println(styleFail(formatWord(word) + ": rejected"))
			}
			fmt.Println(styleDivide(strings.Repeat("-", 30)))
		default:
			for _, sym := range parseWord(d, cmd) {
				if !d.Alphabet().Contains(sym) {
					fmt.Println(styleWarn(fmt.Sprintf("Symbol not in alphabet: %s", sym)))
					break
				}
				if err := runner.Step(sym); err != nil {
					fmt.Println(styleFail(err.Error()))
					break
				}
			}
			printStatus(runner)
		}
	}
}

func printStatus(r *dfa.Runner) {
	if r.IsAccepting() {
		fmt.Println(styleOK(r.Status()))
	} else {
		fmt.Println(styleInfo(r.Status()))
	}
}

func printHistory(r *dfa.Runner) {
	history := r.History()
	if len(history) == 0 {
		fmt.Println("No history yet")
		return
	}

	fmt.Println("History:")
	for i, step := range history {
		fmt.Printf("  %d: %s --%s--> %s\n", i+1, step.From, step.Symbol, step.To)
	}
	fmt.Printf("Input: %s\n", formatWord(r.Input()))
}
