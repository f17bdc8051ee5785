package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/kr/pretty"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
	"github.com/ha1tch/fa-toolkit/pkg/fafile"
)

func (a *app) cmdInfo() {
	def := a.loadDefinition("<input>")
	if flag(a.args, "--dump") {
		pretty.Println(def)
		fmt.Println()
	}

	fmt.Printf("Type:        %s\n", def.Type)
	if def.Name != "" {
		fmt.Printf("Name:        %s\n", def.Name)
	}
	if def.Description != "" {
		fmt.Printf("Description: %s\n", def.Description)
	}
	fmt.Printf("States:      %d\n", len(def.States))
	fmt.Printf("Inputs:      %d\n", len(def.Alphabet))
	fmt.Printf("Transitions: %d\n", len(def.Transitions))
	fmt.Printf("Initial:     %s\n", strings.Join(def.Initial, ", "))
	if len(def.Accepting) > 0 {
		fmt.Printf("Accepting:   %v\n", def.Accepting)
	}
	fmt.Println()
	fmt.Printf("States:      %v\n", def.States)
	fmt.Printf("Alphabet:    %v\n", def.Alphabet)

	d, err := def.ToDFA()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println()
	if def.Type == fafile.TypeNFA {
		fmt.Printf("DFA states:  %d\n", d.NumStates())
	}
	fmt.Printf("Complete:    %v\n", d.IsComplete())
	fmt.Printf("Reachable:   %d\n", len(d.ReachableStates()))
	fmt.Printf("Empty:       %v\n", d.IsEmpty())
	fmt.Printf("Finite:      %v\n", d.IsFinite())
	fmt.Printf("Shortest:    %s\n", lengthOrReason(d.ShortestWordLength()))
	fmt.Printf("Longest:     %s\n", lengthOrReason(d.LongestWordLength()))

	count, err := d.WordCount()
	switch {
	case err == nil:
		fmt.Printf("Words:       %s\n", count)
	case errors.Is(err, fa.ErrInfiniteFinite):
		fmt.Printf("Words:       infinite\n")
	default:
		fmt.Printf("Words:       %v\n", err)
	}
}

func lengthOrReason(n int, err error) string {
	switch {
	case err == nil:
		return fmt.Sprint(n)
	case errors.Is(err, fa.ErrInfiniteLanguage):
		return "unbounded"
	case errors.Is(err, fa.ErrEmptyLanguage):
		return "none (empty language)"
	}
	return err.Error()
}
