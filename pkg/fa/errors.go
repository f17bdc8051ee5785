package fa

import "errors"

// Errors reported by the automaton packages. Callers test for them with
// errors.Is; the packages wrap them with context.
var (
	// ErrParse is wrapped by every regex compilation failure.
	ErrParse = errors.New("parse error")

	// ErrSymbolMismatch is returned when two automata combined by product
	// construction do not share an alphabet.
	ErrSymbolMismatch = errors.New("input symbols are not equal")

	// ErrElementNotInTable is returned when a minimization table lookup
	// finds no entry under either ordering of a pair.
	ErrElementNotInTable = errors.New("element not in table")

	// ErrInfiniteLanguage is returned by operations that only make sense
	// for finite languages.
	ErrInfiniteLanguage = errors.New("language is infinite")

	// ErrInfiniteFinite signals an internal inconsistency: the automaton
	// was judged finite but a word longer than any simple path was found.
	ErrInfiniteFinite = errors.New("language is finite but accepts unbounded words")

	// ErrEmptyLanguage is returned when a word length is requested from an
	// automaton that accepts nothing.
	ErrEmptyLanguage = errors.New("language is empty")

	// ErrNondeterministic is returned by a DFA builder given two targets
	// for the same state and symbol.
	ErrNondeterministic = errors.New("nondeterministic transition")

	// ErrNoInitial is returned by builders that were never given an
	// initial state.
	ErrNoInitial = errors.New("no initial state")
)
