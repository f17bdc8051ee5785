package mintable

import (
	"fmt"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// Fill runs the table-filling fixpoint over a. Each pass compares against a
// snapshot taken at its start and the loop stops after a pass that marks
// nothing. Fill returns the number of passes that marked at least one pair,
// which is never more than t.Len().
//
// A pair {p, q} is marked when exactly one of p and q is accepting, or when
// some symbol takes it to an already marked pair. Symbols on which either
// state has no transition are skipped, so a should be complete. A target
// pair absent from the table is reported as fa.ErrElementNotInTable.
func Fill(t *Table, a Automaton) (int, error) {
	alphabet := a.Alphabet()
	passes := 0
	for {
		snap := t.Snapshot()
		for _, pr := range t.pairs {
			if t.marked[pr] {
				continue
			}
			if a.IsFinal(pr.p) != a.IsFinal(pr.q) {
				t.marked[pr] = true
				continue
			}
			for _, sym := range alphabet {
				np, okp := a.Next(pr.p, sym)
				nq, okq := a.Next(pr.q, sym)
				if !okp || !okq || np == nq {
					continue
				}
				m, ok := t.Lookup(np, nq)
				if !ok {
					return passes, fmt.Errorf("%w: (%s, %s) reached from (%s, %s) on %q",
						fa.ErrElementNotInTable, np, nq, pr.p, pr.q, sym)
				}
				if m {
					t.marked[pr] = true
					break
				}
			}
		}
		if t.Equal(snap) {
			return passes, nil
		}
		passes++
	}
}

// Partition fills a fresh table over a's states and returns the resulting
// equivalence classes.
func Partition(a Automaton) ([][]fa.State, error) {
	t := New(a.States())
	if _, err := Fill(t, a); err != nil {
		return nil, err
	}
	return t.Classes(), nil
}
