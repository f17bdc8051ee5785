// Package mintable implements the Myhill-Nerode table-filling algorithm:
// a table of distinguishable state pairs, the fixpoint that fills it, and
// the partition of states into equivalence classes that it yields.
package mintable

import (
	"fmt"
	"slices"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// Automaton is the view of a deterministic automaton the table needs.
type Automaton interface {
	States() []fa.State
	Alphabet() fa.Alphabet
	IsFinal(s fa.State) bool
	Next(s fa.State, sym fa.Symbol) (fa.State, bool)
}

type pair struct {
	p, q fa.State
}

// Table records, for every unordered pair of distinct states, whether the
// pair has been shown distinguishable ("marked"). Marks never clear.
type Table struct {
	states []fa.State
	pairs  []pair
	marked map[pair]bool
}

// New returns a table with one unmarked entry per unordered pair of
// distinct states. Duplicate states are ignored.
func New(states []fa.State) *Table {
	uniq := fa.NewStateSet(states...).Sorted()
	t := &Table{
		states: uniq,
		marked: make(map[pair]bool, len(uniq)*(len(uniq)-1)/2),
	}
	for i, p := range uniq {
		for _, q := range uniq[i+1:] {
			pr := pair{p, q}
			t.pairs = append(t.pairs, pr)
			t.marked[pr] = false
		}
	}
	return t
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.pairs) }

// States returns the states the table is over, in natural order.
func (t *Table) States() []fa.State { return slices.Clone(t.states) }

// key finds the stored ordering of {p, q}.
func (t *Table) key(p, q fa.State) (pair, bool) {
	if _, ok := t.marked[pair{p, q}]; ok {
		return pair{p, q}, true
	}
	if _, ok := t.marked[pair{q, p}]; ok {
		return pair{q, p}, true
	}
	return pair{}, false
}

// Lookup returns the mark of {p, q} under either ordering. ok is false when
// the table has no such entry.
func (t *Table) Lookup(p, q fa.State) (marked, ok bool) {
	k, ok := t.key(p, q)
	if !ok {
		return false, false
	}
	return t.marked[k], true
}

// IsMarked is Lookup with a missing entry reported as
// fa.ErrElementNotInTable.
func (t *Table) IsMarked(p, q fa.State) (bool, error) {
	m, ok := t.Lookup(p, q)
	if !ok {
		return false, fmt.Errorf("%w: (%s, %s)", fa.ErrElementNotInTable, p, q)
	}
	return m, nil
}

// Mark records {p, q} as distinguishable.
func (t *Table) Mark(p, q fa.State) error {
	k, ok := t.key(p, q)
	if !ok {
		return fmt.Errorf("%w: (%s, %s)", fa.ErrElementNotInTable, p, q)
	}
	t.marked[k] = true
	return nil
}

// Snapshot returns an independent copy of t.
func (t *Table) Snapshot() *Table {
	c := &Table{
		states: t.states,
		pairs:  t.pairs,
		marked: make(map[pair]bool, len(t.marked)),
	}
	for k, v := range t.marked {
		c.marked[k] = v
	}
	return c
}

// Equal reports whether t and o hold the same entries with the same marks.
func (t *Table) Equal(o *Table) bool {
	if len(t.marked) != len(o.marked) {
		return false
	}
	for k, v := range t.marked {
		if ov, ok := o.Lookup(k.p, k.q); !ok || ov != v {
			return false
		}
	}
	return true
}

// Marked returns the number of marked entries.
func (t *Table) Marked() int {
	n := 0
	for _, v := range t.marked {
		if v {
			n++
		}
	}
	return n
}

// Unmarked returns the pairs still believed equivalent, in table order.
func (t *Table) Unmarked() [][2]fa.State {
	var out [][2]fa.State
	for _, pr := range t.pairs {
		if !t.marked[pr] {
			out = append(out, [2]fa.State{pr.p, pr.q})
		}
	}
	return out
}

// Classes merges the unmarked pairs transitively and returns the resulting
// partition of the table's states. States in no unmarked pair form
// singleton classes. Members of a class are in natural order, and classes
// are ordered by their first member.
func (t *Table) Classes() [][]fa.State {
	idx := make(map[fa.State]int, len(t.states))
	for i, s := range t.states {
		idx[s] = i
	}
	parent := make([]int, len(t.states))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for _, u := range t.Unmarked() {
		a, b := find(idx[u[0]]), find(idx[u[1]])
		if a != b {
			if b < a {
				a, b = b, a
			}
			parent[b] = a
		}
	}

	// states are sorted, so each root is its class's first member
	byRoot := make(map[int][]fa.State)
	var roots []int
	for i, s := range t.states {
		r := find(i)
		if _, ok := byRoot[r]; !ok {
			roots = append(roots, r)
		}
		byRoot[r] = append(byRoot[r], s)
	}
	out := make([][]fa.State, 0, len(roots))
	for _, r := range roots {
		out = append(out, byRoot[r])
	}
	return out
}

func (t *Table) String() string {
	return fmt.Sprintf("mintable: %d states, %d/%d pairs marked", len(t.states), t.Marked(), len(t.pairs))
}
