package dfa

import (
	"slices"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// liveStates returns the reachable states from which some accepting state
// can be reached.
func (d *DFA) liveStates() fa.StateSet {
	reach := d.ReachableStates()
	preds := make(map[fa.State][]fa.State)
	var queue []fa.State
	live := fa.NewStateSet()
	for s := range reach {
		for _, to := range d.successors(s) {
			preds[to] = append(preds[to], s)
		}
		if d.final.Has(s) {
			live.Add(s)
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range preds[cur] {
			if !live.Has(p) {
				live.Add(p)
				queue = append(queue, p)
			}
		}
	}
	return live
}

// ToRegex returns a regular expression for the language of d, built by
// state elimination. The empty language yields "" and the language holding
// only the empty word yields fa.EpsilonMarker.
//
// A synthetic start state P0 leads to the initial state and every accepting
// state leads to a synthetic final state P1, both on the empty word. Dead
// and unreachable states are dropped, then the remaining original states
// are eliminated in natural order until only the P0 to P1 label is left.
func (d *DFA) ToRegex() string {
	live := d.liveStates()
	if !live.Has(d.initial) {
		return ""
	}
	taken := fa.NewStateSet(d.states...)
	p0 := fa.Fresh("P0", taken)
	taken.Add(p0)
	p1 := fa.Fresh("P1", taken)

	label := make(map[fa.State]map[fa.State]string)
	add := func(from, to fa.State, re string) {
		row := label[from]
		if row == nil {
			row = make(map[fa.State]string)
			label[from] = row
		}
		row[to] = unionRegex(row[to], re)
	}

	add(p0, d.initial, eps)
	order := live.Sorted()
	for _, s := range order {
		for _, sym := range d.alphabet {
			if to, ok := d.Next(s, sym); ok && live.Has(to) {
				add(s, to, string(sym))
			}
		}
		if d.final.Has(s) {
			add(s, p1, eps)
		}
	}

	nodes := append([]fa.State{p0}, order...)
	nodes = append(nodes, p1)
	for _, r := range order {
		loop := starRegex(label[r][r])
		for _, p := range nodes {
			if p == r || label[p][r] == "" {
				continue
			}
			through := concatRegex(label[p][r], loop)
			for _, q := range nodes {
				if q == r || label[r][q] == "" {
					continue
				}
				add(p, q, concatRegex(through, label[r][q]))
			}
		}
		for _, p := range nodes {
			delete(label[p], r)
		}
		delete(label, r)
		nodes = slices.DeleteFunc(nodes, func(s fa.State) bool { return s == r })
	}
	return label[p0][p1]
}
