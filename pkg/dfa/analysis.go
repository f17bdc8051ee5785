package dfa

import (
	"fmt"
	"math/big"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

// successors lists the targets of s in alphabet order. A target reached on
// several symbols appears once per symbol.
func (d *DFA) successors(s fa.State) []fa.State {
	i, ok := d.index[s]
	if !ok {
		return nil
	}
	out := make([]fa.State, 0, len(d.delta[i]))
	for _, sym := range d.alphabet {
		if to, ok := d.delta[i][sym]; ok {
			out = append(out, to)
		}
	}
	return out
}

// ReachableStates returns the states reachable from the initial state,
// including the initial state itself.
func (d *DFA) ReachableStates() fa.StateSet {
	visited := fa.NewStateSet(d.initial)
	queue := []fa.State{d.initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, to := range d.successors(cur) {
			if !visited.Has(to) {
				visited.Add(to)
				queue = append(queue, to)
			}
		}
	}
	return visited
}

// IsEmpty reports whether d accepts no word at all.
func (d *DFA) IsEmpty() bool {
	for s := range d.ReachableStates() {
		if d.final.Has(s) {
			return false
		}
	}
	return true
}

// topoOrder returns the reachable states in topological order, or ok=false
// if the reachable part of the graph has a cycle.
func (d *DFA) topoOrder() (order []fa.State, ok bool) {
	const (
		white = iota
		grey
		black
	)
	type frame struct {
		state fa.State
		next  []fa.State
	}

	color := make(map[fa.State]int)
	var post []fa.State
	stack := []frame{{d.initial, d.successors(d.initial)}}
	color[d.initial] = grey
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if len(top.next) == 0 {
			color[top.state] = black
			post = append(post, top.state)
			stack = stack[:len(stack)-1]
			continue
		}
		to := top.next[0]
		top.next = top.next[1:]
		switch color[to] {
		case grey:
			return nil, false
		case white:
			color[to] = grey
			stack = append(stack, frame{to, d.successors(to)})
		}
	}
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post, true
}

// IsFinite reports whether the part of d reachable from the initial state
// is acyclic.
//
// Any reachable cycle counts, including one from which no accepting state
// can be reached. Such a DFA is reported infinite even though its language
// is finite. Trim dead states first (for example by minimizing and
// dropping the sink) when the exact answer matters.
func (d *DFA) IsFinite() bool {
	_, ok := d.topoOrder()
	return ok
}

// ShortestWordLength returns the length of the shortest accepted word.
func (d *DFA) ShortestWordLength() (int, error) {
	dist := map[fa.State]int{d.initial: 0}
	queue := []fa.State{d.initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if d.final.Has(cur) {
			return dist[cur], nil
		}
		for _, to := range d.successors(cur) {
			if _, seen := dist[to]; !seen {
				dist[to] = dist[cur] + 1
				queue = append(queue, to)
			}
		}
	}
	return 0, fa.ErrEmptyLanguage
}

// LongestWordLength returns the length of the longest accepted word. It
// fails with fa.ErrInfiniteLanguage when IsFinite is false.
func (d *DFA) LongestWordLength() (int, error) {
	order, ok := d.topoOrder()
	if !ok {
		return 0, fa.ErrInfiniteLanguage
	}
	dist := map[fa.State]int{d.initial: 0}
	best := -1
	for _, s := range order {
		ds, seen := dist[s]
		if !seen {
			continue
		}
		if d.final.Has(s) && ds > best {
			best = ds
		}
		for _, to := range d.successors(s) {
			if cur, ok := dist[to]; !ok || ds+1 > cur {
				dist[to] = ds + 1
			}
		}
	}
	if best < 0 {
		return 0, fa.ErrEmptyLanguage
	}
	return best, nil
}

// WordCount returns the exact number of words d accepts. The language must
// be finite. An empty language counts zero words.
//
// Words are counted as labelled paths from the initial state, so two
// symbols leading to the same state count as two words.
func (d *DFA) WordCount() (*big.Int, error) {
	if !d.IsFinite() {
		return nil, fa.ErrInfiniteLanguage
	}
	return d.countPaths(d.ReachableStates().Len())
}

// countPaths sums accepted paths length by length. A path still alive after
// n steps repeats a state, which IsFinite rules out for callers of
// WordCount.
func (d *DFA) countPaths(n int) (*big.Int, error) {
	total := new(big.Int)
	paths := map[fa.State]*big.Int{d.initial: big.NewInt(1)}
	for length := 0; length <= n; length++ {
		if len(paths) == 0 {
			return total, nil
		}
		if length == n {
			// a path visiting n+1 states among n repeats one
			return nil, fmt.Errorf("%w: path of length %d over %d states", fa.ErrInfiniteFinite, n, n)
		}
		next := make(map[fa.State]*big.Int)
		for s, c := range paths {
			if d.final.Has(s) {
				total.Add(total, c)
			}
			for _, to := range d.successors(s) {
				acc, ok := next[to]
				if !ok {
					acc = new(big.Int)
					next[to] = acc
				}
				acc.Add(acc, c)
			}
		}
		paths = next
	}
	return total, nil
}

// Words returns the words of length at most maxLen that d accepts, shortest
// first and in alphabet order within a length.
func (d *DFA) Words(maxLen int) [][]fa.Symbol {
	type item struct {
		word  []fa.Symbol
		state fa.State
	}
	var out [][]fa.Symbol
	level := []item{{nil, d.initial}}
	for length := 0; length <= maxLen && len(level) > 0; length++ {
		var next []item
		for _, it := range level {
			if d.final.Has(it.state) {
				out = append(out, it.word)
			}
			if length == maxLen {
				continue
			}
			i := d.index[it.state]
			for _, sym := range d.alphabet {
				if to, ok := d.delta[i][sym]; ok {
					w := make([]fa.Symbol, len(it.word)+1)
					copy(w, it.word)
					w[len(it.word)] = sym
					next = append(next, item{w, to})
				}
			}
		}
		level = next
	}
	return out
}
