package dfa

import (
	"fmt"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
	"github.com/ha1tch/fa-toolkit/pkg/mintable"
)

// Minify returns the minimal DFA equivalent to d.
//
// d is completed with a sink first, then its states are partitioned by the
// table-filling algorithm. Each class becomes one state named by the set of
// its members. Unreachable states are partitioned like any other; call
// Trim first to drop them.
func (d *DFA) Minify() (*DFA, error) {
	c := d.Complete()
	classes, err := mintable.Partition(c)
	if err != nil {
		return nil, fmt.Errorf("minify: %w", err)
	}

	classOf := make(map[fa.State]fa.State, len(c.states))
	for _, class := range classes {
		name := fa.Set(class...)
		for _, s := range class {
			classOf[s] = name
		}
	}

	b := NewBuilder(c.alphabet...)
	for _, class := range classes {
		from := classOf[class[0]]
		b.AddState(from)
		// members share their behaviour, so any representative will do
		rep := class[0]
		for _, sym := range c.alphabet {
			if to, ok := c.Next(rep, sym); ok {
				b.AddTransition(from, sym, classOf[to])
			}
		}
		for _, s := range class {
			if c.IsFinal(s) {
				b.AddFinal(from)
				break
			}
		}
	}
	b.SetInitial(classOf[c.initial])
	return b.Build()
}
