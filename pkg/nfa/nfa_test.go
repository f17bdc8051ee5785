package nfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

func q(n int) fa.State { return fa.Int(n) }

// endsABB is the textbook NFA for (a+b)*abb.
func endsABB(t *testing.T) *NFA {
	t.Helper()
	n, err := NewBuilder("a", "b").
		AddState(q(0), q(1), q(2), q(3)).
		AddTransition(q(0), "a", q(0), q(1)).
		AddTransition(q(0), "b", q(0)).
		AddTransition(q(1), "b", q(2)).
		AddTransition(q(2), "b", q(3)).
		AddInitial(q(0)).
		AddFinal(q(3)).
		Build()
	require.NoError(t, err)
	return n
}

// epsilonCycle has 1 -ε-> 2 -ε-> 3 -ε-> 1 and 3 -a-> 4.
func epsilonCycle(t *testing.T) *NFA {
	t.Helper()
	n, err := NewBuilder("a").
		AddTransition(q(1), fa.Epsilon, q(2)).
		AddTransition(q(2), fa.Epsilon, q(3)).
		AddTransition(q(3), fa.Epsilon, q(1)).
		AddTransition(q(3), "a", q(4)).
		AddInitial(q(1)).
		AddFinal(q(4)).
		Build()
	require.NoError(t, err)
	return n
}

func TestBuildRequiresInitial(t *testing.T) {
	_, err := NewBuilder("a").AddState(q(1)).Build()
	assert.True(t, errors.Is(err, fa.ErrNoInitial))
}

func TestBuilderAddsTransitionEndpoints(t *testing.T) {
	n := epsilonCycle(t)
	assert.Equal(t, []fa.State{q(1), q(2), q(3), q(4)}, n.States())
	assert.Equal(t, fa.Alphabet{"a"}, n.Alphabet())
	assert.True(t, n.HasEpsilon())
}

func TestEpsilonClosure(t *testing.T) {
	n := epsilonCycle(t)
	assert.Equal(t, []fa.State{q(1), q(2), q(3)}, n.EpsilonClosure(q(1)))
	assert.Equal(t, []fa.State{q(4)}, n.EpsilonClosure(q(4)))
	assert.Empty(t, n.EpsilonClosure(fa.Atom("unknown")))
}

func TestMove(t *testing.T) {
	n := endsABB(t)
	assert.Equal(t, []fa.State{q(0), q(1)}, n.Move([]fa.State{q(0)}, "a"))
	assert.Equal(t, []fa.State{q(0), q(2)}, n.Move([]fa.State{q(0), q(1)}, "b"))
	assert.Empty(t, n.Move([]fa.State{q(3)}, "a"))
}

func TestTransitionsEpsilonFirst(t *testing.T) {
	n, err := NewBuilder("a").
		AddTransition(q(1), "a", q(2)).
		AddTransition(q(1), fa.Epsilon, q(2)).
		AddInitial(q(1)).
		Build()
	require.NoError(t, err)
	tr := n.Transitions()
	require.Len(t, tr, 2)
	assert.Equal(t, fa.Epsilon, tr[0].Symbol)
	assert.Equal(t, fa.Symbol("a"), tr[1].Symbol)
}

func TestAccepts(t *testing.T) {
	n := endsABB(t)
	for _, w := range fa.Words(n.Alphabet(), 6) {
		word := fa.Join(w)
		assert.Equal(t, strings.HasSuffix(word, "abb"), n.Accepts(w), word)
	}
	assert.False(t, n.AcceptsString("abc"))

	cyc := epsilonCycle(t)
	assert.True(t, cyc.AcceptsString("a"))
	assert.False(t, cyc.AcceptsString(""))
	assert.False(t, cyc.AcceptsString("aa"))
}

func TestToDFA(t *testing.T) {
	n := endsABB(t)
	d, err := n.ToDFA()
	require.NoError(t, err)

	assert.Equal(t, fa.Set(q(0)), d.Initial())
	assert.Equal(t, 4, d.NumStates())
	assert.True(t, d.IsFinal(fa.Set(q(0), q(3))))
	for _, w := range fa.Words(n.Alphabet(), 7) {
		assert.Equal(t, n.Accepts(w), d.Accepts(w), fa.Join(w))
	}
}

func TestToDFAStartsFromClosure(t *testing.T) {
	d, err := epsilonCycle(t).ToDFA()
	require.NoError(t, err)
	assert.Equal(t, fa.Set(q(1), q(2), q(3)), d.Initial())
	to, ok := d.Next(d.Initial(), "a")
	require.True(t, ok)
	assert.Equal(t, fa.Set(q(4)), to)
	assert.True(t, d.IsFinal(to))
}

func TestToDFAEmptyMoveHasNoTransition(t *testing.T) {
	n, err := NewBuilder("a", "b").
		AddTransition(q(1), "a", q(2)).
		AddInitial(q(1)).
		AddFinal(q(2)).
		Build()
	require.NoError(t, err)

	d, err := n.ToDFA()
	require.NoError(t, err)
	_, ok := d.Next(d.Initial(), "b")
	assert.False(t, ok)
	assert.False(t, d.IsComplete())
	assert.Equal(t, 2, d.NumStates())
}

func TestEliminateEpsilon(t *testing.T) {
	frag := Concat(Star(Union(Base("a"), Base("b"))), Base("c"))
	n := frag.NFA(nil)
	require.True(t, n.HasEpsilon())

	e := n.EliminateEpsilon()
	assert.False(t, e.HasEpsilon())
	assert.Equal(t, n.States(), e.States())
	for _, w := range fa.Words(n.Alphabet(), 5) {
		assert.Equal(t, n.Accepts(w), e.Accepts(w), fa.Join(w))
	}
}

func TestFragmentNumbering(t *testing.T) {
	a, b := Base("a"), Base("b")

	tests := []struct {
		name                 string
		frag                 Fragment
		size, initial, final int
		link                 Edge
	}{
		{"base", a, 2, 1, 2, Edge{1, "a", 2}},
		{"concat", Concat(a, b), 4, 1, 4, Edge{2, fa.Epsilon, 3}},
		{"union", Union(a, b), 6, 1, 6, Edge{1, fa.Epsilon, 4}},
		{"star", Star(a), 4, 1, 4, Edge{3, fa.Epsilon, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.size, tt.frag.Size())
			assert.Equal(t, tt.initial, tt.frag.Initial())
			assert.Equal(t, tt.final, tt.frag.Final())
			assert.Contains(t, tt.frag.Edges(), tt.link)
		})
	}

	// operands are left alone
	assert.Equal(t, []Edge{{1, "a", 2}}, a.Edges())
}

func TestFragmentLanguages(t *testing.T) {
	tests := []struct {
		name   string
		frag   Fragment
		accept []string
		reject []string
	}{
		{"union", Union(Base("a"), Base("b")), []string{"a", "b"}, []string{"", "ab"}},
		{"concat", Concat(Base("a"), Base("b")), []string{"ab"}, []string{"a", "b", "ba"}},
		{"star", Star(Base("a")), []string{"", "a", "aaa"}, []string{"b"}},
		{"epsilon", Base(fa.Epsilon), []string{""}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.frag.NFA(fa.NewAlphabet("a", "b"))
			for _, w := range tt.accept {
				assert.True(t, n.AcceptsString(w), "should accept %q", w)
			}
			for _, w := range tt.reject {
				assert.False(t, n.AcceptsString(w), "should reject %q", w)
			}
		})
	}
}
