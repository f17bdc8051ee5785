package dfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

func atom(name string) fa.State { return fa.Atom(name) }

func mustTable(t *testing.T, alphabet string, table map[string]map[string]string, initial string, final ...string) *DFA {
	t.Helper()
	var syms []string
	for _, r := range alphabet {
		syms = append(syms, string(r))
	}
	d, err := FromTable(syms, table, initial, final...)
	require.NoError(t, err)
	return d
}

// tenState is the classic ten state textbook DFA over {a,b}.
func tenState(t *testing.T) *DFA {
	return mustTable(t, "ab", map[string]map[string]string{
		"q0": {"a": "q1", "b": "q9"},
		"q1": {"a": "q8", "b": "q2"},
		"q2": {"a": "q3", "b": "q2"},
		"q3": {"a": "q2", "b": "q4"},
		"q4": {"a": "q5", "b": "q8"},
		"q5": {"a": "q4", "b": "q5"},
		"q6": {"a": "q7", "b": "q5"},
		"q7": {"a": "q6", "b": "q5"},
		"q8": {"a": "q1", "b": "q3"},
		"q9": {"a": "q7", "b": "q8"},
	}, "q0", "q3", "q4", "q8", "q9")
}

// chain accepts exactly the words of length two over {a,b}.
func chain(t *testing.T) *DFA {
	return mustTable(t, "ab", map[string]map[string]string{
		"q0": {"a": "q1", "b": "q1"},
		"q1": {"a": "q2", "b": "q2"},
		"q2": {},
	}, "q0", "q2")
}

func words(d *DFA, maxLen int) []string {
	var out []string
	for _, w := range d.Words(maxLen) {
		out = append(out, fa.Join(w))
	}
	return out
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder("a").AddState(atom("q0")).Build()
	assert.ErrorIs(t, err, fa.ErrNoInitial)

	_, err = NewBuilder("a").
		AddTransition(atom("q0"), "a", atom("q1")).
		AddTransition(atom("q0"), "a", atom("q2")).
		SetInitial(atom("q0")).
		Build()
	assert.ErrorIs(t, err, fa.ErrNondeterministic)

	_, err = NewBuilder("a").
		AddTransition(atom("q0"), fa.Epsilon, atom("q1")).
		SetInitial(atom("q0")).
		Build()
	assert.ErrorContains(t, err, "epsilon")

	_, err = NewBuilder().AddState(fa.State{}).SetInitial(atom("q0")).Build()
	assert.Error(t, err)

	// repeating an identical edge is fine
	_, err = NewBuilder("a").
		AddTransition(atom("q0"), "a", atom("q0")).
		AddTransition(atom("q0"), "a", atom("q0")).
		SetInitial(atom("q0")).
		Build()
	assert.NoError(t, err)
}

func TestFromTable(t *testing.T) {
	d := tenState(t)
	assert.Equal(t, 10, d.NumStates())
	assert.Equal(t, fa.Alphabet{"a", "b"}, d.Alphabet())
	assert.Equal(t, atom("q0"), d.Initial())
	assert.Equal(t, []fa.State{atom("q3"), atom("q4"), atom("q8"), atom("q9")}, d.Final())
	assert.True(t, d.IsComplete())
	assert.True(t, d.HasState(atom("q6")))
	assert.False(t, d.HasState(atom("q10")))

	to, ok := d.Next(atom("q9"), "a")
	assert.True(t, ok)
	assert.Equal(t, atom("q7"), to)
	_, ok = d.Next(atom("q9"), "c")
	assert.False(t, ok)
	_, ok = d.Next(atom("nope"), "a")
	assert.False(t, ok)
}

func TestTransitionsOrdered(t *testing.T) {
	tr := chain(t).Transitions()
	require.Len(t, tr, 4)
	assert.Equal(t, Transition{atom("q0"), "a", atom("q1")}, tr[0])
	assert.Equal(t, Transition{atom("q0"), "b", atom("q1")}, tr[1])
	assert.Equal(t, Transition{atom("q1"), "b", atom("q2")}, tr[3])
}

func TestAccepts(t *testing.T) {
	d := tenState(t)
	for _, w := range []string{"abaaa", "bb", "aababab", "b"} {
		assert.True(t, d.AcceptsString(w), w)
	}
	for _, w := range []string{"", "a", "ab", "abc"} {
		assert.False(t, d.AcceptsString(w), w)
	}

	s, ok := d.Run(fa.SymbolsOf("ab"))
	assert.True(t, ok)
	assert.Equal(t, atom("q2"), s)
	_, ok = d.Run(fa.SymbolsOf("ac"))
	assert.False(t, ok)
}

func TestTenStateAnalysis(t *testing.T) {
	d := tenState(t)
	assert.Equal(t, 10, d.ReachableStates().Len())
	assert.False(t, d.IsEmpty())
	assert.False(t, d.IsFinite())

	n, err := d.ShortestWordLength()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = d.LongestWordLength()
	assert.ErrorIs(t, err, fa.ErrInfiniteLanguage)
	_, err = d.WordCount()
	assert.ErrorIs(t, err, fa.ErrInfiniteLanguage)
}

func TestChainAnalysis(t *testing.T) {
	d := chain(t)
	assert.True(t, d.IsFinite())
	assert.False(t, d.IsComplete())

	count, err := d.WordCount()
	require.NoError(t, err)
	assert.Equal(t, int64(4), count.Int64())
	assert.Equal(t, []string{"aa", "ab", "ba", "bb"}, words(d, 5))

	shortest, err := d.ShortestWordLength()
	require.NoError(t, err)
	longest, err := d.LongestWordLength()
	require.NoError(t, err)
	assert.Equal(t, 2, shortest)
	assert.Equal(t, 2, longest)
}

func TestCountPathsDetectsRepeats(t *testing.T) {
	loop := mustTable(t, "a", map[string]map[string]string{
		"p": {"a": "q"},
		"q": {"a": "p"},
	}, "p", "q")
	_, err := loop.countPaths(loop.NumStates())
	assert.ErrorIs(t, err, fa.ErrInfiniteFinite)

	n, err := chain(t).countPaths(3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n.Int64())
}

func TestWordCountSumsLengths(t *testing.T) {
	// a, ab and abb
	d := mustTable(t, "ab", map[string]map[string]string{
		"s0": {"a": "s1"},
		"s1": {"b": "s2"},
		"s2": {"b": "s3"},
	}, "s0", "s1", "s2", "s3")
	count, err := d.WordCount()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count.Int64())
	assert.Equal(t, []string{"a", "ab", "abb"}, words(d, 3))

	longest, err := d.LongestWordLength()
	require.NoError(t, err)
	assert.Equal(t, 3, longest)
}

func TestEmptyLanguage(t *testing.T) {
	d := mustTable(t, "a", map[string]map[string]string{
		"q0": {"a": "q1"},
	}, "q0")
	assert.True(t, d.IsEmpty())
	assert.True(t, d.IsFinite())

	count, err := d.WordCount()
	require.NoError(t, err)
	assert.Zero(t, count.Sign())

	_, err = d.ShortestWordLength()
	assert.ErrorIs(t, err, fa.ErrEmptyLanguage)
	_, err = d.LongestWordLength()
	assert.ErrorIs(t, err, fa.ErrEmptyLanguage)
	assert.Empty(t, d.Words(4))
}

func TestUnreachableFinalDoesNotCount(t *testing.T) {
	d := mustTable(t, "a", map[string]map[string]string{
		"q0": {},
		"q1": {"a": "q1"},
	}, "q0", "q1")
	assert.True(t, d.IsEmpty())
	assert.True(t, d.IsFinite(), "the cycle on q1 is unreachable")
}

// A reachable cycle through a dead state makes IsFinite report false even
// though the language is {a}.
func TestIsFiniteCountsDeadCycles(t *testing.T) {
	d := mustTable(t, "ab", map[string]map[string]string{
		"q0":   {"a": "q1", "b": "dead"},
		"q1":   {"a": "dead", "b": "dead"},
		"dead": {"a": "dead", "b": "dead"},
	}, "q0", "q1")
	assert.False(t, d.IsFinite())
	assert.Equal(t, []string{"a"}, words(d, 6))

	m, err := d.Minify()
	require.NoError(t, err)
	assert.False(t, m.IsFinite())
}

func TestComplete(t *testing.T) {
	d := chain(t)
	c := d.Complete()
	assert.True(t, c.IsComplete())
	assert.Equal(t, d.NumStates()+1, c.NumStates())
	assert.True(t, c.HasState(atom("sink")))
	assert.False(t, c.IsFinal(atom("sink")))
	assert.Equal(t, words(d, 5), words(c, 5))

	assert.Same(t, c, c.Complete())

	// a taken name is primed
	taken := mustTable(t, "a", map[string]map[string]string{"sink": {}}, "sink")
	assert.True(t, taken.Complete().HasState(atom("sink'")))
}

func TestExtend(t *testing.T) {
	d := tenState(t).Extend("c")
	assert.Equal(t, fa.Alphabet{"a", "b", "c"}, d.Alphabet())
	assert.False(t, d.IsComplete())
	assert.True(t, d.AcceptsString("bb"))
	assert.False(t, d.AcceptsString("bbc"))
}

func TestTrim(t *testing.T) {
	d := mustTable(t, "a", map[string]map[string]string{
		"q0":     {"a": "q1"},
		"q1":     {"a": "q0"},
		"orphan": {"a": "q0"},
	}, "q0", "q1", "orphan")
	tr := d.Trim()
	assert.Equal(t, []fa.State{atom("q0"), atom("q1")}, tr.States())
	assert.Equal(t, []fa.State{atom("q1")}, tr.Final())
	assert.Equal(t, 3, d.NumStates(), "Trim leaves its receiver alone")
}

func TestRenumber(t *testing.T) {
	d := mustTable(t, "ab", map[string]map[string]string{
		"start": {"b": "x", "a": "y"},
		"x":     {"a": "start"},
		"y":     {"b": "x"},
		"lost":  {},
	}, "start", "x")
	r := d.Renumber()
	assert.Equal(t, fa.Int(0), r.Initial())
	// a is explored before b, so y is 1 and x is 2
	assert.Equal(t, []fa.State{fa.Int(2)}, r.Final())
	to, ok := r.Next(fa.Int(0), "a")
	assert.True(t, ok)
	assert.Equal(t, fa.Int(1), to)
	assert.True(t, r.HasState(fa.Int(3)), "unreachable states are numbered last")
	assert.Equal(t, words(d, 6), words(r, 6))
}

func TestWordsOrder(t *testing.T) {
	d := mustTable(t, "ab", map[string]map[string]string{
		"q": {"a": "q", "b": "q"},
	}, "q", "q")
	assert.Equal(t, []string{"", "a", "b", "aa", "ab", "ba", "bb"}, words(d, 2))
	assert.Len(t, d.Words(0), 1)
}
