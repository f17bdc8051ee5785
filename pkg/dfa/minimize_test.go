package dfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/fa-toolkit/pkg/fa"
)

func TestMinifyPreservesLanguage(t *testing.T) {
	for name, d := range map[string]*DFA{
		"ten state": tenState(t),
		"chain":     chain(t),
		"evenA":     evenA(t),
		"justAB":    justAB(t),
	} {
		t.Run(name, func(t *testing.T) {
			m, err := d.Minify()
			require.NoError(t, err)
			assert.True(t, m.IsComplete())
			assert.LessOrEqual(t, m.NumStates(), d.Complete().NumStates())
			for _, w := range fa.Words(d.Alphabet(), 7) {
				assert.Equal(t, d.Accepts(w), m.Accepts(w), fa.Join(w))
			}

			again, err := m.Minify()
			require.NoError(t, err)
			assert.Equal(t, m.NumStates(), again.NumStates())
		})
	}
}

func TestMinifyMergesEquivalentStates(t *testing.T) {
	// A and C agree on every suffix
	d := mustTable(t, "01", map[string]map[string]string{
		"A": {"0": "B", "1": "C"},
		"B": {"0": "B", "1": "D"},
		"C": {"0": "B", "1": "C"},
		"D": {"0": "B", "1": "E"},
		"E": {"0": "B", "1": "C"},
	}, "A", "E")
	m, err := d.Minify()
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumStates())
	assert.Equal(t, fa.Set(atom("A"), atom("C")), m.Initial())
	assert.Equal(t, []fa.State{fa.Set(atom("E"))}, m.Final())
}

func TestMinifyChainAddsOneSink(t *testing.T) {
	m, err := chain(t).Minify()
	require.NoError(t, err)
	// q0, q1, q2 and the sink are pairwise distinguishable
	assert.Equal(t, 4, m.NumStates())
	assert.True(t, m.HasState(fa.Set(atom("sink"))))
}

func TestMinifyKeepsUnreachableStates(t *testing.T) {
	d := mustTable(t, "a", map[string]map[string]string{
		"q0":   {"a": "q0"},
		"lone": {"a": "lone"},
	}, "q0", "q0")
	m, err := d.Minify()
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumStates())

	m, err = d.Trim().Minify()
	require.NoError(t, err)
	assert.Equal(t, 1, m.NumStates())
}
