package fafile

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDOT(t *testing.T) {
	out := GenerateDOT(evenDef(), "")
	assert.True(t, strings.HasPrefix(out, "digraph FA {\n"))
	assert.Contains(t, out, `label="even-a";`)
	assert.Contains(t, out, `__start0 -> "q0";`)
	assert.Contains(t, out, `"q0" [shape=doublecircle];`)
	assert.Contains(t, out, `"q1" [shape=circle];`)
	assert.Contains(t, out, `"q0" -> "q1" [label="a"];`)

	out = GenerateDOT(abbDef(), `say "hi"`)
	assert.Contains(t, out, `label="say \"hi\"";`)
	assert.Contains(t, out, `"s" -> "q0" [label="ε"];`)
	// a and b from q0 to itself share one arrow
	assert.Contains(t, out, `"q0" -> "q0" [label="a, b"];`)
	assert.Equal(t, 1, strings.Count(out, `"q0" -> "q0"`))
}

func TestEscapeDOT(t *testing.T) {
	assert.Equal(t, `say \"hi\"`, escapeDOT(`say "hi"`))
	assert.Equal(t, `a\\b`, escapeDOT(`a\b`))
	assert.Equal(t, `{a,b}`, escapeDOT(`{a,b}`))
	assert.Equal(t, `\<x\>`, escapeDOT(`<x>`))
}

func TestTableRows(t *testing.T) {
	header, rows := TableRows(abbDef())
	assert.Equal(t, []string{"", "state", "a", "b", "ε"}, header)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"->", "s", "-", "-", "q0"}, rows[0])
	assert.Equal(t, []string{"", "q0", "{q0, q1}", "q0", "-"}, rows[1])
	assert.Equal(t, []string{"*", "q3", "-", "-", "-"}, rows[4])

	header, rows = TableRows(evenDef())
	assert.Equal(t, []string{"", "state", "a", "b"}, header)
	assert.Equal(t, "->*", rows[0][0])
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, evenDef()))
	out := buf.String()
	for _, want := range []string{"->*", "q0", "q1"} {
		assert.Contains(t, out, want)
	}
	assert.Greater(t, strings.Count(out, "\n"), 3)
}

func TestRenderPNG(t *testing.T) {
	opts := DefaultDiagramOptions()
	opts.Width, opts.Height = 320, 240
	opts.Title = "even-a"

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(evenDef(), &buf, opts))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	buf.Reset()
	require.NoError(t, RenderPNG(abbDef(), &buf, DefaultDiagramOptions()))
	assert.NotZero(t, buf.Len())
}

func TestCircleLayout(t *testing.T) {
	one := circleLayout(1, 100, 50, 40)
	assert.Equal(t, [2]float64{100, 50}, one[0])

	four := circleLayout(4, 100, 50, 40)
	require.Len(t, four, 4)
	assert.InDelta(t, 60, four[0][0], 1e-9, "first node sits on the left")
	assert.InDelta(t, 50, four[0][1], 1e-9)
	for _, p := range four {
		assert.InDelta(t, 40, math.Hypot(p[0]-100, p[1]-50), 1e-9)
	}
}

func TestRenderSVG(t *testing.T) {
	opts := DefaultDiagramOptions()
	opts.Title = "a < b"
	out := RenderSVG(abbDef(), opts)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0"`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, `class="title">a &lt; b</text>`)
	assert.Equal(t, len(abbDef().States)+1, strings.Count(out, "<ellipse"), "q3 gets a second ring")
	assert.Contains(t, out, `class="state-initial"`)
	assert.Contains(t, out, `class="state-accepting"`)
	assert.Contains(t, out, `>a, b</text>`)
	assert.Contains(t, out, `>ε</text>`)

	// a loop is a cubic path, the opposite edges of even-a bend
	even := RenderSVG(evenDef(), DefaultDiagramOptions())
	assert.Contains(t, even, `class="state-both"`)
	assert.Contains(t, even, " C")
	assert.Contains(t, even, " Q")
}

func TestGroupEdges(t *testing.T) {
	edges := groupEdges(evenDef())
	require.Len(t, edges, 4)
	assert.Equal(t, diagramEdge{from: "q0", to: "q1", label: "a", bidi: true}, edges[0])
	assert.Equal(t, diagramEdge{from: "q0", to: "q0", label: "b"}, edges[1])
}
