package fafile

import (
	"fmt"
	"html"
	"math"
	"strings"
)

// RenderSVG draws def as an SVG state diagram with the same layout as
// RenderPNG.
func RenderSVG(def *Definition, opts DiagramOptions) string {
	labelSize := opts.FontSize - 2
	if labelSize < 10 {
		labelSize = 10
	}
	lay := layoutDiagram(def, opts, 1, float64(opts.FontSize)*0.6)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<defs>
  <marker id="arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">
    <polygon points="0 0, 10 3.5, 0 7" fill="#333"/>
  </marker>
</defs>
<style>
  .state { fill: white; stroke: #333; stroke-width: 2; }
  .state-initial { fill: #e8f5e9; stroke: #2e7d32; stroke-width: 2; }
  .state-accepting { fill: #fff3e0; stroke: #e65100; stroke-width: 2; }
  .state-both { fill: #e3f2fd; stroke: #1565c0; stroke-width: 2; }
  .state-label { font-family: sans-serif; font-size: %dpx; text-anchor: middle; dominant-baseline: middle; }
  .transition { fill: none; stroke: #333; stroke-width: 1.5; marker-end: url(#arrowhead); }
  .trans-label { font-family: sans-serif; font-size: %dpx; fill: #333; text-anchor: middle; }
  .title { font-family: sans-serif; font-size: %dpx; font-weight: bold; text-anchor: middle; }
</style>
<rect width="%d" height="%d" fill="white"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.FontSize, labelSize, opts.FontSize+4, opts.Width, opts.Height)

	if opts.Title != "" {
		fmt.Fprintf(&sb, "<text x=\"%d\" y=\"25\" class=\"title\">%s</text>\n", opts.Width/2, html.EscapeString(opts.Title))
	}

	// edges go under the states
	for _, e := range lay.edges {
		if e.from == e.to {
			svgSelfLoop(&sb, lay.pos[e.from], lay.dims[e.from], e.label, lay.centreY)
			continue
		}
		svgEdge(&sb, lay.pos[e.from], lay.pos[e.to], lay.dims[e.from], lay.dims[e.to], e.label, e.bidi)
	}

	for _, s := range def.Initial {
		p, d := lay.pos[s], lay.dims[s]
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" class=\"transition\"/>\n",
			p[0]-d[0]-30, p[1], p[0]-d[0]-2, p[1])
	}

	for _, name := range def.States {
		p, d := lay.pos[name], lay.dims[name]
		isInitial, isAccepting := def.IsInitial(name), def.IsAccepting(name)

		class := "state"
		switch {
		case isInitial && isAccepting:
			class = "state-both"
		case isInitial:
			class = "state-initial"
		case isAccepting:
			class = "state-accepting"
		}
		fmt.Fprintf(&sb, "<ellipse cx=\"%.1f\" cy=\"%.1f\" rx=\"%.1f\" ry=\"%.1f\" class=\"%s\"/>\n",
			p[0], p[1], d[0], d[1], class)
		if isAccepting {
			fmt.Fprintf(&sb, "<ellipse cx=\"%.1f\" cy=\"%.1f\" rx=\"%.1f\" ry=\"%.1f\" class=\"%s\" fill=\"none\"/>\n",
				p[0], p[1], d[0]-4, d[1]-4, class)
		}
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" class=\"state-label\">%s</text>\n",
			p[0], p[1], html.EscapeString(name))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// svgEdge draws a transition between two distinct states, curving it to
// its left when bent so that opposite edges stay apart.
func svgEdge(sb *strings.Builder, from, to, fromDims, toDims [2]float64, label string, bent bool) {
	dx, dy := to[0]-from[0], to[1]-from[1]
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	nx, ny := dx/dist, dy/dist
	x1, y1 := ellipseEdgePoint(from[0], from[1], fromDims[0], fromDims[1], nx, ny)
	x2, y2 := ellipseEdgePoint(to[0], to[1], toDims[0], toDims[1], -nx, -ny)
	mx, my := (x1+x2)/2, (y1+y2)/2

	if !bent {
		fmt.Fprintf(sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" class=\"transition\"/>\n", x1, y1, x2, y2)
		fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" class=\"trans-label\">%s</text>\n",
			mx-ny*10, my+nx*10, html.EscapeString(label))
		return
	}
	cx, cy := mx+ny*25, my-nx*25
	fmt.Fprintf(sb, "<path d=\"M%.1f,%.1f Q%.1f,%.1f %.1f,%.1f\" class=\"transition\"/>\n", x1, y1, cx, cy, x2, y2)
	fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" class=\"trans-label\">%s</text>\n", cx, cy, html.EscapeString(label))
}

// svgSelfLoop draws a loop on the outer side of a state: above it in the
// upper half of the diagram, below it otherwise.
func svgSelfLoop(sb *strings.Builder, p, dims [2]float64, label string, centreY float64) {
	rx, ry := dims[0], dims[1]
	dir := -1.0
	if p[1] > centreY {
		dir = 1.0
	}
	sx, sy := ellipseEdgePoint(p[0], p[1], rx, ry, -0.5, dir*0.866)
	ex, ey := ellipseEdgePoint(p[0], p[1], rx, ry, 0.5, dir*0.866)
	reach := p[1] + dir*(ry+ry*1.2)
	fmt.Fprintf(sb, "<path d=\"M%.1f,%.1f C%.1f,%.1f %.1f,%.1f %.1f,%.1f\" class=\"transition\"/>\n",
		sx, sy, p[0]-rx*0.8, reach, p[0]+rx*0.8, reach, ex, ey)
	fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" class=\"trans-label\">%s</text>\n",
		p[0], reach+dir*4, html.EscapeString(label))
}
