package fafile

import (
	"math"
	"strings"
	"unicode/utf8"
)

// DiagramOptions configures PNG and SVG state diagrams.
type DiagramOptions struct {
	Width       int
	Height      int
	Padding     int
	StateRadius int
	FontSize    int
	Title       string
	Layout      string // LayoutCircle or LayoutLayered
}

// DefaultDiagramOptions returns sensible defaults for diagram rendering.
func DefaultDiagramOptions() DiagramOptions {
	return DiagramOptions{
		Width:       800,
		Height:      600,
		Padding:     50,
		StateRadius: 30,
		FontSize:    14,
		Layout:      LayoutCircle,
	}
}

// diagramEdge is one arrow: every transition between the same two states
// shares it, with the labels joined.
type diagramEdge struct {
	from, to string
	label    string
	bidi     bool // another edge runs from to back to from
}

// groupEdges merges def's transitions by (from, to) in first-seen order.
func groupEdges(def *Definition) []diagramEdge {
	var order [][2]string
	labels := make(map[[2]string][]string)
	for _, t := range def.Transitions {
		label := "ε"
		if t.Input != nil {
			label = *t.Input
		}
		for _, to := range t.To {
			k := [2]string{t.From, to}
			if _, ok := labels[k]; !ok {
				order = append(order, k)
			}
			labels[k] = append(labels[k], label)
		}
	}
	edges := make([]diagramEdge, 0, len(order))
	for _, k := range order {
		_, back := labels[[2]string{k[1], k[0]}]
		edges = append(edges, diagramEdge{
			from:  k[0],
			to:    k[1],
			label: strings.Join(labels[k], ", "),
			bidi:  back && k[0] != k[1],
		})
	}
	return edges
}

// diagram is a definition placed on a canvas. pos holds state centres and
// dims the radii of their ellipses.
type diagram struct {
	pos     map[string][2]float64
	dims    map[string][2]float64
	edges   []diagramEdge
	centreY float64
}

// layoutDiagram places def's states on the canvas, on a circle or in
// breadth-first columns depending on opts.Layout. unit scales fixed
// spacings and charWidth is the width of one label character.
func layoutDiagram(def *Definition, opts DiagramOptions, unit, charWidth float64) *diagram {
	titleSpace := 0.0
	if opts.Title != "" {
		titleSpace = 35 * unit
	}
	cx := float64(opts.Width) / 2
	cy := (float64(opts.Height) + titleSpace) / 2
	radius := math.Min(float64(opts.Width), float64(opts.Height)-titleSpace)/2 - float64(opts.Padding) - float64(opts.StateRadius)
	if radius < float64(opts.StateRadius)*2 {
		radius = float64(opts.StateRadius) * 2
	}

	d := &diagram{
		pos:     make(map[string][2]float64, len(def.States)),
		dims:    make(map[string][2]float64, len(def.States)),
		edges:   groupEdges(def),
		centreY: cy,
	}
	if opts.Layout == LayoutLayered {
		inset := float64(opts.Padding + opts.StateRadius)
		d.pos = layeredLayout(def, inset, titleSpace+inset,
			float64(opts.Width)-2*inset, float64(opts.Height)-titleSpace-2*inset)
	} else {
		for i, p := range circleLayout(len(def.States), cx, cy, radius) {
			d.pos[def.States[i]] = p
		}
	}
	for _, name := range def.States {
		textWidth := float64(utf8.RuneCountInString(name)) * charWidth
		rx := math.Max(float64(opts.StateRadius), textWidth/2+20*unit)
		ry := float64(opts.StateRadius) * 0.8
		d.dims[name] = [2]float64{rx, ry}
	}
	return d
}

// circleLayout places n nodes evenly on a circle, the first on the left so
// the initial arrow has room.
func circleLayout(n int, cx, cy, r float64) [][2]float64 {
	pos := make([][2]float64, n)
	if n == 1 {
		pos[0] = [2]float64{cx, cy}
		return pos
	}
	for i := range pos {
		angle := math.Pi + 2*math.Pi*float64(i)/float64(n)
		pos[i] = [2]float64{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pos
}

// ellipseEdgePoint returns the point on an ellipse edge in direction
// (nx, ny), which must be normalised.
func ellipseEdgePoint(cx, cy, rx, ry, nx, ny float64) (float64, float64) {
	t := 1.0 / math.Sqrt((nx*nx)/(rx*rx)+(ny*ny)/(ry*ry))
	return cx + nx*t, cy + ny*t
}
