package fafile

import (
	"sort"
)

// Diagram layouts.
const (
	LayoutCircle  = "circle"
	LayoutLayered = "layered"
)

// edgeGraph is the deduplicated adjacency of a definition.
type edgeGraph struct {
	forward  map[string][]string
	backward map[string][]string
}

func buildEdgeGraph(def *Definition) *edgeGraph {
	g := &edgeGraph{
		forward:  make(map[string][]string, len(def.States)),
		backward: make(map[string][]string, len(def.States)),
	}
	for _, e := range groupEdges(def) {
		if e.from == e.to {
			continue
		}
		g.forward[e.from] = append(g.forward[e.from], e.to)
		g.backward[e.to] = append(g.backward[e.to], e.from)
	}
	return g
}

// rankStates assigns each state its breadth-first distance from the
// initial states. Unreachable states share one rank after the last
// reachable one.
func rankStates(def *Definition, g *edgeGraph) [][]string {
	rank := make(map[string]int, len(def.States))
	queue := make([]string, 0, len(def.States))
	for _, s := range def.Initial {
		if _, ok := rank[s]; !ok {
			rank[s] = 0
			queue = append(queue, s)
		}
	}
	last := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.forward[cur] {
			if _, ok := rank[next]; !ok {
				rank[next] = rank[cur] + 1
				last = max(last, rank[next])
				queue = append(queue, next)
			}
		}
	}
	orphan := last + 1
	if len(rank) == 0 {
		orphan = 0
	}
	for _, s := range def.States {
		if _, ok := rank[s]; !ok {
			rank[s] = orphan
			last = orphan
		}
	}

	layers := make([][]string, last+1)
	for _, s := range def.States {
		layers[rank[s]] = append(layers[rank[s]], s)
	}
	return layers
}

// orderLayers reduces edge crossings with the barycentre heuristic: a
// forward sweep by predecessors then a backward sweep by successors.
func orderLayers(layers [][]string, g *edgeGraph, passes int) {
	pos := make(map[string]float64)
	for _, layer := range layers {
		for i, s := range layer {
			pos[s] = float64(i)
		}
	}
	sweep := func(layer []string, neighbours map[string][]string) {
		bary := make(map[string]float64, len(layer))
		for _, s := range layer {
			sum, n := 0.0, 0
			for _, o := range neighbours[s] {
				if p, ok := pos[o]; ok {
					sum += p
					n++
				}
			}
			if n > 0 {
				bary[s] = sum / float64(n)
			} else {
				bary[s] = pos[s]
			}
		}
		sort.SliceStable(layer, func(i, j int) bool { return bary[layer[i]] < bary[layer[j]] })
		for i, s := range layer {
			pos[s] = float64(i)
		}
	}
	for ; passes > 0; passes-- {
		for l := 1; l < len(layers); l++ {
			sweep(layers[l], g.backward)
		}
		for l := len(layers) - 2; l >= 0; l-- {
			sweep(layers[l], g.forward)
		}
	}
}

// layeredLayout places ranks in columns from left to right, spreading each
// column's states evenly over the height.
func layeredLayout(def *Definition, left, top, width, height float64) map[string][2]float64 {
	g := buildEdgeGraph(def)
	layers := rankStates(def, g)
	orderLayers(layers, g, 4)

	pos := make(map[string][2]float64, len(def.States))
	colWidth := width / float64(len(layers))
	for l, layer := range layers {
		x := left + colWidth*(float64(l)+0.5)
		rowHeight := height / float64(len(layer))
		for i, s := range layer {
			pos[s] = [2]float64{x, top + rowHeight*(float64(i)+0.5)}
		}
	}
	return pos
}
