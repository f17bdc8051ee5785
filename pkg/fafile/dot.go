package fafile

import (
	"fmt"
	"strings"
)

// GenerateDOT converts a definition to Graphviz DOT format. Edges between
// the same pair of states share one arrow with a combined label.
func GenerateDOT(def *Definition, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph FA {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [fontname=\"Helvetica\", fontsize=11];\n")
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	if title == "" {
		title = def.Name
	}
	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		fmt.Fprintf(&sb, "    label=\"%s\";\n", escapeDOT(title))
		sb.WriteString("\n")
	}

	// Invisible start node per initial state
	for i, s := range def.Initial {
		fmt.Fprintf(&sb, "    __start%d [shape=none, label=\"\", width=0, height=0];\n", i)
		fmt.Fprintf(&sb, "    __start%d -> \"%s\";\n", i, escapeDOT(s))
	}
	if len(def.Initial) > 0 {
		sb.WriteString("\n")
	}

	for _, state := range def.States {
		shape := "circle"
		if def.IsAccepting(state) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&sb, "    \"%s\" [shape=%s];\n", escapeDOT(state), shape)
	}
	sb.WriteString("\n")

	for _, e := range groupEdges(def) {
		fmt.Fprintf(&sb, "    \"%s\" -> \"%s\" [label=\"%s\"];\n",
			escapeDOT(e.from), escapeDOT(e.to), escapeDOT(e.label))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "<", "\\<")
	s = strings.ReplaceAll(s, ">", "\\>")
	return s
}
