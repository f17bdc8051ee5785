package fafile

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// TableRows returns the transition table of def: a header row, then one row
// per state. The first column flags the state with "->" when initial and
// "*" when accepting; an epsilon column appears only when def has epsilon
// edges. Missing entries are "-".
func TableRows(def *Definition) (header []string, rows [][]string) {
	hasEpsilon := false
	cells := make(map[[2]string][]string)
	for _, t := range def.Transitions {
		in := "ε"
		if t.Input != nil {
			in = *t.Input
		} else {
			hasEpsilon = true
		}
		key := [2]string{t.From, in}
		cells[key] = append(cells[key], t.To...)
	}

	columns := append([]string(nil), def.Alphabet...)
	if hasEpsilon {
		columns = append(columns, "ε")
	}
	header = append([]string{"", "state"}, columns...)

	for _, s := range def.States {
		flag := ""
		if def.IsInitial(s) {
			flag += "->"
		}
		if def.IsAccepting(s) {
			flag += "*"
		}
		row := []string{flag, s}
		for _, in := range columns {
			targets := cells[[2]string{s, in}]
			switch len(targets) {
			case 0:
				row = append(row, "-")
			case 1:
				row = append(row, targets[0])
			default:
				row = append(row, "{"+strings.Join(targets, ", ")+"}")
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}

// RenderTable writes def's transition table as a text grid.
func RenderTable(w io.Writer, def *Definition) error {
	header, rows := TableRows(def)
	table := tablewriter.NewWriter(w)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
