package codegen

import (
	"fmt"
	"strings"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
)

// GenerateRust generates a Rust module holding the acceptor for d. Symbols
// are matched as &str.
func GenerateRust(d *dfa.DFA, name string) string {
	m := newModel(d)
	typeName := toPascalCase(sanitizeName(name))
	if typeName == "Unnamed" {
		typeName = "Acceptor"
	}
	upper := strings.ToUpper(toSnakeCase(sanitizeName(typeName)))
	if upper == "" {
		upper = "ACCEPTOR"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `//! Generated acceptor: %s
//! States: %d, symbols: %d

`, typeName, len(m.states), len(m.symbols))

	fmt.Fprintf(&sb, "const %s_STATE_NAMES: [&str; %d] = [\n", upper, len(m.states))
	for _, s := range m.states {
		fmt.Fprintf(&sb, "    %q,\n", s)
	}
	sb.WriteString("];\n\n")

	fmt.Fprintf(&sb, "const %s_DELTA: [[i16; %d]; %d] = [\n", upper, len(m.symbols), len(m.states))
	for i, row := range m.delta {
		cells := make([]string, len(row))
		for j, to := range row {
			cells[j] = fmt.Sprint(to)
		}
		fmt.Fprintf(&sb, "    [%s], // %s\n", strings.Join(cells, ", "), m.states[i])
	}
	sb.WriteString("];\n\n")

	fmt.Fprintf(&sb, "const %s_ACCEPTING: [bool; %d] = [", upper, len(m.states))
	for i, acc := range m.accepting {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, acc)
	}
	sb.WriteString("];\n\n")

	sb.WriteString("#[derive(Debug, Clone, Copy, PartialEq, Eq)]\n")
	fmt.Fprintf(&sb, "pub struct %s {\n", typeName)
	sb.WriteString("    state: Option<usize>,\n")
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "impl Default for %s {\n", typeName)
	sb.WriteString("    fn default() -> Self {\n")
	sb.WriteString("        Self::new()\n")
	sb.WriteString("    }\n")
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "impl %s {\n", typeName)
	sb.WriteString("    pub fn new() -> Self {\n")
	fmt.Fprintf(&sb, "        Self { state: Some(%d) }\n", m.initial)
	sb.WriteString("    }\n\n")

	sb.WriteString("    fn symbol(input: &str) -> Option<usize> {\n")
	sb.WriteString("        match input {\n")
	for i, sym := range m.symbols {
		fmt.Fprintf(&sb, "            %q => Some(%d),\n", sym, i)
	}
	sb.WriteString("            _ => None,\n")
	sb.WriteString("        }\n")
	sb.WriteString("    }\n\n")

	sb.WriteString("    pub fn state(&self) -> Option<&'static str> {\n")
	fmt.Fprintf(&sb, "        self.state.map(|s| %s_STATE_NAMES[s])\n", upper)
	sb.WriteString("    }\n\n")

	sb.WriteString("    pub fn step(&mut self, input: &str) -> bool {\n")
	sb.WriteString("        self.state = match (self.state, Self::symbol(input)) {\n")
	sb.WriteString("            (Some(s), Some(i)) => {\n")
	fmt.Fprintf(&sb, "                let next = %s_DELTA[s][i];\n", upper)
	sb.WriteString("                if next < 0 { None } else { Some(next as usize) }\n")
	sb.WriteString("            }\n")
	sb.WriteString("            _ => None,\n")
	sb.WriteString("        };\n")
	sb.WriteString("        self.state.is_some()\n")
	sb.WriteString("    }\n\n")

	sb.WriteString("    pub fn is_accepting(&self) -> bool {\n")
	fmt.Fprintf(&sb, "        self.state.map_or(false, |s| %s_ACCEPTING[s])\n", upper)
	sb.WriteString("    }\n\n")

	sb.WriteString("    pub fn reset(&mut self) {\n")
	fmt.Fprintf(&sb, "        self.state = Some(%d);\n", m.initial)
	sb.WriteString("    }\n\n")

	sb.WriteString("    pub fn accept(&mut self, word: &[&str]) -> bool {\n")
	sb.WriteString("        self.reset();\n")
	sb.WriteString("        word.iter().all(|s| self.step(s)) && self.is_accepting()\n")
	sb.WriteString("    }\n")
	sb.WriteString("}\n")

	return sb.String()
}
