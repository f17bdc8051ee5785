package codegen

import (
	"fmt"
	"strings"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
)

// GenerateC generates a single C header holding the acceptor for d. Symbols
// are passed as indices; the header defines one constant per symbol.
func GenerateC(d *dfa.DFA, name string) string {
	m := newModel(d)
	name = toSnakeCase(sanitizeName(name))
	if name == "" || name == "unnamed" {
		name = "fa"
	}
	NAME := strings.ToUpper(name)

	var sb strings.Builder
	fmt.Fprintf(&sb, `// Generated acceptor: %s
// States: %d, symbols: %d

#ifndef %s_H
#define %s_H

#include <stdint.h>
#include <stdbool.h>
#include <stddef.h>

`, name, len(m.states), len(m.symbols), NAME, NAME)

	fmt.Fprintf(&sb, "typedef int16_t %s_state_t;\n", name)
	fmt.Fprintf(&sb, "typedef uint16_t %s_input_t;\n\n", name)

	sb.WriteString("// Inputs\n")
	for i, sym := range m.symbols {
		fmt.Fprintf(&sb, "#define %s_INPUT_%s %d\n", NAME, strings.ToUpper(sanitizeName(sym)), i)
	}
	sb.WriteString("\n")

	sb.WriteString("// Counts\n")
	fmt.Fprintf(&sb, "#define %s_NUM_STATES %d\n", NAME, len(m.states))
	fmt.Fprintf(&sb, "#define %s_NUM_INPUTS %d\n", NAME, len(m.symbols))
	fmt.Fprintf(&sb, "#define %s_INITIAL %d\n", NAME, m.initial)
	fmt.Fprintf(&sb, "#define %s_DEAD (-1)\n\n", NAME)

	sb.WriteString("// Acceptor instance\n")
	sb.WriteString("typedef struct {\n")
	fmt.Fprintf(&sb, "    %s_state_t state;\n", name)
	fmt.Fprintf(&sb, "} %s_t;\n\n", name)

	// Tables
	fmt.Fprintf(&sb, "static const char *%s_state_names[%s_NUM_STATES] = {\n", name, NAME)
	for _, s := range m.states {
		fmt.Fprintf(&sb, "    %q,\n", s)
	}
	sb.WriteString("};\n\n")

	cols := len(m.symbols)
	if cols == 0 {
		cols = 1
	}
	fmt.Fprintf(&sb, "static const %s_state_t %s_delta[%s_NUM_STATES][%d] = {\n", name, name, NAME, cols)
	for i, row := range m.delta {
		cells := make([]string, 0, cols)
		for _, to := range row {
			cells = append(cells, fmt.Sprint(to))
		}
		if len(cells) == 0 {
			cells = append(cells, "-1")
		}
		fmt.Fprintf(&sb, "    {%s}, // %s\n", strings.Join(cells, ", "), m.states[i])
	}
	sb.WriteString("};\n\n")

	fmt.Fprintf(&sb, "static const bool %s_accepting[%s_NUM_STATES] = {", name, NAME)
	for i, acc := range m.accepting {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, acc)
	}
	sb.WriteString("};\n\n")

	// Functions
	fmt.Fprintf(&sb, "static inline void %s_init(%s_t *a) {\n", name, name)
	fmt.Fprintf(&sb, "    a->state = %s_INITIAL;\n", NAME)
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "static inline bool %s_step(%s_t *a, %s_input_t input) {\n", name, name, name)
	fmt.Fprintf(&sb, "    if (a->state == %s_DEAD || input >= %s_NUM_INPUTS) {\n", NAME, NAME)
	fmt.Fprintf(&sb, "        a->state = %s_DEAD;\n", NAME)
	sb.WriteString("        return false;\n")
	sb.WriteString("    }\n")
	fmt.Fprintf(&sb, "    a->state = %s_delta[a->state][input];\n", name)
	fmt.Fprintf(&sb, "    return a->state != %s_DEAD;\n", NAME)
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "static inline bool %s_is_accepting(const %s_t *a) {\n", name, name)
	fmt.Fprintf(&sb, "    return a->state != %s_DEAD && %s_accepting[a->state];\n", NAME, name)
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "static inline const char *%s_state_name(const %s_t *a) {\n", name, name)
	fmt.Fprintf(&sb, "    return a->state == %s_DEAD ? \"dead\" : %s_state_names[a->state];\n", NAME, name)
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "static inline bool %s_accept(const %s_input_t *word, size_t n) {\n", name, name)
	fmt.Fprintf(&sb, "    %s_t a;\n", name)
	fmt.Fprintf(&sb, "    %s_init(&a);\n", name)
	sb.WriteString("    for (size_t i = 0; i < n; i++) {\n")
	fmt.Fprintf(&sb, "        if (!%s_step(&a, word[i])) {\n", name)
	sb.WriteString("            return false;\n")
	sb.WriteString("        }\n")
	sb.WriteString("    }\n")
	fmt.Fprintf(&sb, "    return %s_is_accepting(&a);\n", name)
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "#endif // %s_H\n", NAME)
	return sb.String()
}
