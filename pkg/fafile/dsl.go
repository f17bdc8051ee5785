package fafile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The text format:
//
//	dfa "even-a"
//	alphabet a b;
//	states q0 q1;
//	initial q0;
//	final q0;
//	q0 -a-> q1;
//	q1 -a-> q0;
//
// An edge may list several targets, and -$-> is an epsilon edge. Names that
// are not plain words, or that are keywords, are written in double quotes;
// a quoted keyword is an ordinary name.
// Lines starting with # are comments.

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Epsilon", Pattern: `\$`},
	{Name: "Name", Pattern: `[A-Za-z0-9_']+`},
	{Name: "Punct", Pattern: `[-;]`},
})

type dslFile struct {
	Kind    string       `parser:"@('dfa':Name | 'nfa':Name)"`
	Name    *string      `parser:"@String?"`
	Clauses []*dslClause `parser:"@@*"`
}

type dslClause struct {
	Alphabet *dslAlphabet `parser:"  @@"`
	States   *dslStates   `parser:"| @@"`
	Initial  *dslInitial  `parser:"| @@"`
	Final    *dslFinal    `parser:"| @@"`
	Edge     *dslEdge     `parser:"| @@"`
}

type dslAlphabet struct {
	Items []string `parser:"'alphabet':Name @(Name | String)* ';'"`
}

type dslStates struct {
	Items []string `parser:"'states':Name @(Name | String)* ';'"`
}

type dslInitial struct {
	Items []string `parser:"'initial':Name @(Name | String)* ';'"`
}

type dslFinal struct {
	Items []string `parser:"'final':Name @(Name | String)* ';'"`
}

type dslEdge struct {
	From   string     `parser:"@(Name | String) '-'"`
	Symbol *dslSymbol `parser:"@@ Arrow"`
	To     []string   `parser:"@(Name | String)+ ';'"`
}

// dslSymbol tells the bare $ token apart from a quoted "$" symbol.
type dslSymbol struct {
	Epsilon bool   `parser:"  @Epsilon"`
	Name    string `parser:"| @(Name | String)"`
}

var dslParser = participle.MustBuild[dslFile](
	participle.Lexer(dslLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// ParseDSL parses a definition written in the text format.
func ParseDSL(data []byte) (*Definition, error) {
	file, err := dslParser.ParseBytes("", data)
	if err != nil {
		return nil, err
	}

	def := &Definition{Type: Type(file.Kind)}
	if file.Name != nil {
		def.Name = *file.Name
	}

	seenState := make(map[string]bool)
	addState := func(s string) {
		if !seenState[s] {
			seenState[s] = true
			def.States = append(def.States, s)
		}
	}
	seenSym := make(map[string]bool)
	addSymbol := func(s string) {
		if !seenSym[s] {
			seenSym[s] = true
			def.Alphabet = append(def.Alphabet, s)
		}
	}

	for _, c := range file.Clauses {
		switch {
		case c.Alphabet != nil:
			for _, s := range c.Alphabet.Items {
				addSymbol(s)
			}
		case c.States != nil:
			for _, s := range c.States.Items {
				addState(s)
			}
		case c.Initial != nil:
			for _, s := range c.Initial.Items {
				addState(s)
				def.Initial = append(def.Initial, s)
			}
		case c.Final != nil:
			for _, s := range c.Final.Items {
				addState(s)
				def.Accepting = append(def.Accepting, s)
			}
		case c.Edge != nil:
			e := c.Edge
			addState(e.From)
			for _, to := range e.To {
				addState(to)
			}
			t := Transition{From: e.From, To: e.To}
			if !e.Symbol.Epsilon {
				sym := e.Symbol.Name
				addSymbol(sym)
				t.Input = &sym
			}
			def.Transitions = append(def.Transitions, t)
		}
	}
	return def, nil
}

var plainName = regexp.MustCompile(`^[A-Za-z0-9_']+$`)

var dslKeywords = map[string]bool{
	"dfa": true, "nfa": true, "alphabet": true, "states": true, "initial": true, "final": true,
}

func dslName(s string) string {
	if plainName.MatchString(s) && !dslKeywords[s] {
		return s
	}
	return strconv.Quote(s)
}

func dslNames(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = dslName(n)
	}
	return strings.Join(parts, " ")
}

// ToDSL writes a definition in the text format.
func ToDSL(def *Definition) []byte {
	var sb strings.Builder
	sb.WriteString(string(def.Type))
	if def.Name != "" {
		sb.WriteString(" " + strconv.Quote(def.Name))
	}
	sb.WriteString("\n")
	if def.Description != "" {
		for _, line := range strings.Split(def.Description, "\n") {
			sb.WriteString("# " + line + "\n")
		}
	}
	fmt.Fprintf(&sb, "alphabet %s;\n", dslNames(def.Alphabet))
	fmt.Fprintf(&sb, "states %s;\n", dslNames(def.States))
	fmt.Fprintf(&sb, "initial %s;\n", dslNames(def.Initial))
	fmt.Fprintf(&sb, "final %s;\n", dslNames(def.Accepting))
	for _, t := range def.Transitions {
		sym := "$"
		if t.Input != nil {
			sym = dslName(*t.Input)
		}
		fmt.Fprintf(&sb, "%s -%s-> %s;\n", dslName(t.From), sym, dslNames(t.To))
	}
	return []byte(sb.String())
}
