package codegen

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
)

// GenerateGo generates a Go acceptor for d. typeName defaults to "Acceptor"
// and packageName to "fa". The generated code has no dependencies and is
// usable with TinyGo.
func GenerateGo(d *dfa.DFA, packageName, typeName string) (string, error) {
	m := newModel(d)
	if packageName == "" {
		packageName = "fa"
	}
	typeName = toPascalCase(sanitizeName(typeName))
	if typeName == "Unnamed" {
		typeName = "Acceptor"
	}
	r := []rune(typeName)
	lower := strings.ToLower(string(r[:1])) + string(r[1:])

	stateType := typeName + "State"
	names := lower + "StateNames"
	delta := lower + "Delta"
	accepting := lower + "Accepting"
	symbolIndex := lower + "Symbol"
	stateConst := func(i int) *jen.Statement {
		return jen.Id(stateType + strconv.Itoa(i))
	}

	f := jen.NewFile(packageName)
	f.HeaderComment("Code generated by fa gen. DO NOT EDIT.")

	// State type
	f.Commentf("%s identifies a state of %s.", stateType, typeName)
	f.Type().Id(stateType).Int16()

	defs := make([]jen.Code, len(m.states))
	for i := range m.states {
		if i == 0 {
			defs[i] = stateConst(i).Id(stateType).Op("=").Iota()
		} else {
			defs[i] = stateConst(i)
		}
	}
	f.Const().Defs(defs...)

	nameValues := make([]jen.Code, len(m.states))
	for i, s := range m.states {
		nameValues[i] = jen.Lit(s)
	}
	f.Var().Id(names).Op("=").Index(jen.Op("...")).String().Values(nameValues...)

	f.Func().Params(jen.Id("s").Id(stateType)).Id("String").Params().String().Block(
		jen.If(jen.Id("s").Op(">=").Lit(0).Op("&&").Int().Call(jen.Id("s")).Op("<").Len(jen.Id(names))).Block(
			jen.Return(jen.Id(names).Index(jen.Id("s"))),
		),
		jen.Return(jen.Lit("unknown")),
	)

	// Transition table, -1 for no transition
	rows := make([]jen.Code, len(m.delta))
	for i, row := range m.delta {
		cells := make([]jen.Code, len(row))
		for j, to := range row {
			cells[j] = jen.Lit(to)
		}
		rows[i] = jen.Values(cells...)
	}
	f.Var().Id(delta).Op("=").Index(jen.Lit(len(m.states))).Index(jen.Lit(len(m.symbols))).Id(stateType).Values(rows...)

	flags := make([]jen.Code, len(m.accepting))
	for i, acc := range m.accepting {
		flags[i] = jen.Lit(acc)
	}
	f.Var().Id(accepting).Op("=").Index(jen.Lit(len(m.states))).Bool().Values(flags...)

	cases := make([]jen.Code, 0, len(m.symbols))
	for i, sym := range m.symbols {
		cases = append(cases, jen.Case(jen.Lit(sym)).Block(jen.Return(jen.Lit(i))))
	}
	f.Func().Id(symbolIndex).Params(jen.Id("symbol").String()).Int().Block(
		jen.Switch(jen.Id("symbol")).Block(cases...),
		jen.Return(jen.Lit(-1)),
	)

	// Acceptor
	recv := jen.Id("a").Op("*").Id(typeName)
	f.Commentf("%s runs the automaton one symbol at a time.", typeName)
	f.Type().Id(typeName).Struct(
		jen.Id("state").Id(stateType),
		jen.Id("dead").Bool(),
	)

	f.Commentf("New%s returns an acceptor in its initial state.", typeName)
	f.Func().Id("New"+typeName).Params().Op("*").Id(typeName).Block(
		jen.Return(jen.Op("&").Id(typeName).Values(jen.Dict{
			jen.Id("state"): stateConst(m.initial),
		})),
	)

	f.Comment("State returns the current state.")
	f.Func().Params(recv.Clone()).Id("State").Params().Id(stateType).Block(
		jen.Return(jen.Id("a").Dot("state")),
	)

	dead := func() []jen.Code {
		return []jen.Code{jen.Id("a").Dot("dead").Op("=").True(), jen.Return(jen.False())}
	}
	f.Comment("Step consumes one symbol. It returns false, and the acceptor rejects")
	f.Comment("from then on, when there is no transition.")
	f.Func().Params(recv.Clone()).Id("Step").Params(jen.Id("symbol").String()).Bool().Block(
		jen.If(jen.Id("a").Dot("dead")).Block(jen.Return(jen.False())),
		jen.Id("i").Op(":=").Id(symbolIndex).Call(jen.Id("symbol")),
		jen.If(jen.Id("i").Op("<").Lit(0)).Block(dead()...),
		jen.Id("next").Op(":=").Id(delta).Index(jen.Id("a").Dot("state")).Index(jen.Id("i")),
		jen.If(jen.Id("next").Op("<").Lit(0)).Block(dead()...),
		jen.Id("a").Dot("state").Op("=").Id("next"),
		jen.Return(jen.True()),
	)

	f.Comment("IsAccepting reports whether the input consumed so far is accepted.")
	f.Func().Params(recv.Clone()).Id("IsAccepting").Params().Bool().Block(
		jen.Return(jen.Op("!").Id("a").Dot("dead").Op("&&").Id(accepting).Index(jen.Id("a").Dot("state"))),
	)

	f.Comment("Reset returns the acceptor to its initial state.")
	f.Func().Params(recv.Clone()).Id("Reset").Params().Block(
		jen.Id("a").Dot("state").Op("=").Add(stateConst(m.initial)),
		jen.Id("a").Dot("dead").Op("=").False(),
	)

	f.Comment("Accept reports whether word is accepted, starting from the initial state.")
	f.Func().Params(recv.Clone()).Id("Accept").Params(jen.Id("word").Index().String()).Bool().Block(
		jen.Id("a").Dot("Reset").Call(),
		jen.For(jen.List(jen.Id("_"), jen.Id("symbol")).Op(":=").Range().Id("word")).Block(
			jen.If(jen.Op("!").Id("a").Dot("Step").Call(jen.Id("symbol"))).Block(jen.Return(jen.False())),
		),
		jen.Return(jen.Id("a").Dot("IsAccepting").Call()),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
