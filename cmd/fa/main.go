// Command fa is a CLI tool for building and analysing finite automata.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docopt/docopt-go"

	"github.com/ha1tch/fa-toolkit/pkg/config"
	"github.com/ha1tch/fa-toolkit/pkg/dfa"
	"github.com/ha1tch/fa-toolkit/pkg/fa"
	"github.com/ha1tch/fa-toolkit/pkg/fafile"
	"github.com/ha1tch/fa-toolkit/pkg/nfa"
	"github.com/ha1tch/fa-toolkit/pkg/regex"
)

// set via linker flags
var version = "dev"

const usage = `fa - finite automata toolkit.

An <input> is a definition file (.json, .yaml, .fa) or re:<regex>.

Usage:
	fa compile <regex> [options]
	fa determinize <input> [options]
	fa minimize <input> [--renumber] [options]
	fa regex <input> [options]
	fa accept <input> <word>... [options]
	fa words <input> [--max <n>] [options]
	fa info <input> [--dump] [options]
	fa union <a> <b> [options]
	fa intersect <a> <b> [options]
	fa diff <a> <b> [options]
	fa complement <input> [options]
	fa subset <a> <b> [options]
	fa disjoint <a> <b> [options]
	fa equiv <a> <b> [options]
	fa dot <input> [--title <title>] [options]
	fa table <input> [options]
	fa png <input> -o <file> [--title <title>] [--layout <layout>] [options]
	fa svg <input> [--title <title>] [--layout <layout>] [options]
	fa gen <input> [--lang <lang>] [--package <pkg>] [--name <name>] [options]
	fa run <input> [options]
	fa -h | --help
	fa --version

Options:
	-o <file>           Write output to a file instead of stdout.
	--format <fmt>      Output format: table, json, yaml, dsl or dot.
	--max <n>           Longest word to list.
	--renumber          Name minimized states 0..n-1.
	--dump              Print the parsed definition.
	--title <title>     Diagram title.
	--layout <layout>   Diagram layout: circle or layered.
	--lang <lang>       Generated language: go, c or rust [default: go].
	--package <pkg>     Go package name [default: fa].
	--name <name>       Generated type name.
	--conf <filename>   Configuration file [default: ~/.config/fa-toolkit/config.yaml].
	-v --verbose        Print stage timings.
	-h --help           Show this screen.
	--version           Show version.`

type app struct {
	args docopt.Opts
	conf *config.Config
}

func main() {
	log.SetPrefix("fa: ")
	log.SetFlags(0)

	args, _ := docopt.ParseArgs(usage, nil, version)

	confFile, err := config.ResolvePath(str(args, "--conf"))
	if err != nil {
		log.Fatal(err)
	}
	conf, err := config.Load(confFile)
	if err != nil {
		log.Fatal(err)
	}
	a := &app{args: args, conf: conf}

	commands := []struct {
		name string
		run  func()
	}{
		{"compile", a.cmdCompile},
		{"determinize", a.cmdDeterminize},
		{"minimize", a.cmdMinimize},
		{"regex", a.cmdRegex},
		{"accept", a.cmdAccept},
		{"words", a.cmdWords},
		{"info", a.cmdInfo},
		{"union", a.cmdAlgebra(dfa.Union)},
		{"intersect", a.cmdAlgebra(dfa.Intersection)},
		{"diff", a.cmdAlgebra(dfa.Difference)},
		{"complement", a.cmdComplement},
		{"subset", a.cmdRelation(dfa.IsSubset)},
		{"disjoint", a.cmdRelation(dfa.IsDisjoint)},
		{"equiv", a.cmdRelation(dfa.Equivalent)},
		{"dot", a.cmdDot},
		{"table", a.cmdTable},
		{"png", a.cmdPNG},
		{"svg", a.cmdSVG},
		{"gen", a.cmdGen},
		{"run", a.cmdRun},
	}
	for _, c := range commands {
		if flag(args, c.name) {
			c.run()
			return
		}
	}
}

func str(args docopt.Opts, key string) string {
	s, _ := args[key].(string)
	return s
}

func flag(args docopt.Opts, key string) bool {
	b, _ := args[key].(bool)
	return b
}

// stage runs fn and, with --verbose, logs how long it took.
func (a *app) stage(name string, fn func() error) {
	start := time.Now()
	if err := fn(); err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	if flag(a.args, "--verbose") {
		log.Printf("%s: %v", name, time.Since(start))
	}
}

func (a *app) loadDFA(key string) *dfa.DFA {
	var d *dfa.DFA
	a.stage("load "+str(a.args, key), func() (err error) {
		d, err = fafile.LoadDFA(str(a.args, key))
		return err
	})
	return d
}

// loadDefinition keeps NFA definitions as written; regexes are compiled.
func (a *app) loadDefinition(key string) *fafile.Definition {
	arg := str(a.args, key)
	if strings.HasPrefix(arg, fafile.RegexPrefix) {
		return fafile.FromDFA(a.loadDFA(key), arg)
	}
	def, err := fafile.Load(arg)
	if err != nil {
		log.Fatal(err)
	}
	if err := def.Validate(); err != nil {
		log.Fatalf("%s: %v", arg, err)
	}
	return def
}

func (a *app) outputFormat() string {
	if f := str(a.args, "--format"); f != "" {
		return f
	}
	if out := str(a.args, "-o"); out != "" {
		if strings.EqualFold(filepath.Ext(out), ".dot") {
			return config.FormatDOT
		}
		if f, err := fafile.FormatOf(out); err == nil {
			return f
		}
	}
	return a.conf.Format
}

func (a *app) write(data []byte) {
	if out := str(a.args, "-o"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			log.Fatalf("writing %s: %v", out, err)
		}
		fmt.Printf("Written: %s\n", out)
		return
	}
	os.Stdout.Write(data)
}

func (a *app) writeDefinition(def *fafile.Definition) {
	var sb strings.Builder
	switch format := a.outputFormat(); format {
	case config.FormatTable:
		if err := fafile.RenderTable(&sb, def); err != nil {
			log.Fatal(err)
		}
	case config.FormatDOT:
		sb.WriteString(fafile.GenerateDOT(def, str(a.args, "--title")))
	default:
		data, err := fafile.Encode(def, format)
		if err != nil {
			log.Fatal(err)
		}
		sb.Write(data)
	}
	a.write([]byte(sb.String()))
}

func (a *app) writeDFA(d *dfa.DFA, name string) {
	if !a.conf.Table.ShowUnreachable {
		d = d.Trim()
	}
	a.writeDefinition(fafile.FromDFA(d, name))
}

func (a *app) cmdCompile() {
	expr := str(a.args, "<regex>")
	var n *nfa.NFA
	a.stage("compile", func() (err error) {
		n, err = regex.Compile(expr)
		return err
	})
	var d *dfa.DFA
	a.stage("determinize", func() (err error) {
		d, err = n.ToDFA()
		return err
	})
	if a.conf.ShouldMinimize() {
		a.stage("minimize", func() (err error) {
			d, err = d.Minify()
			return err
		})
	}
	a.writeDFA(d, expr)
}

func (a *app) cmdDeterminize() {
	def := a.loadDefinition("<input>")
	var d *dfa.DFA
	a.stage("determinize", func() (err error) {
		d, err = def.ToDFA()
		return err
	})
	a.writeDFA(d, def.Name)
}

func (a *app) cmdMinimize() {
	d := a.loadDFA("<input>")
	a.stage("minimize", func() (err error) {
		d, err = d.Minify()
		return err
	})
	if flag(a.args, "--renumber") {
		d = d.Renumber()
	}
	a.writeDFA(d, str(a.args, "<input>"))
}

func (a *app) cmdRegex() {
	d := a.loadDFA("<input>")
	var expr string
	a.stage("eliminate", func() error {
		expr = d.ToRegex()
		return nil
	})
	if expr == "" {
		fmt.Println("(empty language)")
		return
	}
	fmt.Println(expr)
}

// parseWord splits a command line word into symbols: per rune, or on
// whitespace when the alphabet has multi-character symbols. "$" is the
// empty word.
func parseWord(d *dfa.DFA, word string) []fa.Symbol {
	if word == fa.EpsilonMarker {
		return nil
	}
	for _, sym := range d.Alphabet() {
		if len([]rune(string(sym))) > 1 {
			var out []fa.Symbol
			for _, f := range strings.Fields(word) {
				out = append(out, fa.Symbol(f))
			}
			return out
		}
	}
	return fa.SymbolsOf(word)
}

func formatWord(word []fa.Symbol) string {
	if len(word) == 0 {
		return fa.EpsilonMarker
	}
	return fa.Join(word)
}

func (a *app) cmdAccept() {
	d := a.loadDFA("<input>")
	words, _ := a.args["<word>"].([]string)
	rejected := false
	for _, w := range words {
		if d.Accepts(parseWord(d, w)) {
			fmt.Printf("%s: accepted\n", w)
		} else {
			fmt.Printf("%s: rejected\n", w)
			rejected = true
		}
	}
	if rejected {
		os.Exit(1)
	}
}

func (a *app) cmdWords() {
	d := a.loadDFA("<input>")
	maxLen := a.conf.MaxWordLength
	if s := str(a.args, "--max"); s != "" {
		if _, err := fmt.Sscan(s, &maxLen); err != nil {
			log.Fatalf("--max: %v", err)
		}
	}
	for _, w := range d.Words(maxLen) {
		fmt.Println(formatWord(w))
	}
}

func (a *app) cmdAlgebra(op func(x, y *dfa.DFA) (*dfa.DFA, error)) func() {
	return func() {
		x, y := a.loadDFA("<a>"), a.loadDFA("<b>")
		var d *dfa.DFA
		a.stage("product", func() (err error) {
			d, err = op(x, y)
			return err
		})
		if a.conf.ShouldMinimize() {
			a.stage("minimize", func() (err error) {
				d, err = d.Minify()
				return err
			})
		}
		a.writeDFA(d, "")
	}
}

func (a *app) cmdComplement() {
	d := a.loadDFA("<input>").Complement()
	a.writeDFA(d, "")
}

func (a *app) cmdRelation(rel func(x, y *dfa.DFA) (bool, error)) func() {
	return func() {
		x, y := a.loadDFA("<a>"), a.loadDFA("<b>")
		var ok bool
		a.stage("product", func() (err error) {
			ok, err = rel(x, y)
			return err
		})
		fmt.Println(ok)
		if !ok {
			os.Exit(1)
		}
	}
}

func (a *app) cmdDot() {
	def := a.loadDefinition("<input>")
	title := str(a.args, "--title")
	if title == "" && def.Name == "" {
		title = fmt.Sprintf("%s: %d states", strings.ToUpper(string(def.Type)), len(def.States))
	}
	a.write([]byte(fafile.GenerateDOT(def, title)))
}

func (a *app) cmdTable() {
	def := a.loadDefinition("<input>")
	if err := fafile.RenderTable(os.Stdout, def); err != nil {
		log.Fatal(err)
	}
}

func (a *app) diagramOptions() fafile.DiagramOptions {
	opts := fafile.DefaultDiagramOptions()
	opts.Width = a.conf.PNG.Width
	opts.Height = a.conf.PNG.Width * 3 / 4
	opts.FontSize = int(a.conf.PNG.FontSize)
	opts.Title = str(a.args, "--title")
	opts.Layout = a.conf.PNG.Layout
	if l := str(a.args, "--layout"); l != "" {
		if l != config.LayoutCircle && l != config.LayoutLayered {
			log.Fatalf("--layout: %v: %q", config.ErrBadLayout, l)
		}
		opts.Layout = l
	}
	return opts
}

func (a *app) cmdPNG() {
	def := a.loadDefinition("<input>")
	out := str(a.args, "-o")
	opts := a.diagramOptions()

	f, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	a.stage("render", func() error {
		return fafile.RenderPNG(def, f, opts)
	})
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Written: %s\n", out)
}

func (a *app) cmdSVG() {
	def := a.loadDefinition("<input>")
	a.write([]byte(fafile.RenderSVG(def, a.diagramOptions())))
}

func (a *app) cmdGen() {
	d := a.loadDFA("<input>")
	name := str(a.args, "--name")
	code, err := generate(d, str(a.args, "--lang"), str(a.args, "--package"), name)
	if err != nil {
		log.Fatal(err)
	}
	a.write([]byte(code))
}

func (a *app) cmdRun() {
	d := a.loadDFA("<input>")
	if err := runInteractive(d, str(a.args, "<input>")); err != nil {
		log.Fatal(err)
	}
}
