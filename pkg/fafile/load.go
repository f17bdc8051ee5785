package fafile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
	"github.com/ha1tch/fa-toolkit/pkg/regex"
)

// RegexPrefix marks a LoadDFA argument as an inline regular expression.
const RegexPrefix = "re:"

// Parse decodes data in the named format: json, yaml or dsl.
func Parse(data []byte, format string) (*Definition, error) {
	switch format {
	case "json":
		return ParseJSON(data)
	case "yaml", "yml":
		return ParseYAML(data)
	case "dsl", "fa":
		return ParseDSL(data)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// FormatOf returns the format implied by a file name's extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".fa":
		return "dsl", nil
	}
	return "", fmt.Errorf("unknown file type: %s (use .json, .yaml or .fa)", path)
}

// Load reads a definition from a file, choosing the format by extension.
func Load(path string) (*Definition, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDFA returns the DFA named by arg: either RegexPrefix followed by a
// regular expression, compiled and minimized, or a definition file. NFA
// definitions are determinized.
func LoadDFA(arg string) (*dfa.DFA, error) {
	if expr, ok := strings.CutPrefix(arg, RegexPrefix); ok {
		return regex.CompileDFA(expr)
	}
	def, err := Load(arg)
	if err != nil {
		return nil, err
	}
	d, err := def.ToDFA()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", arg, err)
	}
	return d, nil
}

// Encode writes def in the named format: json, yaml or dsl.
func Encode(def *Definition, format string) ([]byte, error) {
	switch format {
	case "json":
		return ToJSON(def, true)
	case "yaml", "yml":
		return ToYAML(def)
	case "dsl", "fa":
		return ToDSL(def), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// Save writes def to path in the format implied by its extension.
func Save(path string, def *Definition) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(def, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
