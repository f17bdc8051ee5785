package main

import (
	"fmt"
	"strings"

	"github.com/ha1tch/fa-toolkit/pkg/codegen"
	"github.com/ha1tch/fa-toolkit/pkg/dfa"
)

func generate(d *dfa.DFA, lang, pkg, name string) (string, error) {
	switch strings.ToLower(lang) {
	case "", "go":
		return codegen.GenerateGo(d, pkg, name)
	case "c":
		return codegen.GenerateC(d, name), nil
	case "rust", "rs":
		return codegen.GenerateRust(d, name), nil
	}
	return "", fmt.Errorf("unknown language %q (use go, c or rust)", lang)
}
