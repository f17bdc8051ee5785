// Package config loads settings for the fa command line tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Output formats accepted by the format key.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatDSL   = "dsl"
	FormatDOT   = "dot"
)

// Diagram layouts accepted by png.layout.
const (
	LayoutCircle  = "circle"
	LayoutLayered = "layered"
)

var (
	ErrBadFormat = errors.New("unknown output format")
	ErrBadLayout = errors.New("unknown diagram layout")
)

// PNGConfig applies to both PNG and SVG diagrams.
type PNGConfig struct {
	Width    int     `yaml:"width"`
	FontSize float64 `yaml:"font-size"`
	Layout   string  `yaml:"layout"`
}

type TableConfig struct {
	ShowUnreachable bool `yaml:"show-unreachable"`
}

// Config holds tool settings. Zero values are replaced by defaults on load.
type Config struct {
	MaxWordLength int         `yaml:"max-word-length"`
	Minimize      *bool       `yaml:"minimize"`
	Format        string      `yaml:"format"`
	PNG           PNGConfig   `yaml:"png"`
	Table         TableConfig `yaml:"table"`

	Filename string `yaml:"-"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// DefaultPath is ~/.config/fa-toolkit/config.yaml, or "" when the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fa-toolkit", "config.yaml")
}

// DefaultName is how DefaultPath is shown in usage text.
const DefaultName = "~/.config/fa-toolkit/config.yaml"

// ResolvePath maps a --conf argument to a file name. DefaultName means
// DefaultPath and a leading ~/ is the user's home directory.
func ResolvePath(arg string) (string, error) {
	switch {
	case arg == DefaultName:
		return DefaultPath(), nil
	case arg == "~" || strings.HasPrefix(arg, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", arg, err)
		}
		return filepath.Join(home, strings.TrimPrefix(arg, "~")), nil
	}
	return arg, nil
}

// ShouldMinimize reports whether compiled automata are minimized.
func (c *Config) ShouldMinimize() bool {
	return c.Minimize == nil || *c.Minimize
}

func (c *Config) applyDefaults() {
	if c.MaxWordLength <= 0 {
		c.MaxWordLength = 5
	}
	if c.Minimize == nil {
		minimize := true
		c.Minimize = &minimize
	}
	if c.Format == "" {
		c.Format = FormatTable
	}
	if c.PNG.Width <= 0 {
		c.PNG.Width = 800
	}
	if c.PNG.FontSize <= 0 {
		c.PNG.FontSize = 14
	}
	if c.PNG.Layout == "" {
		c.PNG.Layout = LayoutCircle
	}
}

func (c *Config) validate() error {
	switch c.Format {
	case FormatTable, FormatJSON, FormatYAML, FormatDSL, FormatDOT:
	default:
		return fmt.Errorf("%w: %q", ErrBadFormat, c.Format)
	}
	if c.PNG.Layout != LayoutCircle && c.PNG.Layout != LayoutLayered {
		return fmt.Errorf("%w: %q", ErrBadLayout, c.PNG.Layout)
	}
	return nil
}

// Load reads filename. A missing file yields defaults; an empty filename
// means DefaultPath.
func Load(filename string) (*Config, error) {
	if filename == "" {
		filename = DefaultPath()
	}
	config := &Config{Filename: filename}
	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("config %s: %w", filename, err)
			}
		}
	}
	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return config, nil
}
