package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5, c.MaxWordLength)
	assert.True(t, c.ShouldMinimize())
	assert.Equal(t, FormatTable, c.Format)
	assert.Equal(t, 800, c.PNG.Width)
	assert.Equal(t, 14.0, c.PNG.FontSize)
	assert.Equal(t, LayoutCircle, c.PNG.Layout)
	assert.False(t, c.Table.ShowUnreachable)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
max-word-length: 8
minimize: false
format: dsl
png:
  width: 1200
  layout: layered
table:
  show-unreachable: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Filename)
	assert.Equal(t, 8, c.MaxWordLength)
	assert.False(t, c.ShouldMinimize())
	assert.Equal(t, FormatDSL, c.Format)
	assert.Equal(t, 1200, c.PNG.Width)
	assert.Equal(t, 14.0, c.PNG.FontSize)
	assert.Equal(t, LayoutLayered, c.PNG.Layout)
	assert.True(t, c.Table.ShowUnreachable)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: svg\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadFormat))
}

func TestLoadRejectsUnknownLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("png:\n  layout: spiral\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadLayout))
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("png: [1, 2\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, FormatTable, c.Format)
	assert.True(t, c.ShouldMinimize())
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := ResolvePath("~/other.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "other.yaml"), path)

	path, err = ResolvePath("conf/fa.yaml")
	require.NoError(t, err)
	assert.Equal(t, "conf/fa.yaml", path)

	path, err = ResolvePath(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, DefaultPath(), path)
}
