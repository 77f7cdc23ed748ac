package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/bulkdata/internal/format"
)

func TestConfigFilePathFollowsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "bulkdata", "config.toml"), GetConfigFilePath())
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), config)

	data, err := os.ReadFile(GetConfigFilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), `format = "fixed"`)
	assert.Contains(t, string(data), `max_line_length = 80`)

	f, err := config.BuildFormat()
	require.NoError(t, err)
	assert.Equal(t, format.FixedFormat(), f)
}

func TestSetValuePersists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, SetValue("format", "Large"))
	require.NoError(t, SetValue("align", "right"))
	require.NoError(t, SetValue("newline", "crlf"))
	require.NoError(t, SetValue("strict_continuation", "true"))
	require.NoError(t, SetValue("max_line_length", "72"))

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "large", config.Format)

	f, err := LoadFormat()
	require.NoError(t, err)
	want := format.LargeFormat()
	want.Align = format.AlignRight
	want.Newline = "\r\n"
	want.StrictContinuation = true
	want.MaxLineLength = 72
	assert.Equal(t, want, f)

	for _, key := range Keys {
		_, err := config.Get(key)
		assert.NoError(t, err, key)
	}
	v, err := config.Get("max_line_length")
	require.NoError(t, err)
	assert.Equal(t, "72", v)
}

func TestSetRejectsBadValues(t *testing.T) {
	c := Default()
	assert.ErrorIs(t, c.Set("format", "wide"), format.ErrInvalidFormat)
	assert.ErrorIs(t, c.Set("align", "center"), format.ErrInvalidFormat)
	assert.ErrorIs(t, c.Set("newline", "cr"), format.ErrInvalidFormat)
	assert.Error(t, c.Set("strict_continuation", "maybe"))
	assert.Error(t, c.Set("max_line_length", "0"))
	assert.ErrorIs(t, c.Set("colour", "red"), ErrUnknownKey)

	_, err := c.Get("colour")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Equal(t, Default(), c)
}

func TestBuildFormatEmptyKeepsPreset(t *testing.T) {
	f, err := (&Config{Format: "free"}).BuildFormat()
	require.NoError(t, err)
	assert.Equal(t, format.FreeFormat(), f)
}

func TestLoadConfigRejectsBrokenFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := GetConfigFilePath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("format = \n"), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
}
