package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvDir, "")
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvLogLevel, "")
	p := writeConfig(t, "format = \"yaml\"\npretty = true\nclipboard = false\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.True(t, cfg.Pretty)
	assert.False(t, cfg.Clipboard)
	assert.Equal(t, "warn", cfg.LogLevel, "untouched keys keep defaults")
	assert.Equal(t, p, cfg.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)
	t.Setenv(EnvFormat, "edn")
	t.Setenv(EnvLogLevel, "debug")
	p := writeConfig(t, "format = \"yaml\"\ndir = \"/nowhere\"\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, "edn", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvFormat, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Format, cfg.Format)
	assert.Empty(t, cfg.Path)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv(EnvFormat, "")
	for _, body := range []string{
		"format = \"xml\"\n",
		"glyphs = \"emoji\"\n",
		"colour = true\n",
		"format = [\n",
	} {
		_, err := Load(writeConfig(t, body))
		assert.Error(t, err, body)
	}
}

func TestExampleParses(t *testing.T) {
	t.Setenv(EnvFormat, "")
	cfg, err := Load(writeConfig(t, Example))
	require.NoError(t, err)
	assert.Equal(t, "unicode", cfg.Glyphs)
}
