package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPathDefault(t *testing.T) {
	old := cfgFile
	cfgFile = ""
	t.Cleanup(func() { cfgFile = old })

	assert.Equal(t, "site.yaml", configPath())
}

func TestConfigPathFlagWins(t *testing.T) {
	old := cfgFile
	cfgFile = "other.yaml"
	t.Cleanup(func() { cfgFile = old })

	assert.Equal(t, "other.yaml", configPath())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  title: Env Test\n"), 0o644))

	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })

	t.Setenv("BLOG_SERVE_ADDR", ":9999")
	initViper()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Env Test", cfg.Site.Title)
	assert.Equal(t, ":9999", cfg.Serve.Addr)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "blog dev")
}
