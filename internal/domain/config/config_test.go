package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	raw := `
site:
  title: Field Notes
  base_url: https://example.com
build:
  output_dir: dist
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Field Notes", cfg.Site.Title)
	assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
	assert.Equal(t, "dist", cfg.Build.OutputDir)

	// Untouched fields keep their defaults.
	assert.Equal(t, "content", cfg.Build.ContentDir)
	assert.Equal(t, 200, cfg.Pipeline.WordsPerMinute)
	assert.Equal(t, 160, cfg.Pipeline.ExcerptMaxLen)
	assert.Equal(t, 10, cfg.Pipeline.MaxTags)
	assert.Equal(t, 100000, cfg.Pipeline.MaxScanRunes)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty title",
			mutate:  func(c *Config) { c.Site.Title = "" },
			wantErr: "site",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.Site.BaseURL = "/blog" },
			wantErr: "absolute",
		},
		{
			name:    "ftp base url",
			mutate:  func(c *Config) { c.Site.BaseURL = "ftp://example.com" },
			wantErr: "absolute",
		},
		{
			name:    "zero words per minute",
			mutate:  func(c *Config) { c.Pipeline.WordsPerMinute = 0 },
			wantErr: "pipeline",
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.Build.OutputDir = "" },
			wantErr: "build",
		},
		{
			name:   "valid default",
			mutate: func(c *Config) {},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
