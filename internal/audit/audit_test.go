package audit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunus25jmi1/personal-Blog-website/internal/build"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
)

var auditTheme = map[string]string{
	"home.tmpl":     `<h1>{{.Site.Title}}</h1>`,
	"post.tmpl":     `<h1>{{.Post.Title}}</h1>{{.HTML}}`,
	"list.tmpl":     `<h1>{{.Title}}</h1>`,
	"tags.tmpl":     `tags`,
	"archives.tmpl": `archives`,
	"page.tmpl":     `<h1>{{.Page.Title}}</h1>{{.HTML}}`,
	"404.tmpl":      `missing`,
}

const auditPost = `---
title: "Audited Post"
description: "d"
publishDate: "2024-04-01"
author: "Dev"
tags:
  - go
---

Body.
`

const auditPage = `---
title: "About"
---

About.
`

func builtSite(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()

	tplDir := filepath.Join(root, "themes", "default", "templates")
	require.NoError(t, os.MkdirAll(tplDir, 0o755))
	for name, body := range auditTheme {
		require.NoError(t, os.WriteFile(filepath.Join(tplDir, name), []byte(body), 0o644))
	}

	for rel, body := range map[string]string{
		"posts/audited-post.md": auditPost,
		"pages/about.md":        auditPage,
	} {
		full := filepath.Join(root, "content", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}

	cfg := config.Default()
	cfg.Build.ContentDir = filepath.Join(root, "content")
	cfg.Build.OutputDir = filepath.Join(root, "public")
	cfg.Build.ThemeDir = filepath.Join(root, "themes")
	cfg.Build.IndexPath = filepath.Join(root, ".blogcache", "index.db")

	b := &build.Builder{Cfg: cfg}
	_, err := b.Run(context.Background())
	require.NoError(t, err)
	return cfg
}

func TestAuditCleanAfterBuild(t *testing.T) {
	cfg := builtSite(t)

	rep, err := Run(cfg)
	require.NoError(t, err)

	assert.True(t, rep.Clean(), "fresh build audits clean: %+v", rep.Orphans)
	assert.Zero(t, rep.Missing())
	assert.Equal(t, 1, rep.Posts)
	assert.Equal(t, 1, rep.Pages)
	assert.Positive(t, rep.TotalBytes)

	for _, e := range rep.Entries {
		assert.Positive(t, e.Bytes, "present route %s has weight", e.Route.OutPath)
	}
}

func TestAuditFlagsBareHeads(t *testing.T) {
	cfg := builtSite(t)

	rep, err := Run(cfg)
	require.NoError(t, err)

	// The test theme renders bodies without a head, so every HTML route
	// is flagged.
	for _, e := range rep.Entries {
		if e.Route.OutPath == "posts/audited-post/index.html" {
			assert.Contains(t, e.Notes, "no title")
			assert.Contains(t, e.Notes, "no description")
		}
		if e.Route.OutPath == "rss.xml" {
			assert.Empty(t, e.Notes, "head checks apply to HTML only")
		}
	}
}

func TestCheckHead(t *testing.T) {
	tests := []struct {
		name string
		page string
		want []string
	}{
		{
			name: "complete head",
			page: `<html><head><title>Hi</title><meta name="description" content="words"></head><body></body></html>`,
			want: nil,
		},
		{
			name: "empty title",
			page: `<html><head><title> </title><meta name="description" content="words"></head></html>`,
			want: []string{"empty title"},
		},
		{
			name: "no description",
			page: `<html><head><title>Hi</title></head></html>`,
			want: []string{"no description"},
		},
		{
			name: "blank description content",
			page: `<html><head><title>Hi</title><meta name="description" content=""></head></html>`,
			want: []string{"empty description"},
		},
		{
			name: "bare body",
			page: `<h1>Hi</h1>`,
			want: []string{"no title", "no description"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkHead([]byte(tt.page)))
		})
	}
}

func TestAuditDetectsMissingRoute(t *testing.T) {
	cfg := builtSite(t)
	removed := filepath.Join(cfg.Build.OutputDir, "posts", "audited-post", "index.html")
	require.NoError(t, os.Remove(removed))

	rep, err := Run(cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Missing())
	assert.False(t, rep.Clean())

	found := false
	for _, e := range rep.Entries {
		if e.Route.OutPath == "posts/audited-post/index.html" {
			found = true
			assert.Equal(t, StatusMissing, e.Status)
		}
	}
	assert.True(t, found)
}

func TestAuditDetectsOrphans(t *testing.T) {
	cfg := builtSite(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Build.OutputDir, "stray.html"), []byte("x"), 0o644))
	staticDir := filepath.Join(cfg.Build.OutputDir, "static")
	require.NoError(t, os.MkdirAll(staticDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "style.css"), []byte("x"), 0o644))

	rep, err := Run(cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"stray.html"}, rep.Orphans, "theme assets under static/ are not orphans")
}

func TestAuditMissingOutputDir(t *testing.T) {
	cfg := builtSite(t)
	require.NoError(t, os.RemoveAll(cfg.Build.OutputDir))

	rep, err := Run(cfg)
	require.NoError(t, err)

	assert.Equal(t, len(rep.Entries), rep.Missing(), "every route is missing without output")
}

func TestAuditRequiresIndex(t *testing.T) {
	cfg := config.Default()
	cfg.Build.IndexPath = filepath.Join(t.TempDir(), "nope", "index.db")

	_, err := Run(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run build first")
}

func TestFormatTable(t *testing.T) {
	cfg := builtSite(t)
	rep, err := Run(cfg)
	require.NoError(t, err)

	out := FormatTable(rep)
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "SIZE")
	assert.Contains(t, out, "posts/audited-post/index.html")
	assert.Contains(t, out, "0 missing")
	assert.Contains(t, out, "written")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "2.0 KB", formatSize(2048))
	assert.Equal(t, "1.5 MB", formatSize(3<<19))
}
