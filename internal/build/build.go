// Package build runs one full generation of the site: ingest, pipeline,
// index rebuild, rendering, and file output.
package build

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domainbuild "github.com/yunus25jmi1/personal-Blog-website/internal/domain/build"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	errdomain "github.com/yunus25jmi1/personal-Blog-website/internal/domain/errors"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/site"
	"github.com/yunus25jmi1/personal-Blog-website/internal/feed"
	"github.com/yunus25jmi1/personal-Blog-website/internal/index"
	"github.com/yunus25jmi1/personal-Blog-website/internal/ingest"
	"github.com/yunus25jmi1/personal-Blog-website/internal/logger"
	"github.com/yunus25jmi1/personal-Blog-website/internal/pipeline"
	"github.com/yunus25jmi1/personal-Blog-website/internal/render"
)

// feedItemLimit bounds rss.xml and atom.xml to the newest posts.
const feedItemLimit = 20

type Builder struct {
	Cfg config.Config

	// Now pins the build timestamp; zero means the wall clock.
	Now time.Time

	// Log receives per-step progress; nil discards it.
	Log *logger.Logger
}

type Result struct {
	Posts       int
	Pages       int
	Rejected    []*errdomain.RecordError
	Warnings    []ingest.Warning
	Routes      []site.Route
	Fingerprint domainbuild.Fingerprint
}

func (b *Builder) now() time.Time {
	if b.Now.IsZero() {
		return time.Now()
	}
	return b.Now
}

func (b *Builder) log() *logger.Logger {
	if b.Log == nil {
		return logger.Nop()
	}
	return b.Log
}

// SplitDocs partitions ingested documents into post sources and page
// documents by their directory prefix. Anything outside posts/ and pages/
// is skipped with a warning.
func SplitDocs(docs []ingest.Document) ([]pipeline.Source, []ingest.Document, []ingest.Warning) {
	var sources []pipeline.Source
	var pageDocs []ingest.Document
	var warns []ingest.Warning
	for _, d := range docs {
		switch {
		case strings.HasPrefix(d.ID, "posts/"):
			sources = append(sources, pipeline.Source{ID: d.ID, Meta: d.Meta, Body: d.Body})
		case strings.HasPrefix(d.ID, "pages/"):
			pageDocs = append(pageDocs, d)
		default:
			warns = append(warns, ingest.Warning{Path: d.Path, Msg: "outside posts/ and pages/, skipped"})
		}
	}
	return sources, pageDocs, warns
}

// Run executes one build. Schema failures exclude their document and are
// reported in Result.Rejected; a duplicate slug among published posts is
// fatal and nothing is written.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	log := b.log()

	docs, warns, err := ingest.Ingest(b.Cfg.Build.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	log.Debug("ingested documents", "count", len(docs), "warnings", len(warns))

	sources, pageDocs, splitWarns := SplitDocs(docs)
	warns = append(warns, splitWarns...)

	res, err := pipeline.Run(sources, b.Cfg.Pipeline)
	if err != nil {
		return nil, err
	}
	log.Debug("collection assembled", "published", len(res.Posts), "rejected", len(res.Rejected))

	pages, pageWarns := AssemblePages(pageDocs)
	warns = append(warns, pageWarns...)

	fp, err := ComputeFingerprint(b.Cfg, docs)
	if err != nil {
		return nil, err
	}

	st, err := index.Open(index.OpenOptions{Path: b.Cfg.Build.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer st.Close()

	if err := st.Rebuild(res.Posts, pages); err != nil {
		return nil, fmt.Errorf("rebuild index: %w", err)
	}
	log.Debug("index rebuilt", "path", b.Cfg.Build.IndexPath)

	md := render.NewMarkdownRenderer()
	tplDir := filepath.Join(b.Cfg.Build.ThemeDir, b.Cfg.Build.Theme, "templates")
	if err := render.CheckThemeTemplates(tplDir); err != nil {
		return nil, fmt.Errorf("theme %s: %w", b.Cfg.Build.Theme, err)
	}
	tpl, err := render.NewTemplateRenderer(b.Cfg.Build.ThemeDir, b.Cfg.Build.Theme)
	if err != nil {
		return nil, fmt.Errorf("load theme %s: %w", b.Cfg.Build.Theme, err)
	}

	routes := PlanRoutes(b.Cfg, res.Posts, pages)

	outDir := b.Cfg.Build.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir output: %w", err)
	}
	if err := b.buildAll(ctx, st, md, tpl, outDir, res.Posts, pages, routes); err != nil {
		return nil, err
	}
	log.Info("site built", "posts", len(res.Posts), "pages", len(pages), "routes", len(routes), "out", outDir)

	return &Result{
		Posts:       len(res.Posts),
		Pages:       len(pages),
		Rejected:    res.Rejected,
		Warnings:    warns,
		Routes:      routes,
		Fingerprint: fp,
	}, nil
}

// ComputeFingerprint hashes everything a build's output depends on: the
// ingested documents, the active theme's files, and the configuration.
func ComputeFingerprint(cfg config.Config, docs []ingest.Document) (domainbuild.Fingerprint, error) {
	hashes := make([]string, 0, len(docs))
	for _, d := range docs {
		hashes = append(hashes, d.ID+":"+d.Hash)
	}

	themeHash, err := domainbuild.HashDir(filepath.Join(cfg.Build.ThemeDir, cfg.Build.Theme))
	if err != nil {
		return domainbuild.Fingerprint{}, err
	}
	rawCfg, err := yaml.Marshal(cfg)
	if err != nil {
		return domainbuild.Fingerprint{}, err
	}

	fp := domainbuild.Fingerprint{
		ContentHash: domainbuild.HashStrings(hashes),
		ThemeHash:   themeHash,
		ConfigHash:  domainbuild.HashStrings([]string{string(rawCfg)}),
	}
	fp.ComputeRenderHash()
	return fp, nil
}

func (b *Builder) buildAll(
	ctx context.Context,
	st *index.Store,
	md *render.MarkdownRenderer,
	tpl render.Renderer,
	outDir string,
	posts []content.Post,
	pages []content.Page,
	routes []site.Route,
) error {
	if err := b.buildHome(ctx, st, tpl, outDir); err != nil {
		return fmt.Errorf("build home: %w", err)
	}
	if err := b.buildPosts(ctx, md, tpl, outDir, posts); err != nil {
		return fmt.Errorf("build posts: %w", err)
	}
	if err := b.buildTagPages(ctx, st, tpl, outDir); err != nil {
		return fmt.Errorf("build tag pages: %w", err)
	}
	if err := b.buildTagsOverview(ctx, st, tpl, outDir); err != nil {
		return fmt.Errorf("build tags overview: %w", err)
	}
	if err := b.buildArchives(ctx, st, tpl, outDir); err != nil {
		return fmt.Errorf("build archives: %w", err)
	}
	if err := b.buildPages(ctx, md, tpl, outDir, pages); err != nil {
		return fmt.Errorf("build pages: %w", err)
	}
	if err := b.buildNotFound(ctx, tpl, outDir); err != nil {
		return fmt.Errorf("build 404: %w", err)
	}
	if err := b.buildFeeds(outDir, posts); err != nil {
		return fmt.Errorf("build feeds: %w", err)
	}
	if err := b.buildSitemap(outDir, posts, routes); err != nil {
		return fmt.Errorf("build sitemap: %w", err)
	}
	if err := b.buildRobots(outDir); err != nil {
		return fmt.Errorf("build robots: %w", err)
	}
	if err := b.buildHeaders(outDir); err != nil {
		return fmt.Errorf("build headers: %w", err)
	}
	if err := b.copyStaticAssets(outDir); err != nil {
		return fmt.Errorf("copy static assets: %w", err)
	}
	return nil
}

func (b *Builder) buildHome(
	ctx context.Context,
	st *index.Store,
	tpl render.Renderer,
	outDir string,
) error {
	all, err := st.ListAll()
	if err != nil {
		return err
	}

	size := b.Cfg.Build.PostsPerPage
	total := len(all)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	for page := 1; page <= totalPages; page++ {
		lo := (page - 1) * size
		hi := min(lo+size, total)

		view := render.HomePage{
			Site:      b.Cfg.Site,
			Posts:     all[lo:hi],
			Page:      page,
			PageSize:  size,
			Total:     total,
			Generated: b.now(),
			Title:     b.Cfg.Site.Title,
		}
		htmlBytes, err := tpl.RenderHome(ctx, view)
		if err != nil {
			return err
		}

		rel := "index.html"
		if page > 1 {
			rel = fmt.Sprintf("page/%d/index.html", page)
		}
		if err := writeFile(outDir, rel, htmlBytes); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildPosts(
	ctx context.Context,
	md *render.MarkdownRenderer,
	tpl render.Renderer,
	outDir string,
	posts []content.Post,
) error {
	for _, p := range posts {
		mdResult, err := md.Render([]byte(p.Body))
		if err != nil {
			return fmt.Errorf("markdown render(%s): %w", p.Slug, err)
		}

		pp := render.PostPage{
			Site:  b.Cfg.Site,
			Post:  p,
			HTML:  template.HTML(mdResult.HTML),
			TOC:   mdResult.Headings,
			Title: p.Title,
		}
		htmlBytes, err := tpl.RenderPost(ctx, pp)
		if err != nil {
			return fmt.Errorf("render post(%s): %w", p.Slug, err)
		}

		if err := writeFile(outDir, "posts/"+p.Slug+"/index.html", htmlBytes); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildTagPages(
	ctx context.Context,
	st *index.Store,
	tpl render.Renderer,
	outDir string,
) error {
	counts, err := st.TagCounts()
	if err != nil {
		return err
	}

	for _, tr := range tagRefs(counts) {
		items, err := st.ListAllByTag(tr.Name)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}

		lp := render.ListPage{
			Site:      b.Cfg.Site,
			Title:     fmt.Sprintf("Tag: %s", tr.Name),
			Tag:       tr.Name,
			Posts:     items,
			Page:      1,
			PageSize:  len(items),
			Total:     tr.Count,
			Generated: b.now(),
		}
		htmlBytes, err := tpl.RenderList(ctx, lp)
		if err != nil {
			return fmt.Errorf("render tag(%s): %w", tr.Name, err)
		}

		if err := writeFile(outDir, "tags/"+tr.Slug+"/index.html", htmlBytes); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildTagsOverview(
	ctx context.Context,
	st *index.Store,
	tpl render.Renderer,
	outDir string,
) error {
	counts, err := st.TagCounts()
	if err != nil {
		return err
	}

	stats := render.TagStats(counts)

	page := render.TagsPage{
		Site:  b.Cfg.Site,
		Tags:  stats,
		Total: len(stats),
		Title: "Tags",
	}
	htmlBytes, err := tpl.RenderTags(ctx, page)
	if err != nil {
		return err
	}
	return writeFile(outDir, "tags/index.html", htmlBytes)
}

func (b *Builder) buildArchives(
	ctx context.Context,
	st *index.Store,
	tpl render.Renderer,
	outDir string,
) error {
	byYear, err := st.Archives()
	if err != nil {
		return err
	}

	total := 0
	groups := make([]render.ArchivesGroup, 0, len(byYear))
	for _, g := range byYear {
		total += len(g.Posts)
		groups = append(groups, render.ArchivesGroup{
			Year:  g.Year,
			Posts: g.Posts,
			Count: len(g.Posts),
		})
	}

	page := render.ArchivesPage{
		Site:   b.Cfg.Site,
		Groups: groups,
		Total:  total,
		Title:  "Archives",
	}
	htmlBytes, err := tpl.RenderArchives(ctx, page)
	if err != nil {
		return err
	}
	return writeFile(outDir, "archives/index.html", htmlBytes)
}

func (b *Builder) buildPages(
	ctx context.Context,
	md *render.MarkdownRenderer,
	tpl render.Renderer,
	outDir string,
	pages []content.Page,
) error {
	for _, pg := range pages {
		mdResult, err := md.Render([]byte(pg.Body))
		if err != nil {
			return fmt.Errorf("markdown render(%s): %w", pg.Slug, err)
		}

		view := render.PageView{
			Site:  b.Cfg.Site,
			Page:  pg,
			HTML:  template.HTML(mdResult.HTML),
			Title: pg.Title,
		}
		htmlBytes, err := tpl.RenderPage(ctx, view)
		if err != nil {
			return fmt.Errorf("render page(%s): %w", pg.Slug, err)
		}

		if err := writeFile(outDir, pg.Slug+"/index.html", htmlBytes); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildNotFound(
	ctx context.Context,
	tpl render.Renderer,
	outDir string,
) error {
	htmlBytes, err := tpl.RenderNotFound(ctx, render.NotFoundPage{Site: b.Cfg.Site, Title: "Not Found"})
	if err != nil {
		return err
	}
	return writeFile(outDir, "404.html", htmlBytes)
}

func (b *Builder) buildFeeds(outDir string, posts []content.Post) error {
	limit := min(feedItemLimit, len(posts))
	newest := posts[:limit]

	rss, err := feed.RSS(b.Cfg.Site, newest, b.now())
	if err != nil {
		return err
	}
	if err := writeFile(outDir, "rss.xml", []byte(rss)); err != nil {
		return err
	}

	atom, err := feed.Atom(b.Cfg.Site, newest, b.now())
	if err != nil {
		return err
	}
	return writeFile(outDir, "atom.xml", []byte(atom))
}

func (b *Builder) copyStaticAssets(outDir string) error {
	src := filepath.Join(b.Cfg.Build.ThemeDir, b.Cfg.Build.Theme, "static")
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		in, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return writeFile(outDir, "static/"+filepath.ToSlash(rel), in)
	})
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
