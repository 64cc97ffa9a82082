package build

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/site"
)

const sitemapTmpl = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
{{- range .URLs}}
  <url>
    <loc>{{.Loc}}</loc>
{{- if .LastMod}}
    <lastmod>{{.LastMod}}</lastmod>
{{- end}}
  </url>
{{- end}}
</urlset>
`

const robotsTmpl = `User-agent: *
Allow: /

Sitemap: {{.Sitemap}}
`

// headersFile follows the Netlify/Cloudflare Pages _headers format. Static
// assets are fingerprint-free, so the long cache relies on the theme rarely
// changing between deploys.
const headersFile = `/*
  X-Content-Type-Options: nosniff
  X-Frame-Options: DENY
  Referrer-Policy: strict-origin-when-cross-origin

/static/*
  Cache-Control: public, max-age=31536000, immutable
`

var (
	sitemapTemplate = template.Must(template.New("sitemap").Parse(sitemapTmpl))
	robotsTemplate  = template.Must(template.New("robots").Parse(robotsTmpl))
)

type sitemapURL struct {
	Loc     string
	LastMod string
}

func (b *Builder) buildSitemap(outDir string, posts []content.Post, routes []site.Route) error {
	base := strings.TrimRight(b.Cfg.Site.BaseURL, "/")

	lastMod := make(map[string]string, len(posts))
	for _, p := range posts {
		lastMod[p.Slug] = p.Date.UTC().Format("2006-01-02")
	}

	urls := make([]sitemapURL, 0, len(routes))
	for _, r := range routes {
		if !r.InSitemap() {
			continue
		}
		u := sitemapURL{Loc: base + r.URLPath()}
		if r.Kind == site.RoutePost {
			u.LastMod = lastMod[r.Slug]
		}
		urls = append(urls, u)
	}

	var buf bytes.Buffer
	if err := sitemapTemplate.Execute(&buf, struct{ URLs []sitemapURL }{urls}); err != nil {
		return err
	}
	return writeFile(outDir, "sitemap.xml", buf.Bytes())
}

func (b *Builder) buildRobots(outDir string) error {
	base := strings.TrimRight(b.Cfg.Site.BaseURL, "/")

	var buf bytes.Buffer
	if err := robotsTemplate.Execute(&buf, struct{ Sitemap string }{base + "/sitemap.xml"}); err != nil {
		return err
	}
	return writeFile(outDir, "robots.txt", buf.Bytes())
}

func (b *Builder) buildHeaders(outDir string) error {
	return writeFile(outDir, "_headers", []byte(headersFile))
}
