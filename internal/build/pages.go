package build

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	"github.com/yunus25jmi1/personal-Blog-website/internal/ingest"
	"github.com/yunus25jmi1/personal-Blog-website/internal/pipeline"
)

var titleCaser = cases.Title(language.English)

// reservedSlugs are root path segments the generator itself claims.
var reservedSlugs = map[string]bool{
	"posts":    true,
	"tags":     true,
	"archives": true,
	"page":     true,
	"static":   true,
}

// AssemblePages turns page documents into the published standalone pages.
// Pages are lenient where posts are strict: a missing title falls back to
// the slug, and a duplicate or reserved slug drops the page with a warning
// instead of failing the build. Documents arrive sorted by ID, so the first
// claimant of a slug wins deterministically.
func AssemblePages(docs []ingest.Document) ([]content.Page, []ingest.Warning) {
	var warns []ingest.Warning
	seen := make(map[string]bool, len(docs))
	out := make([]content.Page, 0, len(docs))

	for _, d := range docs {
		if isDraft(d.Meta) {
			continue
		}

		slug := pipeline.Slugify(content.BaseID(d.ID))
		switch {
		case slug == "":
			warns = append(warns, ingest.Warning{Path: d.Path, Msg: "page identifier has no sluggable characters"})
			continue
		case reservedSlugs[slug]:
			warns = append(warns, ingest.Warning{Path: d.Path, Msg: "page slug is reserved: " + slug})
			continue
		case seen[slug]:
			warns = append(warns, ingest.Warning{Path: d.Path, Msg: "duplicate page slug: " + slug})
			continue
		}
		seen[slug] = true

		title := ""
		if v, ok := d.Meta["title"].(string); ok {
			title = strings.TrimSpace(v)
		}
		if title == "" {
			title = titleCaser.String(strings.ReplaceAll(slug, "-", " "))
		}

		out = append(out, content.Page{
			ID:    d.ID,
			Slug:  slug,
			Title: title,
			Body:  d.Body,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, warns
}

func isDraft(meta map[string]any) bool {
	switch v := meta["draft"].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}
