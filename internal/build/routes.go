package build

import (
	"fmt"
	"sort"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/site"
	"github.com/yunus25jmi1/personal-Blog-website/internal/pipeline"
)

// tagRef is one addressable tag: its display name, its URL slug, and how
// many posts carry it.
type tagRef struct {
	Name  string
	Slug  string
	Count int
}

// tagRefs maps tag counts to route-able entries in name order. A tag whose
// slug is empty, or collides with an earlier tag's slug, gets no page.
func tagRefs(counts map[string]int) []tagRef {
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)

	taken := make(map[string]bool, len(names))
	out := make([]tagRef, 0, len(names))
	for _, n := range names {
		s := pipeline.Slugify(n)
		if s == "" || taken[s] {
			continue
		}
		taken[s] = true
		out = append(out, tagRef{Name: n, Slug: s, Count: counts[n]})
	}
	return out
}

// tagCountsFromPosts counts distinct posts per tag, matching what the index
// reports after a rebuild.
func tagCountsFromPosts(posts []content.Post) map[string]int {
	counts := make(map[string]int)
	for _, p := range posts {
		seen := make(map[string]bool, len(p.Tags))
		for _, t := range p.Tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			counts[t]++
		}
	}
	return counts
}

// PlanRoutes lists every file a build of this content produces, in output
// order. The plan is derived from the assembled collection alone, so an
// audit can recompute it without rebuilding.
func PlanRoutes(cfg config.Config, posts []content.Post, pages []content.Page) []site.Route {
	size := cfg.Build.PostsPerPage
	total := len(posts)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	routes := make([]site.Route, 0, total+totalPages+len(pages)+8)

	routes = append(routes, site.Route{Kind: site.RouteIndex, Page: 1, OutPath: "index.html"})
	for p := 2; p <= totalPages; p++ {
		routes = append(routes, site.Route{
			Kind:    site.RouteIndex,
			Page:    p,
			OutPath: fmt.Sprintf("page/%d/index.html", p),
		})
	}

	for _, p := range posts {
		routes = append(routes, site.Route{
			Kind:    site.RoutePost,
			Slug:    p.Slug,
			OutPath: "posts/" + p.Slug + "/index.html",
		})
	}

	for _, tr := range tagRefs(tagCountsFromPosts(posts)) {
		routes = append(routes, site.Route{
			Kind:    site.RouteTag,
			Slug:    tr.Slug,
			OutPath: "tags/" + tr.Slug + "/index.html",
		})
	}
	routes = append(routes,
		site.Route{Kind: site.RouteTags, OutPath: "tags/index.html"},
		site.Route{Kind: site.RouteArchives, OutPath: "archives/index.html"},
	)

	for _, pg := range pages {
		routes = append(routes, site.Route{
			Kind:    site.RoutePage,
			Slug:    pg.Slug,
			OutPath: pg.Slug + "/index.html",
		})
	}

	routes = append(routes,
		site.Route{Kind: site.RouteNotFound, OutPath: "404.html"},
		site.Route{Kind: site.RouteRSS, OutPath: "rss.xml"},
		site.Route{Kind: site.RouteAtom, OutPath: "atom.xml"},
		site.Route{Kind: site.RouteSitemap, OutPath: "sitemap.xml"},
		site.Route{Kind: site.RouteRobots, OutPath: "robots.txt"},
		site.Route{Kind: site.RouteHeaders, OutPath: "_headers"},
	)
	return routes
}
