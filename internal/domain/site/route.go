package site

import (
	"fmt"
	"strings"
)

type RouteKind string

const (
	RouteIndex    RouteKind = "index"
	RoutePost     RouteKind = "post"
	RoutePage     RouteKind = "page"
	RouteTag      RouteKind = "tag"
	RouteTags     RouteKind = "tags"
	RouteArchives RouteKind = "archives"
	RouteRSS      RouteKind = "rss"
	RouteAtom     RouteKind = "atom"
	RouteSitemap  RouteKind = "sitemap"
	RouteRobots   RouteKind = "robots"
	RouteHeaders  RouteKind = "headers"
	RouteNotFound RouteKind = "404"
)

// Route is one planned output of a build: what it is, and where it lands
// relative to the output directory. OutPath is always slash separated; the
// writer converts to the OS path. The build writes from the plan and the
// audit checks the plan against what is on disk.
type Route struct {
	Kind    RouteKind
	Slug    string
	Page    int
	OutPath string
}

func (r Route) String() string {
	parts := []string{string(r.Kind)}
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.Page > 0 {
		parts = append(parts, fmt.Sprintf("page=%d", r.Page))
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	return strings.Join(parts, " ")
}

// InSitemap reports whether the route is a canonical HTML page that belongs
// in sitemap.xml.
func (r Route) InSitemap() bool {
	switch r.Kind {
	case RouteIndex, RoutePost, RoutePage, RouteTag, RouteTags, RouteArchives:
		return true
	default:
		return false
	}
}

// URLPath returns the site-relative URL the route is served at.
func (r Route) URLPath() string {
	p := strings.TrimSuffix(r.OutPath, "index.html")
	if p == r.OutPath {
		// Not a pretty directory route, e.g. 404.html or rss.xml.
		return "/" + p
	}
	if p == "" {
		return "/"
	}
	return "/" + p
}
