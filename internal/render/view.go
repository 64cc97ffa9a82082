package render

import (
	"html/template"
	"sort"
	"time"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
)

type Heading struct {
	Level int
	ID    string
	Text  string
}

type PostPage struct {
	Site  config.Site
	Post  content.Post
	HTML  template.HTML
	TOC   []Heading
	Title string
}

type HomePage struct {
	Site      config.Site
	Posts     []content.Post
	Page      int
	PageSize  int
	Total     int
	Generated time.Time
	Title     string
}

type ListPage struct {
	Site      config.Site
	Title     string
	Tag       string
	Posts     []content.Post
	Page      int
	PageSize  int
	Total     int
	Generated time.Time
}

type TagStat struct {
	Name  string
	Count int
}

// TagStats turns a tag count map into the display order used by the tags
// overview: most posts first, ties broken by name.
func TagStats(counts map[string]int) []TagStat {
	stats := make([]TagStat, 0, len(counts))
	for name, n := range counts {
		stats = append(stats, TagStat{Name: name, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	return stats
}

type TagsPage struct {
	Site  config.Site
	Tags  []TagStat
	Total int
	Title string
}

type ArchivesGroup struct {
	Year  int
	Posts []content.Post
	Count int
}

type ArchivesPage struct {
	Site   config.Site
	Groups []ArchivesGroup
	Total  int
	Title  string
}

type PageView struct {
	Site  config.Site
	Page  content.Page
	HTML  template.HTML
	Title string
}

type NotFoundPage struct {
	Site  config.Site
	Path  string
	Title string
}
