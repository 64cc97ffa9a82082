// Package feed builds the RSS and Atom documents for the published
// collection.
package feed

import (
	"time"

	"github.com/gorilla/feeds"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
)

func postLink(site config.Site, p content.Post) string {
	return site.BaseURL + "/posts/" + p.Slug + "/"
}

// Build constructs the syndication feed. Posts are expected newest first;
// their order is kept.
func Build(site config.Site, posts []content.Post, now time.Time) *feeds.Feed {
	f := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: site.BaseURL + "/"},
		Description: site.Description,
		Author:      &feeds.Author{Name: site.Author},
		Created:     now,
	}
	for _, p := range posts {
		f.Items = append(f.Items, &feeds.Item{
			Id:          postLink(site, p),
			Title:       p.Title,
			Link:        &feeds.Link{Href: postLink(site, p)},
			Description: p.Excerpt,
			Author:      &feeds.Author{Name: p.Author},
			Created:     p.Date,
		})
	}
	return f
}

// RSS renders the feed as RSS 2.0.
func RSS(site config.Site, posts []content.Post, now time.Time) (string, error) {
	return Build(site, posts, now).ToRss()
}

// Atom renders the feed as Atom 1.0.
func Atom(site config.Site, posts []content.Post, now time.Time) (string, error) {
	return Build(site, posts, now).ToAtom()
}
