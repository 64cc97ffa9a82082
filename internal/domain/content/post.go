package content

import (
	"strings"
	"time"
)

// Post is one published unit of content. Raw fields come straight from the
// source document; Slug, Tags, WordCount, ReadingTime and Excerpt are filled
// in by the pipeline. A Post is built once per run and not mutated afterwards.
type Post struct {
	// ID is the stable key for the source document: the slash-separated
	// path relative to the content root, without extension.
	ID string

	Title       string
	Description string
	Author      string
	Date        time.Time

	Tags  []string
	Image string
	Draft bool

	// Body is the raw markup source. It belongs to this record alone.
	Body string

	Slug        string
	WordCount   int
	ReadingTime int // minutes, always >= 1
	Excerpt     string
}

// Page is a standalone page (about, links, ...). Pages skip the post
// pipeline: no date, no tags, no feed entry.
type Page struct {
	ID    string
	Slug  string
	Title string
	Body  string
}

// BaseID returns the last path segment of an identifier, the part slugs are
// derived from.
func BaseID(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		return id[i+1:]
	}
	return id
}
