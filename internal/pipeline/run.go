// Package pipeline turns raw frontmatter documents into the validated,
// derived, ordered collection the rendering layer consumes. Every document
// is processed independently; only the final assembly step looks across the
// whole set.
package pipeline

import (
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	errdomain "github.com/yunus25jmi1/personal-Blog-website/internal/domain/errors"
)

// Source is one raw document handed in by a loader: a stable identifier,
// the untyped frontmatter mapping and the body text.
type Source struct {
	ID   string
	Meta map[string]any
	Body string
}

// Result is a completed run. Posts is the render-ready sequence; Rejected
// lists every document excluded by schema validation.
type Result struct {
	Posts    []content.Post
	Rejected []*errdomain.RecordError
}

// Run validates and derives every source, then assembles the collection.
// Schema failures exclude their document and the run continues. A duplicate
// slug among published documents fails the whole run, but only after every
// document has been validated, so Rejected is complete either way.
func Run(sources []Source, cfg config.Pipeline) (Result, error) {
	var res Result
	valid := make([]content.Post, 0, len(sources))
	for _, src := range sources {
		post, rec := ParseRecord(src.ID, src.Meta, src.Body)
		if rec != nil {
			res.Rejected = append(res.Rejected, rec)
			continue
		}
		post, rec = Derive(post, cfg)
		if rec != nil {
			res.Rejected = append(res.Rejected, rec)
			continue
		}
		valid = append(valid, post)
	}

	posts, err := Assemble(valid)
	if err != nil {
		return res, err
	}
	res.Posts = posts
	return res, nil
}
