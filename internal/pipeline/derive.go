package pipeline

import (
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	errdomain "github.com/yunus25jmi1/personal-Blog-website/internal/domain/errors"
)

// Derive fills the computed fields of a shell record: slug from the
// identifier, normalized tags, word count, reading time and excerpt. An
// identifier with no sluggable characters is a validation failure because
// the record could not be routed.
func Derive(post content.Post, cfg config.Pipeline) (content.Post, *errdomain.RecordError) {
	post.Slug = Slugify(content.BaseID(post.ID))
	if post.Slug == "" {
		rec := &errdomain.RecordError{ID: post.ID}
		rec.Add("slug", errdomain.SchemaMissingField, "identifier has no sluggable characters")
		return content.Post{}, rec
	}
	post.Tags = NormalizeTags(post.Tags, cfg.MaxTags)
	post.WordCount = CountWords(post.Body, cfg.MaxScanRunes)
	post.ReadingTime = ReadingTime(post.WordCount, cfg.WordsPerMinute)
	post.Excerpt = Excerpt(post.Body, cfg.ExcerptMaxLen)
	return post, nil
}
