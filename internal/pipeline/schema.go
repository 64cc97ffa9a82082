package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	errdomain "github.com/yunus25jmi1/personal-Blog-website/internal/domain/errors"
)

// dateLayouts are the accepted publish date spellings, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	"2006-01-02 15:04",
	time.DateTime,
}

// ParseRecord types and defaults the raw frontmatter of one document,
// returning a shell record with derived fields still zero. Every schema
// violation on the document is collected into the returned RecordError, so
// a single pass surfaces all of them.
func ParseRecord(id string, meta map[string]any, body string) (content.Post, *errdomain.RecordError) {
	rec := &errdomain.RecordError{ID: id}
	post := content.Post{ID: id, Body: body}

	post.Title = requireString(rec, meta, "title")
	post.Description = requireString(rec, meta, "description")
	post.Author = requireString(rec, meta, "author")
	post.Date = requireDate(rec, meta, "publishDate")
	post.Tags = coerceTags(rec, meta, "tags")
	post.Image = optionalString(rec, meta, "image")
	post.Draft = optionalBool(rec, meta, "draft")

	if rec.HasAny() {
		return content.Post{}, rec
	}
	return post, nil
}

func requireString(rec *errdomain.RecordError, meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		rec.Add(key, errdomain.SchemaMissingField, "")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		rec.Add(key, errdomain.SchemaWrongType, fmt.Sprintf("got %T", v))
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		rec.Add(key, errdomain.SchemaMissingField, "blank")
		return ""
	}
	return s
}

func requireDate(rec *errdomain.RecordError, meta map[string]any, key string) time.Time {
	v, ok := meta[key]
	if !ok || v == nil {
		rec.Add(key, errdomain.SchemaMissingField, "")
		return time.Time{}
	}
	switch d := v.(type) {
	case time.Time:
		return d
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		rec.Add(key, errdomain.SchemaBadDate, fmt.Sprintf("unparseable %q", s))
	default:
		rec.Add(key, errdomain.SchemaWrongType, fmt.Sprintf("got %T", v))
	}
	return time.Time{}
}

// coerceTags accepts a list of scalars or a bare string. Scalar elements are
// stringified; nested structures are dropped. Normalization happens later,
// in NormalizeTags.
func coerceTags(rec *errdomain.RecordError, meta map[string]any, key string) []string {
	v, ok := meta[key]
	if !ok || v == nil {
		return nil
	}
	switch tags := v.(type) {
	case string:
		return []string{tags}
	case []string:
		return tags
	case []any:
		out := make([]string, 0, len(tags))
		for _, item := range tags {
			switch t := item.(type) {
			case string:
				out = append(out, t)
			case int, int64, uint64, float64, bool:
				out = append(out, fmt.Sprint(t))
			}
		}
		return out
	default:
		rec.Add(key, errdomain.SchemaWrongType, fmt.Sprintf("got %T", v))
		return nil
	}
}

func optionalString(rec *errdomain.RecordError, meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		rec.Add(key, errdomain.SchemaWrongType, fmt.Sprintf("got %T", v))
		return ""
	}
	return strings.TrimSpace(s)
}

func optionalBool(rec *errdomain.RecordError, meta map[string]any, key string) bool {
	v, ok := meta[key]
	if !ok || v == nil {
		return false
	}
	switch d := v.(type) {
	case bool:
		return d
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(d))
		if err != nil {
			rec.Add(key, errdomain.SchemaWrongType, fmt.Sprintf("not a boolean: %q", d))
			return false
		}
		return b
	default:
		rec.Add(key, errdomain.SchemaWrongType, fmt.Sprintf("got %T", v))
		return false
	}
}
