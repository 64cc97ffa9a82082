package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errdomain "github.com/yunus25jmi1/personal-Blog-website/internal/domain/errors"
)

func validMeta() map[string]any {
	return map[string]any{
		"title":       "First Post",
		"description": "An introduction.",
		"publishDate": "2024-01-15",
		"author":      "Jo",
	}
}

func TestParseRecordValid(t *testing.T) {
	post, rec := ParseRecord("posts/first-post", validMeta(), "Hello there.")
	require.Nil(t, rec)

	assert.Equal(t, "posts/first-post", post.ID)
	assert.Equal(t, "First Post", post.Title)
	assert.Equal(t, "An introduction.", post.Description)
	assert.Equal(t, "Jo", post.Author)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), post.Date)
	assert.False(t, post.Draft)
	assert.Empty(t, post.Tags)
	assert.Equal(t, "Hello there.", post.Body)

	// Derived fields stay zero until Derive runs.
	assert.Empty(t, post.Slug)
	assert.Zero(t, post.ReadingTime)
	assert.Empty(t, post.Excerpt)
}

func TestParseRecordFieldFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]any)
		field  string
		kind   errdomain.SchemaKind
	}{
		{"missing title", func(m map[string]any) { delete(m, "title") }, "title", errdomain.SchemaMissingField},
		{"blank title", func(m map[string]any) { m["title"] = "   " }, "title", errdomain.SchemaMissingField},
		{"numeric title", func(m map[string]any) { m["title"] = 42 }, "title", errdomain.SchemaWrongType},
		{"missing description", func(m map[string]any) { delete(m, "description") }, "description", errdomain.SchemaMissingField},
		{"missing author", func(m map[string]any) { delete(m, "author") }, "author", errdomain.SchemaMissingField},
		{"missing date", func(m map[string]any) { delete(m, "publishDate") }, "publishDate", errdomain.SchemaMissingField},
		{"unparseable date", func(m map[string]any) { m["publishDate"] = "Jan 15, 2024" }, "publishDate", errdomain.SchemaBadDate},
		{"date of wrong type", func(m map[string]any) { m["publishDate"] = []any{"2024"} }, "publishDate", errdomain.SchemaWrongType},
		{"tags of wrong type", func(m map[string]any) { m["tags"] = map[string]any{"a": 1} }, "tags", errdomain.SchemaWrongType},
		{"image of wrong type", func(m map[string]any) { m["image"] = 7 }, "image", errdomain.SchemaWrongType},
		{"draft of wrong type", func(m map[string]any) { m["draft"] = "maybe" }, "draft", errdomain.SchemaWrongType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := validMeta()
			tc.mutate(meta)
			_, rec := ParseRecord("posts/x", meta, "")
			require.NotNil(t, rec)
			require.Len(t, rec.Issues, 1)
			assert.Equal(t, tc.field, rec.Issues[0].Field)
			assert.Equal(t, tc.kind, rec.Issues[0].Kind)
			assert.ErrorIs(t, rec, errdomain.ErrSchema)
		})
	}
}

func TestParseRecordCollectsEveryIssue(t *testing.T) {
	meta := validMeta()
	delete(meta, "title")
	meta["publishDate"] = "someday"
	meta["draft"] = 3

	_, rec := ParseRecord("posts/broken", meta, "")
	require.NotNil(t, rec)
	assert.Len(t, rec.Issues, 3)
	assert.Contains(t, rec.Error(), "title")
	assert.Contains(t, rec.Error(), "publishDate")
	assert.Contains(t, rec.Error(), "draft")
}

func TestParseRecordDateForms(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want time.Time
	}{
		{"date only", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"date and minutes", "2024-01-15 10:30", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"date and seconds", "2024-01-15 10:30:45", time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)},
		{"already a time", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := validMeta()
			meta["publishDate"] = tc.in
			post, rec := ParseRecord("posts/x", meta, "")
			require.Nil(t, rec)
			assert.True(t, tc.want.Equal(post.Date))
		})
	}
}

func TestParseRecordTagForms(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"bare string", "go", []string{"go"}},
		{"string list", []any{"Go", "Web"}, []string{"Go", "Web"}},
		{"scalars stringified", []any{"go", 2024, true}, []string{"go", "2024", "true"}},
		{"nested entries dropped", []any{"go", []any{"nested"}}, []string{"go"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := validMeta()
			meta["tags"] = tc.in
			post, rec := ParseRecord("posts/x", meta, "")
			require.Nil(t, rec)
			assert.Equal(t, tc.want, post.Tags)
		})
	}
}

func TestParseRecordDraftForms(t *testing.T) {
	for in, want := range map[any]bool{true: true, false: false, "true": true, "false": false, "1": true} {
		meta := validMeta()
		meta["draft"] = in
		post, rec := ParseRecord("posts/x", meta, "")
		require.Nil(t, rec, "draft=%v", in)
		assert.Equal(t, want, post.Draft, "draft=%v", in)
	}
}
