package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	errdomain "github.com/yunus25jmi1/personal-Blog-website/internal/domain/errors"
)

func record(id, slug string, date time.Time, draft bool) content.Post {
	return content.Post{ID: id, Slug: slug, Date: date, Draft: draft, Title: slug}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAssembleSortsNewestFirst(t *testing.T) {
	in := []content.Post{
		record("posts/a", "a", day(2024, 1, 15), false),
		record("posts/b", "b", day(2024, 1, 20), false),
		record("posts/c", "c", day(2024, 1, 25), false),
	}
	out, err := Assemble(in)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "c", out[0].Slug)
	assert.Equal(t, "b", out[1].Slug)
	assert.Equal(t, "a", out[2].Slug)
}

func TestAssembleBreaksDateTiesByIdentifier(t *testing.T) {
	d := day(2024, 3, 1)
	in := []content.Post{
		record("posts/zeta", "zeta", d, false),
		record("posts/alpha", "alpha", d, false),
	}
	out, err := Assemble(in)
	require.NoError(t, err)
	assert.Equal(t, "posts/alpha", out[0].ID)
	assert.Equal(t, "posts/zeta", out[1].ID)
}

func TestAssembleDropsDrafts(t *testing.T) {
	in := []content.Post{
		record("posts/live", "live", day(2024, 1, 1), false),
		record("posts/wip", "wip", day(2024, 2, 1), true),
	}
	out, err := Assemble(in)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "live", out[0].Slug)
}

func TestAssembleDuplicateSlugIsFatal(t *testing.T) {
	in := []content.Post{
		record("posts/2023/hello", "hello", day(2023, 5, 1), false),
		record("posts/2024/hello", "hello", day(2024, 5, 1), false),
	}
	out, err := Assemble(in)
	require.Error(t, err)
	assert.Nil(t, out, "no output on a fatal conflict")
	assert.ErrorIs(t, err, errdomain.ErrDuplicateSlug)

	var dup *errdomain.DuplicateSlugError
	require.ErrorAs(t, err, &dup)
	require.Len(t, dup.Conflicts, 1)
	assert.Equal(t, "hello", dup.Conflicts[0].Slug)
	assert.ElementsMatch(t, []string{"posts/2023/hello", "posts/2024/hello"}, dup.Conflicts[0].IDs)
	assert.Contains(t, err.Error(), "posts/2023/hello")
	assert.Contains(t, err.Error(), "posts/2024/hello")
}

func TestAssembleReportsEveryConflict(t *testing.T) {
	in := []content.Post{
		record("posts/a1", "a", day(2024, 1, 1), false),
		record("posts/a2", "a", day(2024, 1, 2), false),
		record("posts/b1", "b", day(2024, 2, 1), false),
		record("posts/b2", "b", day(2024, 2, 2), false),
	}
	_, err := Assemble(in)
	var dup *errdomain.DuplicateSlugError
	require.ErrorAs(t, err, &dup)
	assert.Len(t, dup.Conflicts, 2)
}

func TestAssembleDraftDoesNotConflict(t *testing.T) {
	in := []content.Post{
		record("posts/live", "hello", day(2024, 1, 1), false),
		record("posts/draft", "hello", day(2024, 2, 1), true),
	}
	out, err := Assemble(in)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "posts/live", out[0].ID)
}
