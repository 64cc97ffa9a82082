package pipeline

import (
	"sort"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	errdomain "github.com/yunus25jmi1/personal-Blog-website/internal/domain/errors"
)

// Assemble produces the final render-ready sequence. Drafts are dropped
// first, then the published slug space is checked for conflicts, then the
// survivors are sorted newest first with ties broken by ascending
// identifier. A slug conflict is fatal and yields no sequence at all.
func Assemble(records []content.Post) ([]content.Post, error) {
	published := make([]content.Post, 0, len(records))
	for _, r := range records {
		if r.Draft {
			continue
		}
		published = append(published, r)
	}

	ids := make(map[string][]string, len(published))
	for _, r := range published {
		ids[r.Slug] = append(ids[r.Slug], r.ID)
	}
	var conflicts []errdomain.SlugConflict
	reported := make(map[string]bool)
	for _, r := range published {
		if len(ids[r.Slug]) < 2 || reported[r.Slug] {
			continue
		}
		reported[r.Slug] = true
		conflicts = append(conflicts, errdomain.SlugConflict{Slug: r.Slug, IDs: ids[r.Slug]})
	}
	if len(conflicts) > 0 {
		return nil, &errdomain.DuplicateSlugError{Conflicts: conflicts}
	}

	sort.Slice(published, func(i, j int) bool {
		if !published[i].Date.Equal(published[j].Date) {
			return published[i].Date.After(published[j].Date)
		}
		return published[i].ID < published[j].ID
	})
	return published, nil
}
