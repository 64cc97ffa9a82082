package index

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
)

// Rebuild replaces the whole index with the given collection in a single
// transaction. Posts must already be assembled: published only, slugs
// unique.
func (s *Store) Rebuild(posts []content.Post, pages []content.Page) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bPosts)
		_ = tx.DeleteBucket(bPages)
		_ = tx.DeleteBucket(bIdxDate)
		_ = tx.DeleteBucket(bIdxTag)

		postsB, _ := tx.CreateBucket(bPosts)
		pagesB, _ := tx.CreateBucket(bPages)
		idxDateB, _ := tx.CreateBucket(bIdxDate)
		idxTagB, _ := tx.CreateBucket(bIdxTag)

		for _, p := range posts {
			pb, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := postsB.Put([]byte(p.Slug), pb); err != nil {
				return err
			}

			key := makeDateKey(p.Date.UnixNano(), p.ID)
			if err := idxDateB.Put(key, []byte(p.Slug)); err != nil {
				return err
			}

			for _, tag := range p.Tags {
				if tag == "" {
					continue
				}
				sb, err := idxTagB.CreateBucketIfNotExists([]byte(tag))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte(p.Slug)); err != nil {
					return err
				}
			}
		}

		for _, pg := range pages {
			gb, err := json.Marshal(pg)
			if err != nil {
				return err
			}
			if err := pagesB.Put([]byte(pg.Slug), gb); err != nil {
				return err
			}
		}
		return nil
	})
}
