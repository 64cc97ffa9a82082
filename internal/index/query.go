package index

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
)

var ErrNotFound = errors.New("not found")

type ListOptions struct {
	Page int
	Size int
}

func normalizePaging(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

func (s *Store) GetPost(slug string) (content.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.Post{}, ErrNotFound
	}
	var p content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bPosts)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	return p, err
}

func (s *Store) GetPage(slug string) (content.Page, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.Page{}, ErrNotFound
	}
	var pg content.Page
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bPages)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &pg)
	})
	return pg, err
}

// List returns one page of posts, newest first.
func (s *Store) List(opt ListOptions) ([]content.Post, error) {
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)

	var out []content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bIdxDate)
		postsB := tx.Bucket(bPosts)
		if idx == nil || postsB == nil {
			return nil
		}

		skip := (opt.Page - 1) * opt.Size
		cur := idx.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			raw := postsB.Get(v)
			if raw == nil {
				continue
			}
			var p content.Post
			if err := json.Unmarshal(raw, &p); err != nil {
				continue
			}
			if skip > 0 {
				skip--
				continue
			}
			out = append(out, p)
			if len(out) >= opt.Size {
				break
			}
		}
		return nil
	})
	return out, err
}

// ListAll returns every post, newest first.
func (s *Store) ListAll() ([]content.Post, error) {
	var out []content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bIdxDate)
		postsB := tx.Bucket(bPosts)
		if idx == nil || postsB == nil {
			return nil
		}
		cur := idx.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			raw := postsB.Get(v)
			if raw == nil {
				continue
			}
			var p content.Post
			if err := json.Unmarshal(raw, &p); err != nil {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (s *Store) ListByTag(tag string, opt ListOptions) ([]content.Post, error) {
	tag = strings.TrimSpace(strings.ToLower(tag))
	if tag == "" {
		return nil, nil
	}
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)

	var out []content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bIdxTag)
		postsB := tx.Bucket(bPosts)
		if parent == nil || postsB == nil {
			return nil
		}
		sb := parent.Bucket([]byte(tag))
		if sb == nil {
			return nil
		}

		skip := (opt.Page - 1) * opt.Size
		cur := sb.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			raw := postsB.Get(v)
			if raw == nil {
				continue
			}
			var p content.Post
			if err := json.Unmarshal(raw, &p); err != nil {
				continue
			}
			if skip > 0 {
				skip--
				continue
			}
			out = append(out, p)
			if len(out) >= opt.Size {
				break
			}
		}
		return nil
	})
	return out, err
}

// ListAllByTag returns every post carrying the tag, newest first.
func (s *Store) ListAllByTag(tag string) ([]content.Post, error) {
	tag = strings.TrimSpace(strings.ToLower(tag))
	if tag == "" {
		return nil, nil
	}

	var out []content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bIdxTag)
		postsB := tx.Bucket(bPosts)
		if parent == nil || postsB == nil {
			return nil
		}
		sb := parent.Bucket([]byte(tag))
		if sb == nil {
			return nil
		}

		cur := sb.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			raw := postsB.Get(v)
			if raw == nil {
				continue
			}
			var p content.Post
			if err := json.Unmarshal(raw, &p); err != nil {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

// YearGroup is one archive bucket: every post published in Year, newest
// first.
type YearGroup struct {
	Year  int
	Posts []content.Post
}

// Archives groups every post by publication year, newest year first. Order
// within a year follows the collection order.
func (s *Store) Archives() ([]YearGroup, error) {
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}

	byYear := make(map[int][]content.Post)
	for _, p := range all {
		y := p.Date.Year()
		byYear[y] = append(byYear[y], p)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := make([]YearGroup, 0, len(years))
	for _, y := range years {
		out = append(out, YearGroup{Year: y, Posts: byYear[y]})
	}
	return out, nil
}

// TagCounts maps every indexed tag to its number of posts.
func (s *Store) TagCounts() (map[string]int, error) {
	counts := make(map[string]int)
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bIdxTag)
		if parent == nil {
			return nil
		}
		return parent.ForEachBucket(func(k []byte) error {
			sb := parent.Bucket(k)
			if sb == nil {
				return nil
			}
			counts[string(k)] = sb.Stats().KeyN
			return nil
		})
	})
	return counts, err
}

// Pages returns every standalone page, sorted by slug.
func (s *Store) Pages() ([]content.Page, error) {
	var out []content.Page
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bPages)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var pg content.Page
			if err := json.Unmarshal(v, &pg); err != nil {
				return nil
			}
			out = append(out, pg)
			return nil
		})
	})
	return out, err
}
