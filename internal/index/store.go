// Package index keeps the assembled collection in a bbolt file so the dev
// server and repeated builds can query posts without re-reading every source
// document. It is a cache: Rebuild replaces everything, and the pipeline
// remains the source of truth.
package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

type Store struct {
	db *bolt.DB
}

type OpenOptions struct {
	Path string // e.g. ".blogcache/index.db"
}

// openTimeout bounds the wait for bbolt's file lock when another process
// (a build racing the dev server) still holds the database.
const openTimeout = time.Second

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("index: missing path")
	}
	dir := filepath.Dir(opt.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("index: create %s: %w", dir, err)
	}
	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("index: open %s: %w", opt.Path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
