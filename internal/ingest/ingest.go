// Package ingest loads raw documents from disk: discovery, frontmatter
// splitting and content hashing. It does no schema validation; documents go
// to the pipeline as untyped mappings.
package ingest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/adrg/frontmatter"
)

// Document is one loaded source file, not yet validated.
type Document struct {
	ID   string
	Path string
	Hash string
	Meta map[string]any
	Body string
}

type Warning struct {
	Path string
	Msg  string
}

type result struct {
	Doc   Document
	Warns []Warning
	Skip  bool
	Err   error
}

// Ingest loads every Markdown file under sourceDir concurrently. Files whose
// frontmatter cannot be split are skipped with a warning; I/O failures abort
// the whole load.
func Ingest(sourceDir string) ([]Document, []Warning, error) {
	files, err := DiscoverSource(sourceDir)
	if err != nil {
		return nil, nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan SourceFile)
	results := make(chan result)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				results <- loadFile(sourceDir, sf)
			}
		}()
	}

	go func() {
		for _, f := range files {
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var out []Document
	var warns []Warning
	for r := range results {
		if r.Err != nil {
			return nil, nil, r.Err
		}
		if len(r.Warns) > 0 {
			warns = append(warns, r.Warns...)
		}
		if r.Skip {
			continue
		}
		out = append(out, r.Doc)
	}

	// Workers finish in arbitrary order; the collection is deterministic.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, warns, nil
}

func loadFile(root string, sf SourceFile) result {
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return result{Err: err}
	}
	id, err := DocumentID(root, sf.Path)
	if err != nil {
		return result{Err: err}
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return result{
			Warns: []Warning{{Path: sf.Path, Msg: "failed to parse front matter: " + err.Error()}},
			Skip:  true,
		}
	}

	return result{Doc: Document{
		ID:   id,
		Path: sf.Path,
		Hash: HashBytes(raw),
		Meta: meta,
		Body: string(body),
	}}
}

// HashBytes returns the hex sha256 of b, used to detect content changes
// between builds.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
