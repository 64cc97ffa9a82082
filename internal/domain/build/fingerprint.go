// Package build holds the build-state domain types shared by the one-shot
// build and the dev server.
package build

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Fingerprint captures everything a rendered site depends on. Two runs with
// equal RenderHash would produce identical output, so the dev server skips
// the rebuild.
type Fingerprint struct {
	ContentHash string
	ThemeHash   string
	ConfigHash  string
	RenderHash  string
}

func (f *Fingerprint) ComputeRenderHash() {
	h := sha256.New()
	h.Write([]byte(f.ContentHash))
	h.Write([]byte(f.ThemeHash))
	h.Write([]byte(f.ConfigHash))
	f.RenderHash = hex.EncodeToString(h.Sum(nil))
}

// HashStrings folds parts into one hex digest. Order matters; callers sort
// when the input set is unordered.
func HashStrings(parts []string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashDir digests every file under root, by relative path and content. A
// missing root hashes as empty, so an optional static dir does not fail the
// build.
func HashDir(root string) (string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return HashStrings(nil), nil
	}

	var parts []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(raw)
		parts = append(parts, filepath.ToSlash(rel)+":"+hex.EncodeToString(sum[:]))
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(parts)
	return HashStrings(parts), nil
}
