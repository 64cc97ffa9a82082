package ingest

import (
	"io/fs"
	"path/filepath"
	"strings"
)

type SourceFile struct {
	Path string
}

// DiscoverSource walks root and returns every Markdown file under it.
// Hidden files and directories (dot prefixed) are skipped, so editor state
// like .obsidian or .DS_Store never reaches the parser.
func DiscoverSource(root string) ([]SourceFile, error) {
	var out []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".md", ".markdown":
			out = append(out, SourceFile{Path: path})
		}
		return nil
	})
	return out, err
}

// DocumentID derives the stable identifier for a source file: its path
// relative to root, slash separated, extension removed. One file, one ID.
func DocumentID(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, filepath.Ext(rel)), nil
}
