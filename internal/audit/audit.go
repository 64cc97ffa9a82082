// Package audit verifies a generated site against the route plan derived
// from the index: every planned file must exist under the output directory,
// nothing unexpected should be there, and published pages should carry the
// head elements crawlers read.
package audit

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yunus25jmi1/personal-Blog-website/internal/build"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/site"
	"github.com/yunus25jmi1/personal-Blog-website/internal/index"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusMissing Status = "MISSING"
)

type Entry struct {
	Route  site.Route
	Status Status

	// Bytes is the on-disk weight of the route output, zero when missing.
	Bytes int64

	// Notes are head-element findings on present HTML routes.
	Notes []string
}

type Report struct {
	Entries []Entry

	// Orphans are files under the output directory no route accounts for.
	Orphans []string

	// TotalBytes sums every file under the output directory, assets
	// included.
	TotalBytes int64

	Posts int
	Pages int
}

func (r Report) Missing() int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == StatusMissing {
			n++
		}
	}
	return n
}

func (r Report) Clean() bool {
	return r.Missing() == 0 && len(r.Orphans) == 0
}

// Run audits the output directory against the plan recomputed from the
// index. The index must already exist; audit never builds.
func Run(cfg config.Config) (Report, error) {
	if _, err := os.Stat(cfg.Build.IndexPath); err != nil {
		return Report{}, fmt.Errorf("index not found at %s, run build first", cfg.Build.IndexPath)
	}

	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath})
	if err != nil {
		return Report{}, fmt.Errorf("open index: %w", err)
	}
	defer st.Close()

	posts, err := st.ListAll()
	if err != nil {
		return Report{}, err
	}
	pages, err := st.Pages()
	if err != nil {
		return Report{}, err
	}

	routes := build.PlanRoutes(cfg, posts, pages)

	present, err := outputFiles(cfg.Build.OutputDir)
	if err != nil {
		return Report{}, err
	}

	planned := make(map[string]bool, len(routes))
	entries := make([]Entry, 0, len(routes))
	for _, r := range routes {
		planned[r.OutPath] = true
		e := Entry{Route: r, Status: StatusMissing}
		if size, ok := present[r.OutPath]; ok {
			e.Status = StatusOK
			e.Bytes = size
			if strings.HasSuffix(r.OutPath, ".html") {
				page, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, filepath.FromSlash(r.OutPath)))
				if err != nil {
					return Report{}, err
				}
				e.Notes = checkHead(page)
			}
		}
		entries = append(entries, e)
	}

	rep := Report{
		Entries: entries,
		Posts:   len(posts),
		Pages:   len(pages),
	}
	for f, size := range present {
		rep.TotalBytes += size
		if planned[f] || strings.HasPrefix(f, "static/") {
			continue
		}
		rep.Orphans = append(rep.Orphans, f)
	}
	sort.Strings(rep.Orphans)
	return rep, nil
}

// outputFiles maps each slash-separated relative path under root to its
// size. A missing root is an empty site, not an error: every route then
// reports missing.
func outputFiles(root string) (map[string]int64, error) {
	present := make(map[string]int64)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		present[filepath.ToSlash(rel)] = info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return present, nil
}

var (
	titleTag    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaDesc    = regexp.MustCompile(`(?i)<meta\s[^>]*name="description"[^>]*>`)
	contentAttr = regexp.MustCompile(`(?i)content="([^"]*)"`)
)

// checkHead flags head elements a published page should carry. The checks
// stay at substring level, enough to catch a theme whose head partial lost
// its title or description.
func checkHead(page []byte) []string {
	head := page
	if i := bytes.Index(head, []byte("</head>")); i >= 0 {
		head = head[:i]
	}

	var notes []string
	switch m := titleTag.FindSubmatch(head); {
	case m == nil:
		notes = append(notes, "no title")
	case len(bytes.TrimSpace(m[1])) == 0:
		notes = append(notes, "empty title")
	}
	switch tag := metaDesc.Find(head); {
	case tag == nil:
		notes = append(notes, "no description")
	default:
		c := contentAttr.FindSubmatch(tag)
		if c == nil || len(bytes.TrimSpace(c[1])) == 0 {
			notes = append(notes, "empty description")
		}
	}
	return notes
}

// FormatTable renders the report for the terminal. Widths are computed with
// runewidth so East Asian slugs and tag names keep the columns aligned.
func FormatTable(rep Report) string {
	head := []string{"KIND", "PATH", "SIZE", "STATUS", "NOTES"}
	widths := make([]int, len(head))
	for i, h := range head {
		widths[i] = runewidth.StringWidth(h)
	}

	rows := make([][]string, 0, len(rep.Entries))
	for _, e := range rep.Entries {
		size := "-"
		if e.Status == StatusOK {
			size = formatSize(e.Bytes)
		}
		row := []string{
			string(e.Route.Kind),
			e.Route.OutPath,
			size,
			string(e.Status),
			strings.Join(e.Notes, ", "),
		}
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		var line strings.Builder
		for i, cell := range cells {
			if i > 0 {
				line.WriteString("  ")
			}
			if i == 2 {
				line.WriteString(runewidth.FillLeft(cell, widths[i]))
			} else {
				line.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}

	writeRow(head)
	for _, row := range rows {
		writeRow(row)
	}

	fmt.Fprintf(&b, "\n%d routes, %d present, %d missing, %d orphans, %s written (%d posts, %d pages)\n",
		len(rep.Entries), len(rep.Entries)-rep.Missing(), rep.Missing(), len(rep.Orphans),
		formatSize(rep.TotalBytes), rep.Posts, rep.Pages)

	for _, o := range rep.Orphans {
		fmt.Fprintf(&b, "orphan: %s\n", o)
	}
	return b.String()
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
