// Package serve runs the development server: content is rendered on request
// straight from the index, and edits trigger a rebuild plus a live reload
// event for connected browsers.
package serve

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yunus25jmi1/personal-Blog-website/internal/build"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	"github.com/yunus25jmi1/personal-Blog-website/internal/feed"
	"github.com/yunus25jmi1/personal-Blog-website/internal/index"
	"github.com/yunus25jmi1/personal-Blog-website/internal/ingest"
	"github.com/yunus25jmi1/personal-Blog-website/internal/logger"
	"github.com/yunus25jmi1/personal-Blog-website/internal/pipeline"
	"github.com/yunus25jmi1/personal-Blog-website/internal/render"
)

const feedItemLimit = 20

type Server struct {
	cfg config.Config
	log *logger.Logger

	idx *index.Store
	md  *render.MarkdownRenderer

	mu         sync.RWMutex
	tpl        render.Renderer
	tagBySlug  map[string]string
	renderHash string

	sseMu     sync.Mutex
	sseConns  map[chan string]struct{}
	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

func New(cfg config.Config, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}

	tplDir := filepath.Join(cfg.Build.ThemeDir, cfg.Build.Theme, "templates")
	if err := render.CheckThemeTemplates(tplDir); err != nil {
		return nil, fmt.Errorf("serve: theme %s: %w", cfg.Build.Theme, err)
	}
	tpl, err := render.NewTemplateRenderer(cfg.Build.ThemeDir, cfg.Build.Theme)
	if err != nil {
		return nil, fmt.Errorf("serve: load theme %s: %w", cfg.Build.Theme, err)
	}
	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("serve: open index: %w", err)
	}

	return &Server{
		cfg:       cfg,
		log:       log,
		idx:       st,
		md:        render.NewMarkdownRenderer(),
		tpl:       tpl,
		tagBySlug: make(map[string]string),
		sseConns:  make(map[chan string]struct{}),
	}, nil
}

func (s *Server) Close() error {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.idx == nil {
		return nil
	}
	return s.idx.Close()
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.rebuild(); err != nil {
		return err
	}
	if err := s.startWatch(ctx); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/posts/", s.handlePost)
	mux.HandleFunc("/tags/", s.handleTags)
	mux.HandleFunc("/archives/", s.handleArchives)
	mux.HandleFunc("/rss.xml", s.handleRSS)
	mux.HandleFunc("/atom.xml", s.handleAtom)
	mux.HandleFunc("/dev/events", s.handleSSE)

	staticDir := filepath.Join(s.cfg.Build.ThemeDir, s.cfg.Build.Theme, "static")
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	s.log.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}

// rebuild re-ingests the content tree and swaps in the new state. When the
// fingerprint matches the previous run nothing changes and no reload event
// is sent.
func (s *Server) rebuild() error {
	docs, warns, err := ingest.Ingest(s.cfg.Build.ContentDir)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	sources, pageDocs, splitWarns := build.SplitDocs(docs)
	warns = append(warns, splitWarns...)
	for _, w := range warns {
		s.log.Warn("ingest warning", "path", w.Path, "msg", w.Msg)
	}

	fp, err := build.ComputeFingerprint(s.cfg, docs)
	if err != nil {
		return err
	}
	s.mu.RLock()
	unchanged := fp.RenderHash != "" && fp.RenderHash == s.renderHash
	s.mu.RUnlock()
	if unchanged {
		s.log.Debug("content unchanged, rebuild skipped")
		return nil
	}

	res, err := pipeline.Run(sources, s.cfg.Pipeline)
	if err != nil {
		return err
	}
	for _, rej := range res.Rejected {
		s.log.Warn("document rejected", "id", rej.ID, "issues", len(rej.Issues))
	}

	pages, pageWarns := build.AssemblePages(pageDocs)
	for _, w := range pageWarns {
		s.log.Warn("page skipped", "path", w.Path, "msg", w.Msg)
	}

	if err := s.idx.Rebuild(res.Posts, pages); err != nil {
		return fmt.Errorf("index rebuild: %w", err)
	}

	tpl, err := render.NewTemplateRenderer(s.cfg.Build.ThemeDir, s.cfg.Build.Theme)
	if err != nil {
		return fmt.Errorf("reload theme: %w", err)
	}

	counts, err := s.idx.TagCounts()
	if err != nil {
		return err
	}
	tagBySlug := make(map[string]string, len(counts))
	for name := range counts {
		sl := pipeline.Slugify(name)
		if sl == "" {
			continue
		}
		if prev, ok := tagBySlug[sl]; !ok || name < prev {
			tagBySlug[sl] = name
		}
	}

	s.mu.Lock()
	s.tpl = tpl
	s.tagBySlug = tagBySlug
	s.renderHash = fp.RenderHash
	s.mu.Unlock()

	s.log.Info("rebuilt", "posts", len(res.Posts), "pages", len(pages))
	s.broadcastSSE("reload")
	return nil
}

func (s *Server) renderer() render.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tpl
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		s.watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return
		}
		if err = s.watchDirs(); err != nil {
			return
		}
		go s.watchLoop(ctx)
	})
	return err
}

// watchDirs registers every directory under the content tree and the active
// theme. Re-run after rebuilds so newly created directories are picked up.
func (s *Server) watchDirs() error {
	roots := []string{
		s.cfg.Build.ContentDir,
		filepath.Join(s.cfg.Build.ThemeDir, s.cfg.Build.Theme),
	}
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return s.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// watchQuiet is how long the watcher waits after the last event before
// rebuilding. Editors tend to write a file several times in a row, and a
// save can touch both the file and its directory.
const watchQuiet = 200 * time.Millisecond

const watchOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// rearm drains a possibly fired timer and restarts the quiet period.
func rearm(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(watchQuiet)
}

func (s *Server) watchLoop(ctx context.Context) {
	s.log.Info("watching for file changes")

	quiet := time.NewTimer(watchQuiet)
	if !quiet.Stop() {
		<-quiet.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&watchOps == 0 {
				continue
			}
			rearm(quiet)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error", "err", err)
		case <-quiet.C:
			if err := s.rebuild(); err != nil {
				s.log.Error("rebuild failed", "err", err)
				continue
			}
			if err := s.watchDirs(); err != nil {
				s.log.Warn("watch refresh failed", "err", err)
			}
		}
	}
}

func (s *Server) subscribe() chan string {
	ch := make(chan string, 8)
	s.sseMu.Lock()
	s.sseConns[ch] = struct{}{}
	s.sseMu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan string) {
	s.sseMu.Lock()
	delete(s.sseConns, ch)
	close(ch)
	s.sseMu.Unlock()
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	fmt.Fprint(w, "data: hello\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-ch:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// broadcastSSE never blocks on a slow client; a full channel just means
// that browser misses one reload event.
func (s *Server) broadcastSSE(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	for ch := range s.sseConns {
		select {
		case ch <- event:
		default:
		}
	}
}

// handleRoot serves the home page, its numbered pages, and standalone pages
// by slug. Everything else at the root is a 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		s.renderHome(w, r, 1)
		return
	}

	segs := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(segs) == 2 && segs[0] == "page":
		n, err := strconv.Atoi(segs[1])
		if err != nil || n < 1 {
			s.handleNotFound(w, r)
			return
		}
		s.renderHome(w, r, n)
	case len(segs) == 1:
		s.renderStandalonePage(w, r, segs[0])
	default:
		s.handleNotFound(w, r)
	}
}

func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, page int) {
	all, err := s.idx.ListAll()
	if err != nil {
		http.Error(w, "home query error", http.StatusInternalServerError)
		return
	}

	size := s.cfg.Build.PostsPerPage
	total := len(all)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		s.handleNotFound(w, r)
		return
	}

	lo := (page - 1) * size
	hi := min(lo+size, total)

	view := render.HomePage{
		Site:      s.cfg.Site,
		Posts:     all[lo:hi],
		Page:      page,
		PageSize:  size,
		Total:     total,
		Generated: time.Now(),
		Title:     s.cfg.Site.Title,
	}
	htmlBytes, err := s.renderer().RenderHome(r.Context(), view)
	if err != nil {
		s.log.Error("render home failed", "err", err)
		http.Error(w, "render home error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) renderStandalonePage(w http.ResponseWriter, r *http.Request, slug string) {
	pg, err := s.idx.GetPage(slug)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	mdResult, err := s.md.Render([]byte(pg.Body))
	if err != nil {
		s.log.Error("markdown render failed", "slug", slug, "err", err)
		http.Error(w, "markdown render error", http.StatusInternalServerError)
		return
	}

	view := render.PageView{
		Site:  s.cfg.Site,
		Page:  pg,
		HTML:  template.HTML(mdResult.HTML),
		Title: pg.Title,
	}
	htmlBytes, err := s.renderer().RenderPage(r.Context(), view)
	if err != nil {
		s.log.Error("render page failed", "slug", slug, "err", err)
		http.Error(w, "render page error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/posts/"), "/")
	if slug == "" || strings.Contains(slug, "/") {
		s.handleNotFound(w, r)
		return
	}

	p, err := s.idx.GetPost(slug)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	mdResult, err := s.md.Render([]byte(p.Body))
	if err != nil {
		s.log.Error("markdown render failed", "slug", slug, "err", err)
		http.Error(w, "markdown render error", http.StatusInternalServerError)
		return
	}

	pp := render.PostPage{
		Site:  s.cfg.Site,
		Post:  p,
		HTML:  template.HTML(mdResult.HTML),
		TOC:   mdResult.Headings,
		Title: p.Title,
	}
	htmlBytes, err := s.renderer().RenderPost(r.Context(), pp)
	if err != nil {
		s.log.Error("render post failed", "slug", slug, "err", err)
		http.Error(w, "render post error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

// handleTags serves the overview at /tags/ and one listing per tag slug.
func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/tags/"), "/")
	if rest == "" {
		s.renderTagsOverview(w, r)
		return
	}
	if strings.Contains(rest, "/") {
		s.handleNotFound(w, r)
		return
	}

	s.mu.RLock()
	name, ok := s.tagBySlug[rest]
	s.mu.RUnlock()
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	items, err := s.idx.ListAllByTag(name)
	if err != nil || len(items) == 0 {
		s.handleNotFound(w, r)
		return
	}

	lp := render.ListPage{
		Site:      s.cfg.Site,
		Title:     fmt.Sprintf("Tag: %s", name),
		Tag:       name,
		Posts:     items,
		Page:      1,
		PageSize:  len(items),
		Total:     len(items),
		Generated: time.Now(),
	}
	htmlBytes, err := s.renderer().RenderList(r.Context(), lp)
	if err != nil {
		s.log.Error("render tag failed", "tag", name, "err", err)
		http.Error(w, "render tag error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) renderTagsOverview(w http.ResponseWriter, r *http.Request) {
	counts, err := s.idx.TagCounts()
	if err != nil {
		http.Error(w, "tags query error", http.StatusInternalServerError)
		return
	}

	stats := render.TagStats(counts)
	page := render.TagsPage{
		Site:  s.cfg.Site,
		Tags:  stats,
		Total: len(stats),
		Title: "Tags",
	}
	htmlBytes, err := s.renderer().RenderTags(r.Context(), page)
	if err != nil {
		s.log.Error("render tags overview failed", "err", err)
		http.Error(w, "render tags overview error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) handleArchives(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/archives" && r.URL.Path != "/archives/" {
		s.handleNotFound(w, r)
		return
	}

	byYear, err := s.idx.Archives()
	if err != nil {
		http.Error(w, "archives query error", http.StatusInternalServerError)
		return
	}

	total := 0
	groups := make([]render.ArchivesGroup, 0, len(byYear))
	for _, g := range byYear {
		total += len(g.Posts)
		groups = append(groups, render.ArchivesGroup{
			Year:  g.Year,
			Posts: g.Posts,
			Count: len(g.Posts),
		})
	}

	page := render.ArchivesPage{
		Site:   s.cfg.Site,
		Groups: groups,
		Total:  total,
		Title:  "Archives",
	}
	htmlBytes, err := s.renderer().RenderArchives(r.Context(), page)
	if err != nil {
		s.log.Error("render archives failed", "err", err)
		http.Error(w, "render archives error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, "application/rss+xml; charset=utf-8", feed.RSS)
}

func (s *Server) handleAtom(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, "application/atom+xml; charset=utf-8", feed.Atom)
}

func (s *Server) serveFeed(
	w http.ResponseWriter,
	contentType string,
	produce func(config.Site, []content.Post, time.Time) (string, error),
) {
	all, err := s.idx.ListAll()
	if err != nil {
		http.Error(w, "feed query error", http.StatusInternalServerError)
		return
	}
	limit := min(feedItemLimit, len(all))

	out, err := produce(s.cfg.Site, all[:limit], time.Now())
	if err != nil {
		s.log.Error("feed render failed", "err", err)
		http.Error(w, "feed render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write([]byte(out))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	page := render.NotFoundPage{
		Site:  s.cfg.Site,
		Path:  r.URL.Path,
		Title: "Not Found",
	}
	htmlBytes, err := s.renderer().RenderNotFound(r.Context(), page)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(htmlBytes)
}

func writeHTML(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}
