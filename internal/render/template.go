package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/content"
	"github.com/yunus25jmi1/personal-Blog-website/internal/pipeline"
)

type TemplateRenderer struct {
	tpl *template.Template
}

// NewTemplateRenderer parses every template of the named theme. Themes live
// under themeDir/<name>/templates.
func NewTemplateRenderer(themeDir, themeName string) (*TemplateRenderer, error) {
	pattern := filepath.Join(themeDir, themeName, "templates", "*tmpl")
	tpl, err := template.New("").Funcs(templateFuncs()).ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("parse theme templates: %w", err)
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(v interface{}, layout string) string {
			switch t := v.(type) {
			case time.Time:
				return t.Format(layout)
			case string:
				return t
			default:
				return ""
			}
		},
		"nowYear": func() int {
			return time.Now().Year()
		},
		"postURL": func(p content.Post) string {
			return "/posts/" + p.Slug + "/"
		},
		"tagURL": func(tag string) string {
			return "/tags/" + pipeline.Slugify(tag) + "/"
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"mul": func(a, b int) int { return a * b },
	}
}

func (r *TemplateRenderer) RenderHome(ctx context.Context, page HomePage) ([]byte, error) {
	return r.exec("home.tmpl", page)
}

func (r *TemplateRenderer) RenderPost(ctx context.Context, page PostPage) ([]byte, error) {
	return r.exec("post.tmpl", page)
}

func (r *TemplateRenderer) RenderList(ctx context.Context, page ListPage) ([]byte, error) {
	return r.exec("list.tmpl", page)
}

func (r *TemplateRenderer) RenderTags(ctx context.Context, page TagsPage) ([]byte, error) {
	return r.exec("tags.tmpl", page)
}

func (r *TemplateRenderer) RenderArchives(ctx context.Context, page ArchivesPage) ([]byte, error) {
	return r.exec("archives.tmpl", page)
}

func (r *TemplateRenderer) RenderPage(ctx context.Context, page PageView) ([]byte, error) {
	return r.exec("page.tmpl", page)
}

func (r *TemplateRenderer) RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error) {
	return r.exec("404.tmpl", page)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	if r.tpl.Lookup(name) == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RequiredTemplates is the set every theme must provide.
var RequiredTemplates = []string{
	"home.tmpl",
	"post.tmpl",
	"list.tmpl",
	"tags.tmpl",
	"archives.tmpl",
	"page.tmpl",
	"404.tmpl",
}

// CheckThemeTemplates verifies that the theme's template directory carries
// every required template.
func CheckThemeTemplates(templateDir string) error {
	for _, name := range RequiredTemplates {
		if _, err := os.Stat(filepath.Join(templateDir, name)); err != nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}
