package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config is the site configuration, usually loaded from site.yaml.
type Config struct {
	Site     Site     `yaml:"site"`
	Build    Build    `yaml:"build"`
	Serve    Serve    `yaml:"serve"`
	Pipeline Pipeline `yaml:"pipeline"`
}

// Site describes the published site.
type Site struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	BaseURL     string `yaml:"base_url"`
	Language    string `yaml:"language"`
}

// Build points the generator at its inputs and outputs.
type Build struct {
	ContentDir   string `yaml:"content_dir"`
	OutputDir    string `yaml:"output_dir"`
	ThemeDir     string `yaml:"theme_dir"`
	Theme        string `yaml:"theme"`
	IndexPath    string `yaml:"index_path"`
	PostsPerPage int    `yaml:"posts_per_page"`
}

// Serve configures the development server.
type Serve struct {
	Addr string `yaml:"addr"`
}

// Pipeline bounds the derivations computed for each post.
type Pipeline struct {
	WordsPerMinute int `yaml:"words_per_minute"`
	ExcerptMaxLen  int `yaml:"excerpt_max_len"`
	MaxTags        int `yaml:"max_tags"`
	MaxScanRunes   int `yaml:"max_scan_runes"`
}

// Default returns the configuration used when site.yaml is absent or omits a
// field. Unmarshalling overlays the file on top of these values.
func Default() Config {
	return Config{
		Site: Site{
			Title:    "My Blog",
			BaseURL:  "http://localhost:8080",
			Language: "en",
		},
		Build: Build{
			ContentDir:   "content",
			OutputDir:    "public",
			ThemeDir:     "themes",
			Theme:        "default",
			IndexPath:    ".blogcache/index.db",
			PostsPerPage: 10,
		},
		Serve: Serve{
			Addr: ":8080",
		},
		Pipeline: Pipeline{
			WordsPerMinute: 200,
			ExcerptMaxLen:  160,
			MaxTags:        10,
			MaxScanRunes:   100000,
		},
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.Site,
		validation.Field(&c.Site.Title, validation.Required),
		validation.Field(&c.Site.BaseURL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.Site.Language, validation.Required),
	); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := validation.ValidateStruct(&c.Build,
		validation.Field(&c.Build.ContentDir, validation.Required),
		validation.Field(&c.Build.OutputDir, validation.Required),
		validation.Field(&c.Build.ThemeDir, validation.Required),
		validation.Field(&c.Build.Theme, validation.Required),
		validation.Field(&c.Build.IndexPath, validation.Required),
		validation.Field(&c.Build.PostsPerPage, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if err := validation.ValidateStruct(&c.Serve,
		validation.Field(&c.Serve.Addr, validation.Required),
	); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if err := validation.ValidateStruct(&c.Pipeline,
		validation.Field(&c.Pipeline.WordsPerMinute, validation.Min(1)),
		validation.Field(&c.Pipeline.ExcerptMaxLen, validation.Min(1)),
		validation.Field(&c.Pipeline.MaxTags, validation.Min(1)),
		validation.Field(&c.Pipeline.MaxScanRunes, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}

func absoluteURL(v interface{}) error {
	s, _ := v.(string)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}
