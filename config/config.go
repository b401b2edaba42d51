package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds site-wide settings read from site.yaml.
type Config struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	BaseURL     string `yaml:"base_url"` // absolute URL used in feeds
	Timezone    string `yaml:"timezone"`

	PostsDir     string `yaml:"posts_dir"`
	StaticDir    string `yaml:"static_dir"`
	PartialsDir  string `yaml:"partials_dir"`
	TemplatesDir string `yaml:"templates_dir"` // empty uses the embedded templates
	OutputDir    string `yaml:"output_dir"`
	Addr         string `yaml:"addr"`

	HomePosts   int      `yaml:"home_posts"`
	CodeStyle   string   `yaml:"code_style"`
	Comments    string   `yaml:"comments"` // markup injected into post comment sections
	LegacySlugs []string `yaml:"legacy_slugs"`
}

// Default returns a Config with every default applied.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills every unset or out-of-range field.
func (c *Config) SetDefaults() {
	if c.Title == "" {
		c.Title = "Blog"
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.PartialsDir == "" {
		c.PartialsDir = "partials"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.HomePosts <= 0 {
		c.HomePosts = 5
	}
	if c.CodeStyle == "" {
		c.CodeStyle = "monokai"
	}
}

// Load reads the YAML config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	var c Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	c.SetDefaults()

	if _, err := c.Location(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
