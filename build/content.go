package build

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"blog/post"
)

// collectPosts reads every markdown file under dir
func (b *Builder) collectPosts() ([]post.Post, error) {
	var posts []post.Post

	opts := post.Options{Location: b.loc, LegacySlugs: b.cfg.LegacySlugs, BaseURL: b.cfg.BaseURL}
	err := walkFiles(b.site, b.cfg.PostsDir, func(rel string, data []byte) error {
		if !strings.HasSuffix(rel, ".md") {
			return nil
		}
		p := post.Parse(rel, data, opts)
		slog.Debug("parsed post", "file", rel, "path", p.Path, "title", p.Title)
		posts = append(posts, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting posts: %w", err)
	}

	return SortPosts(posts), nil
}

// collectStatic reads the default assets and then the static directory;
// files in the static directory replace defaults of the same name.
func (b *Builder) collectStatic() (map[string][]byte, error) {
	files := make(map[string][]byte)

	add := func(rel string, data []byte) error {
		files[rel] = data
		return nil
	}
	if err := walkFiles(embeddedAssets, "assets", add); err != nil {
		return nil, fmt.Errorf("collecting default assets: %w", err)
	}
	if err := walkFiles(b.site, b.cfg.StaticDir, add); err != nil {
		return nil, fmt.Errorf("collecting static files: %w", err)
	}

	return files, nil
}

// collectPartials reads the standalone HTML fragments
func (b *Builder) collectPartials() (map[string]string, error) {
	partials := make(map[string]string)

	err := walkFiles(b.site, b.cfg.PartialsDir, func(rel string, data []byte) error {
		if path.Ext(rel) != ".html" {
			return nil
		}
		partials[strings.TrimSuffix(rel, ".html")] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting partials: %w", err)
	}

	return partials, nil
}

// walkFiles calls fn for every regular file under dir with its path
// relative to dir. A missing dir is treated as empty.
func walkFiles(fsys fs.FS, dir string, fn func(rel string, data []byte) error) error {
	if _, err := fs.Stat(fsys, dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
		return fn(rel, data)
	})
}
