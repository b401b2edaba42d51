// Package build assembles the page registry of the site from posts, static
// files and partials, and renders or exports it.
package build

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"blog/config"
	"blog/htmlpass"
	"blog/post"
)

// Source names
const (
	sourceStatic  = "static"
	sourcePost    = "post"
	sourceDynamic = "dynamic"
	sourcePartial = "partial"
	sourceTag     = "tag"
	sourceLegacy  = "legacy"
	sourceFeed    = "feed"
)

// Fixed paths
const (
	pathHome        = "index.html"
	pathArchive     = "archive/"
	pathArchiveMD   = "archive/index.md"
	pathTags        = "tags/"
	pathFeed        = "feed.xml"
	pathHighlighter = "highlight.css"
)

// Builder turns a site directory into a Registry. It holds configuration
// only; every call to Registry re-reads the site from disk.
type Builder struct {
	cfg  config.Config
	site fs.FS
	loc  *time.Location
	proc *htmlpass.Processor
	now  func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the clock used for the footer year and empty feeds.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// New creates a Builder reading the site from fsys.
func New(cfg config.Config, fsys fs.FS, opts ...Option) (*Builder, error) {
	cfg.SetDefaults()
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:  cfg,
		site: fsys,
		loc:  loc,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.proc = htmlpass.New(
		htmlpass.WithStyle(cfg.CodeStyle),
		htmlpass.WithStatic("comments", cfg.Comments),
		htmlpass.WithPlaceholder("more", func(s *goquery.Selection) string {
			href := template.HTMLEscapeString(s.AttrOr("data-href", ""))
			return `<a href="` + href + `">View full post</a>`
		}),
	)

	return b, nil
}

// Registry reads the site and assembles every page source.
func (b *Builder) Registry() (Registry, error) {
	tfs, err := templatesFS(b.site, b.cfg.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("opening templates: %w", err)
	}
	tmpl, err := loadTemplates(tfs)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	posts, err := b.collectPosts()
	if err != nil {
		return nil, err
	}
	static, err := b.collectStatic()
	if err != nil {
		return nil, err
	}
	partials, err := b.collectPartials()
	if err != nil {
		return nil, err
	}
	css, err := b.proc.CSS()
	if err != nil {
		return nil, err
	}

	reg, err := Merge(
		b.staticSource(static, css),
		b.postSource(tmpl, posts),
		b.dynamicSource(tmpl, posts),
		b.partialSource(tmpl, partials),
		b.tagSource(tmpl, posts),
		b.legacySource(tmpl, posts),
		b.feedSource(tmpl, posts),
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("registry assembled", "pages", len(reg), "posts", len(posts))
	return reg, nil
}

// Render produces the final body of a page, running HTML pages through
// the post-processor.
func (b *Builder) Render(page Page, ctx Context) (string, error) {
	body, err := page.Render(ctx)
	if err != nil {
		return "", err
	}
	if !page.IsHTML() {
		return body, nil
	}
	return b.proc.Process(body)
}

func (b *Builder) layout(ctx Context, title string) layoutData {
	return layoutData{
		Site:  b.cfg,
		Title: title,
		Year:  b.now().In(b.loc).Year(),
		Asset: ctx.Asset,
	}
}

func (b *Builder) staticSource(files map[string][]byte, css string) Source {
	pages := make(map[string]Page, len(files)+1)
	for rel, data := range files {
		pages[rel] = Page{ContentType: contentTypeFor(rel), Render: Constant(string(data))}
	}
	if _, ok := pages[pathHighlighter]; !ok {
		pages[pathHighlighter] = Page{ContentType: contentTypeFor(pathHighlighter), Render: Constant(css)}
	}
	return Source{Name: sourceStatic, Pages: pages}
}

func (b *Builder) postSource(tmpl *templateSet, posts []post.Post) Source {
	pages := make(map[string]Page, 2*len(posts))
	for _, p := range posts {
		pages[p.Path] = b.postPage(tmpl, p)
		pages[p.Path+".md"] = Page{ContentType: contentTypeMarkdown, Render: Constant(postMarkdown(p))}
	}
	return Source{Name: sourcePost, Pages: pages}
}

func (b *Builder) legacySource(tmpl *templateSet, posts []post.Post) Source {
	pages := make(map[string]Page)
	for _, p := range posts {
		if p.LegacyPath != "" {
			pages[p.LegacyPath] = b.postPage(tmpl, p)
		}
	}
	return Source{Name: sourceLegacy, Pages: pages}
}

func (b *Builder) postPage(tmpl *templateSet, p post.Post) Page {
	return Page{
		ContentType: contentTypeHTML,
		Render: func(ctx Context) (string, error) {
			data := b.layout(ctx, p.Title)
			data.Post = p
			return tmpl.render(tmplPost, data)
		},
	}
}

func (b *Builder) dynamicSource(tmpl *templateSet, posts []post.Post) Source {
	years := GroupByYear(posts)

	pages := map[string]Page{
		pathHome:      b.homePage(tmpl, posts),
		pathArchive:   b.archivePage(tmpl, years),
		pathArchiveMD: {ContentType: contentTypeMarkdown, Render: Constant(archiveMarkdown("Archive", years))},
	}
	return Source{Name: sourceDynamic, Pages: pages}
}

// partialSource wraps each standalone fragment at name/
func (b *Builder) partialSource(tmpl *templateSet, partials map[string]string) Source {
	pages := make(map[string]Page, len(partials))
	for name, content := range partials {
		pages[name+"/"] = b.partialPage(tmpl, name, content)
	}
	return Source{Name: sourcePartial, Pages: pages}
}

func (b *Builder) homePage(tmpl *templateSet, posts []post.Post) Page {
	recent := Dated(posts)
	more := false
	if len(recent) > b.cfg.HomePosts {
		recent, more = recent[:b.cfg.HomePosts], true
	}

	return Page{
		ContentType: contentTypeHTML,
		Render: func(ctx Context) (string, error) {
			data := b.layout(ctx, "")
			data.Posts = recent
			data.More = more
			return tmpl.render(tmplHome, data)
		},
	}
}

func (b *Builder) archivePage(tmpl *templateSet, years []YearGroup) Page {
	return Page{
		ContentType: contentTypeHTML,
		Render: func(ctx Context) (string, error) {
			data := b.layout(ctx, "Archive")
			data.Years = years
			return tmpl.render(tmplArchive, data)
		},
	}
}

func (b *Builder) partialPage(tmpl *templateSet, name, content string) Page {
	title := strings.ReplaceAll(pathBase(name), "-", " ")
	return Page{
		ContentType: contentTypeHTML,
		Render: func(ctx Context) (string, error) {
			data := b.layout(ctx, title)
			data.Content = template.HTML(content)
			return tmpl.render(tmplPage, data)
		},
	}
}

func (b *Builder) tagSource(tmpl *templateSet, posts []post.Post) Source {
	tags, byTag := GroupByTag(posts)

	counts := make([]tagCount, 0, len(tags))
	for _, t := range tags {
		counts = append(counts, tagCount{Name: t, Count: len(byTag[t])})
	}

	pages := map[string]Page{
		pathTags: {
			ContentType: contentTypeHTML,
			Render: func(ctx Context) (string, error) {
				data := b.layout(ctx, "Tags")
				data.Tags = counts
				return tmpl.render(tmplTags, data)
			},
		},
	}
	for _, t := range tags {
		pages[tagPath(t)] = b.tagPage(tmpl, t, byTag[t])
	}
	return Source{Name: sourceTag, Pages: pages}
}

func (b *Builder) tagPage(tmpl *templateSet, tag string, posts []post.Post) Page {
	return Page{
		ContentType: contentTypeHTML,
		Render: func(ctx Context) (string, error) {
			data := b.layout(ctx, "Tagged "+tag)
			data.Posts = posts
			data.Feed = tagFeedURL(tag)
			return tmpl.render(tmplTag, data)
		},
	}
}

func pathBase(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
