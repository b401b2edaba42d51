package build

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"

	"gopkg.in/yaml.v3"

	"blog/post"
)

//go:embed templates
var embeddedTemplates embed.FS

//go:embed assets
var embeddedAssets embed.FS

// Template names
const (
	tmplHome    = "home"
	tmplPost    = "post"
	tmplArchive = "archive"
	tmplTags    = "tags"
	tmplTag     = "tag"
	tmplPage    = "page"
)

// templateSet holds the parsed layouts for one build cycle
type templateSet struct {
	pages map[string]*template.Template
	feed  *texttemplate.Template
}

// templatesFS returns the override directory when it exists, otherwise the
// embedded templates.
func templatesFS(site fs.FS, dir string) (fs.FS, error) {
	if dir != "" {
		return fs.Sub(site, dir)
	}
	return fs.Sub(embeddedTemplates, "templates")
}

// loadTemplates parses base.html together with each page template
func loadTemplates(fsys fs.FS) (*templateSet, error) {
	set := &templateSet{pages: make(map[string]*template.Template)}

	funcs := template.FuncMap{
		"tagURL": tagURL,
	}

	pageTemplates := []string{tmplHome, tmplPost, tmplArchive, tmplTags, tmplTag, tmplPage}
	for _, name := range pageTemplates {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(fsys, "base.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		set.pages[name] = tmpl
	}

	feedFuncs := texttemplate.FuncMap{
		"xml": xmlText,
	}
	feed, err := texttemplate.New("atom.xml").Funcs(feedFuncs).ParseFS(fsys, "feeds/atom.xml")
	if err != nil {
		return nil, fmt.Errorf("parsing feed template: %w", err)
	}
	set.feed = feed

	return set, nil
}

// render executes the named layout into a string
func (s *templateSet) render(name string, data layoutData) (string, error) {
	tmpl, ok := s.pages[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}
	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, "base", data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return sb.String(), nil
}

// renderFeed executes the Atom template into a string
func (s *templateSet) renderFeed(data feedData) (string, error) {
	var sb strings.Builder
	if err := s.feed.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering feed: %w", err)
	}
	return sb.String(), nil
}

// frontMatter renders the YAML block of a markdown alternate. Empty
// fields are left out and tags use flow style.
func frontMatter(title, date string, tags []string) string {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	}

	if title != "" {
		add("title", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: title})
	}
	if date != "" {
		add("date", &yaml.Node{Kind: yaml.ScalarNode, Value: date})
	}
	if len(tags) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, t := range tags {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t})
		}
		add("tags", seq)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	if len(doc.Content) > 0 {
		if data, err := yaml.Marshal(doc); err == nil {
			sb.Write(data)
		}
	}
	sb.WriteString("---\n\n")
	return sb.String()
}

// postMarkdown generates the markdown alternate of a post
func postMarkdown(p post.Post) string {
	var sb strings.Builder

	date := ""
	if p.HasDate() {
		date = p.Date.Format("2006-01-02")
	}
	sb.WriteString(frontMatter(p.Title, date, p.Tags))
	sb.WriteString(p.Source)

	return ensureNewline(sb.String())
}

// archiveMarkdown generates the markdown alternate of the archive
func archiveMarkdown(title string, years []YearGroup) string {
	var sb strings.Builder

	sb.WriteString(frontMatter(title, "", nil))

	sb.WriteString("# " + strings.ToLower(title) + "\n")
	for _, g := range years {
		sb.WriteString(fmt.Sprintf("\n## %d\n\n", g.Year))
		for _, p := range g.Posts {
			sb.WriteString(fmt.Sprintf("- %s [%s](%s)\n", p.Date.Format("2006-01-02"), p.Title, p.URL()))
		}
	}

	return ensureNewline(sb.String())
}

func ensureNewline(s string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}
