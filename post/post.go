// Package post turns markdown source files into Post values.
package post

import (
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
)

// DefaultTitle is used when a post has no title in its front matter.
const DefaultTitle = "Untitled"

// Post is one published article. It is never modified after Parse.
type Post struct {
	RawPath    string
	Title      string
	Tags       []string
	Date       time.Time // zero when the filename carries no date
	Path       string
	LegacyPath string // empty unless the post is on the legacy list
	Source     string // markdown body, front matter removed
	Content    template.HTML
}

// HasDate reports whether a date was found in the filename.
func (p Post) HasDate() bool {
	return !p.Date.IsZero()
}

// URL returns the site-relative URL of the post.
func (p Post) URL() string {
	return "/" + p.Path
}

// Options controls how posts are parsed.
type Options struct {
	Location    *time.Location
	LegacySlugs []string
	BaseURL     string // links to this host open in place
}

var reDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Parse builds a Post from a filename relative to the posts directory and
// its raw content. Malformed front matter falls back to default metadata.
func Parse(rawPath string, src []byte, opts Options) Post {
	src = markdown.NormalizeNewlines(src)

	meta, body, _ := splitFrontMatter(string(src))
	fm := parseFrontMatter(meta)

	title := fm.Title
	if title == "" {
		title = DefaultTitle
	}

	path := DerivePath(rawPath)

	return Post{
		RawPath:    rawPath,
		Title:      title,
		Tags:       fm.Tags,
		Date:       ParseDate(rawPath, opts.Location),
		Path:       path,
		LegacyPath: LegacyPath(path, opts.LegacySlugs),
		Source:     body,
		Content:    template.HTML(renderMarkdown([]byte(body), siteHost(opts.BaseURL))),
	}
}

// ParseDate extracts the first YYYY-MM-DD in rawPath. It returns the zero
// time when there is none or it is not a valid calendar date.
func ParseDate(rawPath string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	m := reDate.FindString(rawPath)
	if m == "" {
		return time.Time{}
	}

	t, err := time.ParseInLocation(time.DateOnly, m, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DisplayDate formats the post date as "Jan 2, 2006", or "" when unset.
func (p Post) DisplayDate() string {
	if !p.HasDate() {
		return ""
	}
	return p.Date.Format("Jan 2, 2006")
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
