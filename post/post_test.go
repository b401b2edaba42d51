package post

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	src := "---\ntitle : Foo\ntags : [a, b]\n---\nHello *world*\n"

	p := Parse("2020-01-02-foo.md", []byte(src), Options{})

	require.Equal(t, "Foo", p.Title)
	require.Equal(t, []string{"a", "b"}, p.Tags)
	require.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), p.Date)
	require.Equal(t, "blog/2020/01/02/foo", p.Path)
	require.Empty(t, p.LegacyPath)
	require.Equal(t, "Hello *world*\n", p.Source)
	require.Contains(t, string(p.Content), "<em>world</em>")
	require.NotContains(t, string(p.Content), "title")
}

func TestParse_NoFrontMatter_UsesDefaults(t *testing.T) {
	src := "# Heading\n\nbody\n"

	p := Parse("2021-03-04-plain.md", []byte(src), Options{})

	require.Equal(t, DefaultTitle, p.Title)
	require.Empty(t, p.Tags)
	require.Equal(t, src, p.Source)
}

func TestParse_UnterminatedFrontMatter_DegradesToDefaults(t *testing.T) {
	src := "---\ntitle: Broken\nno closing delimiter\n"

	p := Parse("2021-03-04-broken.md", []byte(src), Options{})

	require.Equal(t, DefaultTitle, p.Title)
	require.Empty(t, p.Tags)
	require.Equal(t, src, p.Source)
}

func TestParse_InvalidYAML_FallsBackToFirstMatchingLine(t *testing.T) {
	src := "---\ntitle : Go: the good parts\ntitle : Second\ntags : [go,  web , ]\ntags : [ignored]\n---\nbody\n"

	p := Parse("2019-06-01-go.md", []byte(src), Options{})

	require.Equal(t, "Go: the good parts", p.Title)
	require.Equal(t, []string{"go", "web"}, p.Tags)
}

func TestParse_TitleLineIsTakenLiterally(t *testing.T) {
	src := "---\ntitle : Why #golang rocks\ntags : [a, b]\n---\nbody\n"

	p := Parse("2020-01-02-foo.md", []byte(src), Options{})

	require.Equal(t, "Why #golang rocks", p.Title)
	require.Equal(t, []string{"a", "b"}, p.Tags)
}

func TestParse_FrontMatterValueForms(t *testing.T) {
	tests := []struct {
		name  string
		meta  string
		title string
		tags  []string
	}{
		{"quoted title", "title: \"Colons: fine\"", "Colons: fine", nil},
		{"block tag list", "title: T\ntags:\n  - go\n  - web", "T", []string{"go", "web"}},
		{"hash in tag", "title: T\ntags: [c#, go]", "T", []string{"c#", "go"}},
		{"path-like tags dropped", "title: T\ntags: [., .., a/../b, ci/cd]", "T", []string{"ci/cd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse("2020-01-02-foo.md", []byte("---\n"+tt.meta+"\n---\nbody\n"), Options{})
			require.Equal(t, tt.title, p.Title)
			require.Equal(t, tt.tags, p.Tags)
		})
	}
}

func TestParse_CRLF(t *testing.T) {
	src := "---\r\ntitle: Windows\r\n---\r\nbody\r\n"

	p := Parse("2019-06-01-crlf.md", []byte(src), Options{})

	require.Equal(t, "Windows", p.Title)
	require.Equal(t, "body\n", p.Source)
}

func TestParse_MarkdownOptions(t *testing.T) {
	src := "~~gone~~ see https://example.com\n\n```go\nfunc main() {}\n```\n"

	p := Parse("2019-06-01-md.md", []byte(src), Options{})
	html := string(p.Content)

	require.Contains(t, html, "<del>gone</del>")
	require.Contains(t, html, `<a href="https://example.com" target="_blank" rel="noopener">`)
	require.Contains(t, html, `<code class="language-go">`)
}

func TestParse_UnsafeLinkIsNeutralised(t *testing.T) {
	p := Parse("x.md", []byte("[click](javascript:alert(1))\n"), Options{})

	require.Contains(t, string(p.Content), `<a href="#">click</a>`)
}

func TestParse_LegacySlug(t *testing.T) {
	p := Parse("2015-05-05-old-post.md", []byte("body"), Options{LegacySlugs: []string{"old-post"}})

	require.Equal(t, "blog/2015/05/05/old-post", p.Path)
	require.Equal(t, "code/2015/05/05/old-post/", p.LegacyPath)
}

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2020-01-02-foo.md", time.Date(2020, 1, 2, 0, 0, 0, 0, loc)},
		{"notes/2020-12-31.md", time.Date(2020, 12, 31, 0, 0, 0, 0, loc)},
		{"about.md", time.Time{}},
		{"2020-13-45-bad.md", time.Time{}},
	}
	for _, tt := range tests {
		got := ParseDate(tt.raw, loc)
		require.True(t, tt.want.Equal(got), "ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
	}
}

func TestDisplayDate(t *testing.T) {
	p := Post{Date: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, "May 1, 2020", p.DisplayDate())
	require.Empty(t, Post{}.DisplayDate())
}

func TestSplitFrontMatter_NoOpeningDelimiter(t *testing.T) {
	src := "title: x\n---\nbody\n"

	meta, body, ok := splitFrontMatter(src)
	require.False(t, ok)
	require.Empty(t, meta)
	require.Equal(t, src, body)
}

func TestSplitFrontMatter_LeadingBlankLines(t *testing.T) {
	meta, body, ok := splitFrontMatter("\n\n---\ntitle: x\n---\nbody")
	require.True(t, ok)
	require.Equal(t, "title: x", meta)
	require.True(t, strings.HasPrefix(body, "body"))
}

func TestParse_LinksToOwnSiteStayInPlace(t *testing.T) {
	src := "[home](https://Example.com/about) [other](https://other.org/) [rel](/archive/) [mail](mailto:a@b.c)\n"

	p := Parse("2020-01-02-links.md", []byte(src), Options{BaseURL: "https://example.com"})
	html := string(p.Content)

	require.Contains(t, html, `<a href="https://Example.com/about">home</a>`)
	require.Contains(t, html, `<a href="https://other.org/" target="_blank" rel="noopener">other</a>`)
	require.Contains(t, html, `<a href="/archive/">rel</a>`)
	require.Contains(t, html, `<a href="mailto:a@b.c">mail</a>`)
}
