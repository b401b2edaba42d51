package post

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

var safeSchemes = map[string]bool{
	"":       true,
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// renderMarkdown converts a post body to HTML. Links to host stay in the
// current tab.
func renderMarkdown(content []byte, host string) []byte {
	extensions := parser.Autolink | parser.FencedCode | parser.Strikethrough
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(content)

	links := linkRenderer{host: host}
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          html.CommonFlags,
		RenderNodeHook: links.render,
	})

	return markdown.Render(doc, renderer)
}

func siteHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

type linkRenderer struct {
	host string
}

// classify reports whether dest may be linked at all and whether it leaves
// the site.
func (l linkRenderer) classify(dest string) (safe, external bool) {
	u, err := url.Parse(dest)
	if err != nil {
		return false, false
	}
	scheme := strings.ToLower(u.Scheme)
	if !safeSchemes[scheme] {
		return false, false
	}
	if scheme != "http" && scheme != "https" {
		return true, false
	}
	return true, l.host == "" || strings.ToLower(u.Host) != l.host
}

// render writes anchors itself: unsafe destinations become "#" and
// off-site links open in a new tab.
func (l linkRenderer) render(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	link, ok := node.(*ast.Link)
	if !ok {
		return ast.GoToNext, false
	}

	if !entering {
		io.WriteString(w, "</a>")
		return ast.GoToNext, true
	}

	dest := string(link.Destination)
	safe, external := l.classify(dest)
	switch {
	case !safe:
		io.WriteString(w, `<a href="#">`)
	case external:
		fmt.Fprintf(w, `<a href="%s" target="_blank" rel="noopener">`, template.HTMLEscapeString(dest))
	default:
		fmt.Fprintf(w, `<a href="%s">`, template.HTMLEscapeString(dest))
	}
	return ast.GoToNext, true
}
