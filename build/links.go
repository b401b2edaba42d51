package build

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// BrokenLink is a site-relative link that no registered page answers.
type BrokenLink struct {
	Page string
	Link string
}

// CheckLinks renders every HTML page of reg and reports links starting
// with "/" that do not resolve in reg.
func (b *Builder) CheckLinks(reg Registry, ctx Context) ([]BrokenLink, error) {
	var broken []BrokenLink

	for _, p := range reg.Paths() {
		page := reg[p]
		if !page.IsHTML() {
			continue
		}

		body, err := b.Render(page, ctx)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", p, err)
		}

		for _, link := range ExtractLinks(strings.NewReader(body)) {
			if !resolves(reg, link) {
				broken = append(broken, BrokenLink{Page: p, Link: link})
			}
		}
	}

	return broken, nil
}

// ExtractLinks returns every href and src value that starts with a single
// "/" in document order.
func ExtractLinks(r io.Reader) []string {
	var links []string

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			_, hasAttr := z.TagName()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				k, v := string(key), string(val)
				if (k == "href" || k == "src") && strings.HasPrefix(v, "/") && !strings.HasPrefix(v, "//") {
					links = append(links, v)
				}
			}
		}
	}
}

func resolves(reg Registry, link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	_, _, ok := reg.Resolve(u.Path)
	return ok
}
