package build

import (
	"fmt"
	"mime"
	"path"
	"slices"
	"strings"
)

const (
	contentTypeHTML     = "text/html; charset=utf-8"
	contentTypeAtom     = "application/atom+xml; charset=utf-8"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
)

// Context carries per-request state into a RenderFunc. It is only used to
// resolve asset URLs; page content does not otherwise depend on it.
type Context struct {
	AssetURL func(path string) string
}

// Asset resolves a site-relative asset path to the URL pages should link.
func (c Context) Asset(p string) string {
	if c.AssetURL == nil {
		return p
	}
	return c.AssetURL(p)
}

// RenderFunc produces the body of one page.
type RenderFunc func(ctx Context) (string, error)

// Page is one entry in the registry.
type Page struct {
	ContentType string
	Render      RenderFunc
}

// IsHTML reports whether the page goes through the HTML post-processor.
func (p Page) IsHTML() bool {
	return strings.HasPrefix(p.ContentType, "text/html")
}

// Constant returns a RenderFunc that always yields s.
func Constant(s string) RenderFunc {
	return func(Context) (string, error) {
		return s, nil
	}
}

// Source is a named set of pages contributed to the registry.
type Source struct {
	Name  string
	Pages map[string]Page
}

// Registry maps a page path (no leading slash) to the page served there.
type Registry map[string]Page

// Collision records a path claimed by two sources.
type Collision struct {
	Path   string
	First  string
	Second string
}

// DuplicatePathError is returned by Merge when sources overlap.
type DuplicatePathError struct {
	Collisions []Collision
}

func (e *DuplicatePathError) Error() string {
	parts := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		parts = append(parts, fmt.Sprintf("%q (%s, %s)", c.Path, c.First, c.Second))
	}
	return "duplicate page paths: " + strings.Join(parts, ", ")
}

// Merge unions the sources into one Registry. A path present in more than
// one source is an error; every collision is reported, sorted by path.
func Merge(sources ...Source) (Registry, error) {
	reg := make(Registry)
	owner := make(map[string]string)
	var collisions []Collision

	for _, src := range sources {
		for p, page := range src.Pages {
			if first, ok := owner[p]; ok {
				collisions = append(collisions, Collision{Path: p, First: first, Second: src.Name})
				continue
			}
			owner[p] = src.Name
			reg[p] = page
		}
	}

	if len(collisions) > 0 {
		slices.SortFunc(collisions, func(a, b Collision) int {
			return strings.Compare(a.Path, b.Path)
		})
		return nil, &DuplicatePathError{Collisions: collisions}
	}
	return reg, nil
}

// Lookup finds the page registered at exactly p.
func (r Registry) Lookup(p string) (Page, bool) {
	page, ok := r[p]
	return page, ok
}

// Resolve maps a request path to a registered page. The leading slash is
// dropped, then the exact key is tried followed by key + "index.html".
func (r Registry) Resolve(urlPath string) (string, Page, bool) {
	key := strings.TrimPrefix(urlPath, "/")
	if page, ok := r[key]; ok {
		return key, page, true
	}
	if key == "" || strings.HasSuffix(key, "/") {
		if page, ok := r[key+"index.html"]; ok {
			return key + "index.html", page, true
		}
	}
	return "", Page{}, false
}

// Paths returns every registered path in sorted order.
func (r Registry) Paths() []string {
	paths := make([]string, 0, len(r))
	for p := range r {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// contentTypeFor guesses a content type from the path extension. Paths
// without an extension are pages.
func contentTypeFor(p string) string {
	switch ext := path.Ext(p); ext {
	case "", ".html", ".htm":
		return contentTypeHTML
	case ".md":
		return contentTypeMarkdown
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}
