// Package htmlpass rewrites rendered HTML before it leaves the site:
// code blocks are syntax highlighted and placeholder sections are
// substituted.
package htmlpass

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CodeClass is the class every code block carries after processing.
const CodeClass = "chroma"

// PlaceholderAttr marks an element whose content is substituted.
const PlaceholderAttr = "data-placeholder"

// Replacement returns the markup for one placeholder element. Returning
// "" removes the element.
type Replacement func(s *goquery.Selection) string

// Processor applies the highlighting and substitution passes.
type Processor struct {
	style        string
	formatter    *chromahtml.Formatter
	placeholders map[string]Replacement
}

// Option configures a Processor.
type Option func(*Processor)

// WithStyle selects the chroma style used for the stylesheet.
func WithStyle(name string) Option {
	return func(p *Processor) {
		p.style = name
	}
}

// WithPlaceholder registers the replacement for data-placeholder=name.
func WithPlaceholder(name string, r Replacement) Option {
	return func(p *Processor) {
		p.placeholders[name] = r
	}
}

// WithStatic registers a constant replacement for data-placeholder=name.
func WithStatic(name, markup string) Option {
	return WithPlaceholder(name, func(*goquery.Selection) string { return markup })
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		style:        "monokai",
		placeholders: make(map[string]Replacement),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process transforms a complete HTML document.
func (p *Processor) Process(doc string) (string, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}

	p.Highlight(d.Selection)
	p.Substitute(d.Selection)

	out, err := d.Html()
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return out, nil
}

// ProcessFragment transforms an HTML fragment such as a post body. The
// fragment is parsed in body context so elements that would otherwise be
// moved into a document head stay in place.
func (p *Processor) ProcessFragment(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("parsing fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	root := goquery.NewDocumentFromNode(body).Selection
	p.Highlight(root)
	p.Substitute(root)

	out, err := root.Html()
	if err != nil {
		return "", fmt.Errorf("rendering fragment: %w", err)
	}
	return out, nil
}

// Substitute replaces the content of every registered placeholder element
// inside root. Placeholders with no registered replacement are kept.
func (p *Processor) Substitute(root *goquery.Selection) {
	root.Find("[" + PlaceholderAttr + "]").Each(func(_ int, s *goquery.Selection) {
		r, ok := p.placeholders[s.AttrOr(PlaceholderAttr, "")]
		if !ok {
			return
		}
		markup := r(s)
		if markup == "" {
			s.Remove()
			return
		}
		s.SetHtml(markup)
	})
}

// CSS returns the stylesheet matching the highlighted markup.
func (p *Processor) CSS() (string, error) {
	var buf bytes.Buffer
	if err := p.formatter.WriteCSS(&buf, styles.Get(p.style)); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", p.style, err)
	}
	return buf.String(), nil
}
