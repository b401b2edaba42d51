package htmlpass

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight replaces the children of every pre > code block under root
// with highlighted markup and sets its class to CodeClass. A block whose
// language is missing or unknown keeps its plain text.
func (p *Processor) Highlight(root *goquery.Selection) {
	root.Find("pre > code").Each(func(_ int, s *goquery.Selection) {
		class := s.AttrOr("class", "")
		if hasClass(class, CodeClass) {
			return
		}

		text := s.Text()
		if out, ok := p.highlight(language(class), text); ok {
			s.SetHtml(out)
		} else {
			s.SetHtml(html.EscapeString(text))
		}
		s.SetAttr("class", CodeClass)
	})
}

func (p *Processor) highlight(lang, text string) (string, bool) {
	if lang == "" {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", false
	}

	var sb strings.Builder
	if err := p.formatter.Format(&sb, styles.Get(p.style), it); err != nil {
		return "", false
	}
	return sb.String(), true
}

// language reads the language hint from a class attribute such as
// "language-go", "lang-go" or "go".
func language(class string) string {
	for _, c := range strings.Fields(class) {
		switch {
		case strings.HasPrefix(c, "language-"):
			return strings.TrimPrefix(c, "language-")
		case strings.HasPrefix(c, "lang-"):
			return strings.TrimPrefix(c, "lang-")
		}
	}
	if f := strings.Fields(class); len(f) == 1 {
		return f[0]
	}
	return ""
}

func hasClass(class, name string) bool {
	for _, c := range strings.Fields(class) {
		if c == name {
			return true
		}
	}
	return false
}
