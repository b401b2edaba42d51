package post

import (
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// frontmatterData is the metadata block of a post
type frontmatterData struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

var (
	reTitle = regexp.MustCompile(`^\s*title\s*:\s*(.*?)\s*$`)
	reTags  = regexp.MustCompile(`^\s*tags\s*:\s*\[(.*)\]\s*$`)
)

// splitFrontMatter separates the block between the first two delimiter
// lines from the body. ok is false when the file does not open with a
// delimiter or the block is never closed; body is then the whole input.
func splitFrontMatter(src string) (meta, body string, ok bool) {
	var block []byte
	format := frontmatter.NewFormat(delimiter, delimiter, func(data []byte, _ interface{}) error {
		block, ok = data, true
		return nil
	})

	rest, err := frontmatter.Parse(strings.NewReader(strings.TrimLeft(src, "\n")), new(struct{}), format)
	if err != nil || !ok {
		return "", src, false
	}
	return strings.TrimRight(string(block), "\n"), string(rest), true
}

// parseFrontMatter reads title and tags from the block. A `key : value`
// line is taken literally and the first one wins; the YAML decoding only
// fills fields no such line provides, such as block-style tag lists.
func parseFrontMatter(meta string) frontmatterData {
	var fm frontmatterData
	if strings.TrimSpace(meta) == "" {
		return fm
	}

	var decoded frontmatterData
	decodedOK := yaml.Unmarshal([]byte(meta), &decoded) == nil

	titleSet, tagsSet := false, false
	for _, line := range strings.Split(meta, "\n") {
		if m := reTitle.FindStringSubmatch(line); m != nil && !titleSet {
			fm.Title = m[1]
			titleSet = true
			continue
		}
		if m := reTags.FindStringSubmatch(line); m != nil && !tagsSet {
			fm.Tags = cleanTags(strings.Split(m[1], ","))
			tagsSet = true
		}
	}

	if !decodedOK {
		return fm
	}
	if !titleSet || (isQuoted(fm.Title) && decoded.Title != "") {
		fm.Title = strings.TrimSpace(decoded.Title)
	}
	if !tagsSet {
		fm.Tags = cleanTags(decoded.Tags)
	}
	return fm
}

// isQuoted reports whether v is a single YAML quoted scalar.
func isQuoted(v string) bool {
	if len(v) < 2 {
		return false
	}
	q := v[0]
	return (q == '"' || q == '\'') && v[len(v)-1] == q
}

// cleanTags trims tags and drops the ones that are empty or would leave
// the tags directory once used as a path.
func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if s := strings.TrimSpace(t); validTag(s) {
			out = append(out, s)
		}
	}
	return out
}

func validTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, seg := range strings.Split(tag, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
