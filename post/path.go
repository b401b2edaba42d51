package post

import (
	"path"
	"regexp"
	"strings"
)

var reDatePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-`)

// DerivePath maps a post filename to its public path. A leading
// YYYY-MM-DD- becomes blog/YYYY/MM/DD/ and the .md suffix is dropped.
func DerivePath(rawPath string) string {
	name := strings.TrimSuffix(path.Clean(strings.ReplaceAll(rawPath, "\\", "/")), ".md")

	dir, base := path.Split(name)
	if m := reDatePrefix.FindStringSubmatch(base); m != nil {
		base = "blog/" + m[1] + "/" + m[2] + "/" + m[3] + "/" + base[len(m[0]):]
	}
	return dir + base
}

// LegacyPath returns the pre-migration alias of path, or "" when path
// matches none of the legacy slugs.
func LegacyPath(p string, slugs []string) string {
	for _, slug := range slugs {
		if slug != "" && strings.Contains(p, slug) {
			return strings.ReplaceAll(p, "blog", "code") + "/"
		}
	}
	return ""
}
