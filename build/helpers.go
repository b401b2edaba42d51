package build

import (
	"encoding/xml"
	"net/url"
	"path"
	"strings"
	"time"
)

// xmlText escapes s for use as XML character data or attribute value.
func xmlText(s string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return ""
	}
	return sb.String()
}

// atomTime formats t as an Atom date in UTC.
func atomTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// absURL joins the site base URL with a site-relative path. p is a
// decoded path; escaping happens here.
func absURL(base, p string) string {
	u, err := url.Parse(base)
	if err != nil {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(p, "/")
	}
	trailing := strings.HasSuffix(p, "/")
	u.Path = path.Join("/", u.Path, p)
	if trailing && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// tagPath is the registry path of a tag listing. It holds the raw tag,
// matching the decoded request path.
func tagPath(tag string) string {
	return "tags/" + tag + "/"
}

// tagFeedPath is the registry path of a tag feed
func tagFeedPath(tag string) string {
	return tagPath(tag) + "feed.xml"
}

// tagURL is the href of a tag listing.
func tagURL(tag string) string {
	return "/tags/" + url.PathEscape(tag) + "/"
}

// tagFeedURL is the href of a tag feed.
func tagFeedURL(tag string) string {
	return tagURL(tag) + "feed.xml"
}
