package build

import (
	"html/template"

	"blog/config"
	"blog/post"
)

// layoutData is passed to the HTML templates
type layoutData struct {
	Site  config.Config
	Title string
	Year  int
	Asset func(string) string
	Feed  string // extra feed link for the page, if any

	Post    post.Post
	Posts   []post.Post
	More    bool // home page has older posts than it shows
	Years   []YearGroup
	Tags    []tagCount
	Content template.HTML
}

// tagCount is one row of the tag index
type tagCount struct {
	Name  string
	Count int
}

// feedData is passed to the Atom template
type feedData struct {
	Title   string
	ID      string
	Self    string
	Link    string
	Updated string
	Author  string
	Entries []feedEntry
}

// feedEntry is one post in a feed
type feedEntry struct {
	Title   string
	ID      string
	Link    string
	Updated string
	Tags    []string
	Content string
}
