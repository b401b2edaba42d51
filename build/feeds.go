package build

import (
	"blog/post"
)

// feedSource builds the site-wide feed and one feed per tag
func (b *Builder) feedSource(tmpl *templateSet, posts []post.Post) Source {
	pages := map[string]Page{
		pathFeed: b.feedPage(tmpl, b.cfg.Title, pathFeed, "", posts),
	}

	tags, byTag := GroupByTag(posts)
	for _, t := range tags {
		pages[tagFeedPath(t)] = b.feedPage(tmpl, b.cfg.Title+": "+t, tagFeedPath(t), tagPath(t), byTag[t])
	}

	return Source{Name: sourceFeed, Pages: pages}
}

func (b *Builder) feedPage(tmpl *templateSet, title, self, link string, posts []post.Post) Page {
	return Page{
		ContentType: contentTypeAtom,
		Render: func(Context) (string, error) {
			data, err := b.buildFeed(title, self, link, posts)
			if err != nil {
				return "", err
			}
			return tmpl.renderFeed(data)
		},
	}
}

// buildFeed collects the dated posts, newest first, into feed data
func (b *Builder) buildFeed(title, self, link string, posts []post.Post) (feedData, error) {
	dated := Dated(SortPosts(posts))

	author := b.cfg.Author
	if author == "" {
		author = b.cfg.Title
	}

	data := feedData{
		Title:   title,
		ID:      absURL(b.cfg.BaseURL, self),
		Self:    absURL(b.cfg.BaseURL, self),
		Link:    absURL(b.cfg.BaseURL, link),
		Updated: atomTime(b.now().In(b.loc)),
		Author:  author,
		Entries: make([]feedEntry, 0, len(dated)),
	}
	if len(dated) > 0 {
		data.Updated = atomTime(dated[0].Date)
	}

	for _, p := range dated {
		content, err := b.proc.ProcessFragment(string(p.Content))
		if err != nil {
			return feedData{}, err
		}
		u := absURL(b.cfg.BaseURL, p.Path)
		data.Entries = append(data.Entries, feedEntry{
			Title:   p.Title,
			ID:      u,
			Link:    u,
			Updated: atomTime(p.Date),
			Tags:    p.Tags,
			Content: content,
		})
	}

	return data, nil
}
