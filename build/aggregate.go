package build

import (
	"cmp"
	"slices"

	"blog/post"
)

// YearGroup is one heading of the archive.
type YearGroup struct {
	Year  int
	Posts []post.Post
}

// SortPosts orders posts newest first. Undated posts count as older than
// every dated post; ties are broken by path, descending.
func SortPosts(posts []post.Post) []post.Post {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b post.Post) int {
		if c := compareDates(a, b); c != 0 {
			return c
		}
		return cmp.Compare(b.Path, a.Path)
	})
	return sorted
}

func compareDates(a, b post.Post) int {
	switch {
	case a.HasDate() && b.HasDate():
		return b.Date.Compare(a.Date)
	case a.HasDate():
		return -1
	case b.HasDate():
		return 1
	}
	return 0
}

// Dated returns the posts that carry a date, in their original order.
func Dated(posts []post.Post) []post.Post {
	var out []post.Post
	for _, p := range posts {
		if p.HasDate() {
			out = append(out, p)
		}
	}
	return out
}

// GroupByYear groups dated posts by year, newest year first, with posts
// inside a year ordered by path descending.
func GroupByYear(posts []post.Post) []YearGroup {
	byYear := make(map[int][]post.Post)
	for _, p := range Dated(posts) {
		byYear[p.Date.Year()] = append(byYear[p.Date.Year()], p)
	}

	groups := make([]YearGroup, 0, len(byYear))
	for year, ps := range byYear {
		slices.SortStableFunc(ps, func(a, b post.Post) int {
			return cmp.Compare(b.Path, a.Path)
		})
		groups = append(groups, YearGroup{Year: year, Posts: ps})
	}
	slices.SortFunc(groups, func(a, b YearGroup) int {
		return cmp.Compare(b.Year, a.Year)
	})
	return groups
}

// GroupByTag returns the sorted set of distinct tags and the posts that
// carry each one, in input order.
func GroupByTag(posts []post.Post) ([]string, map[string][]post.Post) {
	byTag := make(map[string][]post.Post)
	for _, p := range posts {
		seen := make(map[string]bool, len(p.Tags))
		for _, t := range p.Tags {
			if seen[t] {
				continue
			}
			seen[t] = true
			byTag[t] = append(byTag[t], p)
		}
	}

	tags := make([]string, 0, len(byTag))
	for t := range byTag {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags, byTag
}
