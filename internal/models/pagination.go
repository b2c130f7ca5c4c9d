package models

import (
	"sort"
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing PublishedAt.
// The newspaper search API emits offsets without a colon and the most
// popular feed emits bare dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an upstream publication timestamp
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DedupeByURL keeps the first article seen for every URL, preserving order
func DedupeByURL(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]Article, 0, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.URL]; ok {
			continue
		}
		seen[a.URL] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}

// SortByRecencyDesc returns a copy sorted newest first.
// Equal timestamps keep their input order; unparsable timestamps sort last.
func SortByRecencyDesc(articles []Article) []Article {
	type keyed struct {
		article Article
		at      time.Time
		ok      bool
	}

	items := make([]keyed, len(articles))
	for i, a := range articles {
		at, ok := ParseTimestamp(a.PublishedAt)
		items[i] = keyed{article: a, at: at, ok: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ok != items[j].ok {
			return items[i].ok
		}
		return items[i].at.After(items[j].at)
	})

	sorted := make([]Article, len(items))
	for i, it := range items {
		sorted[i] = it.article
	}
	return sorted
}

// Paginate slices one page out of articles. page is 1-indexed.
// hasMore is true iff more articles follow the returned slice.
func Paginate(articles []Article, page, pageSize int) ([]Article, bool) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	// Compare in page units first so (page-1)*pageSize cannot overflow.
	pages := len(articles) / pageSize
	if len(articles)%pageSize != 0 {
		pages++
	}
	if page-1 >= pages {
		return []Article{}, false
	}

	start := (page - 1) * pageSize
	end := len(articles)
	if end-start > pageSize {
		end = start + pageSize
	}

	slice := make([]Article, end-start)
	copy(slice, articles[start:end])
	return slice, end < len(articles)
}

// HasMore reports whether page*pageSize < total without computing the product.
func HasMore(page, pageSize, total int) bool {
	if page < 1 || pageSize < 1 || total <= 0 {
		return false
	}
	return page-1 < (total-1)/pageSize
}
