package models

import "strings"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// FetchParams describes one page request shared by every provider
type FetchParams struct {
	Category Category `json:"category,omitempty"`
	Query    string   `json:"query,omitempty"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

// Normalize fills in defaults for missing page values and trims the query
func (p FetchParams) Normalize() FetchParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	p.Query = strings.TrimSpace(p.Query)
	return p
}

// HasQuery reports whether a search term was given
func (p FetchParams) HasQuery() bool {
	return strings.TrimSpace(p.Query) != ""
}

// Page is a paginated set of articles
type Page struct {
	Articles     []Article `json:"articles"`
	TotalResults int       `json:"totalResults"`
	Page         int       `json:"page"`
	PageSize     int       `json:"pageSize"`
	HasMore      bool      `json:"hasMore"`
}

// EmptyPage returns a well-formed page with no articles for the given request
func EmptyPage(params FetchParams) Page {
	params = params.Normalize()
	return Page{
		Articles:     []Article{},
		TotalResults: 0,
		Page:         params.Page,
		PageSize:     params.PageSize,
		HasMore:      false,
	}
}

// PageOf paginates a fully filtered result set. TotalResults is the size of the set.
func PageOf(articles []Article, params FetchParams) Page {
	params = params.Normalize()
	slice, hasMore := Paginate(articles, params.Page, params.PageSize)
	return Page{
		Articles:     slice,
		TotalResults: len(articles),
		Page:         params.Page,
		PageSize:     params.PageSize,
		HasMore:      hasMore,
	}
}
