package models

import "strings"

// Category is one of the canonical news categories shared by every provider
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
)

// Categories lists the canonical category set in display order
var Categories = []Category{
	CategoryGeneral,
	CategoryBusiness,
	CategoryEntertainment,
	CategoryHealth,
	CategoryScience,
	CategorySports,
	CategoryTechnology,
}

// ParseCategory returns the canonical category for s, or false if s is not one
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Source identifies a news provider
type Source string

const (
	SourceNewsAPI Source = "newsapi"
	SourceNYTimes Source = "nytimes"
)

// Sources lists every provider id the application knows about
var Sources = []Source{SourceNewsAPI, SourceNYTimes}

// Article is the unified representation every provider adapter produces
type Article struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	URL         string   `json:"url"`
	ImageURL    *string  `json:"imageUrl"`
	PublishedAt string   `json:"publishedAt"`
	Source      string   `json:"source"`
	Category    Category `json:"category"`
	Author      *string  `json:"author"`
}

// OptionalString returns nil for blank strings so they serialize as null
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// MatchesQuery reports whether the lowercased query occurs in the title or description
func (a Article) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Description), q)
}
