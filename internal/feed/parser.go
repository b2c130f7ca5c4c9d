package feed

import (
	"html"
	"regexp"
	"strings"
)

// Parser cleans text fields coming from upstream payloads
type Parser struct {
	htmlTagRegex   *regexp.Regexp
	truncatedRegex *regexp.Regexp
}

func NewParser() *Parser {
	return &Parser{
		htmlTagRegex:   regexp.MustCompile(`<[^>]*>`),
		truncatedRegex: regexp.MustCompile(`\s*\[\+\d+ chars\]\s*$`),
	}
}

// CleanHTML removes HTML tags and normalizes whitespace
func (p *Parser) CleanHTML(input string) string {
	// Remove HTML tags
	cleaned := p.htmlTagRegex.ReplaceAllString(input, " ")
	// Unescape HTML entities
	cleaned = html.UnescapeString(cleaned)
	// Normalize whitespace
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return strings.TrimSpace(cleaned)
}

// CleanContent is CleanHTML plus removal of the "[+123 chars]" marker
// the headlines API appends to truncated bodies.
func (p *Parser) CleanContent(input string) string {
	return p.CleanHTML(p.truncatedRegex.ReplaceAllString(input, ""))
}

// FirstNonEmpty returns the first argument that is not blank after trimming
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
