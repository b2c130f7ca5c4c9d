package models

import "strings"

// SectionTable maps an upstream section name to a canonical category.
// Tables are built once and never modified.
type SectionTable struct {
	entries    map[string]Category
	fallback   Category
	ignoreCase bool
}

// NewSectionTable copies entries into an immutable lookup table.
// When ignoreCase is set both the keys and the looked-up section are lowercased.
func NewSectionTable(entries map[string]Category, fallback Category, ignoreCase bool) SectionTable {
	t := SectionTable{
		entries:    make(map[string]Category, len(entries)),
		fallback:   fallback,
		ignoreCase: ignoreCase,
	}
	for section, category := range entries {
		if ignoreCase {
			section = strings.ToLower(section)
		}
		t.entries[section] = category
	}
	return t
}

// Default returns the category used for unmapped sections
func (t SectionTable) Default() Category {
	return t.fallback
}

// Lookup returns the category mapped for section, if any
func (t SectionTable) Lookup(section string) (Category, bool) {
	key := strings.TrimSpace(section)
	if t.ignoreCase {
		key = strings.ToLower(key)
	}
	c, ok := t.entries[key]
	return c, ok
}

// Category returns the category for section, or the table default
func (t SectionTable) Category(section string) Category {
	return MapSectionToCategory(section, t, t.fallback)
}

// MapSectionToCategory resolves section through table, returning
// defaultCategory for unmapped sections.
func MapSectionToCategory(section string, table SectionTable, defaultCategory Category) Category {
	if c, ok := table.Lookup(section); ok {
		return c
	}
	return defaultCategory
}
