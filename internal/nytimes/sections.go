package nytimes

import "github.com/bilgisen/newsdeck/internal/models"

const defaultTopStoriesSection = "home"

// sectionCategories maps top-stories and most-popular section names.
// Those feeds use lowercase slugs but are not consistent, so lookups ignore case.
var sectionCategories = models.NewSectionTable(map[string]models.Category{
	"business":   models.CategoryBusiness,
	"technology": models.CategoryTechnology,
	"health":     models.CategoryHealth,
	"science":    models.CategoryScience,
	"sports":     models.CategorySports,
	"world":      models.CategoryGeneral,
	"us":         models.CategoryGeneral,
	"u.s.":       models.CategoryGeneral,
	"politics":   models.CategoryGeneral,
	"opinion":    models.CategoryGeneral,
	"arts":       models.CategoryEntertainment,
	"movies":     models.CategoryEntertainment,
	"theater":    models.CategoryEntertainment,
}, models.CategoryGeneral, true)

// searchSectionCategories maps the search API's section_name values, which are
// title-cased display names and are matched exactly.
var searchSectionCategories = models.NewSectionTable(map[string]models.Category{
	"Business Day": models.CategoryBusiness,
	"Business":     models.CategoryBusiness,
	"Technology":   models.CategoryTechnology,
	"Health":       models.CategoryHealth,
	"Science":      models.CategoryScience,
	"Sports":       models.CategorySports,
	"Arts":         models.CategoryEntertainment,
	"Movies":       models.CategoryEntertainment,
	"Theater":      models.CategoryEntertainment,
	"World":        models.CategoryGeneral,
	"U.S.":         models.CategoryGeneral,
	"Opinion":      models.CategoryGeneral,
	"New York":     models.CategoryGeneral,
}, models.CategoryGeneral, false)

// topStoriesSections maps a canonical category to the top-stories section to request
var topStoriesSections = map[models.Category]string{
	models.CategoryBusiness:      "business",
	models.CategoryHealth:        "health",
	models.CategoryScience:       "science",
	models.CategorySports:        "sports",
	models.CategoryTechnology:    "technology",
	models.CategoryEntertainment: "arts",
}

// searchSectionFilters maps a canonical category to the search API section_name filter
var searchSectionFilters = map[models.Category]string{
	models.CategoryBusiness:      "Business",
	models.CategoryHealth:        "Health",
	models.CategoryScience:       "Science",
	models.CategorySports:        "Sports",
	models.CategoryTechnology:    "Technology",
	models.CategoryEntertainment: "Arts",
}

func topStoriesSection(category models.Category) string {
	if section, ok := topStoriesSections[category]; ok {
		return section
	}
	return defaultTopStoriesSection
}
