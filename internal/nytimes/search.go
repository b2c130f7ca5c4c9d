package nytimes

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/feed"
	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/bilgisen/newsdeck/internal/metrics"
	"github.com/bilgisen/newsdeck/internal/models"
	"github.com/bilgisen/newsdeck/internal/utils"
)

const (
	searchLabel = "articlesearch"
	searchPath  = "/search/v2/articlesearch.json"
	// highest zero-indexed page the search API will serve
	maxSearchPage = 100
	// docs per upstream page, fixed by the API
	searchDocsPerPage = 10
)

type searchResponse struct {
	envelope
	Response struct {
		Docs []searchDoc `json:"docs"`
		Meta struct {
			Hits   int `json:"hits"`
			Offset int `json:"offset"`
		} `json:"meta"`
	} `json:"response"`
}

type searchDoc struct {
	ID            string `json:"_id"`
	WebURL        string `json:"web_url"`
	Abstract      string `json:"abstract"`
	Snippet       string `json:"snippet"`
	LeadParagraph string `json:"lead_paragraph"`
	Headline      struct {
		Main string `json:"main"`
	} `json:"headline"`
	PubDate     string `json:"pub_date"`
	SectionName string `json:"section_name"`
	Byline      struct {
		Original string `json:"original"`
	} `json:"byline"`
	Multimedia json.RawMessage `json:"multimedia"`
}

// image returns the first usable image url. The API has shipped multimedia
// both as a list of renditions with site-relative urls and as an object
// keyed by rendition name.
func (d searchDoc) image() string {
	if len(d.Multimedia) == 0 {
		return ""
	}

	var list []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(d.Multimedia, &list); err == nil {
		for _, m := range list {
			if m.URL != "" {
				return absoluteURL(m.URL)
			}
		}
		return ""
	}

	var obj struct {
		Default struct {
			URL string `json:"url"`
		} `json:"default"`
		Thumbnail struct {
			URL string `json:"url"`
		} `json:"thumbnail"`
	}
	if err := json.Unmarshal(d.Multimedia, &obj); err == nil {
		return absoluteURL(feed.FirstNonEmpty(obj.Default.URL, obj.Thumbnail.URL))
	}
	return ""
}

func absoluteURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return webBaseURL + strings.TrimLeft(u, "/")
}

// SearchAdapter queries the article search API, which pages natively
type SearchAdapter struct {
	api
}

func NewSearchAdapter(cfg config.NYTimesConfig, fetcher *feed.Fetcher) *SearchAdapter {
	return &SearchAdapter{api: newAPI(cfg, fetcher)}
}

// SearchWindow maps a 1-indexed page of pageSize articles onto the search
// API's zero-indexed pages of ten docs. The window spans upstream pages
// first..last and starts skip docs into first. ok is false when the window
// begins beyond the last page the API serves.
func SearchWindow(page, pageSize int) (first, last, skip int, ok bool) {
	if page < 1 {
		page = models.DefaultPage
	}
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}

	maxOffset := (maxSearchPage+1)*searchDocsPerPage - 1
	if page-1 > maxOffset/pageSize {
		return 0, 0, 0, false
	}

	offset := (page - 1) * pageSize
	first = offset / searchDocsPerPage
	skip = offset % searchDocsPerPage

	last = maxSearchPage
	if pageSize-1 <= maxOffset-offset {
		last = (offset + pageSize - 1) / searchDocsPerPage
	}
	return first, last, skip, true
}

// Fetch runs the query upstream and trusts the reported hit count as the total.
// A window that straddles upstream pages is stitched from consecutive requests.
func (a *SearchAdapter) Fetch(ctx context.Context, params models.FetchParams) models.Page {
	params = params.Normalize()
	log := logger.Upstream(providerName, searchLabel)

	first, last, skip, ok := SearchWindow(params.Page, params.PageSize)
	if !ok {
		log.Warn().
			Int("page", params.Page).
			Int("page_size", params.PageSize).
			Msg("Search page beyond upstream limit")
		return models.EmptyPage(params)
	}

	var (
		docs  []searchDoc
		total int
	)
	for upstreamPage := first; upstreamPage <= last; upstreamPage++ {
		body, err := a.searchPage(ctx, params, upstreamPage)
		if err != nil {
			event := log.Error()
			if upstreamPage > first {
				event = log.Warn()
			}
			event.
				Err(err).
				Str("query", params.Query).
				Int("upstream_page", upstreamPage).
				Int("status", feed.StatusCode(err)).
				Str("fault", body.faultString()).
				Msg("Article search request failed")
			if upstreamPage == first {
				return models.EmptyPage(params)
			}
			break
		}

		if upstreamPage == first {
			total = body.Response.Meta.Hits
		}
		docs = append(docs, body.Response.Docs...)
		if len(body.Response.Docs) < searchDocsPerPage {
			break
		}
	}

	if skip >= len(docs) {
		docs = nil
	} else {
		docs = docs[skip:]
	}
	if len(docs) > params.PageSize {
		docs = docs[:params.PageSize]
	}

	articles := make([]models.Article, 0, len(docs))
	for _, doc := range docs {
		article, ok := a.transform(doc)
		if !ok {
			log.Debug().Str("id", doc.ID).Msg("Skipping malformed search result")
			continue
		}
		articles = append(articles, article)
	}
	metrics.NewsArticlesFetched.WithLabelValues(providerName, searchLabel).Add(float64(len(articles)))

	if total < 0 {
		total = 0
	}

	return models.Page{
		Articles:     articles,
		TotalResults: total,
		Page:         params.Page,
		PageSize:     params.PageSize,
		HasMore:      models.HasMore(params.Page, params.PageSize, total),
	}
}

func (a *SearchAdapter) searchPage(ctx context.Context, params models.FetchParams, upstreamPage int) (searchResponse, error) {
	query := map[string]string{
		"page": strconv.Itoa(upstreamPage),
		"sort": "newest",
	}
	if params.HasQuery() {
		query["q"] = params.Query
	}
	if section, ok := searchSectionFilters[params.Category]; ok {
		query["fq"] = `section_name:("` + section + `")`
	}

	var body searchResponse
	err := a.get(ctx, searchLabel, searchPath, query, &body)
	if err == nil {
		err = body.check()
	}
	return body, err
}

func (a *SearchAdapter) transform(doc searchDoc) (models.Article, bool) {
	title := strings.TrimSpace(doc.Headline.Main)
	url := strings.TrimSpace(doc.WebURL)
	if title == "" || url == "" {
		return models.Article{}, false
	}

	key := utils.LastSegment(doc.ID)
	if key == "" {
		key = utils.ShortHash(url)
	}

	description := a.parser.CleanHTML(feed.FirstNonEmpty(doc.Abstract, doc.Snippet))
	content := feed.FirstNonEmpty(a.parser.CleanHTML(doc.LeadParagraph), description)

	return models.Article{
		ID:          "nytimes-search-" + key,
		Title:       a.parser.CleanHTML(title),
		Description: description,
		Content:     content,
		URL:         url,
		ImageURL:    models.OptionalString(doc.image()),
		PublishedAt: doc.PubDate,
		Source:      sourceName,
		Category:    searchSectionCategories.Category(doc.SectionName),
		Author:      models.OptionalString(doc.Byline.Original),
	}, true
}
