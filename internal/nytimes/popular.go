package nytimes

import (
	"context"
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
	mostPopularLabel = "mostpopular"
	// most viewed over the trailing seven days
	mostPopularPath = "/mostpopular/v2/viewed/7.json"
)

type mostPopularResponse struct {
	envelope
	NumResults int              `json:"num_results"`
	Results    []popularArticle `json:"results"`
}

type popularArticle struct {
	URI           string `json:"uri"`
	URL           string `json:"url"`
	ID            int64  `json:"id"`
	PublishedDate string `json:"published_date"`
	Section       string `json:"section"`
	Byline        string `json:"byline"`
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	Media         []struct {
		Type     string `json:"type"`
		Caption  string `json:"caption"`
		Metadata []struct {
			URL    string `json:"url"`
			Format string `json:"format"`
			Height int    `json:"height"`
			Width  int    `json:"width"`
		} `json:"media-metadata"`
	} `json:"media"`
}

// MostPopularAdapter reads the most-viewed feed. The feed takes no
// category or query, so both filters and paging are local.
type MostPopularAdapter struct {
	api
}

func NewMostPopularAdapter(cfg config.NYTimesConfig, fetcher *feed.Fetcher) *MostPopularAdapter {
	return &MostPopularAdapter{api: newAPI(cfg, fetcher)}
}

// Collect returns the most-viewed articles filtered by category then query, before pagination
func (a *MostPopularAdapter) Collect(ctx context.Context, params models.FetchParams) []models.Article {
	log := logger.Upstream(providerName, mostPopularLabel)

	var body mostPopularResponse
	err := a.get(ctx, mostPopularLabel, mostPopularPath, nil, &body)
	if err == nil {
		err = body.check()
	}
	if err != nil {
		log.Error().
			Err(err).
			Int("status", feed.StatusCode(err)).
			Str("fault", body.faultString()).
			Msg("Most popular request failed")
		return []models.Article{}
	}

	articles := make([]models.Article, 0, len(body.Results))
	for _, raw := range body.Results {
		article, ok := a.transform(raw)
		if !ok {
			log.Debug().Int64("id", raw.ID).Msg("Skipping malformed popular article")
			continue
		}
		articles = append(articles, article)
	}
	metrics.NewsArticlesFetched.WithLabelValues(providerName, mostPopularLabel).Add(float64(len(articles)))

	articles = filterByCategory(articles, params.Category)
	return filterByQuery(articles, params.Query)
}

// Fetch returns one page of the filtered most-viewed articles
func (a *MostPopularAdapter) Fetch(ctx context.Context, params models.FetchParams) models.Page {
	params = params.Normalize()
	return models.PageOf(a.Collect(ctx, params), params)
}

func (a *MostPopularAdapter) transform(raw popularArticle) (models.Article, bool) {
	title := strings.TrimSpace(raw.Title)
	url := strings.TrimSpace(raw.URL)
	if title == "" || url == "" {
		return models.Article{}, false
	}

	key := utils.ShortHash(url)
	if raw.ID != 0 {
		key = strconv.FormatInt(raw.ID, 10)
	}

	// The last rendition of the first media item is the largest.
	var image string
	if len(raw.Media) > 0 {
		if meta := raw.Media[0].Metadata; len(meta) > 0 {
			image = meta[len(meta)-1].URL
		}
	}

	abstract := a.parser.CleanHTML(raw.Abstract)
	return models.Article{
		ID:          "nytimes-mostpopular-" + key,
		Title:       a.parser.CleanHTML(title),
		Description: abstract,
		Content:     abstract,
		URL:         url,
		ImageURL:    models.OptionalString(image),
		PublishedAt: raw.PublishedDate,
		Source:      sourceName,
		Category:    sectionCategories.Category(raw.Section),
		Author:      models.OptionalString(raw.Byline),
	}, true
}
