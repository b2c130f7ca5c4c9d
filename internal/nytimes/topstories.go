package nytimes

import (
	"context"
	"strings"

	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/feed"
	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/bilgisen/newsdeck/internal/metrics"
	"github.com/bilgisen/newsdeck/internal/models"
	"github.com/bilgisen/newsdeck/internal/utils"
)

const topStoriesLabel = "topstories"

type topStoriesResponse struct {
	envelope
	Section    string     `json:"section"`
	NumResults int        `json:"num_results"`
	Results    []topStory `json:"results"`
}

type topStory struct {
	Section       string `json:"section"`
	Subsection    string `json:"subsection"`
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	URL           string `json:"url"`
	URI           string `json:"uri"`
	Byline        string `json:"byline"`
	PublishedDate string `json:"published_date"`
	Multimedia    []struct {
		URL     string `json:"url"`
		Format  string `json:"format"`
		Caption string `json:"caption"`
	} `json:"multimedia"`
}

// TopStoriesAdapter reads one section of the top-stories API. The upstream
// has no paging or search, so both are applied locally.
type TopStoriesAdapter struct {
	api
}

func NewTopStoriesAdapter(cfg config.NYTimesConfig, fetcher *feed.Fetcher) *TopStoriesAdapter {
	return &TopStoriesAdapter{api: newAPI(cfg, fetcher)}
}

// Collect returns every top story in the section mapped from the category,
// filtered by the query, before pagination.
func (a *TopStoriesAdapter) Collect(ctx context.Context, params models.FetchParams) []models.Article {
	section := topStoriesSection(params.Category)
	log := logger.Upstream(providerName, topStoriesLabel)

	var body topStoriesResponse
	err := a.get(ctx, topStoriesLabel, "/topstories/v2/"+section+".json", nil, &body)
	if err == nil {
		err = body.check()
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("section", section).
			Int("status", feed.StatusCode(err)).
			Str("fault", body.faultString()).
			Msg("Top stories request failed")
		return []models.Article{}
	}

	articles := make([]models.Article, 0, len(body.Results))
	for _, story := range body.Results {
		article, ok := a.transform(story)
		if !ok {
			log.Debug().Str("uri", story.URI).Msg("Skipping malformed top story")
			continue
		}
		articles = append(articles, article)
	}
	metrics.NewsArticlesFetched.WithLabelValues(providerName, topStoriesLabel).Add(float64(len(articles)))

	return filterByQuery(articles, params.Query)
}

// Fetch returns one page of the filtered top stories
func (a *TopStoriesAdapter) Fetch(ctx context.Context, params models.FetchParams) models.Page {
	params = params.Normalize()
	return models.PageOf(a.Collect(ctx, params), params)
}

func (a *TopStoriesAdapter) transform(story topStory) (models.Article, bool) {
	title := strings.TrimSpace(story.Title)
	url := strings.TrimSpace(story.URL)
	if title == "" || url == "" {
		return models.Article{}, false
	}

	key := utils.LastSegment(story.URI)
	if key == "" {
		key = utils.ShortHash(url)
	}

	var image string
	if len(story.Multimedia) > 0 {
		image = story.Multimedia[0].URL
	}

	abstract := a.parser.CleanHTML(story.Abstract)
	return models.Article{
		ID:          "nytimes-topstories-" + key,
		Title:       a.parser.CleanHTML(title),
		Description: abstract,
		Content:     abstract,
		URL:         url,
		ImageURL:    models.OptionalString(image),
		PublishedAt: story.PublishedDate,
		Source:      sourceName,
		Category:    sectionCategories.Category(story.Section),
		Author:      models.OptionalString(story.Byline),
	}, true
}
