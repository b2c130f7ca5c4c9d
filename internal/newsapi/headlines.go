package newsapi

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
	providerName       = string(models.SourceNewsAPI)
	headlinesPath      = "/top-headlines"
	headlinesLabel     = "top-headlines"
	removedPlaceholder = "[Removed]"
)

type headlinesResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []rawArticle `json:"articles"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
}

type rawArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// HeadlinesAdapter talks to the top-headlines endpoint of the generic headlines API
type HeadlinesAdapter struct {
	cfg     config.NewsAPIConfig
	fetcher *feed.Fetcher
	parser  *feed.Parser
}

func NewHeadlinesAdapter(cfg config.NewsAPIConfig, fetcher *feed.Fetcher) *HeadlinesAdapter {
	return &HeadlinesAdapter{
		cfg:     cfg,
		fetcher: fetcher,
		parser:  feed.NewParser(),
	}
}

// Fetch returns one page of headlines. Upstream failures are logged and
// reported as an empty page.
func (a *HeadlinesAdapter) Fetch(ctx context.Context, params models.FetchParams) models.Page {
	params = params.Normalize()
	log := logger.Upstream(providerName, headlinesLabel)

	var body headlinesResponse
	err := a.fetcher.GetJSON(ctx, feed.Request{
		Provider: providerName,
		Endpoint: headlinesLabel,
		URL:      strings.TrimRight(a.cfg.BaseURL, "/") + headlinesPath,
		Query:    a.buildQuery(params),
		Headers:  map[string]string{"X-Api-Key": a.cfg.APIKey},
	}, &body)
	if err == nil && body.Status != "ok" {
		err = &upstreamError{code: body.Code, message: body.Message}
	}
	if err != nil {
		log.Error().
			Err(err).
			Int("status", feed.StatusCode(err)).
			Str("upstream_code", body.Code).
			Str("upstream_message", body.Message).
			Msg("Headlines request failed")
		return models.EmptyPage(params)
	}

	category := params.Category
	if category == "" {
		category = models.CategoryGeneral
	}

	// Syndicated stories can repeat a url within one page; ids derive from
	// the url, so only the first copy is kept.
	articles := make([]models.Article, 0, len(body.Articles))
	seen := make(map[string]struct{}, len(body.Articles))
	for _, raw := range body.Articles {
		article, ok := a.transform(raw, category)
		if !ok {
			log.Debug().Str("url", raw.URL).Msg("Skipping malformed headline")
			continue
		}
		if _, dup := seen[article.ID]; dup {
			log.Debug().Str("url", article.URL).Msg("Skipping repeated headline")
			continue
		}
		seen[article.ID] = struct{}{}
		articles = append(articles, article)
	}
	metrics.NewsArticlesFetched.WithLabelValues(providerName, headlinesLabel).Add(float64(len(articles)))

	total := body.TotalResults
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

func (a *HeadlinesAdapter) buildQuery(params models.FetchParams) map[string]string {
	q := map[string]string{
		"page":     strconv.Itoa(params.Page),
		"pageSize": strconv.Itoa(params.PageSize),
	}
	if params.Category != "" {
		q["category"] = string(params.Category)
	}
	if params.HasQuery() {
		q["q"] = params.Query
	}
	if params.Category == "" && !params.HasQuery() {
		q["country"] = a.cfg.Country
	}
	return q
}

func (a *HeadlinesAdapter) transform(raw rawArticle, category models.Category) (models.Article, bool) {
	title := strings.TrimSpace(raw.Title)
	url := strings.TrimSpace(raw.URL)
	if title == "" || url == "" || title == removedPlaceholder {
		return models.Article{}, false
	}

	description := a.parser.CleanHTML(raw.Description)
	content := feed.FirstNonEmpty(a.parser.CleanContent(raw.Content), description)

	return models.Article{
		ID:          "newsapi-headlines-" + utils.ShortHash(url),
		Title:       title,
		Description: description,
		Content:     content,
		URL:         url,
		ImageURL:    models.OptionalString(raw.URLToImage),
		PublishedAt: raw.PublishedAt,
		Source:      feed.FirstNonEmpty(strings.TrimSpace(raw.Source.Name), "NewsAPI"),
		Category:    category,
		Author:      models.OptionalString(raw.Author),
	}, true
}

type upstreamError struct {
	code    string
	message string
}

func (e *upstreamError) Error() string {
	if e.message == "" {
		return "headlines API reported an error"
	}
	return "headlines API error: " + e.code + ": " + e.message
}
