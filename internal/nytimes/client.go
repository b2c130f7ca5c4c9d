package nytimes

import (
	"context"
	"sync"

	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/feed"
	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/bilgisen/newsdeck/internal/models"
)

// Collector returns a sub-API's full filtered result set before pagination
type Collector interface {
	Collect(ctx context.Context, params models.FetchParams) []models.Article
}

// Searcher returns a natively paginated page of search results
type Searcher interface {
	Fetch(ctx context.Context, params models.FetchParams) models.Page
}

// Client combines the newspaper's sub-APIs into one provider
type Client struct {
	topStories  Collector
	mostPopular Collector
	search      Searcher
}

func NewClient(cfg config.NYTimesConfig, fetcher *feed.Fetcher) *Client {
	return NewClientWith(
		NewTopStoriesAdapter(cfg, fetcher),
		NewMostPopularAdapter(cfg, fetcher),
		NewSearchAdapter(cfg, fetcher),
	)
}

// NewClientWith builds a Client from explicit sub-API implementations
func NewClientWith(topStories, mostPopular Collector, search Searcher) *Client {
	return &Client{
		topStories:  topStories,
		mostPopular: mostPopular,
		search:      search,
	}
}

func (c *Client) ID() models.Source {
	return models.SourceNYTimes
}

// Fetch answers queries from the search API alone. Without a query it merges
// top stories and most popular: duplicates by URL keep the top-stories copy,
// the set is sorted newest first and then paginated as a whole.
func (c *Client) Fetch(ctx context.Context, params models.FetchParams) models.Page {
	params = params.Normalize()

	if params.HasQuery() {
		return c.search.Fetch(ctx, params)
	}

	var (
		wg                  sync.WaitGroup
		topStories, popular []models.Article
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		topStories = c.topStories.Collect(ctx, params)
	}()
	go func() {
		defer wg.Done()
		popular = c.mostPopular.Collect(ctx, params)
	}()
	wg.Wait()

	if len(topStories) == 0 && len(popular) == 0 {
		return models.EmptyPage(params)
	}

	combined := make([]models.Article, 0, len(topStories)+len(popular))
	combined = append(combined, topStories...)
	combined = append(combined, popular...)

	merged := models.SortByRecencyDesc(models.DedupeByURL(combined))

	logger.Get().Debug().
		Str("provider", providerName).
		Int("top_stories", len(topStories)).
		Int("most_popular", len(popular)).
		Int("merged", len(merged)).
		Msg("Merged newspaper feeds")

	return models.PageOf(merged, params)
}
