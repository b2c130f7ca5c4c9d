package newsapi

import (
	"context"

	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/feed"
	"github.com/bilgisen/newsdeck/internal/models"
)

// Client is the provider client for the generic headlines API.
// The provider has a single sub-API, so it forwards to the headlines adapter.
type Client struct {
	headlines *HeadlinesAdapter
}

func NewClient(cfg config.NewsAPIConfig, fetcher *feed.Fetcher) *Client {
	return &Client{headlines: NewHeadlinesAdapter(cfg, fetcher)}
}

func (c *Client) ID() models.Source {
	return models.SourceNewsAPI
}

func (c *Client) Fetch(ctx context.Context, params models.FetchParams) models.Page {
	return c.headlines.Fetch(ctx, params)
}
