// Package nytimes adapts the newspaper's top-stories, most-popular and
// article search APIs to the canonical article model, and combines them
// into one provider client.
package nytimes

import (
	"context"
	"errors"
	"strings"

	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/feed"
	"github.com/bilgisen/newsdeck/internal/models"
)

const (
	providerName = string(models.SourceNYTimes)
	sourceName   = "New York Times"
	webBaseURL   = "https://www.nytimes.com/"
)

// fault is the gateway error object the newspaper APIs return instead of results
type fault struct {
	FaultString string `json:"faultstring"`
	Detail      struct {
		ErrorCode string `json:"errorcode"`
	} `json:"detail"`
}

// envelope holds the fields every newspaper response carries
type envelope struct {
	Status string `json:"status"`
	Fault  *fault `json:"fault"`
}

// check turns a fault object or a non-OK status into an error
func (e envelope) check() error {
	if e.Fault != nil {
		msg := e.Fault.FaultString
		if e.Fault.Detail.ErrorCode != "" {
			msg += " (" + e.Fault.Detail.ErrorCode + ")"
		}
		return errors.New("upstream fault: " + msg)
	}
	if e.Status != "OK" {
		return errors.New("upstream status " + e.Status)
	}
	return nil
}

func (e envelope) faultString() string {
	if e.Fault == nil {
		return ""
	}
	return e.Fault.FaultString
}

// api bundles what every newspaper adapter needs to issue a request
type api struct {
	cfg     config.NYTimesConfig
	fetcher *feed.Fetcher
	parser  *feed.Parser
}

func newAPI(cfg config.NYTimesConfig, fetcher *feed.Fetcher) api {
	return api{cfg: cfg, fetcher: fetcher, parser: feed.NewParser()}
}

func (a api) get(ctx context.Context, label, path string, query map[string]string, out any) error {
	q := map[string]string{"api-key": a.cfg.APIKey}
	for k, v := range query {
		q[k] = v
	}
	return a.fetcher.GetJSON(ctx, feed.Request{
		Provider: providerName,
		Endpoint: label,
		URL:      strings.TrimRight(a.cfg.BaseURL, "/") + path,
		Query:    q,
	}, out)
}

// filterByQuery keeps articles whose title or description contains query
func filterByQuery(articles []models.Article, query string) []models.Article {
	if strings.TrimSpace(query) == "" {
		return articles
	}
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.MatchesQuery(query) {
			out = append(out, a)
		}
	}
	return out
}

// filterByCategory keeps articles in category. General means no filter.
func filterByCategory(articles []models.Article, category models.Category) []models.Article {
	if category == "" || category == models.CategoryGeneral {
		return articles
	}
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}
