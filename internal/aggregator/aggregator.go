package aggregator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/bilgisen/newsdeck/internal/metrics"
	"github.com/bilgisen/newsdeck/internal/models"
)

// ErrUnknownProvider is returned when a caller names a provider that is not enabled
var ErrUnknownProvider = errors.New("unknown provider")

// SearchPageSize is the page size used by Search
const SearchPageSize = 20

// Provider is one news source. Fetch never fails: upstream problems come
// back as an empty page.
type Provider interface {
	ID() models.Source
	Fetch(ctx context.Context, params models.FetchParams) models.Page
}

// SearchFilters narrows a Search
type SearchFilters struct {
	Category models.Category
	Source   models.Source
}

// Aggregator fans requests out to every enabled provider
type Aggregator struct {
	providers []Provider
	byID      map[models.Source]Provider
}

// New builds an Aggregator over providers, kept in the given order
func New(providers ...Provider) *Aggregator {
	a := &Aggregator{byID: make(map[models.Source]Provider, len(providers))}
	for _, p := range providers {
		if p == nil {
			continue
		}
		if _, dup := a.byID[p.ID()]; dup {
			continue
		}
		a.providers = append(a.providers, p)
		a.byID[p.ID()] = p
	}
	return a
}

// Sources lists the enabled provider ids in fan-out order
func (a *Aggregator) Sources() []models.Source {
	out := make([]models.Source, len(a.providers))
	for i, p := range a.providers {
		out[i] = p.ID()
	}
	return out
}

// FetchAll queries every provider concurrently and combines their pages.
//
// Articles are concatenated in provider order and sorted newest first, with
// no cross-provider dedup: ids are namespaced per provider. TotalResults is
// the sum of each provider's own total and HasMore is true if any provider
// has more. The article count of a page therefore need not reconcile with
// TotalResults beyond the first page.
func (a *Aggregator) FetchAll(ctx context.Context, params models.FetchParams) models.Page {
	params = params.Normalize()

	pages := make([]models.Page, len(a.providers))
	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			pages[i] = settle(ctx, p, params)
		}(i, p)
	}
	wg.Wait()

	var (
		combined []models.Article
		total    int
		hasMore  bool
	)
	for _, page := range pages {
		combined = append(combined, page.Articles...)
		total += page.TotalResults
		hasMore = hasMore || page.HasMore
	}

	if len(combined) == 0 {
		return models.EmptyPage(params)
	}

	result := models.Page{
		Articles:     models.SortByRecencyDesc(combined),
		TotalResults: total,
		Page:         params.Page,
		PageSize:     params.PageSize,
		HasMore:      hasMore,
	}
	metrics.NewsArticlesServed.WithLabelValues("all").Add(float64(len(result.Articles)))
	return result
}

// FetchOne queries a single provider. It fails only when id is not an enabled provider.
func (a *Aggregator) FetchOne(ctx context.Context, id models.Source, params models.FetchParams) (models.Page, error) {
	p, ok := a.byID[models.Source(strings.ToLower(strings.TrimSpace(string(id))))]
	if !ok {
		return models.Page{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownProvider, id, a.validList())
	}

	page := settle(ctx, p, params.Normalize())
	metrics.NewsArticlesServed.WithLabelValues(string(p.ID())).Add(float64(len(page.Articles)))
	return page, nil
}

// Search runs a first-page query of SearchPageSize articles, across every
// provider or only the one named in filters.
func (a *Aggregator) Search(ctx context.Context, query string, filters SearchFilters) (models.Page, error) {
	params := models.FetchParams{
		Category: filters.Category,
		Query:    query,
		Page:     1,
		PageSize: SearchPageSize,
	}
	if filters.Source != "" {
		return a.FetchOne(ctx, filters.Source, params)
	}
	return a.FetchAll(ctx, params), nil
}

func (a *Aggregator) validList() string {
	ids := make([]string, len(a.providers))
	for i, p := range a.providers {
		ids[i] = string(p.ID())
	}
	return strings.Join(ids, ", ")
}

// settle calls p and turns a panic into an empty page so one provider can
// never take the others down with it.
func settle(ctx context.Context, p Provider, params models.FetchParams) (page models.Page) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error().
				Str("provider", string(p.ID())).
				Interface("panic", r).
				Msg("Provider panicked, treating as empty")
			page = models.EmptyPage(params)
		}
	}()

	page = p.Fetch(ctx, params)
	if page.Articles == nil {
		page.Articles = []models.Article{}
	}
	return page
}
