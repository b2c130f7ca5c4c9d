package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bilgisen/newsdeck/internal/aggregator"
	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/bilgisen/newsdeck/internal/middleware"
	"github.com/bilgisen/newsdeck/internal/models"
	"github.com/gofiber/fiber/v2"
)

// NewsService is the aggregation core the handlers serve
type NewsService interface {
	FetchAll(ctx context.Context, params models.FetchParams) models.Page
	FetchOne(ctx context.Context, id models.Source, params models.FetchParams) (models.Page, error)
	Search(ctx context.Context, query string, filters aggregator.SearchFilters) (models.Page, error)
	Sources() []models.Source
}

// NewsQuery holds the query string of GET /news
type NewsQuery struct {
	Category string `query:"category"`
	Query    string `query:"query" validate:"max=500"`
	Page     int    `query:"page" validate:"gte=0,lte=10000"`
	PageSize int    `query:"pageSize" validate:"gte=0,lte=100"`
	Source   string `query:"source"`
}

// SearchQuery holds the query string of GET /news/search
type SearchQuery struct {
	Q        string `query:"q" validate:"required,max=500"`
	Category string `query:"category"`
	Source   string `query:"source"`
}

type Handlers struct {
	news         NewsService
	cacheControl string
	timeout      time.Duration
}

func NewHandlers(news NewsService, cacheControl string, timeout time.Duration) *Handlers {
	return &Handlers{
		news:         news,
		cacheControl: cacheControl,
		timeout:      timeout,
	}
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"sources": h.news.Sources(),
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GetNews handles GET /api/v1/news
func (h *Handlers) GetNews(c *fiber.Ctx) error {
	q := middleware.QueryParams[NewsQuery](c)

	params := models.FetchParams{
		Category: categoryOrEmpty(q.Category),
		Query:    q.Query,
		Page:     q.Page,
		PageSize: q.PageSize,
	}.Normalize()

	ctx, cancel := h.requestContext(c)
	defer cancel()

	var page models.Page
	if source := strings.TrimSpace(q.Source); source != "" {
		var err error
		page, err = h.news.FetchOne(ctx, models.Source(source), params)
		if err != nil {
			return h.clientError(c, err)
		}
	} else {
		page = h.news.FetchAll(ctx, params)
	}

	return h.send(c, page)
}

// SearchNews handles GET /api/v1/news/search
func (h *Handlers) SearchNews(c *fiber.Ctx) error {
	q := middleware.QueryParams[SearchQuery](c)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	page, err := h.news.Search(ctx, q.Q, aggregator.SearchFilters{
		Category: categoryOrEmpty(q.Category),
		Source:   models.Source(strings.TrimSpace(q.Source)),
	})
	if err != nil {
		return h.clientError(c, err)
	}

	return h.send(c, page)
}

func (h *Handlers) send(c *fiber.Ctx, page models.Page) error {
	if h.cacheControl != "" {
		c.Set(fiber.HeaderCacheControl, h.cacheControl)
	}
	return c.JSON(page)
}

func (h *Handlers) clientError(c *fiber.Ctx, err error) error {
	if errors.Is(err, aggregator.ErrUnknownProvider) {
		logger.Get().Warn().
			Err(err).
			Str("request_id", middleware.RequestIDFrom(c)).
			Msg("Rejected unknown source")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid source. Must be one of: " + joinSources(h.news.Sources()),
		})
	}
	return err
}

func (h *Handlers) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// categoryOrEmpty drops unknown categories instead of rejecting the request
func categoryOrEmpty(s string) models.Category {
	if c, ok := models.ParseCategory(s); ok {
		return c
	}
	return ""
}

func joinSources(sources []models.Source) string {
	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
