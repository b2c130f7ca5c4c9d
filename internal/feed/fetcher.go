package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/bilgisen/newsdeck/internal/metrics"
	"github.com/bilgisen/newsdeck/internal/quota"
	"github.com/go-resty/resty/v2"
)

// ErrThrottled is returned when the upstream quota for a provider is used up
var ErrThrottled = errors.New("upstream quota exhausted")

// StatusError reports a non-2xx upstream response
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}

// Budget is the request allowance for one provider per window
type Budget struct {
	Limit  int
	Window time.Duration
}

// Options configures a Fetcher
type Options struct {
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
	Limiter       quota.Limiter
	Budgets       map[string]Budget
}

// Request describes one upstream GET
type Request struct {
	Provider string // metrics and log label, also the quota key
	Endpoint string // metrics and log label
	URL      string
	Query    map[string]string
	Headers  map[string]string
}

// Fetcher performs upstream JSON requests shared by every provider adapter
type Fetcher struct {
	client  *resty.Client
	limiter quota.Limiter
	budgets map[string]Budget
}

func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryWaitTime <= 0 {
		opts.RetryWaitTime = 500 * time.Millisecond
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(10 * opts.RetryWaitTime).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && r.StatusCode() >= http.StatusInternalServerError
		})

	return &Fetcher{
		client:  client,
		limiter: opts.Limiter,
		budgets: opts.Budgets,
	}
}

// GetJSON issues the request and decodes the body into out.
// For non-2xx responses the body is still decoded when possible so callers
// can read the upstream's own error fields, and a *StatusError is returned.
func (f *Fetcher) GetJSON(ctx context.Context, req Request, out any) error {
	log := logger.Upstream(req.Provider, req.Endpoint)

	if err := f.admit(ctx, req.Provider); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.Provider, req.Endpoint, metrics.OutcomeThrottled).Inc()
		return err
	}

	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(req.Query).
		SetHeaders(req.Headers).
		Get(req.URL)
	metrics.UpstreamRequestDuration.WithLabelValues(req.Provider, req.Endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.Provider, req.Endpoint, metrics.OutcomeError).Inc()
		return fmt.Errorf("failed to fetch %s: %w", req.Endpoint, err)
	}

	log.Debug().
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("Upstream response")

	decodeErr := json.Unmarshal(resp.Body(), out)

	if !resp.IsSuccess() {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.Provider, req.Endpoint, metrics.OutcomeError).Inc()
		return &StatusError{Code: resp.StatusCode()}
	}
	if decodeErr != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.Provider, req.Endpoint, metrics.OutcomeError).Inc()
		return fmt.Errorf("failed to parse %s response: %w", req.Endpoint, decodeErr)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(req.Provider, req.Endpoint, metrics.OutcomeOK).Inc()
	return nil
}

// admit consults the quota for provider. Limiter failures let the request through.
func (f *Fetcher) admit(ctx context.Context, provider string) error {
	if f.limiter == nil {
		return nil
	}
	budget, ok := f.budgets[provider]
	if !ok || budget.Limit <= 0 {
		return nil
	}

	allowed, err := f.limiter.Allow(ctx, provider, budget.Limit, budget.Window)
	if err != nil {
		logger.Get().Warn().
			Err(err).
			Str("provider", provider).
			Msg("Quota check failed, allowing request")
		return nil
	}
	if !allowed {
		return fmt.Errorf("%s: %w", provider, ErrThrottled)
	}
	return nil
}

// StatusCode extracts the upstream status from err, or 0 when there is none
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
