// Package bootstrap wires configuration into a ready aggregator.
// The HTTP server and the CLI share it.
package bootstrap

import (
	"fmt"

	"github.com/bilgisen/newsdeck/internal/aggregator"
	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/feed"
	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/bilgisen/newsdeck/internal/models"
	"github.com/bilgisen/newsdeck/internal/newsapi"
	"github.com/bilgisen/newsdeck/internal/nytimes"
	"github.com/bilgisen/newsdeck/internal/quota"
)

// Service is the assembled aggregation core
type Service struct {
	*aggregator.Aggregator
	limiter quota.Limiter
}

// Close releases the quota backend
func (s *Service) Close() error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Close()
}

// InitLogger configures the global logger from cfg
func InitLogger(cfg *config.Config) error {
	output := cfg.LogFile
	if output == "" {
		output = "stdout"
	}
	return logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: output,
		Pretty: cfg.LogPretty,
	})
}

// New builds the fetcher, the enabled provider clients and the aggregator
func New(cfg *config.Config) (*Service, error) {
	limiter, err := quota.New(cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize quota limiter: %w", err)
	}

	fetcher := feed.NewFetcher(feed.Options{
		Timeout:    cfg.UpstreamTimeout,
		RetryCount: cfg.UpstreamRetries,
		Limiter:    limiter,
		Budgets: map[string]feed.Budget{
			string(models.SourceNewsAPI): {Limit: cfg.NewsAPIQuota, Window: cfg.QuotaWindow},
			string(models.SourceNYTimes): {Limit: cfg.NYTimesQuota, Window: cfg.QuotaWindow},
		},
	})

	var providers []aggregator.Provider
	if cfg.ProviderEnabled(string(models.SourceNewsAPI)) {
		providers = append(providers, newsapi.NewClient(cfg.NewsAPI, fetcher))
	}
	if cfg.ProviderEnabled(string(models.SourceNYTimes)) {
		providers = append(providers, nytimes.NewClient(cfg.NYTimes, fetcher))
	}

	log := logger.Get()
	if cfg.NewsAPI.APIKey == "" && cfg.ProviderEnabled(string(models.SourceNewsAPI)) {
		log.Warn().Msg("NEWSAPI_KEY is empty, headlines requests will be rejected upstream")
	}
	if cfg.NYTimes.APIKey == "" && cfg.ProviderEnabled(string(models.SourceNYTimes)) {
		log.Warn().Msg("NYTIMES_API_KEY is empty, newspaper requests will be rejected upstream")
	}

	return &Service{
		Aggregator: aggregator.New(providers...),
		limiter:    limiter,
	}, nil
}
