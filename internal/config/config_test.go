package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"newsapi", "nytimes"}, cfg.EnabledProviders)
	assert.Equal(t, "https://newsapi.org/v2", cfg.NewsAPI.BaseURL)
	assert.Equal(t, "us", cfg.NewsAPI.Country)
	assert.Equal(t, "https://api.nytimes.com/svc", cfg.NYTimes.BaseURL)
	assert.Equal(t, time.Minute, cfg.QuotaWindow)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENABLED_PROVIDERS", " NYTimes , ")
	t.Setenv("NYTIMES_API_KEY", "secret")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("NYTIMES_QUOTA", "5")
	t.Setenv("LOG_PRETTY", "false")

	cfg := FromEnv()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"nytimes"}, cfg.EnabledProviders)
	assert.Equal(t, "secret", cfg.NYTimes.APIKey)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5, cfg.NYTimesQuota)
	assert.False(t, cfg.LogPretty)
	assert.True(t, cfg.ProviderEnabled("nytimes"))
	assert.False(t, cfg.ProviderEnabled("newsapi"))
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("UPSTREAM_RETRIES", "many")
	t.Setenv("QUOTA_WINDOW", "soon")

	cfg := FromEnv()

	assert.Equal(t, 2, cfg.UpstreamRetries)
	assert.Equal(t, time.Minute, cfg.QuotaWindow)
}

func TestValidate_RejectsUnknownProvider(t *testing.T) {
	cfg := FromEnv()
	cfg.EnabledProviders = []string{"newsapi", "guardian"}

	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadBaseURL(t *testing.T) {
	cfg := FromEnv()
	cfg.NYTimes.BaseURL = "not a url"

	require.Error(t, cfg.Validate())
}
