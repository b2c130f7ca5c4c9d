package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/models"
)

func TestNew_EnabledProviders(t *testing.T) {
	tests := []struct {
		name    string
		enabled []string
		want    []models.Source
	}{
		{"both", []string{"newsapi", "nytimes"}, []models.Source{models.SourceNewsAPI, models.SourceNYTimes}},
		{"newspaper only", []string{"nytimes"}, []models.Source{models.SourceNYTimes}},
		{"headlines only", []string{"newsapi"}, []models.Source{models.SourceNewsAPI}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.FromEnv()
			cfg.RedisURL = ""
			cfg.EnabledProviders = tt.enabled

			svc, err := New(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = svc.Close() })

			assert.Equal(t, tt.want, svc.Sources())
		})
	}
}

func TestNew_BadRedisURL(t *testing.T) {
	cfg := config.FromEnv()
	cfg.RedisURL = "not a url"

	_, err := New(cfg)
	assert.Error(t, err)
}
