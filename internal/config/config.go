package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`
	CacheControl    string        `json:"cache_control"`

	// Upstream HTTP behaviour
	UpstreamTimeout time.Duration `json:"upstream_timeout" validate:"gt=0"`
	UpstreamRetries int           `json:"upstream_retries" validate:"gte=0,lte=10"`

	// Providers
	EnabledProviders []string      `json:"enabled_providers" validate:"min=1,dive,oneof=newsapi nytimes"`
	NewsAPI          NewsAPIConfig `json:"newsapi"`
	NYTimes          NYTimesConfig `json:"nytimes"`

	// Upstream quota. Limits of 0 disable the gate.
	RedisURL     string        `json:"redis_url"`
	RedisPrefix  string        `json:"redis_prefix"`
	QuotaWindow  time.Duration `json:"quota_window" validate:"gt=0"`
	NewsAPIQuota int           `json:"newsapi_quota" validate:"gte=0"`
	NYTimesQuota int           `json:"nytimes_quota" validate:"gte=0"`

	// Logging
	LogLevel  string `json:"log_level" validate:"oneof=debug info warn error fatal panic disabled"`
	LogFile   string `json:"log_file"`
	LogPretty bool   `json:"log_pretty"`
}

// NewsAPIConfig configures the generic headlines provider
type NewsAPIConfig struct {
	APIKey  string `json:"-"`
	BaseURL string `json:"base_url" validate:"required,url"`
	Country string `json:"country" validate:"required,len=2"`
}

// NYTimesConfig configures the newspaper provider family
type NYTimesConfig struct {
	APIKey  string `json:"-"`
	BaseURL string `json:"base_url" validate:"required,url"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the process environment without validating it
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		CacheControl:    getEnv("CACHE_CONTROL", "public, s-maxage=120, stale-while-revalidate=300"),

		UpstreamTimeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamRetries: getEnvAsInt("UPSTREAM_RETRIES", 2),

		EnabledProviders: getEnvAsList("ENABLED_PROVIDERS", []string{"newsapi", "nytimes"}),
		NewsAPI: NewsAPIConfig{
			APIKey:  getEnv("NEWSAPI_KEY", ""),
			BaseURL: getEnv("NEWSAPI_BASE_URL", "https://newsapi.org/v2"),
			Country: getEnv("NEWSAPI_COUNTRY", "us"),
		},
		NYTimes: NYTimesConfig{
			APIKey:  getEnv("NYTIMES_API_KEY", ""),
			BaseURL: getEnv("NYTIMES_BASE_URL", "https://api.nytimes.com/svc"),
		},

		RedisURL:     getEnv("REDIS_URL", ""),
		RedisPrefix:  getEnv("REDIS_PREFIX", "newsdeck:quota:"),
		QuotaWindow:  getEnvAsDuration("QUOTA_WINDOW", time.Minute),
		NewsAPIQuota: getEnvAsInt("NEWSAPI_QUOTA", 0),
		NYTimesQuota: getEnvAsInt("NYTIMES_QUOTA", 0),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:   getEnv("LOG_FILE", ""),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// ProviderEnabled reports whether the provider id is in EnabledProviders
func (c *Config) ProviderEnabled(id string) bool {
	for _, p := range c.EnabledProviders {
		if p == id {
			return true
		}
	}
	return false
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsList(name string, defaultVal []string) []string {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
