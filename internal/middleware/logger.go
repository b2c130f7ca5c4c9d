package middleware

import (
	"strconv"
	"time"

	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/bilgisen/newsdeck/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// LoggerConfig defines the config for the logger middleware
type LoggerConfig struct {
	// Skip defines a function to skip middleware.
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Logger is the zerolog logger instance to use.
	// If not provided, the global logger is read on every request.
	Logger *zerolog.Logger
}

// NewLogger logs one line per request and records the HTTP request metrics
func NewLogger(config ...LoggerConfig) fiber.Handler {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		// Route path keeps metric label cardinality bounded.
		path := c.Route().Path

		metrics.HttpRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		metrics.HttpRequestDuration.WithLabelValues(c.Method(), path).Observe(latency.Seconds())

		log := cfg.Logger
		if log == nil {
			log = logger.Get()
		}

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}

		event = event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("ip", c.IP()).
			Str("request_id", RequestIDFrom(c)).
			Dur("latency", latency)

		if err != nil {
			event = event.Err(err)
		}

		event.Msg("request")
		return err
	}
}

// RequestLogger is NewLogger with the global logger
func RequestLogger() fiber.Handler {
	return NewLogger()
}
