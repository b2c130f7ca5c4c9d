package middleware

import (
	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Recover turns handler panics into 500s and logs them with the request id
func Recover() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Get().Error().
				Interface("panic", e).
				Str("path", c.Path()).
				Str("request_id", RequestIDFrom(c)).
				Msg("Recovered from panic")
		},
	})
}
