package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "kelasku_backend/internals/helpers/logger"
)

// LoggerMiddleware untuk mencatat semua request
func LoggerMiddleware(log *applog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		kv := []any{
			"request_id", c.Locals("reqid"),
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case err != nil:
			log.Error("request", append(kv, "error", err.Error())...)
		case status >= 500:
			log.Error("request", kv...)
		case status >= 400:
			log.Warn("request", kv...)
		default:
			log.Info("request", kv...)
		}
		return err
	}
}
