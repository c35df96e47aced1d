package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"kelasku_backend/internals/helpers/logger"
)

// RecoveryMiddleware menangkap panic → 500, stack dicatat ke logger
func RecoveryMiddleware(log *logger.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log.Error("panic recovered", "path", c.Path(), "method", c.Method(), "panic", fmt.Sprint(e))
		},
	})
}
