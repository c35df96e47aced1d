package middlewares

import (
	"github.com/gofiber/fiber/v2"

	applog "kelasku_backend/internals/helpers/logger"
	reqlog "kelasku_backend/internals/middlewares/logger"
)

// SetupMiddlewares: middleware global, urutan penting (recovery paling luar)
func SetupMiddlewares(app *fiber.App, log *applog.Logger) {
	app.Use(RecoveryMiddleware(log))
	app.Use(CorsMiddleware())
	app.Use(reqlog.LoggerMiddleware(log))
	app.Use(GlobalRateLimiter())
}
