package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "kelasku_backend/internals/helpers"
)

func ipLimiter(max int, exp time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: exp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return ipLimiter(100, 1*time.Minute, "Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

// Batch planning berat (bisa ratusan kelas sekali jalan)
func BatchPlanningRateLimiter() fiber.Handler {
	return ipLimiter(5, 1*time.Minute, "Terlalu banyak batch penjadwalan. Tunggu sebentar.")
}
