// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	plannerRoute "kelasku_backend/internals/features/scheduling/planner/route"
	"kelasku_backend/internals/features/scheduling/planner/service"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps: service yang sudah dirakit di main
type Deps struct {
	Planner *service.Service
	Redis   *redis.Client // opsional; nil = tanpa blacklist token
}

func SetupRoutes(app *fiber.App, db *gorm.DB, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	opts := authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}
	if d.Redis != nil {
		opts.BlacklistChecker = authMiddleware.RedisBlacklist(d.Redis)
	}

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(opts),
		authMiddleware.IsSchedulerAdmin(),
	)

	log.Println("[INFO] Mounting Scheduling routes...")
	plannerRoute.PlannerAdminRoutes(admin, d.Planner)
}
