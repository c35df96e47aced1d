// file: internals/features/scheduling/planner/route/planner_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	plannerController "kelasku_backend/internals/features/scheduling/planner/controller"
	"kelasku_backend/internals/features/scheduling/planner/service"
	"kelasku_backend/internals/middlewares"
)

/*
Admin routes: penjadwalan kelas
Mount contoh: PlannerAdminRoutes(app.Group("/api/a"), svc)
*/
func PlannerAdminRoutes(r fiber.Router, svc *service.Service) {
	ctl := plannerController.NewPlannerController(svc)

	classes := r.Group("/classes")
	classes.Post("/plan-batch", middlewares.BatchPlanningRateLimiter(), ctl.PlanBatch) // POST /api/a/classes/plan-batch
	classes.Post("/:id/plan", ctl.PlanClass)                                           // POST /api/a/classes/:id/plan
	classes.Post("/:id/horizon", ctl.TopUpHorizon)                                     // POST /api/a/classes/:id/horizon
}
