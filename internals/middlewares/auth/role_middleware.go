package auth

import (
	"github.com/gofiber/fiber/v2"

	"kelasku_backend/internals/constants"
	helper "kelasku_backend/internals/helpers"
)

// OnlyRoles: lolos kalau salah satu role token ada di allowed. Dipasang setelah AuthJWT.
func OnlyRoles(message string, allowed ...string) fiber.Handler {
	if message == "" {
		message = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals(LocRolesGlobal).([]string)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Role not found")
		}
		for _, r := range roles {
			for _, a := range allowed {
				if r == a {
					return c.Next()
				}
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, message)
	}
}

// IsSchedulerAdmin: admin sekolah atau owner global
func IsSchedulerAdmin() fiber.Handler {
	return OnlyRoles(constants.RoleErrorAdmin("penjadwalan kelas"), constants.SchedulerAdminRoles...)
}
