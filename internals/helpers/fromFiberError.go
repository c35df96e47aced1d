package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError: dipasang sebagai fiber.Config.ErrorHandler supaya error yang lolos dari handler
// (404 route, *fiber.Error, panic yang sudah di-recover) tetap keluar dengan envelope JsonError.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "")
}
