// file: internals/features/scheduling/planner/controller/planner_controller.go
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "kelasku_backend/internals/features/scheduling/planner/dto"
	"kelasku_backend/internals/features/scheduling/planner/service"
	helper "kelasku_backend/internals/helpers"
)

type PlannerController struct {
	Svc       *service.Service
	Validator *validator.Validate
}

func NewPlannerController(svc *service.Service) *PlannerController {
	return &PlannerController{Svc: svc, Validator: validator.New()}
}

func parseClassID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// fail: map error service → status HTTP
func (ctl *PlannerController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	case helper.IsUniqueViolation(err):
		return helper.JsonError(c, fiber.StatusConflict, "Kelas sedang/sudah dijadwalkan oleh proses lain")
	case errors.Is(err, context.DeadlineExceeded):
		return helper.JsonError(c, fiber.StatusGatewayTimeout, "Proses penjadwalan melebihi batas waktu")
	default:
		ctl.Svc.Log.Error("planner request failed", "path", c.Path(), "error", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menjadwalkan kelas")
	}
}

/* ===============================
   POST /classes/:id/plan
   Body opsional: { preferred_start_block_id, preferred_start_lesson_id }
=============================== */
func (ctl *PlannerController) PlanClass(c *fiber.Ctx) error {
	classID, ok := parseClassID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "class id tidak valid")
	}

	var req dto.PlanClassRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
		if err := ctl.Validator.Struct(req); err != nil {
			return helper.ValidationErrors(c, err)
		}
	}

	res, err := ctl.Svc.PlanClass(c.UserContext(), classID, req.ToHint())
	if err != nil {
		return ctl.fail(c, err)
	}

	out := dto.FromResult(classID, res)
	if out.Status == dto.StatusPlanned {
		return helper.JsonCreated(c, "Kelas berhasil dijadwalkan", out)
	}
	return helper.JsonOK(c, "Penjadwalan dilewati", out)
}

/* ===============================
   POST /classes/:id/horizon
=============================== */
func (ctl *PlannerController) TopUpHorizon(c *fiber.Ctx) error {
	classID, ok := parseClassID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "class id tidak valid")
	}

	hr, err := ctl.Svc.TopUpHorizon(c.UserContext(), classID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Horizon sesi diperbarui", dto.FromHorizon(classID, hr))
}

/* ===============================
   POST /classes/plan-batch
   Body: { items: [{ class_id, preferred_start_block_id?, preferred_start_lesson_id? }] }
=============================== */
func (ctl *PlannerController) PlanBatch(c *fiber.Ctx) error {
	var req dto.PlanBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationErrors(c, err)
	}

	outcomes := ctl.Svc.PlanBatch(c.UserContext(), req.ToItems())
	return helper.JsonOK(c, "Batch penjadwalan selesai", dto.FromBatch(outcomes))
}
