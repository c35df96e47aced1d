// file: internals/features/scheduling/planner/dto/planner_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	"kelasku_backend/internals/features/scheduling/planner/service"
)

/* =========================================================
   REQUEST
========================================================= */

// Body opsional untuk POST /classes/:id/plan.
// Diisi kalau kelas di-migrasi di tengah kurikulum.
type PlanClassRequest struct {
	PreferredStartBlockID  *string `json:"preferred_start_block_id"  validate:"omitempty,uuid"`
	PreferredStartLessonID *string `json:"preferred_start_lesson_id" validate:"omitempty,uuid"`
}

func (r PlanClassRequest) ToHint() service.Hint {
	return service.Hint{
		PreferredStartBlockID:  parseUUIDPtr(r.PreferredStartBlockID),
		PreferredStartLessonID: parseUUIDPtr(r.PreferredStartLessonID),
	}
}

type PlanBatchItemRequest struct {
	ClassID string `json:"class_id" validate:"required,uuid"`
	PlanClassRequest
}

type PlanBatchRequest struct {
	Items []PlanBatchItemRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

func (r PlanBatchRequest) ToItems() []service.BatchItem {
	out := make([]service.BatchItem, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, service.BatchItem{
			ClassID: uuid.MustParse(strings.TrimSpace(it.ClassID)),
			Hint:    it.ToHint(),
		})
	}
	return out
}

// dipanggil setelah validasi, jadi string sudah pasti uuid
func parseUUIDPtr(s *string) *uuid.UUID {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &id
}

/* =========================================================
   RESPONSE
========================================================= */

const (
	StatusPlanned = "planned"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

type PlanResultResponse struct {
	ClassID          uuid.UUID  `json:"class_id"`
	Status           string     `json:"status"`
	Reason           string     `json:"reason,omitempty"`
	BlockID          *uuid.UUID `json:"block_id,omitempty"`
	SessionsCreated  int        `json:"sessions_created"`
	PastSessionCount int        `json:"past_session_count"`
	Error            string     `json:"error,omitempty"`
}

func FromResult(classID uuid.UUID, r service.Result) PlanResultResponse {
	out := PlanResultResponse{ClassID: classID}
	switch v := r.(type) {
	case service.Planned:
		out.Status = StatusPlanned
		out.BlockID = v.BlockID
		out.SessionsCreated = v.SessionsCreated
		out.PastSessionCount = v.PastSessionCount
	case service.Skipped:
		out.Status = StatusSkipped
		out.Reason = v.Reason
	}
	return out
}

type PlanBatchResponse struct {
	Planned int                  `json:"planned"`
	Skipped int                  `json:"skipped"`
	Failed  int                  `json:"failed"`
	Items   []PlanResultResponse `json:"items"`
}

func FromBatch(outcomes []service.BatchOutcome) PlanBatchResponse {
	resp := PlanBatchResponse{Items: make([]PlanResultResponse, 0, len(outcomes))}
	for _, o := range outcomes {
		if o.Err != nil {
			resp.Failed++
			resp.Items = append(resp.Items, PlanResultResponse{
				ClassID: o.ClassID,
				Status:  StatusFailed,
				Error:   o.Err.Error(),
			})
			continue
		}
		item := FromResult(o.ClassID, o.Result)
		if item.Status == StatusPlanned {
			resp.Planned++
		} else {
			resp.Skipped++
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

type HorizonResponse struct {
	ClassID         uuid.UUID `json:"class_id"`
	SessionsCreated int       `json:"sessions_created"`
	EndDateExtended bool      `json:"end_date_extended"`
}

func FromHorizon(classID uuid.UUID, r service.HorizonResult) HorizonResponse {
	return HorizonResponse{
		ClassID:         classID,
		SessionsCreated: r.SessionsCreated,
		EndDateExtended: r.EndDateExtended,
	}
}
