// file: internals/features/scheduling/planner/service/result.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrClassNotFound = errors.New("class not found")

// Alasan skip (dikirim apa adanya ke caller / migration runner)
const (
	ReasonNotWeekly         = "Not a weekly class"
	ReasonNotEkskul         = "Not an ekskul class"
	ReasonMissingLevel      = "Class missing level id"
	ReasonNoLessonPlan      = "No lesson plan assigned"
	ReasonNoBlocks          = "No curriculum blocks found for level"
	ReasonAlreadyPlanned    = "Class already has blocks"
	ReasonPlanNotFound      = "Ekskul lesson plan not found"
	ReasonPlanEmpty         = "Ekskul lesson plan has no lessons"
	ReasonAlreadyHasSession = "Class already has sessions"
)

func reasonInvalidDay(day string) string {
	return fmt.Sprintf("Invalid schedule day %q", day)
}

// Result: hasil satu run planning, Skipped atau Planned.
type Result interface {
	isResult()
}

type Skipped struct {
	Reason string `json:"reason"`
}

type Planned struct {
	// block pertama; nil untuk ekskul
	BlockID          *uuid.UUID `json:"block_id,omitempty"`
	SessionsCreated  int        `json:"sessions_created"`
	PastSessionCount int        `json:"past_session_count"`
}

func (Skipped) isResult() {}
func (Planned) isResult() {}

// Hint: posisi kurikulum kelas yang di-migrasi di tengah jalan.
type Hint struct {
	PreferredStartBlockID  *uuid.UUID
	PreferredStartLessonID *uuid.UUID
}

type HorizonResult struct {
	SessionsCreated int  `json:"sessions_created"`
	EndDateExtended bool `json:"end_date_extended"`
}

type BatchItem struct {
	ClassID uuid.UUID
	Hint    Hint
}

type BatchOutcome struct {
	ClassID uuid.UUID
	Result  Result
	Err     error
}
