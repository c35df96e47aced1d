// file: internals/features/classes/model/session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
=========================================================

	Enums
	=========================================================
*/
type SessionStatus string

const (
	SessionScheduled SessionStatus = "SCHEDULED"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionCancelled SessionStatus = "CANCELLED"
)

/*
=========================================================

	Model: satu pertemuan terjadwal untuk satu kelas
	(class_id, date_time) unik → dua generator yang balapan tidak bisa menggandakan pertemuan
	=========================================================
*/
type SessionModel struct {
	SessionID       uuid.UUID     `json:"session_id"        gorm:"column:session_id;type:uuid;primaryKey"`
	SessionClassID  uuid.UUID     `json:"session_class_id"  gorm:"column:session_class_id;type:uuid;not null;uniqueIndex:uq_sessions_class_date_time,priority:1"`
	SessionDateTime time.Time     `json:"session_date_time" gorm:"column:session_date_time;not null;uniqueIndex:uq_sessions_class_date_time,priority:2"`
	SessionStatus   SessionStatus `json:"session_status"    gorm:"column:session_status;type:varchar(16);not null;default:'SCHEDULED'"`

	SessionMeetingLinkSnapshot string `json:"session_meeting_link_snapshot" gorm:"column:session_meeting_link_snapshot;type:text;not null;default:''"`

	SessionCreatedAt time.Time `json:"session_created_at" gorm:"column:session_created_at;autoCreateTime"`
	SessionUpdatedAt time.Time `json:"session_updated_at" gorm:"column:session_updated_at;autoUpdateTime"`
}

func (SessionModel) TableName() string { return "sessions" }

func (m *SessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SessionID == uuid.Nil {
		m.SessionID = uuid.New()
	}
	return nil
}

/*
=========================================================

	Jejak planning (audit), ditulis dalam transaksi yang sama dengan hasil planning
	=========================================================
*/
type ClassPlanningRunModel struct {
	ClassPlanningRunID               uuid.UUID  `json:"class_planning_run_id"                gorm:"column:class_planning_run_id;type:uuid;primaryKey"`
	ClassPlanningRunClassID          uuid.UUID  `json:"class_planning_run_class_id"          gorm:"column:class_planning_run_class_id;type:uuid;not null;index"`
	ClassPlanningRunKind             ClassType  `json:"class_planning_run_kind"              gorm:"column:class_planning_run_kind;type:varchar(16);not null"`
	ClassPlanningRunPastSessionCount int        `json:"class_planning_run_past_session_count" gorm:"column:class_planning_run_past_session_count;not null;default:0"`
	ClassPlanningRunSessionsCreated  int        `json:"class_planning_run_sessions_created"  gorm:"column:class_planning_run_sessions_created;not null;default:0"`
	ClassPlanningRunFirstBlockID     *uuid.UUID `json:"class_planning_run_first_block_id,omitempty" gorm:"column:class_planning_run_first_block_id;type:uuid"`

	ClassPlanningRunDetails datatypes.JSONType[PlanningRunDetails] `json:"class_planning_run_details" gorm:"column:class_planning_run_details"`

	ClassPlanningRunCreatedAt time.Time `json:"class_planning_run_created_at" gorm:"column:class_planning_run_created_at;autoCreateTime"`
}

// PlanningRunDetails: snapshot input planning untuk audit/debug.
type PlanningRunDetails struct {
	ScheduleDay            string     `json:"schedule_day"`
	EffectiveStartDate     string     `json:"effective_start_date"`
	LastSessionDate        string     `json:"last_session_date,omitempty"`
	BlockCount             int        `json:"block_count,omitempty"`
	LessonCount            int        `json:"lesson_count,omitempty"`
	HorizonSessions        int        `json:"horizon_sessions,omitempty"`
	PreferredStartBlockID  *uuid.UUID `json:"preferred_start_block_id,omitempty"`
	PreferredStartLessonID *uuid.UUID `json:"preferred_start_lesson_id,omitempty"`
}

func (ClassPlanningRunModel) TableName() string { return "class_planning_runs" }

func (m *ClassPlanningRunModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassPlanningRunID == uuid.Nil {
		m.ClassPlanningRunID = uuid.New()
	}
	return nil
}
